package authn

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/auth"
	httpserver "github.com/Pieroprincipe22/tarea-completa-tc/internal/http"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/repo"
)

type Handler struct {
	repo repo.Repo
}

func New(repo repo.Repo) *Handler { return &Handler{repo: repo} }

// Login handles POST /auth/login. On success it returns the user and the
// memberships the caller can pick a company scope from; there is no session,
// callers assert the chosen scope per request via headers.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&body); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || body.Password == "" {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid login"})
		return
	}

	user, hash, err := h.repo.GetUserByEmail(r.Context(), email)
	if err != nil || !auth.VerifyPassword(body.Password, hash) {
		// Same answer for unknown email and bad password.
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid login"})
		return
	}

	memberships, err := h.repo.ListMemberships(r.Context(), user.ID)
	if err != nil {
		httpserver.Error(w, err, "membership lookup failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"user":        user,
		"memberships": memberships,
	})
}
