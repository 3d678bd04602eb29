package admin

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/auth"
	httpserver "github.com/Pieroprincipe22/tarea-completa-tc/internal/http"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/repo"
)

type Handler struct {
	repo repo.Repo
}

func New(repo repo.Repo) *Handler { return &Handler{repo: repo} }

// DevUser handles POST /admin/dev-user: idempotently seeds a demo company,
// user, membership and counter row. Guarded by the x-admin-key middleware.
func (h *Handler) DevUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompanyName string      `json:"companyName"`
		Email       string      `json:"email"`
		Name        string      `json:"name"`
		Password    string      `json:"password"`
		Role        models.Role `json:"role"`
	}
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&body); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if strings.TrimSpace(body.CompanyName) == "" {
		body.CompanyName = "Dev Company"
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" {
		email = "dev@example.com"
	}
	if body.Password == "" {
		body.Password = "devpassword"
	}
	role := models.RoleAdmin
	if body.Role != "" {
		role = models.ParseRole(string(body.Role))
	}

	phc, err := auth.HashPassword(body.Password, auth.DefaultArgonParams())
	if err != nil {
		httpserver.JSON(w, http.StatusInternalServerError, map[string]string{"error": "hash error"})
		return
	}

	companyID, userID, err := h.repo.EnsureDevUser(r.Context(), strings.TrimSpace(body.CompanyName), email, strings.TrimSpace(body.Name), phc, role)
	if err != nil {
		httpserver.Error(w, err, "dev user seed failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"companyId": companyID,
		"userId":    userID,
		"email":     email,
		"role":      role,
	})
}
