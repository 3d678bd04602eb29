package companies

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/auth"
	httpserver "github.com/Pieroprincipe22/tarea-completa-tc/internal/http"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/repo"
)

type Handler struct {
	repo repo.Repo
}

func New(repo repo.Repo) *Handler { return &Handler{repo: repo} }

// Create handles POST /companies: onboarding. Creates the company, its owner
// user and the ADMIN membership in one transaction.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name          string `json:"name"`
		OwnerEmail    string `json:"ownerEmail"`
		OwnerName     string `json:"ownerName"`
		OwnerPassword string `json:"ownerPassword"`
	}
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&body); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	name := strings.TrimSpace(body.Name)
	email := strings.ToLower(strings.TrimSpace(body.OwnerEmail))
	if name == "" || email == "" || len(body.OwnerPassword) < 8 {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "name, ownerEmail and ownerPassword (min 8 chars) required"})
		return
	}

	phc, err := auth.HashPassword(body.OwnerPassword, auth.DefaultArgonParams())
	if err != nil {
		httpserver.JSON(w, http.StatusInternalServerError, map[string]string{"error": "hash error"})
		return
	}

	companyID, ownerID, err := h.repo.CreateCompanyWithOwner(r.Context(), name, email, strings.TrimSpace(body.OwnerName), phc)
	if err != nil {
		httpserver.Error(w, err, "company create failed")
		return
	}
	httpserver.JSON(w, http.StatusCreated, map[string]any{
		"companyId":   companyID,
		"ownerUserId": ownerID,
	})
}

// List handles GET /companies.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.repo.ListCompanies(r.Context())
	if err != nil {
		httpserver.Error(w, err, "list companies failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, out)
}

// Get handles GET /companies/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid company id"})
		return
	}
	c, err := h.repo.GetCompany(r.Context(), id)
	if err != nil {
		httpserver.Error(w, err, "get company failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, c)
}
