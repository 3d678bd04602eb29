package templates

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	httpserver "github.com/Pieroprincipe22/tarea-completa-tc/internal/http"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/repo"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/tenantctx"
)

type Handler struct {
	repo repo.Repo
}

func New(repo repo.Repo) *Handler { return &Handler{repo: repo} }

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /maintenance-templates. A template needs at least one
// item; sort order defaults to the 1-based position in the request.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	var in models.TemplateInput
	if !decode(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "name required"})
		return
	}
	t, err := h.repo.CreateTemplate(r.Context(), companyID, in)
	if err != nil {
		httpserver.Error(w, err, "template create failed")
		return
	}
	httpserver.JSON(w, http.StatusCreated, t)
}

// List handles GET /maintenance-templates?includeArchived=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	includeArchived := r.URL.Query().Get("includeArchived") == "true"
	out, err := h.repo.ListTemplates(r.Context(), companyID, includeArchived)
	if err != nil {
		httpserver.Error(w, err, "list templates failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, out)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := h.repo.GetTemplate(r.Context(), companyID, id)
	if err != nil {
		httpserver.Error(w, err, "get template failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, t)
}

// Update handles PATCH /maintenance-templates/{id}. Scalars patch
// individually; an items array in the body, even an empty one, replaces the
// whole item set.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch models.TemplatePatch
	if !decode(w, r, &patch) {
		return
	}
	t, err := h.repo.UpdateTemplate(r.Context(), companyID, id, patch)
	if err != nil {
		httpserver.Error(w, err, "template update failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, t)
}

// Archive handles DELETE /maintenance-templates/{id}: a soft archive, the
// template stays referenceable by existing reports.
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := h.repo.ArchiveTemplate(r.Context(), companyID, id)
	if err != nil {
		httpserver.Error(w, err, "template archive failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, t)
}
