package reports

import (
	"encoding/json"
	"net/http"
	"strconv"
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

// Create handles POST /maintenance-reports: instantiates a report from a
// template, snapshotting the template header and items.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	tenant, _ := tenantctx.FromContext(r.Context())
	var in models.ReportInput
	if !decode(w, r, &in) {
		return
	}
	if in.TemplateID == uuid.Nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "templateId required"})
		return
	}
	rep, err := h.repo.CreateReportFromTemplate(r.Context(), tenant, in)
	if err != nil {
		httpserver.Error(w, err, "report create failed")
		return
	}
	httpserver.JSON(w, http.StatusCreated, rep)
}

// List handles GET /maintenance-reports with optional filters and skip/take
// paging.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	q := r.URL.Query()

	var f models.ReportFilter
	for key, dst := range map[string]**uuid.UUID{
		"customerId": &f.CustomerID,
		"siteId":     &f.SiteID,
		"assetId":    &f.AssetID,
		"templateId": &f.TemplateID,
	} {
		raw := strings.TrimSpace(q.Get(key))
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + key})
			return
		}
		*dst = &id
	}
	if raw := strings.TrimSpace(q.Get("state")); raw != "" {
		state := models.ReportState(strings.ToUpper(raw))
		if state != models.ReportDraft && state != models.ReportFinal {
			httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid state"})
			return
		}
		f.State = &state
	}
	f.Skip, _ = strconv.Atoi(q.Get("skip"))
	f.Take, _ = strconv.Atoi(q.Get("take"))

	out, err := h.repo.ListReports(r.Context(), companyID, f)
	if err != nil {
		httpserver.Error(w, err, "list reports failed")
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
	rep, err := h.repo.GetReport(r.Context(), companyID, id)
	if err != nil {
		httpserver.Error(w, err, "get report failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, rep)
}

// UpdateHeader handles PATCH /maintenance-reports/{id}. FINAL reports are
// immutable.
func (h *Handler) UpdateHeader(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch models.ReportHeaderPatch
	if !decode(w, r, &patch) {
		return
	}
	rep, err := h.repo.UpdateReportHeader(r.Context(), companyID, id, patch)
	if err != nil {
		httpserver.Error(w, err, "report update failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, rep)
}

// PatchItems handles PATCH /maintenance-reports/{id}/items: an all-or-nothing
// batch update of item results.
func (h *Handler) PatchItems(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Items []models.ReportItemPatch `json:"items"`
	}
	if !decode(w, r, &body) {
		return
	}
	for _, p := range body.Items {
		if p.Status != nil && !models.ValidReportItemStatus(*p.Status) {
			httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item status"})
			return
		}
	}
	rep, err := h.repo.PatchReportItems(r.Context(), companyID, id, body.Items)
	if err != nil {
		httpserver.Error(w, err, "report items update failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, rep)
}

// Finalize handles POST /maintenance-reports/{id}/finalize. Finalizing twice
// is a no-op returning the already-final report.
func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rep, err := h.repo.FinalizeReport(r.Context(), companyID, id)
	if err != nil {
		httpserver.Error(w, err, "report finalize failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, rep)
}
