package workorders

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

// Create handles POST /work-orders. The per-company number is allocated in
// the same transaction as the insert.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	tenant, _ := tenantctx.FromContext(r.Context())
	var in models.WorkOrderInput
	if !decode(w, r, &in) {
		return
	}
	if in.CustomerID == uuid.Nil || strings.TrimSpace(in.Title) == "" {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "customerId and title required"})
		return
	}
	if in.Priority != nil && (*in.Priority < 1 || *in.Priority > 5) {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "priority must be 1..5"})
		return
	}
	wo, err := h.repo.CreateWorkOrder(r.Context(), tenant, in)
	if err != nil {
		httpserver.Error(w, err, "work order create failed")
		return
	}
	httpserver.JSON(w, http.StatusCreated, wo)
}

// List handles GET /work-orders with filters, a free-text q over title and
// description, and page/pageSize paging.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	q := r.URL.Query()

	var f models.WorkOrderFilter
	for key, dst := range map[string]**uuid.UUID{
		"customerId":       &f.CustomerID,
		"siteId":           &f.SiteID,
		"assetId":          &f.AssetID,
		"assignedToUserId": &f.AssignedToUserID,
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
	if raw := strings.TrimSpace(q.Get("status")); raw != "" {
		status := models.WorkOrderStatus(strings.ToUpper(raw))
		if !models.ValidWorkOrderStatus(status) {
			httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		}
		f.Status = &status
	}
	f.Query = strings.TrimSpace(q.Get("q"))
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.PageSize, _ = strconv.Atoi(q.Get("pageSize"))

	page, err := h.repo.ListWorkOrders(r.Context(), companyID, f)
	if err != nil {
		httpserver.Error(w, err, "list work orders failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, page)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	wo, err := h.repo.GetWorkOrder(r.Context(), companyID, id)
	if err != nil {
		httpserver.Error(w, err, "get work order failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, wo)
}

// Update handles PATCH /work-orders/{id}. Absent fields stay untouched;
// status changes go through SetStatus only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch models.WorkOrderPatch
	if !decode(w, r, &patch) {
		return
	}
	if patch.Priority != nil && (*patch.Priority < 1 || *patch.Priority > 5) {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "priority must be 1..5"})
		return
	}
	wo, err := h.repo.UpdateWorkOrder(r.Context(), companyID, id, patch)
	if err != nil {
		httpserver.Error(w, err, "work order update failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, wo)
}

// SetStatus handles PATCH /work-orders/{id}/status, enforcing the transition
// policy. DONE and CANCELLED are terminal.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Status models.WorkOrderStatus `json:"status"`
	}
	if !decode(w, r, &body) {
		return
	}
	status := models.WorkOrderStatus(strings.ToUpper(string(body.Status)))
	if !models.ValidWorkOrderStatus(status) {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}
	wo, err := h.repo.SetWorkOrderStatus(r.Context(), companyID, id, status)
	if err != nil {
		httpserver.Error(w, err, "work order status change failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, wo)
}
