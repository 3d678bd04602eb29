package directory

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	httpserver "github.com/Pieroprincipe22/tarea-completa-tc/internal/http"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/repo"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/tenantctx"
)

// Handler serves the tenant reference data: customers, their sites, the
// assets installed at a site and the site contacts.
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

// optionalUUID parses a query parameter that scopes a list, when present.
func optionalUUID(w http.ResponseWriter, r *http.Request, key string) (*uuid.UUID, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + key})
		return nil, false
	}
	return &id, true
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	var body struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "name required"})
		return
	}
	c, err := h.repo.CreateCustomer(r.Context(), companyID, strings.TrimSpace(body.Name))
	if err != nil {
		httpserver.Error(w, err, "customer create failed")
		return
	}
	httpserver.JSON(w, http.StatusCreated, c)
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	out, err := h.repo.ListCustomers(r.Context(), companyID)
	if err != nil {
		httpserver.Error(w, err, "list customers failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, out)
}

func (h *Handler) CreateSite(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	var in models.SiteInput
	if !decode(w, r, &in) {
		return
	}
	if in.CustomerID == uuid.Nil || strings.TrimSpace(in.Name) == "" {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "customerId and name required"})
		return
	}
	s, err := h.repo.CreateSite(r.Context(), companyID, in)
	if err != nil {
		httpserver.Error(w, err, "site create failed")
		return
	}
	httpserver.JSON(w, http.StatusCreated, s)
}

func (h *Handler) ListSites(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	customerID, ok := optionalUUID(w, r, "customerId")
	if !ok {
		return
	}
	out, err := h.repo.ListSites(r.Context(), companyID, customerID)
	if err != nil {
		httpserver.Error(w, err, "list sites failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, out)
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	var in models.AssetInput
	if !decode(w, r, &in) {
		return
	}
	if in.SiteID == uuid.Nil || strings.TrimSpace(in.Name) == "" {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "siteId and name required"})
		return
	}
	a, err := h.repo.CreateAsset(r.Context(), companyID, in)
	if err != nil {
		httpserver.Error(w, err, "asset create failed")
		return
	}
	httpserver.JSON(w, http.StatusCreated, a)
}

func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	siteID, ok := optionalUUID(w, r, "siteId")
	if !ok {
		return
	}
	out, err := h.repo.ListAssets(r.Context(), companyID, siteID)
	if err != nil {
		httpserver.Error(w, err, "list assets failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, out)
}

func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	var in models.ContactInput
	if !decode(w, r, &in) {
		return
	}
	if in.SiteID == uuid.Nil || strings.TrimSpace(in.Name) == "" {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "siteId and name required"})
		return
	}
	c, err := h.repo.CreateContact(r.Context(), companyID, in)
	if err != nil {
		httpserver.Error(w, err, "contact create failed")
		return
	}
	httpserver.JSON(w, http.StatusCreated, c)
}

func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenantctx.CompanyID(r.Context())
	siteID, ok := optionalUUID(w, r, "siteId")
	if !ok {
		return
	}
	out, err := h.repo.ListContacts(r.Context(), companyID, siteID)
	if err != nil {
		httpserver.Error(w, err, "list contacts failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, out)
}
