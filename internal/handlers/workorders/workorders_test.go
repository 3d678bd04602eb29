package workorders

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/repo/repotest"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/tenantctx"
)

func newTestRouter(fake *repotest.Fake, tenant models.Tenant) *chi.Mux {
	h := New(fake)
	mux := chi.NewRouter()
	mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(tenantctx.WithTenant(r.Context(), tenant)))
		})
	})
	mux.Post("/work-orders", h.Create)
	mux.Get("/work-orders", h.List)
	mux.Get("/work-orders/{id}", h.Get)
	mux.Patch("/work-orders/{id}", h.Update)
	mux.Patch("/work-orders/{id}/status", h.SetStatus)
	return mux
}

func testTenant() models.Tenant {
	return models.Tenant{CompanyID: uuid.New(), UserID: uuid.New(), Role: models.RoleTech}
}

func TestCreateValidation(t *testing.T) {
	tenant := testTenant()
	mux := newTestRouter(&repotest.Fake{}, tenant)

	cases := []struct {
		name string
		body string
	}{
		{"no customer", `{"title":"fix pump"}`},
		{"no title", `{"customerId":"` + uuid.NewString() + `"}`},
		{"bad priority", `{"customerId":"` + uuid.NewString() + `","title":"x","priority":9}`},
		{"bad json", `{"title":`},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodPost, "/work-orders", strings.NewReader(c.body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", c.name, rec.Code)
		}
	}
}

func TestCreatePassesTenant(t *testing.T) {
	tenant := testTenant()
	customerID := uuid.New()
	fake := &repotest.Fake{
		CreateWorkOrderFn: func(ctx context.Context, got models.Tenant, in models.WorkOrderInput) (models.WorkOrder, error) {
			if got != tenant {
				t.Errorf("tenant = %+v, want %+v", got, tenant)
			}
			if in.CustomerID != customerID {
				t.Errorf("customerId = %s, want %s", in.CustomerID, customerID)
			}
			return models.WorkOrder{ID: uuid.New(), Number: 1, Status: models.WOOpen, Title: in.Title}, nil
		},
	}
	mux := newTestRouter(fake, tenant)

	body := `{"customerId":"` + customerID.String() + `","title":"fix pump"}`
	req := httptest.NewRequest(http.MethodPost, "/work-orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
}

func TestListParsesFilters(t *testing.T) {
	tenant := testTenant()
	customerID := uuid.New()
	var got models.WorkOrderFilter
	fake := &repotest.Fake{
		ListWorkOrdersFn: func(ctx context.Context, companyID uuid.UUID, f models.WorkOrderFilter) (models.WorkOrderPage, error) {
			if companyID != tenant.CompanyID {
				t.Errorf("companyID = %s, want %s", companyID, tenant.CompanyID)
			}
			got = f
			return models.WorkOrderPage{Items: []models.WorkOrder{}, Page: f.Page, PageSize: f.PageSize}, nil
		},
	}
	mux := newTestRouter(fake, tenant)

	url := "/work-orders?status=open&q=pump&page=2&pageSize=10&customerId=" + customerID.String()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if got.Status == nil || *got.Status != models.WOOpen {
		t.Error("status filter not parsed")
	}
	if got.CustomerID == nil || *got.CustomerID != customerID {
		t.Error("customerId filter not parsed")
	}
	if got.Query != "pump" || got.Page != 2 || got.PageSize != 10 {
		t.Errorf("filter = %+v", got)
	}
}

func TestListRejectsBadStatus(t *testing.T) {
	mux := newTestRouter(&repotest.Fake{}, testTenant())
	req := httptest.NewRequest(http.MethodGet, "/work-orders?status=BOGUS", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSetStatus(t *testing.T) {
	tenant := testTenant()
	woID := uuid.New()
	fake := &repotest.Fake{
		SetWorkOrderStatusFn: func(ctx context.Context, companyID, id uuid.UUID, status models.WorkOrderStatus) (models.WorkOrder, error) {
			if id != woID || status != models.WODone {
				t.Errorf("SetWorkOrderStatus(%s, %s)", id, status)
			}
			return models.WorkOrder{ID: id, Status: status}, nil
		},
	}
	mux := newTestRouter(fake, tenant)

	req := httptest.NewRequest(http.MethodPatch, "/work-orders/"+woID.String()+"/status", strings.NewReader(`{"status":"done"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
}

func TestSetStatusIllegalTransitionIs409(t *testing.T) {
	tenant := testTenant()
	woID := uuid.New()
	fake := &repotest.Fake{
		SetWorkOrderStatusFn: func(ctx context.Context, companyID, id uuid.UUID, status models.WorkOrderStatus) (models.WorkOrder, error) {
			return models.WorkOrder{}, models.ErrBadTransition
		},
	}
	mux := newTestRouter(fake, tenant)

	req := httptest.NewRequest(http.MethodPatch, "/work-orders/"+woID.String()+"/status", strings.NewReader(`{"status":"OPEN"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestGetNotFoundIs404(t *testing.T) {
	fake := &repotest.Fake{
		GetWorkOrderFn: func(ctx context.Context, companyID, id uuid.UUID) (models.WorkOrder, error) {
			return models.WorkOrder{}, models.ErrNotFound
		},
	}
	mux := newTestRouter(fake, testTenant())
	req := httptest.NewRequest(http.MethodGet, "/work-orders/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
