package reports

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
	mux.Post("/maintenance-reports", h.Create)
	mux.Get("/maintenance-reports", h.List)
	mux.Get("/maintenance-reports/{id}", h.Get)
	mux.Patch("/maintenance-reports/{id}", h.UpdateHeader)
	mux.Patch("/maintenance-reports/{id}/items", h.PatchItems)
	mux.Post("/maintenance-reports/{id}/finalize", h.Finalize)
	return mux
}

func testTenant() models.Tenant {
	return models.Tenant{CompanyID: uuid.New(), UserID: uuid.New(), Role: models.RoleTech}
}

func TestCreateRequiresTemplateID(t *testing.T) {
	mux := newTestRouter(&repotest.Fake{}, testTenant())
	req := httptest.NewRequest(http.MethodPost, "/maintenance-reports", strings.NewReader(`{"notes":"x"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateFromArchivedTemplateIs404(t *testing.T) {
	fake := &repotest.Fake{
		CreateReportFromTemplateFn: func(ctx context.Context, tenant models.Tenant, in models.ReportInput) (models.MaintenanceReport, error) {
			return models.MaintenanceReport{}, models.ErrNotFound
		},
	}
	mux := newTestRouter(fake, testTenant())
	body := `{"templateId":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/maintenance-reports", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListParsesFilters(t *testing.T) {
	tenant := testTenant()
	assetID := uuid.New()
	var got models.ReportFilter
	fake := &repotest.Fake{
		ListReportsFn: func(ctx context.Context, companyID uuid.UUID, f models.ReportFilter) ([]models.MaintenanceReport, error) {
			if companyID != tenant.CompanyID {
				t.Errorf("companyID = %s, want %s", companyID, tenant.CompanyID)
			}
			got = f
			return nil, nil
		},
	}
	mux := newTestRouter(fake, tenant)

	url := "/maintenance-reports?state=draft&skip=5&take=10&assetId=" + assetID.String()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if got.State == nil || *got.State != models.ReportDraft {
		t.Error("state filter not parsed")
	}
	if got.AssetID == nil || *got.AssetID != assetID {
		t.Error("assetId filter not parsed")
	}
	if got.Skip != 5 || got.Take != 10 {
		t.Errorf("paging = skip %d take %d", got.Skip, got.Take)
	}
}

func TestListRejectsBadState(t *testing.T) {
	mux := newTestRouter(&repotest.Fake{}, testTenant())
	req := httptest.NewRequest(http.MethodGet, "/maintenance-reports?state=PENDING", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateHeaderOnFinalIs409(t *testing.T) {
	fake := &repotest.Fake{
		UpdateReportHeaderFn: func(ctx context.Context, companyID, id uuid.UUID, patch models.ReportHeaderPatch) (models.MaintenanceReport, error) {
			return models.MaintenanceReport{}, models.ErrReportFinal
		},
	}
	mux := newTestRouter(fake, testTenant())
	req := httptest.NewRequest(http.MethodPatch, "/maintenance-reports/"+uuid.NewString(), strings.NewReader(`{"summary":"done"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestPatchItemsRejectsBadStatus(t *testing.T) {
	mux := newTestRouter(&repotest.Fake{}, testTenant())
	body := `{"items":[{"id":"` + uuid.NewString() + `","status":"MAYBE"}]}`
	req := httptest.NewRequest(http.MethodPatch, "/maintenance-reports/"+uuid.NewString()+"/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestPatchItems(t *testing.T) {
	tenant := testTenant()
	repID := uuid.New()
	itemID := uuid.New()
	fake := &repotest.Fake{
		PatchReportItemsFn: func(ctx context.Context, companyID, reportID uuid.UUID, patches []models.ReportItemPatch) (models.MaintenanceReport, error) {
			if reportID != repID {
				t.Errorf("reportID = %s, want %s", reportID, repID)
			}
			if len(patches) != 1 || patches[0].ID != itemID || *patches[0].Status != models.ItemOK {
				t.Errorf("patches = %+v", patches)
			}
			return models.MaintenanceReport{ID: reportID, State: models.ReportDraft}, nil
		},
	}
	mux := newTestRouter(fake, tenant)

	body := `{"items":[{"id":"` + itemID.String() + `","status":"OK","resultNotes":"fine"}]}`
	req := httptest.NewRequest(http.MethodPatch, "/maintenance-reports/"+repID.String()+"/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
}

func TestFinalizeWithPendingItemsIs400(t *testing.T) {
	fake := &repotest.Fake{
		FinalizeReportFn: func(ctx context.Context, companyID, reportID uuid.UUID) (models.MaintenanceReport, error) {
			return models.MaintenanceReport{}, models.ErrBadRequest
		},
	}
	mux := newTestRouter(fake, testTenant())
	req := httptest.NewRequest(http.MethodPost, "/maintenance-reports/"+uuid.NewString()+"/finalize", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
