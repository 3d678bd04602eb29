package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/repo/repotest"
)

func TestEnrichLoggerCarriesTenantToRequestLog(t *testing.T) {
	companyID := uuid.New()
	userID := uuid.New()
	fake := &repotest.Fake{
		GetMembershipFn: func(ctx context.Context, c, u uuid.UUID) (models.Role, error) {
			return models.RoleTech, nil
		},
	}

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got, ok := GetLogCompanyID(r.Context()); !ok || got != companyID.String() {
			t.Errorf("GetLogCompanyID = %q, %v; want %s", got, ok, companyID)
		}
		if got, ok := GetLogUserID(r.Context()); !ok || got != userID.String() {
			t.Errorf("GetLogUserID = %q, %v; want %s", got, ok, userID)
		}
		w.WriteHeader(http.StatusOK)
	})
	// Same order as the server wires it: request logger at the top of the
	// chain, tenant resolver then enrichment inside the routed group.
	h := SlogRequestLogger(TenantResolver(fake)(EnrichLogger(inner)))

	req := httptest.NewRequest(http.MethodGet, "/work-orders", nil)
	req.Header.Set(HeaderCompanyID, companyID.String())
	req.Header.Set(HeaderUserID, userID.String())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	line := buf.String()
	if !strings.Contains(line, "company_id="+companyID.String()) {
		t.Errorf("request log %q missing company_id", line)
	}
	if !strings.Contains(line, "user_id="+userID.String()) {
		t.Errorf("request log %q missing user_id", line)
	}
}

func TestLogFieldsUnsetWithoutTenant(t *testing.T) {
	ctx := WithLogFields(context.Background())
	if _, ok := GetLogCompanyID(ctx); ok {
		t.Error("company id set on empty carrier")
	}
	if _, ok := GetLogUserID(ctx); ok {
		t.Error("user id set on empty carrier")
	}
}
