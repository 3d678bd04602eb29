package repo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/db"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
)

var testRepo Repo

// mustStartPostgresContainer starts a postgres container and returns a
// teardown function and a connection string.
func mustStartPostgresContainer() (func(context.Context, ...testcontainers.TerminateOption) error, string, error) {
	var (
		dbName = "test_db"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, "", fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := dbContainer.MappedPort(context.Background(), "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, "", fmt.Errorf("failed to get container mapped port: %w", err)
	}

	connStr := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPwd, host, port.Port(), dbName)
	return dbContainer.Terminate, connStr, nil
}

func TestMain(m *testing.M) {
	teardown, connStr, err := mustStartPostgresContainer()
	if err != nil {
		log.Fatalf("could not start postgres container for tests: %v", err)
	}

	if err := db.Migrate(connStr); err != nil {
		log.Fatalf("could not run migrations: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("could not connect to test database: %v", err)
	}
	testRepo = New(pool)

	code := m.Run()

	pool.Close()
	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Fatalf("could not teardown postgres container: %v", err)
		}
	}
	os.Exit(code)
}

// newTenant onboards a fresh company and returns the owner's tenant scope.
func newTenant(t *testing.T) models.Tenant {
	t.Helper()
	ctx := context.Background()
	email := fmt.Sprintf("owner-%s@example.com", uuid.NewString())
	companyID, userID, err := testRepo.CreateCompanyWithOwner(ctx, "Acme Maintenance", email, "Owner", "$argon2id$test")
	if err != nil {
		t.Fatalf("CreateCompanyWithOwner: %v", err)
	}
	role, err := testRepo.GetMembership(ctx, companyID, userID)
	if err != nil {
		t.Fatalf("GetMembership: %v", err)
	}
	return models.Tenant{CompanyID: companyID, UserID: userID, Role: role}
}

func newCustomer(t *testing.T, companyID uuid.UUID) models.Customer {
	t.Helper()
	c, err := testRepo.CreateCustomer(context.Background(), companyID, "Globex")
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	return c
}

func newTemplate(t *testing.T, companyID uuid.UUID, items ...models.TemplateItemInput) models.MaintenanceTemplate {
	t.Helper()
	if len(items) == 0 {
		items = []models.TemplateItemInput{
			{Label: "Check oil level", Type: models.ItemTypeCheck, Required: true},
			{Label: "Motor temperature", Type: models.ItemTypeNumber, Unit: "C"},
		}
	}
	tpl, err := testRepo.CreateTemplate(context.Background(), companyID, models.TemplateInput{
		Name:  "Quarterly service",
		Items: items,
	})
	if err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}
	return tpl
}

func TestCompanyOnboarding(t *testing.T) {
	ctx := context.Background()
	email := fmt.Sprintf("dup-%s@example.com", uuid.NewString())

	companyID, userID, err := testRepo.CreateCompanyWithOwner(ctx, "First Co", email, "Ada", "hash")
	if err != nil {
		t.Fatalf("CreateCompanyWithOwner: %v", err)
	}

	role, err := testRepo.GetMembership(ctx, companyID, userID)
	if err != nil {
		t.Fatalf("GetMembership: %v", err)
	}
	if role != models.RoleAdmin {
		t.Errorf("owner role = %s, want ADMIN", role)
	}

	user, hash, err := testRepo.GetUserByEmail(ctx, email)
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if user.ID != userID || hash != "hash" {
		t.Errorf("GetUserByEmail = %+v hash %q", user, hash)
	}

	memberships, err := testRepo.ListMemberships(ctx, userID)
	if err != nil {
		t.Fatalf("ListMemberships: %v", err)
	}
	if len(memberships) != 1 || memberships[0].CompanyID != companyID || memberships[0].CompanyName == "" {
		t.Errorf("memberships = %+v", memberships)
	}

	// Same email again must fail the whole transaction.
	if _, _, err := testRepo.CreateCompanyWithOwner(ctx, "Second Co", email, "Eve", "hash"); !errors.Is(err, models.ErrEmailTaken) {
		t.Errorf("duplicate email err = %v, want ErrEmailTaken", err)
	}
}

func TestGetMembershipNotAMember(t *testing.T) {
	a := newTenant(t)
	b := newTenant(t)
	if _, err := testRepo.GetMembership(context.Background(), a.CompanyID, b.UserID); !errors.Is(err, models.ErrNotMember) {
		t.Errorf("err = %v, want ErrNotMember", err)
	}
}

func TestEnsureDevUserIdempotent(t *testing.T) {
	ctx := context.Background()
	email := fmt.Sprintf("dev-%s@example.com", uuid.NewString())

	c1, u1, err := testRepo.EnsureDevUser(ctx, "Dev Co", email, "Dev", "hash", models.RoleAdmin)
	if err != nil {
		t.Fatalf("EnsureDevUser: %v", err)
	}
	c2, u2, err := testRepo.EnsureDevUser(ctx, "Dev Co", email, "Dev", "hash", models.RoleAdmin)
	if err != nil {
		t.Fatalf("EnsureDevUser (repeat): %v", err)
	}
	if c1 != c2 || u1 != u2 {
		t.Errorf("repeat seed returned (%s,%s), want (%s,%s)", c2, u2, c1, u1)
	}
}

func TestTemplateRequiresItems(t *testing.T) {
	tenant := newTenant(t)
	_, err := testRepo.CreateTemplate(context.Background(), tenant.CompanyID, models.TemplateInput{Name: "Empty"})
	if !errors.Is(err, models.ErrBadRequest) {
		t.Errorf("err = %v, want ErrBadRequest", err)
	}
}

func TestTemplateCRUD(t *testing.T) {
	ctx := context.Background()
	tenant := newTenant(t)
	tpl := newTemplate(t, tenant.CompanyID)

	if len(tpl.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(tpl.Items))
	}
	if tpl.Items[0].SortOrder != 1 || tpl.Items[1].SortOrder != 2 {
		t.Errorf("sort orders = %d,%d, want 1,2", tpl.Items[0].SortOrder, tpl.Items[1].SortOrder)
	}
	if !tpl.IsActive {
		t.Error("isActive should default true")
	}

	// Scalar patch leaves items alone.
	name := "Quarterly service v2"
	got, err := testRepo.UpdateTemplate(ctx, tenant.CompanyID, tpl.ID, models.TemplatePatch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateTemplate: %v", err)
	}
	if got.Name != name || len(got.Items) != 2 {
		t.Errorf("after scalar patch: name %q items %d", got.Name, len(got.Items))
	}

	// Items present replaces the entire set.
	items := []models.TemplateItemInput{{Label: "Grease bearings", Type: models.ItemTypeCheck}}
	got, err = testRepo.UpdateTemplate(ctx, tenant.CompanyID, tpl.ID, models.TemplatePatch{Items: &items})
	if err != nil {
		t.Fatalf("UpdateTemplate (items): %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Label != "Grease bearings" {
		t.Errorf("after replace: items = %+v", got.Items)
	}

	// Archive drops it out of default listings but not includeArchived.
	if _, err := testRepo.ArchiveTemplate(ctx, tenant.CompanyID, tpl.ID); err != nil {
		t.Fatalf("ArchiveTemplate: %v", err)
	}
	active, err := testRepo.ListTemplates(ctx, tenant.CompanyID, false)
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	for _, x := range active {
		if x.ID == tpl.ID {
			t.Error("archived template still listed by default")
		}
	}
	all, err := testRepo.ListTemplates(ctx, tenant.CompanyID, true)
	if err != nil {
		t.Fatalf("ListTemplates (archived): %v", err)
	}
	found := false
	for _, x := range all {
		if x.ID == tpl.ID {
			found = true
			if x.ArchivedAt == nil || x.IsActive {
				t.Errorf("archived template = %+v", x)
			}
		}
	}
	if !found {
		t.Error("archived template missing from includeArchived listing")
	}

	// Archiving twice is not an error.
	if _, err := testRepo.ArchiveTemplate(ctx, tenant.CompanyID, tpl.ID); err != nil {
		t.Errorf("repeat archive: %v", err)
	}
}

func TestTemplateItemSortOrder(t *testing.T) {
	tenant := newTenant(t)
	zero, nine := 0, 9
	tpl := newTemplate(t, tenant.CompanyID,
		models.TemplateItemInput{Label: "First", SortOrder: &zero},
		models.TemplateItemInput{Label: "Second"},
		models.TemplateItemInput{Label: "Third", SortOrder: &nine},
	)

	got := map[string]int{}
	for _, it := range tpl.Items {
		got[it.Label] = it.SortOrder
	}
	// An explicit zero survives; only an absent sortOrder falls back to the
	// 1-based position.
	if got["First"] != 0 || got["Second"] != 2 || got["Third"] != 9 {
		t.Errorf("sort orders = %v, want First 0, Second 2, Third 9", got)
	}
}

func TestTemplateCrossTenantIsNotFound(t *testing.T) {
	ctx := context.Background()
	a := newTenant(t)
	b := newTenant(t)
	tpl := newTemplate(t, a.CompanyID)

	if _, err := testRepo.GetTemplate(ctx, b.CompanyID, tpl.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("cross-tenant get err = %v, want ErrNotFound", err)
	}
	name := "stolen"
	if _, err := testRepo.UpdateTemplate(ctx, b.CompanyID, tpl.ID, models.TemplatePatch{Name: &name}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("cross-tenant update err = %v, want ErrNotFound", err)
	}
}

func TestReportLifecycle(t *testing.T) {
	ctx := context.Background()
	tenant := newTenant(t)
	tpl := newTemplate(t, tenant.CompanyID)

	rep, err := testRepo.CreateReportFromTemplate(ctx, tenant, models.ReportInput{TemplateID: tpl.ID})
	if err != nil {
		t.Fatalf("CreateReportFromTemplate: %v", err)
	}
	if rep.State != models.ReportDraft {
		t.Errorf("state = %s, want DRAFT", rep.State)
	}
	if rep.TemplateName != tpl.Name {
		t.Errorf("templateName = %q, want %q", rep.TemplateName, tpl.Name)
	}
	if len(rep.Items) != len(tpl.Items) {
		t.Fatalf("items = %d, want %d", len(rep.Items), len(tpl.Items))
	}
	for i, it := range rep.Items {
		if it.Status != models.ItemPending {
			t.Errorf("item %d status = %s, want PENDING", i, it.Status)
		}
		if it.Title != tpl.Items[i].Label {
			t.Errorf("item %d title = %q, want %q", i, it.Title, tpl.Items[i].Label)
		}
	}

	// A later template rename must not leak into the snapshot.
	newName := "Renamed after the fact"
	if _, err := testRepo.UpdateTemplate(ctx, tenant.CompanyID, tpl.ID, models.TemplatePatch{Name: &newName}); err != nil {
		t.Fatalf("UpdateTemplate: %v", err)
	}
	rep, err = testRepo.GetReport(ctx, tenant.CompanyID, rep.ID)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if rep.TemplateName != tpl.Name {
		t.Errorf("snapshot name changed to %q", rep.TemplateName)
	}

	// Finalize refuses while anything is PENDING.
	if _, err := testRepo.FinalizeReport(ctx, tenant.CompanyID, rep.ID); !errors.Is(err, models.ErrBadRequest) {
		t.Errorf("finalize with pending err = %v, want ErrBadRequest", err)
	}

	// Unknown item ids fail the whole batch and are named.
	bogus := uuid.New()
	ok := models.ItemOK
	_, err = testRepo.PatchReportItems(ctx, tenant.CompanyID, rep.ID, []models.ReportItemPatch{
		{ID: rep.Items[0].ID, Status: &ok},
		{ID: bogus, Status: &ok},
	})
	if !errors.Is(err, models.ErrBadRequest) {
		t.Fatalf("patch with unknown id err = %v, want ErrBadRequest", err)
	}
	if !strings.Contains(err.Error(), bogus.String()) {
		t.Errorf("error should name the unknown id: %v", err)
	}
	rep, _ = testRepo.GetReport(ctx, tenant.CompanyID, rep.ID)
	if rep.Items[0].Status != models.ItemPending {
		t.Error("failed batch must not leave partial updates")
	}

	// Empty batch is rejected.
	if _, err := testRepo.PatchReportItems(ctx, tenant.CompanyID, rep.ID, nil); !errors.Is(err, models.ErrBadRequest) {
		t.Errorf("empty batch err = %v, want ErrBadRequest", err)
	}

	// Resolve every item, then finalize.
	notes := "all good"
	patches := make([]models.ReportItemPatch, 0, len(rep.Items))
	for _, it := range rep.Items {
		patches = append(patches, models.ReportItemPatch{ID: it.ID, Status: &ok, ResultNotes: &notes})
	}
	rep, err = testRepo.PatchReportItems(ctx, tenant.CompanyID, rep.ID, patches)
	if err != nil {
		t.Fatalf("PatchReportItems: %v", err)
	}

	summary := "quarterly done"
	rep, err = testRepo.UpdateReportHeader(ctx, tenant.CompanyID, rep.ID, models.ReportHeaderPatch{Summary: &summary})
	if err != nil {
		t.Fatalf("UpdateReportHeader: %v", err)
	}
	if rep.Summary != summary {
		t.Errorf("summary = %q", rep.Summary)
	}

	rep, err = testRepo.FinalizeReport(ctx, tenant.CompanyID, rep.ID)
	if err != nil {
		t.Fatalf("FinalizeReport: %v", err)
	}
	if rep.State != models.ReportFinal || rep.FinalizedAt == nil {
		t.Errorf("after finalize: state %s finalizedAt %v", rep.State, rep.FinalizedAt)
	}
	firstFinalizedAt := *rep.FinalizedAt

	// Re-finalize is a no-op.
	rep, err = testRepo.FinalizeReport(ctx, tenant.CompanyID, rep.ID)
	if err != nil {
		t.Fatalf("repeat FinalizeReport: %v", err)
	}
	if !rep.FinalizedAt.Equal(firstFinalizedAt) {
		t.Error("repeat finalize moved finalizedAt")
	}

	// FINAL reports are immutable.
	if _, err := testRepo.UpdateReportHeader(ctx, tenant.CompanyID, rep.ID, models.ReportHeaderPatch{Summary: &summary}); !errors.Is(err, models.ErrReportFinal) {
		t.Errorf("header patch on FINAL err = %v, want ErrReportFinal", err)
	}
	if _, err := testRepo.PatchReportItems(ctx, tenant.CompanyID, rep.ID, patches); !errors.Is(err, models.ErrReportFinal) {
		t.Errorf("item patch on FINAL err = %v, want ErrReportFinal", err)
	}
}

func TestFinalizeSerializesItemPatches(t *testing.T) {
	ctx := context.Background()
	tenant := newTenant(t)
	ok := models.ItemOK
	pending := models.ItemPending

	for round := 0; round < 5; round++ {
		tpl := newTemplate(t, tenant.CompanyID)
		rep, err := testRepo.CreateReportFromTemplate(ctx, tenant, models.ReportInput{TemplateID: tpl.ID})
		if err != nil {
			t.Fatalf("CreateReportFromTemplate: %v", err)
		}
		patches := make([]models.ReportItemPatch, 0, len(rep.Items))
		for _, it := range rep.Items {
			patches = append(patches, models.ReportItemPatch{ID: it.ID, Status: &ok})
		}
		if _, err := testRepo.PatchReportItems(ctx, tenant.CompanyID, rep.ID, patches); err != nil {
			t.Fatalf("PatchReportItems: %v", err)
		}

		// Whichever side commits first, the loser must see its effect:
		// finalize rejects the fresh PENDING item, or the patch hits a
		// FINAL report. Either way a FINAL report never holds PENDING.
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			testRepo.FinalizeReport(ctx, tenant.CompanyID, rep.ID)
		}()
		go func() {
			defer wg.Done()
			testRepo.PatchReportItems(ctx, tenant.CompanyID, rep.ID,
				[]models.ReportItemPatch{{ID: rep.Items[0].ID, Status: &pending}})
		}()
		wg.Wait()

		got, err := testRepo.GetReport(ctx, tenant.CompanyID, rep.ID)
		if err != nil {
			t.Fatalf("GetReport: %v", err)
		}
		if got.State == models.ReportFinal {
			for _, it := range got.Items {
				if it.Status == models.ItemPending {
					t.Fatalf("round %d: FINAL report holds a PENDING item", round)
				}
			}
		}
	}
}

func TestReportFromArchivedTemplate(t *testing.T) {
	ctx := context.Background()
	tenant := newTenant(t)
	tpl := newTemplate(t, tenant.CompanyID)
	if _, err := testRepo.ArchiveTemplate(ctx, tenant.CompanyID, tpl.ID); err != nil {
		t.Fatalf("ArchiveTemplate: %v", err)
	}
	if _, err := testRepo.CreateReportFromTemplate(ctx, tenant, models.ReportInput{TemplateID: tpl.ID}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestReportListFilters(t *testing.T) {
	ctx := context.Background()
	tenant := newTenant(t)
	tpl := newTemplate(t, tenant.CompanyID)

	for i := 0; i < 3; i++ {
		if _, err := testRepo.CreateReportFromTemplate(ctx, tenant, models.ReportInput{TemplateID: tpl.ID}); err != nil {
			t.Fatalf("CreateReportFromTemplate: %v", err)
		}
	}

	draft := models.ReportDraft
	list, err := testRepo.ListReports(ctx, tenant.CompanyID, models.ReportFilter{State: &draft})
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(list) != 3 {
		t.Errorf("draft reports = %d, want 3", len(list))
	}

	list, err = testRepo.ListReports(ctx, tenant.CompanyID, models.ReportFilter{Skip: 1, Take: 1})
	if err != nil {
		t.Fatalf("ListReports (paged): %v", err)
	}
	if len(list) != 1 {
		t.Errorf("paged reports = %d, want 1", len(list))
	}
}

func TestWorkOrderNumbering(t *testing.T) {
	ctx := context.Background()
	a := newTenant(t)
	b := newTenant(t)
	ca := newCustomer(t, a.CompanyID)
	cb := newCustomer(t, b.CompanyID)

	w1, err := testRepo.CreateWorkOrder(ctx, a, models.WorkOrderInput{CustomerID: ca.ID, Title: "first"})
	if err != nil {
		t.Fatalf("CreateWorkOrder: %v", err)
	}
	w2, err := testRepo.CreateWorkOrder(ctx, a, models.WorkOrderInput{CustomerID: ca.ID, Title: "second"})
	if err != nil {
		t.Fatalf("CreateWorkOrder: %v", err)
	}
	if w1.Number != 1 || w2.Number != 2 {
		t.Errorf("numbers = %d,%d, want 1,2", w1.Number, w2.Number)
	}
	if w1.Status != models.WOOpen {
		t.Errorf("initial status = %s, want OPEN", w1.Status)
	}
	if w1.Priority != 3 {
		t.Errorf("default priority = %d, want 3", w1.Priority)
	}

	// The counter is per company.
	wb, err := testRepo.CreateWorkOrder(ctx, b, models.WorkOrderInput{CustomerID: cb.ID, Title: "other tenant"})
	if err != nil {
		t.Fatalf("CreateWorkOrder: %v", err)
	}
	if wb.Number != 1 {
		t.Errorf("other company first number = %d, want 1", wb.Number)
	}
}

func TestWorkOrderNumberingConcurrent(t *testing.T) {
	ctx := context.Background()
	tenant := newTenant(t)
	customer := newCustomer(t, tenant.CompanyID)

	const n = 10
	var wg sync.WaitGroup
	numbers := make(chan int, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			wo, err := testRepo.CreateWorkOrder(ctx, tenant, models.WorkOrderInput{
				CustomerID: customer.ID,
				Title:      fmt.Sprintf("concurrent %d", i),
			})
			if err != nil {
				errs <- err
				return
			}
			numbers <- wo.Number
		}(i)
	}
	wg.Wait()
	close(numbers)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent create: %v", err)
	}
	seen := make(map[int]bool, n)
	for num := range numbers {
		if seen[num] {
			t.Errorf("number %d allocated twice", num)
		}
		seen[num] = true
	}
	for i := 1; i <= n; i++ {
		if !seen[i] {
			t.Errorf("number %d missing (got %v)", i, seen)
		}
	}
}

func TestWorkOrderLinksValidated(t *testing.T) {
	ctx := context.Background()
	a := newTenant(t)
	b := newTenant(t)
	foreign := newCustomer(t, b.CompanyID)

	if _, err := testRepo.CreateWorkOrder(ctx, a, models.WorkOrderInput{CustomerID: foreign.ID, Title: "x"}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("foreign customer err = %v, want ErrNotFound", err)
	}

	mine := newCustomer(t, a.CompanyID)
	stranger := b.UserID
	if _, err := testRepo.CreateWorkOrder(ctx, a, models.WorkOrderInput{
		CustomerID:       mine.ID,
		Title:            "x",
		AssignedToUserID: &stranger,
	}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("non-member assignee err = %v, want ErrNotFound", err)
	}
}

func TestWorkOrderStatusTransitions(t *testing.T) {
	ctx := context.Background()
	tenant := newTenant(t)
	customer := newCustomer(t, tenant.CompanyID)

	wo, err := testRepo.CreateWorkOrder(ctx, tenant, models.WorkOrderInput{CustomerID: customer.ID, Title: "pump"})
	if err != nil {
		t.Fatalf("CreateWorkOrder: %v", err)
	}

	wo, err = testRepo.SetWorkOrderStatus(ctx, tenant.CompanyID, wo.ID, models.WOInProgress)
	if err != nil {
		t.Fatalf("OPEN -> IN_PROGRESS: %v", err)
	}
	// Same status twice is a no-op.
	if _, err := testRepo.SetWorkOrderStatus(ctx, tenant.CompanyID, wo.ID, models.WOInProgress); err != nil {
		t.Errorf("same-status no-op: %v", err)
	}
	wo, err = testRepo.SetWorkOrderStatus(ctx, tenant.CompanyID, wo.ID, models.WODone)
	if err != nil {
		t.Fatalf("IN_PROGRESS -> DONE: %v", err)
	}
	if _, err := testRepo.SetWorkOrderStatus(ctx, tenant.CompanyID, wo.ID, models.WOOpen); !errors.Is(err, models.ErrBadTransition) {
		t.Errorf("DONE -> OPEN err = %v, want ErrBadTransition", err)
	}
}

func TestWorkOrderListSearch(t *testing.T) {
	ctx := context.Background()
	tenant := newTenant(t)
	customer := newCustomer(t, tenant.CompanyID)

	titles := []string{"Replace PUMP seal", "Inspect conveyor", "Lubricate pump bearings"}
	for _, title := range titles {
		if _, err := testRepo.CreateWorkOrder(ctx, tenant, models.WorkOrderInput{CustomerID: customer.ID, Title: title}); err != nil {
			t.Fatalf("CreateWorkOrder: %v", err)
		}
	}

	page, err := testRepo.ListWorkOrders(ctx, tenant.CompanyID, models.WorkOrderFilter{Query: "pump"})
	if err != nil {
		t.Fatalf("ListWorkOrders: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Errorf("search total = %d items = %d, want 2", page.Total, len(page.Items))
	}

	page, err = testRepo.ListWorkOrders(ctx, tenant.CompanyID, models.WorkOrderFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("ListWorkOrders (paged): %v", err)
	}
	if page.Total != 3 || len(page.Items) != 1 || page.Page != 2 || page.PageSize != 2 {
		t.Errorf("page = %+v", page)
	}
}

func TestWorkOrderUpdatePatches(t *testing.T) {
	ctx := context.Background()
	tenant := newTenant(t)
	customer := newCustomer(t, tenant.CompanyID)

	wo, err := testRepo.CreateWorkOrder(ctx, tenant, models.WorkOrderInput{CustomerID: customer.ID, Title: "before", Description: "keep me"})
	if err != nil {
		t.Fatalf("CreateWorkOrder: %v", err)
	}

	title := "after"
	prio := 1
	got, err := testRepo.UpdateWorkOrder(ctx, tenant.CompanyID, wo.ID, models.WorkOrderPatch{Title: &title, Priority: &prio})
	if err != nil {
		t.Fatalf("UpdateWorkOrder: %v", err)
	}
	if got.Title != "after" || got.Priority != 1 || got.Description != "keep me" {
		t.Errorf("after patch = %+v", got)
	}
}

func TestSitesAndAssetsOwnership(t *testing.T) {
	ctx := context.Background()
	a := newTenant(t)
	b := newTenant(t)
	customer := newCustomer(t, a.CompanyID)

	site, err := testRepo.CreateSite(ctx, a.CompanyID, models.SiteInput{CustomerID: customer.ID, Name: "Plant 1"})
	if err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	// Another tenant cannot hang a site off my customer.
	if _, err := testRepo.CreateSite(ctx, b.CompanyID, models.SiteInput{CustomerID: customer.ID, Name: "Plant X"}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("cross-tenant site err = %v, want ErrNotFound", err)
	}

	asset, err := testRepo.CreateAsset(ctx, a.CompanyID, models.AssetInput{SiteID: site.ID, Name: "Pump A"})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	assets, err := testRepo.ListAssets(ctx, a.CompanyID, &site.ID)
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(assets) != 1 || assets[0].ID != asset.ID {
		t.Errorf("assets = %+v", assets)
	}
}

func TestContactMainDemotion(t *testing.T) {
	ctx := context.Background()
	tenant := newTenant(t)
	customer := newCustomer(t, tenant.CompanyID)
	site, err := testRepo.CreateSite(ctx, tenant.CompanyID, models.SiteInput{CustomerID: customer.ID, Name: "Plant 1"})
	if err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	first, err := testRepo.CreateContact(ctx, tenant.CompanyID, models.ContactInput{SiteID: site.ID, Name: "Alice", IsMain: true})
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	second, err := testRepo.CreateContact(ctx, tenant.CompanyID, models.ContactInput{SiteID: site.ID, Name: "Bob", IsMain: true})
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	contacts, err := testRepo.ListContacts(ctx, tenant.CompanyID, &site.ID)
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("contacts = %d, want 2", len(contacts))
	}
	// isMain sorts first.
	if contacts[0].ID != second.ID || !contacts[0].IsMain {
		t.Errorf("main contact = %+v, want %s", contacts[0], second.ID)
	}
	if contacts[1].ID != first.ID || contacts[1].IsMain {
		t.Errorf("demoted contact = %+v", contacts[1])
	}
}
