// internal/repo/repo.go
package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
)

// Repo defines the methods the rest of the app uses.
type Repo interface {
	// Companies & memberships
	CreateCompanyWithOwner(ctx context.Context, companyName, ownerEmail, ownerName, passwordHash string) (companyID, ownerUserID uuid.UUID, err error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (models.Company, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, string, error)
	ListMemberships(ctx context.Context, userID uuid.UUID) ([]models.Membership, error)
	GetMembership(ctx context.Context, companyID, userID uuid.UUID) (models.Role, error)
	EnsureDevUser(ctx context.Context, companyName, email, userName, passwordHash string, role models.Role) (companyID, userID uuid.UUID, err error)

	// Customers, sites, assets, contacts
	CreateCustomer(ctx context.Context, companyID uuid.UUID, name string) (models.Customer, error)
	ListCustomers(ctx context.Context, companyID uuid.UUID) ([]models.Customer, error)
	CreateSite(ctx context.Context, companyID uuid.UUID, in models.SiteInput) (models.Site, error)
	ListSites(ctx context.Context, companyID uuid.UUID, customerID *uuid.UUID) ([]models.Site, error)
	CreateAsset(ctx context.Context, companyID uuid.UUID, in models.AssetInput) (models.Asset, error)
	ListAssets(ctx context.Context, companyID uuid.UUID, siteID *uuid.UUID) ([]models.Asset, error)
	CreateContact(ctx context.Context, companyID uuid.UUID, in models.ContactInput) (models.Contact, error)
	ListContacts(ctx context.Context, companyID uuid.UUID, siteID *uuid.UUID) ([]models.Contact, error)

	// Maintenance templates
	CreateTemplate(ctx context.Context, companyID uuid.UUID, in models.TemplateInput) (models.MaintenanceTemplate, error)
	ListTemplates(ctx context.Context, companyID uuid.UUID, includeArchived bool) ([]models.MaintenanceTemplate, error)
	GetTemplate(ctx context.Context, companyID, id uuid.UUID) (models.MaintenanceTemplate, error)
	UpdateTemplate(ctx context.Context, companyID, id uuid.UUID, patch models.TemplatePatch) (models.MaintenanceTemplate, error)
	ArchiveTemplate(ctx context.Context, companyID, id uuid.UUID) (models.MaintenanceTemplate, error)

	// Maintenance reports
	CreateReportFromTemplate(ctx context.Context, t models.Tenant, in models.ReportInput) (models.MaintenanceReport, error)
	ListReports(ctx context.Context, companyID uuid.UUID, f models.ReportFilter) ([]models.MaintenanceReport, error)
	GetReport(ctx context.Context, companyID, id uuid.UUID) (models.MaintenanceReport, error)
	UpdateReportHeader(ctx context.Context, companyID, id uuid.UUID, patch models.ReportHeaderPatch) (models.MaintenanceReport, error)
	PatchReportItems(ctx context.Context, companyID, reportID uuid.UUID, patches []models.ReportItemPatch) (models.MaintenanceReport, error)
	FinalizeReport(ctx context.Context, companyID, reportID uuid.UUID) (models.MaintenanceReport, error)

	// Work orders
	CreateWorkOrder(ctx context.Context, t models.Tenant, in models.WorkOrderInput) (models.WorkOrder, error)
	ListWorkOrders(ctx context.Context, companyID uuid.UUID, f models.WorkOrderFilter) (models.WorkOrderPage, error)
	GetWorkOrder(ctx context.Context, companyID, id uuid.UUID) (models.WorkOrder, error)
	UpdateWorkOrder(ctx context.Context, companyID, id uuid.UUID, patch models.WorkOrderPatch) (models.WorkOrder, error)
	SetWorkOrderStatus(ctx context.Context, companyID, id uuid.UUID, status models.WorkOrderStatus) (models.WorkOrder, error)
}

// pgRepo runs the queries against a pgx pool.
type pgRepo struct{ pool *pgxpool.Pool }

func New(pool *pgxpool.Pool) Repo { return &pgRepo{pool: pool} }
