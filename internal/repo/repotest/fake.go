// Package repotest provides a function-field fake of repo.Repo for handler
// and middleware tests. Unset methods fail the calling test path by panicking.
package repotest

import (
	"context"

	"github.com/google/uuid"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
)

type Fake struct {
	CreateCompanyWithOwnerFn func(ctx context.Context, companyName, ownerEmail, ownerName, passwordHash string) (uuid.UUID, uuid.UUID, error)
	ListCompaniesFn          func(ctx context.Context) ([]models.Company, error)
	GetCompanyFn             func(ctx context.Context, id uuid.UUID) (models.Company, error)
	GetUserByEmailFn         func(ctx context.Context, email string) (models.User, string, error)
	ListMembershipsFn        func(ctx context.Context, userID uuid.UUID) ([]models.Membership, error)
	GetMembershipFn          func(ctx context.Context, companyID, userID uuid.UUID) (models.Role, error)
	EnsureDevUserFn          func(ctx context.Context, companyName, email, userName, passwordHash string, role models.Role) (uuid.UUID, uuid.UUID, error)

	CreateCustomerFn func(ctx context.Context, companyID uuid.UUID, name string) (models.Customer, error)
	ListCustomersFn  func(ctx context.Context, companyID uuid.UUID) ([]models.Customer, error)
	CreateSiteFn     func(ctx context.Context, companyID uuid.UUID, in models.SiteInput) (models.Site, error)
	ListSitesFn      func(ctx context.Context, companyID uuid.UUID, customerID *uuid.UUID) ([]models.Site, error)
	CreateAssetFn    func(ctx context.Context, companyID uuid.UUID, in models.AssetInput) (models.Asset, error)
	ListAssetsFn     func(ctx context.Context, companyID uuid.UUID, siteID *uuid.UUID) ([]models.Asset, error)
	CreateContactFn  func(ctx context.Context, companyID uuid.UUID, in models.ContactInput) (models.Contact, error)
	ListContactsFn   func(ctx context.Context, companyID uuid.UUID, siteID *uuid.UUID) ([]models.Contact, error)

	CreateTemplateFn  func(ctx context.Context, companyID uuid.UUID, in models.TemplateInput) (models.MaintenanceTemplate, error)
	ListTemplatesFn   func(ctx context.Context, companyID uuid.UUID, includeArchived bool) ([]models.MaintenanceTemplate, error)
	GetTemplateFn     func(ctx context.Context, companyID, id uuid.UUID) (models.MaintenanceTemplate, error)
	UpdateTemplateFn  func(ctx context.Context, companyID, id uuid.UUID, patch models.TemplatePatch) (models.MaintenanceTemplate, error)
	ArchiveTemplateFn func(ctx context.Context, companyID, id uuid.UUID) (models.MaintenanceTemplate, error)

	CreateReportFromTemplateFn func(ctx context.Context, t models.Tenant, in models.ReportInput) (models.MaintenanceReport, error)
	ListReportsFn              func(ctx context.Context, companyID uuid.UUID, f models.ReportFilter) ([]models.MaintenanceReport, error)
	GetReportFn                func(ctx context.Context, companyID, id uuid.UUID) (models.MaintenanceReport, error)
	UpdateReportHeaderFn       func(ctx context.Context, companyID, id uuid.UUID, patch models.ReportHeaderPatch) (models.MaintenanceReport, error)
	PatchReportItemsFn         func(ctx context.Context, companyID, reportID uuid.UUID, patches []models.ReportItemPatch) (models.MaintenanceReport, error)
	FinalizeReportFn           func(ctx context.Context, companyID, reportID uuid.UUID) (models.MaintenanceReport, error)

	CreateWorkOrderFn    func(ctx context.Context, t models.Tenant, in models.WorkOrderInput) (models.WorkOrder, error)
	ListWorkOrdersFn     func(ctx context.Context, companyID uuid.UUID, f models.WorkOrderFilter) (models.WorkOrderPage, error)
	GetWorkOrderFn       func(ctx context.Context, companyID, id uuid.UUID) (models.WorkOrder, error)
	UpdateWorkOrderFn    func(ctx context.Context, companyID, id uuid.UUID, patch models.WorkOrderPatch) (models.WorkOrder, error)
	SetWorkOrderStatusFn func(ctx context.Context, companyID, id uuid.UUID, status models.WorkOrderStatus) (models.WorkOrder, error)
}

func (f *Fake) CreateCompanyWithOwner(ctx context.Context, companyName, ownerEmail, ownerName, passwordHash string) (uuid.UUID, uuid.UUID, error) {
	return f.CreateCompanyWithOwnerFn(ctx, companyName, ownerEmail, ownerName, passwordHash)
}

func (f *Fake) ListCompanies(ctx context.Context) ([]models.Company, error) {
	return f.ListCompaniesFn(ctx)
}

func (f *Fake) GetCompany(ctx context.Context, id uuid.UUID) (models.Company, error) {
	return f.GetCompanyFn(ctx, id)
}

func (f *Fake) GetUserByEmail(ctx context.Context, email string) (models.User, string, error) {
	return f.GetUserByEmailFn(ctx, email)
}

func (f *Fake) ListMemberships(ctx context.Context, userID uuid.UUID) ([]models.Membership, error) {
	return f.ListMembershipsFn(ctx, userID)
}

func (f *Fake) GetMembership(ctx context.Context, companyID, userID uuid.UUID) (models.Role, error) {
	return f.GetMembershipFn(ctx, companyID, userID)
}

func (f *Fake) EnsureDevUser(ctx context.Context, companyName, email, userName, passwordHash string, role models.Role) (uuid.UUID, uuid.UUID, error) {
	return f.EnsureDevUserFn(ctx, companyName, email, userName, passwordHash, role)
}

func (f *Fake) CreateCustomer(ctx context.Context, companyID uuid.UUID, name string) (models.Customer, error) {
	return f.CreateCustomerFn(ctx, companyID, name)
}

func (f *Fake) ListCustomers(ctx context.Context, companyID uuid.UUID) ([]models.Customer, error) {
	return f.ListCustomersFn(ctx, companyID)
}

func (f *Fake) CreateSite(ctx context.Context, companyID uuid.UUID, in models.SiteInput) (models.Site, error) {
	return f.CreateSiteFn(ctx, companyID, in)
}

func (f *Fake) ListSites(ctx context.Context, companyID uuid.UUID, customerID *uuid.UUID) ([]models.Site, error) {
	return f.ListSitesFn(ctx, companyID, customerID)
}

func (f *Fake) CreateAsset(ctx context.Context, companyID uuid.UUID, in models.AssetInput) (models.Asset, error) {
	return f.CreateAssetFn(ctx, companyID, in)
}

func (f *Fake) ListAssets(ctx context.Context, companyID uuid.UUID, siteID *uuid.UUID) ([]models.Asset, error) {
	return f.ListAssetsFn(ctx, companyID, siteID)
}

func (f *Fake) CreateContact(ctx context.Context, companyID uuid.UUID, in models.ContactInput) (models.Contact, error) {
	return f.CreateContactFn(ctx, companyID, in)
}

func (f *Fake) ListContacts(ctx context.Context, companyID uuid.UUID, siteID *uuid.UUID) ([]models.Contact, error) {
	return f.ListContactsFn(ctx, companyID, siteID)
}

func (f *Fake) CreateTemplate(ctx context.Context, companyID uuid.UUID, in models.TemplateInput) (models.MaintenanceTemplate, error) {
	return f.CreateTemplateFn(ctx, companyID, in)
}

func (f *Fake) ListTemplates(ctx context.Context, companyID uuid.UUID, includeArchived bool) ([]models.MaintenanceTemplate, error) {
	return f.ListTemplatesFn(ctx, companyID, includeArchived)
}

func (f *Fake) GetTemplate(ctx context.Context, companyID, id uuid.UUID) (models.MaintenanceTemplate, error) {
	return f.GetTemplateFn(ctx, companyID, id)
}

func (f *Fake) UpdateTemplate(ctx context.Context, companyID, id uuid.UUID, patch models.TemplatePatch) (models.MaintenanceTemplate, error) {
	return f.UpdateTemplateFn(ctx, companyID, id, patch)
}

func (f *Fake) ArchiveTemplate(ctx context.Context, companyID, id uuid.UUID) (models.MaintenanceTemplate, error) {
	return f.ArchiveTemplateFn(ctx, companyID, id)
}

func (f *Fake) CreateReportFromTemplate(ctx context.Context, t models.Tenant, in models.ReportInput) (models.MaintenanceReport, error) {
	return f.CreateReportFromTemplateFn(ctx, t, in)
}

func (f *Fake) ListReports(ctx context.Context, companyID uuid.UUID, filter models.ReportFilter) ([]models.MaintenanceReport, error) {
	return f.ListReportsFn(ctx, companyID, filter)
}

func (f *Fake) GetReport(ctx context.Context, companyID, id uuid.UUID) (models.MaintenanceReport, error) {
	return f.GetReportFn(ctx, companyID, id)
}

func (f *Fake) UpdateReportHeader(ctx context.Context, companyID, id uuid.UUID, patch models.ReportHeaderPatch) (models.MaintenanceReport, error) {
	return f.UpdateReportHeaderFn(ctx, companyID, id, patch)
}

func (f *Fake) PatchReportItems(ctx context.Context, companyID, reportID uuid.UUID, patches []models.ReportItemPatch) (models.MaintenanceReport, error) {
	return f.PatchReportItemsFn(ctx, companyID, reportID, patches)
}

func (f *Fake) FinalizeReport(ctx context.Context, companyID, reportID uuid.UUID) (models.MaintenanceReport, error) {
	return f.FinalizeReportFn(ctx, companyID, reportID)
}

func (f *Fake) CreateWorkOrder(ctx context.Context, t models.Tenant, in models.WorkOrderInput) (models.WorkOrder, error) {
	return f.CreateWorkOrderFn(ctx, t, in)
}

func (f *Fake) ListWorkOrders(ctx context.Context, companyID uuid.UUID, filter models.WorkOrderFilter) (models.WorkOrderPage, error) {
	return f.ListWorkOrdersFn(ctx, companyID, filter)
}

func (f *Fake) GetWorkOrder(ctx context.Context, companyID, id uuid.UUID) (models.WorkOrder, error) {
	return f.GetWorkOrderFn(ctx, companyID, id)
}

func (f *Fake) UpdateWorkOrder(ctx context.Context, companyID, id uuid.UUID, patch models.WorkOrderPatch) (models.WorkOrder, error) {
	return f.UpdateWorkOrderFn(ctx, companyID, id, patch)
}

func (f *Fake) SetWorkOrderStatus(ctx context.Context, companyID, id uuid.UUID, status models.WorkOrderStatus) (models.WorkOrder, error) {
	return f.SetWorkOrderStatusFn(ctx, companyID, id, status)
}
