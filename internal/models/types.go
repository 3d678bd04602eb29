// internal/models/types.go
package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Tenant is the trusted request scope produced by the tenant resolver.
// Everything below Company is read and written through it; handlers never
// take a company id from a request body.
type Tenant struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID
	Role      Role
}

type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleTech   Role = "TECH"
	RoleViewer Role = "VIEWER"
)

var roleLevels = map[Role]int{
	RoleViewer: 1,
	RoleTech:   2,
	RoleAdmin:  3,
	RoleOwner:  4,
}

// ParseRole maps a stored membership role string onto the closed enum.
// Unknown values degrade to Viewer rather than failing the request.
func ParseRole(s string) Role {
	r := Role(s)
	if _, ok := roleLevels[r]; ok {
		return r
	}
	return RoleViewer
}

// Level returns the capability rank of a role (higher = more).
func (r Role) Level() int { return roleLevels[r] }

// AtLeast reports whether r grants at least the capabilities of other.
func (r Role) AtLeast(other Role) bool { return r.Level() >= other.Level() }

type Company struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

type Membership struct {
	CompanyID   uuid.UUID `json:"companyId"`
	UserID      uuid.UUID `json:"userId"`
	Role        Role      `json:"role"`
	CompanyName string    `json:"companyName,omitempty"`
}

type Customer struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"companyId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Site struct {
	ID         uuid.UUID `json:"id"`
	CompanyID  uuid.UUID `json:"companyId"`
	CustomerID uuid.UUID `json:"customerId"`
	Name       string    `json:"name"`
	Address    string    `json:"address,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Asset struct {
	ID            uuid.UUID  `json:"id"`
	CompanyID     uuid.UUID  `json:"companyId"`
	SiteID        uuid.UUID  `json:"siteId"`
	Name          string     `json:"name"`
	Location      string     `json:"location,omitempty"`
	Brand         string     `json:"brand,omitempty"`
	Model         string     `json:"model,omitempty"`
	Serial        string     `json:"serial,omitempty"`
	Criticality   *int       `json:"criticality,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	InstalledAt   *time.Time `json:"installedAt,omitempty"`
	LastServiceAt *time.Time `json:"lastServiceAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type Contact struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"companyId"`
	SiteID    uuid.UUID `json:"siteId"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsMain    bool      `json:"isMain"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ---------------- Maintenance templates ----------------

type TemplateItemType string

const (
	ItemTypeCheck  TemplateItemType = "CHECK"
	ItemTypeNumber TemplateItemType = "NUMBER"
	ItemTypeText   TemplateItemType = "TEXT"
	ItemTypeChoice TemplateItemType = "CHOICE"
)

func ValidTemplateItemType(t TemplateItemType) bool {
	switch t {
	case ItemTypeCheck, ItemTypeNumber, ItemTypeText, ItemTypeChoice:
		return true
	}
	return false
}

type MaintenanceTemplate struct {
	ID           uuid.UUID                 `json:"id"`
	CompanyID    uuid.UUID                 `json:"companyId"`
	Name         string                    `json:"name"`
	Description  string                    `json:"description,omitempty"`
	IntervalDays *int                      `json:"intervalDays,omitempty"`
	IsActive     bool                      `json:"isActive"`
	ArchivedAt   *time.Time                `json:"archivedAt,omitempty"`
	CreatedAt    time.Time                 `json:"createdAt"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
	Items        []MaintenanceTemplateItem `json:"items"`
}

type MaintenanceTemplateItem struct {
	ID         uuid.UUID        `json:"id"`
	TemplateID uuid.UUID        `json:"templateId"`
	Label      string           `json:"label"`
	Type       TemplateItemType `json:"type"`
	Required   bool             `json:"required"`
	SortOrder  int              `json:"sortOrder"`
	Unit       string           `json:"unit,omitempty"`
	Hint       string           `json:"hint,omitempty"`
	Options    []string         `json:"options,omitempty"`
}

// ---------------- Maintenance reports ----------------

type ReportState string

const (
	ReportDraft ReportState = "DRAFT"
	ReportFinal ReportState = "FINAL"
)

type ReportItemStatus string

const (
	ItemPending ReportItemStatus = "PENDING"
	ItemOK      ReportItemStatus = "OK"
	ItemNOK     ReportItemStatus = "NOK"
	ItemNA      ReportItemStatus = "NA"
)

func ValidReportItemStatus(s ReportItemStatus) bool {
	switch s {
	case ItemPending, ItemOK, ItemNOK, ItemNA:
		return true
	}
	return false
}

// MaintenanceReport carries a frozen snapshot of the template it was created
// from; later template edits never affect it.
type MaintenanceReport struct {
	ID              uuid.UUID               `json:"id"`
	CompanyID       uuid.UUID               `json:"companyId"`
	TemplateID      uuid.UUID               `json:"templateId"`
	TemplateName    string                  `json:"templateName"`
	TemplateDesc    string                  `json:"templateDesc,omitempty"`
	CreatedByUserID uuid.UUID               `json:"createdByUserId"`
	CustomerID      *uuid.UUID              `json:"customerId,omitempty"`
	SiteID          *uuid.UUID              `json:"siteId,omitempty"`
	AssetID         *uuid.UUID              `json:"assetId,omitempty"`
	PerformedAt     time.Time               `json:"performedAt"`
	State           ReportState             `json:"state"`
	Summary         string                  `json:"summary,omitempty"`
	Notes           string                  `json:"notes,omitempty"`
	FinalizedAt     *time.Time              `json:"finalizedAt,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	Items           []MaintenanceReportItem `json:"items,omitempty"`
}

type MaintenanceReportItem struct {
	ID             uuid.UUID        `json:"id"`
	ReportID       uuid.UUID        `json:"reportId"`
	CompanyID      uuid.UUID        `json:"companyId"`
	TemplateItemID uuid.UUID        `json:"templateItemId"`
	SortOrder      int              `json:"sortOrder"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	Status         ReportItemStatus `json:"status"`
	ResultNotes    string           `json:"resultNotes,omitempty"`
	ResultValue    string           `json:"resultValue,omitempty"`
}

// ---------------- Work orders ----------------

type WorkOrderStatus string

const (
	WODraft      WorkOrderStatus = "DRAFT"
	WOOpen       WorkOrderStatus = "OPEN"
	WOInProgress WorkOrderStatus = "IN_PROGRESS"
	WODone       WorkOrderStatus = "DONE"
	WOCancelled  WorkOrderStatus = "CANCELLED"
)

func ValidWorkOrderStatus(s WorkOrderStatus) bool {
	switch s {
	case WODraft, WOOpen, WOInProgress, WODone, WOCancelled:
		return true
	}
	return false
}

// woTransitions is the allowed-transition set for setStatus. DONE and
// CANCELLED are terminal.
var woTransitions = map[WorkOrderStatus][]WorkOrderStatus{
	WODraft:      {WOOpen, WOCancelled},
	WOOpen:       {WOInProgress, WODone, WOCancelled},
	WOInProgress: {WOOpen, WODone, WOCancelled},
	WODone:       {},
	WOCancelled:  {},
}

// CanTransition reports whether a work order in state from may move to.
// Re-setting the current status is a no-op and always allowed.
func (from WorkOrderStatus) CanTransition(to WorkOrderStatus) bool {
	if from == to {
		return true
	}
	for _, s := range woTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type WorkOrder struct {
	ID               uuid.UUID       `json:"id"`
	CompanyID        uuid.UUID       `json:"companyId"`
	Number           int             `json:"number"`
	Status           WorkOrderStatus `json:"status"`
	Priority         int             `json:"priority"`
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	CustomerID       uuid.UUID       `json:"customerId"`
	SiteID           *uuid.UUID      `json:"siteId,omitempty"`
	AssetID          *uuid.UUID      `json:"assetId,omitempty"`
	AssignedToUserID *uuid.UUID      `json:"assignedToUserId,omitempty"`
	CreatedByUserID  uuid.UUID       `json:"createdByUserId"`
	ScheduledAt      *time.Time      `json:"scheduledAt,omitempty"`
	DueAt            *time.Time      `json:"dueAt,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// WorkOrderPage is the list shape: items plus a total computed with the
// same filter predicate.
type WorkOrderPage struct {
	Items    []WorkOrder `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

// ---------------- Errors ----------------

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrBadRequest    = errors.New("bad request")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotMember     = errors.New("not a member of this company")
	ErrReportFinal   = errors.New("report is FINAL and cannot be modified")
	ErrEmailTaken    = errors.New("email already exists")
	ErrBadTransition = errors.New("illegal status transition")
)
