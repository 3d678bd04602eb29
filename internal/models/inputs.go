// internal/models/inputs.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Input and patch shapes shared by handlers and the repo. Pointer fields on
// patches mean "absent from the request, leave untouched".

type SiteInput struct {
	CustomerID uuid.UUID `json:"customerId"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Notes      string    `json:"notes"`
}

type AssetInput struct {
	SiteID        uuid.UUID  `json:"siteId"`
	Name          string     `json:"name"`
	Location      string     `json:"location"`
	Brand         string     `json:"brand"`
	Model         string     `json:"model"`
	Serial        string     `json:"serial"`
	Criticality   *int       `json:"criticality"`
	Notes         string     `json:"notes"`
	InstalledAt   *time.Time `json:"installedAt"`
	LastServiceAt *time.Time `json:"lastServiceAt"`
}

type ContactInput struct {
	SiteID uuid.UUID `json:"siteId"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Phone  string    `json:"phone"`
	IsMain bool      `json:"isMain"`
	Notes  string    `json:"notes"`
}

type TemplateItemInput struct {
	Label     string           `json:"label"`
	Type      TemplateItemType `json:"type"`
	Required  bool             `json:"required"`
	SortOrder *int             `json:"sortOrder"`
	Unit      string           `json:"unit"`
	Hint      string           `json:"hint"`
	Options   []string         `json:"options"`
}

type TemplateInput struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	IntervalDays *int                `json:"intervalDays"`
	IsActive     *bool               `json:"isActive"`
	Items        []TemplateItemInput `json:"items"`
}

// TemplatePatch updates scalar fields individually; a non-nil Items slice,
// even an empty one, replaces the whole item set.
type TemplatePatch struct {
	Name         *string              `json:"name"`
	Description  *string              `json:"description"`
	IntervalDays *int                 `json:"intervalDays"`
	IsActive     *bool                `json:"isActive"`
	Items        *[]TemplateItemInput `json:"items"`
}

type ReportInput struct {
	TemplateID  uuid.UUID  `json:"templateId"`
	CustomerID  *uuid.UUID `json:"customerId"`
	SiteID      *uuid.UUID `json:"siteId"`
	AssetID     *uuid.UUID `json:"assetId"`
	PerformedAt *time.Time `json:"performedAt"`
	Notes       string     `json:"notes"`
}

type ReportHeaderPatch struct {
	PerformedAt *time.Time `json:"performedAt"`
	Summary     *string    `json:"summary"`
	Notes       *string    `json:"notes"`
}

type ReportItemPatch struct {
	ID          uuid.UUID         `json:"id"`
	Status      *ReportItemStatus `json:"status"`
	ResultNotes *string           `json:"resultNotes"`
	ResultValue *string           `json:"resultValue"`
}

type ReportFilter struct {
	CustomerID *uuid.UUID
	SiteID     *uuid.UUID
	AssetID    *uuid.UUID
	TemplateID *uuid.UUID
	State      *ReportState
	Skip       int
	Take       int
}

type WorkOrderInput struct {
	CustomerID       uuid.UUID  `json:"customerId"`
	SiteID           *uuid.UUID `json:"siteId"`
	AssetID          *uuid.UUID `json:"assetId"`
	AssignedToUserID *uuid.UUID `json:"assignedToUserId"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Priority         *int       `json:"priority"`
	ScheduledAt      *time.Time `json:"scheduledAt"`
	DueAt            *time.Time `json:"dueAt"`
}

type WorkOrderPatch struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Priority         *int       `json:"priority"`
	ScheduledAt      *time.Time `json:"scheduledAt"`
	DueAt            *time.Time `json:"dueAt"`
	CustomerID       *uuid.UUID `json:"customerId"`
	SiteID           *uuid.UUID `json:"siteId"`
	AssetID          *uuid.UUID `json:"assetId"`
	AssignedToUserID *uuid.UUID `json:"assignedToUserId"`
}

type WorkOrderFilter struct {
	Status           *WorkOrderStatus
	CustomerID       *uuid.UUID
	SiteID           *uuid.UUID
	AssetID          *uuid.UUID
	AssignedToUserID *uuid.UUID
	Query            string
	Page             int
	PageSize         int
}
