package repo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
)

// ---------------- Maintenance reports ----------------

const reportCols = `id, company_id, template_id, template_name, template_desc,
	created_by_user_id, customer_id, site_id, asset_id, performed_at, state,
	summary, notes, finalized_at, created_at`

func scanReport(row pgx.Row) (models.MaintenanceReport, error) {
	var r models.MaintenanceReport
	var state string
	err := row.Scan(&r.ID, &r.CompanyID, &r.TemplateID, &r.TemplateName, &r.TemplateDesc,
		&r.CreatedByUserID, &r.CustomerID, &r.SiteID, &r.AssetID, &r.PerformedAt, &state,
		&r.Summary, &r.Notes, &r.FinalizedAt, &r.CreatedAt)
	r.State = models.ReportState(state)
	return r, err
}

func loadReportItems(ctx context.Context, q rowQuerier, reportID uuid.UUID) ([]models.MaintenanceReportItem, error) {
	rows, err := q.Query(ctx,
		`SELECT id, report_id, company_id, template_item_id, sort_order, title,
		        description, status, result_notes, result_value
		   FROM maintenance_report_items
		  WHERE report_id = $1
		  ORDER BY sort_order`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.MaintenanceReportItem, 0)
	for rows.Next() {
		var it models.MaintenanceReportItem
		var status string
		if err := rows.Scan(&it.ID, &it.ReportID, &it.CompanyID, &it.TemplateItemID,
			&it.SortOrder, &it.Title, &it.Description, &status, &it.ResultNotes,
			&it.ResultValue); err != nil {
			return nil, err
		}
		it.Status = models.ReportItemStatus(status)
		out = append(out, it)
	}
	return out, rows.Err()
}

// CreateReportFromTemplate snapshots the template name/description into the
// report and copies every template item as a PENDING report item. The
// snapshot is independent of later template edits.
func (p *pgRepo) CreateReportFromTemplate(ctx context.Context, t models.Tenant, in models.ReportInput) (models.MaintenanceReport, error) {
	slog.DebugContext(ctx, "CreateReportFromTemplate", "company_id", t.CompanyID.String(), "template_id", in.TemplateID.String())

	tpl, err := scanTemplate(p.pool.QueryRow(ctx,
		`SELECT `+templateCols+` FROM maintenance_templates
		  WHERE id = $1 AND company_id = $2 AND archived_at IS NULL`,
		in.TemplateID, t.CompanyID))
	if err != nil {
		return models.MaintenanceReport{}, notFound(err)
	}
	items, err := loadTemplateItems(ctx, p.pool, []uuid.UUID{tpl.ID})
	if err != nil {
		return models.MaintenanceReport{}, err
	}
	tplItems := items[tpl.ID]
	if len(tplItems) == 0 {
		return models.MaintenanceReport{}, fmt.Errorf("%w: template has no items", models.ErrBadRequest)
	}

	performedAt := time.Now()
	if in.PerformedAt != nil {
		performedAt = *in.PerformedAt
	}

	var reportID uuid.UUID
	err = pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO maintenance_reports
			   (company_id, template_id, template_name, template_desc, created_by_user_id,
			    customer_id, site_id, asset_id, performed_at, state, notes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 RETURNING id`,
			t.CompanyID, tpl.ID, tpl.Name, tpl.Description, t.UserID,
			in.CustomerID, in.SiteID, in.AssetID, performedAt, string(models.ReportDraft), in.Notes,
		).Scan(&reportID); err != nil {
			return err
		}
		for _, it := range tplItems {
			if _, err := tx.Exec(ctx,
				`INSERT INTO maintenance_report_items
				   (report_id, company_id, template_item_id, sort_order, title, description, status)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				reportID, t.CompanyID, it.ID, it.SortOrder, it.Label, it.Hint,
				string(models.ItemPending),
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "CreateReportFromTemplate failed", "err", err)
		return models.MaintenanceReport{}, err
	}
	return p.GetReport(ctx, t.CompanyID, reportID)
}

func (p *pgRepo) ListReports(ctx context.Context, companyID uuid.UUID, f models.ReportFilter) ([]models.MaintenanceReport, error) {
	q := `SELECT ` + reportCols + ` FROM maintenance_reports WHERE company_id = $1`
	args := []any{companyID}
	add := func(cond string, v any) {
		args = append(args, v)
		q += fmt.Sprintf(" AND %s = $%d", cond, len(args))
	}
	if f.AssetID != nil {
		add("asset_id", *f.AssetID)
	}
	if f.SiteID != nil {
		add("site_id", *f.SiteID)
	}
	if f.CustomerID != nil {
		add("customer_id", *f.CustomerID)
	}
	if f.TemplateID != nil {
		add("template_id", *f.TemplateID)
	}
	if f.State != nil {
		add("state", string(*f.State))
	}
	take := f.Take
	if take <= 0 {
		take = 50
	}
	skip := f.Skip
	if skip < 0 {
		skip = 0
	}
	args = append(args, take, skip)
	q += fmt.Sprintf(" ORDER BY performed_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		slog.ErrorContext(ctx, "ListReports failed", "err", err)
		return nil, err
	}
	defer rows.Close()

	out := make([]models.MaintenanceReport, 0)
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *pgRepo) GetReport(ctx context.Context, companyID, id uuid.UUID) (models.MaintenanceReport, error) {
	slog.DebugContext(ctx, "GetReport", "company_id", companyID.String(), "report_id", id.String())
	r, err := scanReport(p.pool.QueryRow(ctx,
		`SELECT `+reportCols+` FROM maintenance_reports WHERE id = $1 AND company_id = $2`,
		id, companyID))
	if err != nil {
		return models.MaintenanceReport{}, notFound(err)
	}
	r.Items, err = loadReportItems(ctx, p.pool, r.ID)
	if err != nil {
		return models.MaintenanceReport{}, err
	}
	return r, nil
}

// reportState fetches just the lifecycle state, tenant-scoped.
func reportState(ctx context.Context, q rowQuerier, companyID, id uuid.UUID) (models.ReportState, error) {
	var state string
	err := q.QueryRow(ctx,
		`SELECT state FROM maintenance_reports WHERE id = $1 AND company_id = $2`,
		id, companyID,
	).Scan(&state)
	if err != nil {
		return "", notFound(err)
	}
	return models.ReportState(state), nil
}

// reportStateLocked reads the state inside a transaction and keeps the report
// row locked until commit, serializing item patches against finalization.
func reportStateLocked(ctx context.Context, tx pgx.Tx, companyID, id uuid.UUID) (models.ReportState, error) {
	var state string
	err := tx.QueryRow(ctx,
		`SELECT state FROM maintenance_reports WHERE id = $1 AND company_id = $2 FOR UPDATE`,
		id, companyID,
	).Scan(&state)
	if err != nil {
		return "", notFound(err)
	}
	return models.ReportState(state), nil
}

func (p *pgRepo) UpdateReportHeader(ctx context.Context, companyID, id uuid.UUID, patch models.ReportHeaderPatch) (models.MaintenanceReport, error) {
	slog.DebugContext(ctx, "UpdateReportHeader", "company_id", companyID.String(), "report_id", id.String())
	state, err := reportState(ctx, p.pool, companyID, id)
	if err != nil {
		return models.MaintenanceReport{}, err
	}
	if state == models.ReportFinal {
		return models.MaintenanceReport{}, models.ErrReportFinal
	}

	if _, err := p.pool.Exec(ctx,
		`UPDATE maintenance_reports SET
		   performed_at = COALESCE($3, performed_at),
		   summary      = COALESCE($4, summary),
		   notes        = COALESCE($5, notes)
		 WHERE id = $1 AND company_id = $2`,
		id, companyID, patch.PerformedAt, patch.Summary, patch.Notes,
	); err != nil {
		slog.ErrorContext(ctx, "UpdateReportHeader failed", "err", err)
		return models.MaintenanceReport{}, err
	}
	return p.GetReport(ctx, companyID, id)
}

// PatchReportItems applies the per-item updates as one transaction: either
// every named item commits or none do. Ids that do not belong to the report
// fail the whole batch, named in the error.
func (p *pgRepo) PatchReportItems(ctx context.Context, companyID, reportID uuid.UUID, patches []models.ReportItemPatch) (models.MaintenanceReport, error) {
	slog.DebugContext(ctx, "PatchReportItems", "company_id", companyID.String(), "report_id", reportID.String(), "count", len(patches))
	if len(patches) == 0 {
		return models.MaintenanceReport{}, fmt.Errorf("%w: items must contain at least 1 element", models.ErrBadRequest)
	}

	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		state, err := reportStateLocked(ctx, tx, companyID, reportID)
		if err != nil {
			return err
		}
		if state == models.ReportFinal {
			return models.ErrReportFinal
		}

		var unmatched []string
		for _, it := range patches {
			var status *string
			if it.Status != nil {
				s := string(*it.Status)
				status = &s
			}
			tag, err := tx.Exec(ctx,
				`UPDATE maintenance_report_items SET
				   status       = COALESCE($4, status),
				   result_notes = COALESCE($5, result_notes),
				   result_value = COALESCE($6, result_value)
				 WHERE id = $1 AND report_id = $2 AND company_id = $3`,
				it.ID, reportID, companyID, status, it.ResultNotes, it.ResultValue)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				unmatched = append(unmatched, it.ID.String())
			}
		}
		if len(unmatched) > 0 {
			return fmt.Errorf("%w: unknown item ids: %s", models.ErrBadRequest, strings.Join(unmatched, ", "))
		}
		return nil
	})
	if err != nil {
		return models.MaintenanceReport{}, err
	}
	return p.GetReport(ctx, companyID, reportID)
}

// FinalizeReport moves DRAFT to FINAL. Already-FINAL reports come back
// unchanged; reports with no items or any PENDING item refuse to finalize.
func (p *pgRepo) FinalizeReport(ctx context.Context, companyID, reportID uuid.UUID) (models.MaintenanceReport, error) {
	slog.DebugContext(ctx, "FinalizeReport", "company_id", companyID.String(), "report_id", reportID.String())

	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		state, err := reportStateLocked(ctx, tx, companyID, reportID)
		if err != nil {
			return err
		}
		if state == models.ReportFinal {
			// Re-finalizing is a no-op, finalized_at stays put.
			return nil
		}

		var total, pending int
		if err := tx.QueryRow(ctx,
			`SELECT count(*), count(*) FILTER (WHERE status = $2)
			   FROM maintenance_report_items WHERE report_id = $1`,
			reportID, string(models.ItemPending),
		).Scan(&total, &pending); err != nil {
			return err
		}
		if total == 0 {
			return fmt.Errorf("%w: cannot finalize report without items", models.ErrConflict)
		}
		if pending > 0 {
			return fmt.Errorf("%w: cannot finalize report with PENDING items", models.ErrBadRequest)
		}

		_, err = tx.Exec(ctx,
			`UPDATE maintenance_reports SET state = $3, finalized_at = now()
			  WHERE id = $1 AND company_id = $2`,
			reportID, companyID, string(models.ReportFinal))
		return err
	})
	if err != nil {
		return models.MaintenanceReport{}, err
	}
	return p.GetReport(ctx, companyID, reportID)
}
