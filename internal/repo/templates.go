package repo

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
)

// ---------------- Maintenance templates ----------------

const templateCols = `id, company_id, name, description, interval_days, is_active,
	archived_at, created_at, updated_at`

func scanTemplate(row pgx.Row) (models.MaintenanceTemplate, error) {
	var t models.MaintenanceTemplate
	err := row.Scan(&t.ID, &t.CompanyID, &t.Name, &t.Description, &t.IntervalDays,
		&t.IsActive, &t.ArchivedAt, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// loadTemplateItems fetches the items for a set of templates, grouped by
// template id and ordered by sort_order.
func loadTemplateItems(ctx context.Context, q rowQuerier, templateIDs []uuid.UUID) (map[uuid.UUID][]models.MaintenanceTemplateItem, error) {
	rows, err := q.Query(ctx,
		`SELECT id, template_id, label, type, required, sort_order, unit, hint, options
		   FROM maintenance_template_items
		  WHERE template_id = ANY($1)
		  ORDER BY template_id, sort_order`, templateIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]models.MaintenanceTemplateItem, len(templateIDs))
	for rows.Next() {
		var it models.MaintenanceTemplateItem
		var typ string
		var opts []byte
		if err := rows.Scan(&it.ID, &it.TemplateID, &it.Label, &typ, &it.Required,
			&it.SortOrder, &it.Unit, &it.Hint, &opts); err != nil {
			return nil, err
		}
		it.Type = models.TemplateItemType(typ)
		if len(opts) > 0 {
			if err := json.Unmarshal(opts, &it.Options); err != nil {
				slog.WarnContext(ctx, "loadTemplateItems: bad options JSON", "err", err)
			}
		}
		out[it.TemplateID] = append(out[it.TemplateID], it)
	}
	return out, rows.Err()
}

// insertTemplateItems replaces nothing; it just writes the given items.
// sortOrder defaults to the 1-based position when absent; an explicit value,
// zero included, is kept as sent.
func insertTemplateItems(ctx context.Context, tx pgx.Tx, templateID uuid.UUID, items []models.TemplateItemInput) error {
	for i, in := range items {
		typ := in.Type
		if typ == "" {
			typ = models.ItemTypeCheck
		}
		order := derefOr(in.SortOrder, i+1)
		var opts []byte
		if len(in.Options) > 0 {
			b, err := json.Marshal(in.Options)
			if err != nil {
				return err
			}
			opts = b
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO maintenance_template_items
			   (template_id, label, type, required, sort_order, unit, hint, options)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			templateID, in.Label, string(typ), in.Required, order, in.Unit, in.Hint, opts,
		); err != nil {
			return err
		}
	}
	return nil
}

func (p *pgRepo) CreateTemplate(ctx context.Context, companyID uuid.UUID, in models.TemplateInput) (models.MaintenanceTemplate, error) {
	slog.DebugContext(ctx, "CreateTemplate", "company_id", companyID.String(), "name", in.Name)
	if len(in.Items) == 0 {
		return models.MaintenanceTemplate{}, models.ErrBadRequest
	}

	var id uuid.UUID
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO maintenance_templates (company_id, name, description, interval_days, is_active)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			companyID, in.Name, in.Description, in.IntervalDays, derefOr(in.IsActive, true),
		).Scan(&id); err != nil {
			return err
		}
		return insertTemplateItems(ctx, tx, id, in.Items)
	})
	if err != nil {
		slog.ErrorContext(ctx, "CreateTemplate failed", "err", err)
		return models.MaintenanceTemplate{}, err
	}
	return p.GetTemplate(ctx, companyID, id)
}

func (p *pgRepo) ListTemplates(ctx context.Context, companyID uuid.UUID, includeArchived bool) ([]models.MaintenanceTemplate, error) {
	q := `SELECT ` + templateCols + ` FROM maintenance_templates WHERE company_id = $1`
	if !includeArchived {
		q += ` AND archived_at IS NULL`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := p.pool.Query(ctx, q, companyID)
	if err != nil {
		slog.ErrorContext(ctx, "ListTemplates failed", "err", err)
		return nil, err
	}
	defer rows.Close()

	out := make([]models.MaintenanceTemplate, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := loadTemplateItems(ctx, p.pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
		if out[i].Items == nil {
			out[i].Items = []models.MaintenanceTemplateItem{}
		}
	}
	return out, nil
}

func (p *pgRepo) GetTemplate(ctx context.Context, companyID, id uuid.UUID) (models.MaintenanceTemplate, error) {
	slog.DebugContext(ctx, "GetTemplate", "company_id", companyID.String(), "template_id", id.String())
	t, err := scanTemplate(p.pool.QueryRow(ctx,
		`SELECT `+templateCols+` FROM maintenance_templates WHERE id = $1 AND company_id = $2`,
		id, companyID))
	if err != nil {
		return models.MaintenanceTemplate{}, notFound(err)
	}
	items, err := loadTemplateItems(ctx, p.pool, []uuid.UUID{t.ID})
	if err != nil {
		return models.MaintenanceTemplate{}, err
	}
	t.Items = items[t.ID]
	if t.Items == nil {
		t.Items = []models.MaintenanceTemplateItem{}
	}
	return t, nil
}

// UpdateTemplate patches scalar fields individually. When the patch carries
// an item list, even an empty one, the existing item set is deleted and
// recreated wholesale inside the transaction.
func (p *pgRepo) UpdateTemplate(ctx context.Context, companyID, id uuid.UUID, patch models.TemplatePatch) (models.MaintenanceTemplate, error) {
	slog.DebugContext(ctx, "UpdateTemplate", "company_id", companyID.String(), "template_id", id.String())
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		var exists uuid.UUID
		if err := tx.QueryRow(ctx,
			`SELECT id FROM maintenance_templates WHERE id = $1 AND company_id = $2 FOR UPDATE`,
			id, companyID,
		).Scan(&exists); err != nil {
			return notFound(err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE maintenance_templates SET
			   name          = COALESCE($3, name),
			   description   = COALESCE($4, description),
			   interval_days = COALESCE($5, interval_days),
			   is_active     = COALESCE($6, is_active),
			   updated_at    = now()
			 WHERE id = $1 AND company_id = $2`,
			id, companyID, patch.Name, patch.Description, patch.IntervalDays, patch.IsActive,
		); err != nil {
			return err
		}

		if patch.Items != nil {
			if _, err := tx.Exec(ctx,
				`DELETE FROM maintenance_template_items WHERE template_id = $1`, id,
			); err != nil {
				return err
			}
			return insertTemplateItems(ctx, tx, id, *patch.Items)
		}
		return nil
	})
	if err != nil {
		return models.MaintenanceTemplate{}, err
	}
	return p.GetTemplate(ctx, companyID, id)
}

// ArchiveTemplate soft-deletes: archived_at is stamped and the template
// drops out of default listings. Calling it again just refreshes the stamp.
func (p *pgRepo) ArchiveTemplate(ctx context.Context, companyID, id uuid.UUID) (models.MaintenanceTemplate, error) {
	slog.DebugContext(ctx, "ArchiveTemplate", "company_id", companyID.String(), "template_id", id.String())
	tag, err := p.pool.Exec(ctx,
		`UPDATE maintenance_templates
		    SET archived_at = now(), is_active = false, updated_at = now()
		  WHERE id = $1 AND company_id = $2`,
		id, companyID)
	if err != nil {
		slog.ErrorContext(ctx, "ArchiveTemplate failed", "err", err)
		return models.MaintenanceTemplate{}, err
	}
	if tag.RowsAffected() == 0 {
		return models.MaintenanceTemplate{}, models.ErrNotFound
	}
	return p.GetTemplate(ctx, companyID, id)
}
