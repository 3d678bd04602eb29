package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
)

// ---------------- Work orders ----------------

const workOrderCols = `id, company_id, number, status, priority, title, description,
	customer_id, site_id, asset_id, assigned_to_user_id, created_by_user_id,
	scheduled_at, due_at, created_at, updated_at`

func scanWorkOrder(row pgx.Row) (models.WorkOrder, error) {
	var w models.WorkOrder
	var status string
	err := row.Scan(&w.ID, &w.CompanyID, &w.Number, &status, &w.Priority, &w.Title,
		&w.Description, &w.CustomerID, &w.SiteID, &w.AssetID, &w.AssignedToUserID,
		&w.CreatedByUserID, &w.ScheduledAt, &w.DueAt, &w.CreatedAt, &w.UpdatedAt)
	w.Status = models.WorkOrderStatus(status)
	return w, err
}

// nextWorkOrderNumber allocates the next per-company sequence value inside
// tx. The upsert seeds the counter row on first use and increments
// atomically, so concurrent first allocations neither collide nor throw;
// if tx rolls back, the increment rolls back with it.
func nextWorkOrderNumber(ctx context.Context, tx pgx.Tx, companyID uuid.UUID) (int, error) {
	var n int
	err := tx.QueryRow(ctx,
		`INSERT INTO company_counters (company_id, work_order_seq)
		 VALUES ($1, 1)
		 ON CONFLICT (company_id)
		 DO UPDATE SET work_order_seq = company_counters.work_order_seq + 1
		 RETURNING work_order_seq`, companyID,
	).Scan(&n)
	return n, err
}

// checkWorkOrderLinks validates that every referenced entity belongs to the
// tenant before insert, so a bad link reads as a clean ErrNotFound instead
// of a foreign-key failure.
func checkWorkOrderLinks(ctx context.Context, q rowQuerier, companyID uuid.UUID, customerID *uuid.UUID, siteID, assetID, assigneeID *uuid.UUID) error {
	if customerID != nil {
		ok, err := ownedExists(ctx, q, "customers", companyID, *customerID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("customer: %w", models.ErrNotFound)
		}
	}
	if siteID != nil {
		ok, err := ownedExists(ctx, q, "sites", companyID, *siteID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("site: %w", models.ErrNotFound)
		}
	}
	if assetID != nil {
		ok, err := ownedExists(ctx, q, "assets", companyID, *assetID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("asset: %w", models.ErrNotFound)
		}
	}
	if assigneeID != nil {
		var one int
		err := q.QueryRow(ctx,
			`SELECT 1 FROM user_companies WHERE company_id = $1 AND user_id = $2`,
			companyID, *assigneeID,
		).Scan(&one)
		if err == pgx.ErrNoRows {
			return fmt.Errorf("assignee: %w", models.ErrNotFound)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CreateWorkOrder allocates the company's next number and inserts the work
// order in the same transaction; a failed insert rolls the counter back.
func (p *pgRepo) CreateWorkOrder(ctx context.Context, t models.Tenant, in models.WorkOrderInput) (models.WorkOrder, error) {
	slog.DebugContext(ctx, "CreateWorkOrder", "company_id", t.CompanyID.String(), "customer_id", in.CustomerID.String())

	var w models.WorkOrder
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		cust := in.CustomerID
		if err := checkWorkOrderLinks(ctx, tx, t.CompanyID, &cust, in.SiteID, in.AssetID, in.AssignedToUserID); err != nil {
			return err
		}
		number, err := nextWorkOrderNumber(ctx, tx, t.CompanyID)
		if err != nil {
			return err
		}
		w, err = scanWorkOrder(tx.QueryRow(ctx,
			`INSERT INTO work_orders
			   (company_id, number, status, priority, title, description, customer_id,
			    site_id, asset_id, assigned_to_user_id, created_by_user_id, scheduled_at, due_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			 RETURNING `+workOrderCols,
			t.CompanyID, number, string(models.WOOpen), derefOr(in.Priority, 3),
			in.Title, in.Description, in.CustomerID, in.SiteID, in.AssetID,
			in.AssignedToUserID, t.UserID, in.ScheduledAt, in.DueAt))
		return err
	})
	if err != nil {
		slog.ErrorContext(ctx, "CreateWorkOrder failed", "err", err)
		return models.WorkOrder{}, err
	}
	return w, nil
}

func (p *pgRepo) ListWorkOrders(ctx context.Context, companyID uuid.UUID, f models.WorkOrderFilter) (models.WorkOrderPage, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	where := ` WHERE company_id = $1`
	args := []any{companyID}
	add := func(col string, v any) {
		args = append(args, v)
		where += fmt.Sprintf(" AND %s = $%d", col, len(args))
	}
	if f.Status != nil {
		add("status", string(*f.Status))
	}
	if f.CustomerID != nil {
		add("customer_id", *f.CustomerID)
	}
	if f.SiteID != nil {
		add("site_id", *f.SiteID)
	}
	if f.AssetID != nil {
		add("asset_id", *f.AssetID)
	}
	if f.AssignedToUserID != nil {
		add("assigned_to_user_id", *f.AssignedToUserID)
	}
	if q := f.Query; q != "" {
		args = append(args, "%"+q+"%")
		where += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	var total int
	if err := p.pool.QueryRow(ctx,
		`SELECT count(*) FROM work_orders`+where, args...,
	).Scan(&total); err != nil {
		slog.ErrorContext(ctx, "ListWorkOrders count failed", "err", err)
		return models.WorkOrderPage{}, err
	}

	args = append(args, pageSize, (page-1)*pageSize)
	rows, err := p.pool.Query(ctx,
		`SELECT `+workOrderCols+` FROM work_orders`+where+
			fmt.Sprintf(` ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		slog.ErrorContext(ctx, "ListWorkOrders failed", "err", err)
		return models.WorkOrderPage{}, err
	}
	defer rows.Close()

	items := make([]models.WorkOrder, 0)
	for rows.Next() {
		w, err := scanWorkOrder(rows)
		if err != nil {
			return models.WorkOrderPage{}, err
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return models.WorkOrderPage{}, err
	}
	return models.WorkOrderPage{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (p *pgRepo) GetWorkOrder(ctx context.Context, companyID, id uuid.UUID) (models.WorkOrder, error) {
	slog.DebugContext(ctx, "GetWorkOrder", "company_id", companyID.String(), "work_order_id", id.String())
	w, err := scanWorkOrder(p.pool.QueryRow(ctx,
		`SELECT `+workOrderCols+` FROM work_orders WHERE id = $1 AND company_id = $2`,
		id, companyID))
	if err != nil {
		return models.WorkOrder{}, notFound(err)
	}
	return w, nil
}

// UpdateWorkOrder patches only the fields present in the request. Relation
// fields are validated against the tenant before they are re-pointed.
func (p *pgRepo) UpdateWorkOrder(ctx context.Context, companyID, id uuid.UUID, patch models.WorkOrderPatch) (models.WorkOrder, error) {
	slog.DebugContext(ctx, "UpdateWorkOrder", "company_id", companyID.String(), "work_order_id", id.String())

	var w models.WorkOrder
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		var exists uuid.UUID
		if err := tx.QueryRow(ctx,
			`SELECT id FROM work_orders WHERE id = $1 AND company_id = $2 FOR UPDATE`,
			id, companyID,
		).Scan(&exists); err != nil {
			return notFound(err)
		}
		if err := checkWorkOrderLinks(ctx, tx, companyID, patch.CustomerID, patch.SiteID, patch.AssetID, patch.AssignedToUserID); err != nil {
			return err
		}

		var err error
		w, err = scanWorkOrder(tx.QueryRow(ctx,
			`UPDATE work_orders SET
			   title               = COALESCE($3, title),
			   description         = COALESCE($4, description),
			   priority            = COALESCE($5, priority),
			   scheduled_at        = COALESCE($6, scheduled_at),
			   due_at              = COALESCE($7, due_at),
			   customer_id         = COALESCE($8, customer_id),
			   site_id             = COALESCE($9, site_id),
			   asset_id            = COALESCE($10, asset_id),
			   assigned_to_user_id = COALESCE($11, assigned_to_user_id),
			   updated_at          = now()
			 WHERE id = $1 AND company_id = $2
			 RETURNING `+workOrderCols,
			id, companyID, patch.Title, patch.Description, patch.Priority,
			patch.ScheduledAt, patch.DueAt, patch.CustomerID, patch.SiteID,
			patch.AssetID, patch.AssignedToUserID))
		return err
	})
	if err != nil {
		return models.WorkOrder{}, err
	}
	return w, nil
}

// SetWorkOrderStatus applies the transition policy: DONE and CANCELLED are
// terminal, everything else follows the declared edges.
func (p *pgRepo) SetWorkOrderStatus(ctx context.Context, companyID, id uuid.UUID, status models.WorkOrderStatus) (models.WorkOrder, error) {
	slog.DebugContext(ctx, "SetWorkOrderStatus", "company_id", companyID.String(), "work_order_id", id.String(), "status", string(status))

	var w models.WorkOrder
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		var current string
		if err := tx.QueryRow(ctx,
			`SELECT status FROM work_orders WHERE id = $1 AND company_id = $2 FOR UPDATE`,
			id, companyID,
		).Scan(&current); err != nil {
			return notFound(err)
		}
		if !models.WorkOrderStatus(current).CanTransition(status) {
			return fmt.Errorf("%w: %s -> %s", models.ErrBadTransition, current, status)
		}

		var err error
		w, err = scanWorkOrder(tx.QueryRow(ctx,
			`UPDATE work_orders SET status = $3, updated_at = now()
			  WHERE id = $1 AND company_id = $2
			  RETURNING `+workOrderCols,
			id, companyID, string(status)))
		return err
	})
	if err != nil {
		return models.WorkOrder{}, err
	}
	return w, nil
}
