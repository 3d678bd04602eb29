package repo

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
)

// ---------------- Customers, sites, assets, contacts ----------------
//
// Sites, assets and contacts validate their parent inside the tenant before
// insert: a parent from another company reads as absent and fails ErrNotFound.

func (p *pgRepo) CreateCustomer(ctx context.Context, companyID uuid.UUID, name string) (models.Customer, error) {
	slog.DebugContext(ctx, "CreateCustomer", "company_id", companyID.String())
	var c models.Customer
	err := p.pool.QueryRow(ctx,
		`INSERT INTO customers (company_id, name) VALUES ($1, $2)
		 RETURNING id, company_id, name, created_at`,
		companyID, name,
	).Scan(&c.ID, &c.CompanyID, &c.Name, &c.CreatedAt)
	if err != nil {
		slog.ErrorContext(ctx, "CreateCustomer failed", "err", err)
		return models.Customer{}, err
	}
	return c, nil
}

func (p *pgRepo) ListCustomers(ctx context.Context, companyID uuid.UUID) ([]models.Customer, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, company_id, name, created_at FROM customers
		  WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		slog.ErrorContext(ctx, "ListCustomers failed", "err", err)
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Customer, 0)
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ownedExists checks that a row of table belongs to the company.
func ownedExists(ctx context.Context, q interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}, table string, companyID, id uuid.UUID) (bool, error) {
	var one int
	err := q.QueryRow(ctx,
		`SELECT 1 FROM `+table+` WHERE id = $1 AND company_id = $2`, id, companyID,
	).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *pgRepo) CreateSite(ctx context.Context, companyID uuid.UUID, in models.SiteInput) (models.Site, error) {
	slog.DebugContext(ctx, "CreateSite", "company_id", companyID.String(), "customer_id", in.CustomerID.String())
	ok, err := ownedExists(ctx, p.pool, "customers", companyID, in.CustomerID)
	if err != nil {
		return models.Site{}, err
	}
	if !ok {
		return models.Site{}, models.ErrNotFound
	}

	var s models.Site
	err = p.pool.QueryRow(ctx,
		`INSERT INTO sites (company_id, customer_id, name, address, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, company_id, customer_id, name, address, notes, created_at`,
		companyID, in.CustomerID, in.Name, in.Address, in.Notes,
	).Scan(&s.ID, &s.CompanyID, &s.CustomerID, &s.Name, &s.Address, &s.Notes, &s.CreatedAt)
	if err != nil {
		slog.ErrorContext(ctx, "CreateSite failed", "err", err)
		return models.Site{}, err
	}
	return s, nil
}

func (p *pgRepo) ListSites(ctx context.Context, companyID uuid.UUID, customerID *uuid.UUID) ([]models.Site, error) {
	q := `SELECT id, company_id, customer_id, name, address, notes, created_at
	        FROM sites WHERE company_id = $1`
	args := []any{companyID}
	if customerID != nil {
		q += ` AND customer_id = $2`
		args = append(args, *customerID)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		slog.ErrorContext(ctx, "ListSites failed", "err", err)
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Site, 0)
	for rows.Next() {
		var s models.Site
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.CustomerID, &s.Name, &s.Address, &s.Notes, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (p *pgRepo) CreateAsset(ctx context.Context, companyID uuid.UUID, in models.AssetInput) (models.Asset, error) {
	slog.DebugContext(ctx, "CreateAsset", "company_id", companyID.String(), "site_id", in.SiteID.String())
	ok, err := ownedExists(ctx, p.pool, "sites", companyID, in.SiteID)
	if err != nil {
		return models.Asset{}, err
	}
	if !ok {
		return models.Asset{}, models.ErrNotFound
	}

	var a models.Asset
	err = p.pool.QueryRow(ctx,
		`INSERT INTO assets (company_id, site_id, name, location, brand, model, serial,
		                     criticality, notes, installed_at, last_service_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, company_id, site_id, name, location, brand, model, serial,
		           criticality, notes, installed_at, last_service_at, created_at`,
		companyID, in.SiteID, in.Name, in.Location, in.Brand, in.Model, in.Serial,
		in.Criticality, in.Notes, in.InstalledAt, in.LastServiceAt,
	).Scan(&a.ID, &a.CompanyID, &a.SiteID, &a.Name, &a.Location, &a.Brand, &a.Model,
		&a.Serial, &a.Criticality, &a.Notes, &a.InstalledAt, &a.LastServiceAt, &a.CreatedAt)
	if err != nil {
		slog.ErrorContext(ctx, "CreateAsset failed", "err", err)
		return models.Asset{}, err
	}
	return a, nil
}

func (p *pgRepo) ListAssets(ctx context.Context, companyID uuid.UUID, siteID *uuid.UUID) ([]models.Asset, error) {
	q := `SELECT id, company_id, site_id, name, location, brand, model, serial,
	             criticality, notes, installed_at, last_service_at, created_at
	        FROM assets WHERE company_id = $1`
	args := []any{companyID}
	if siteID != nil {
		q += ` AND site_id = $2`
		args = append(args, *siteID)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		slog.ErrorContext(ctx, "ListAssets failed", "err", err)
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Asset, 0)
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.SiteID, &a.Name, &a.Location, &a.Brand,
			&a.Model, &a.Serial, &a.Criticality, &a.Notes, &a.InstalledAt, &a.LastServiceAt,
			&a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreateContact demotes the previous main contact of the site in the same
// transaction when the new one claims isMain.
func (p *pgRepo) CreateContact(ctx context.Context, companyID uuid.UUID, in models.ContactInput) (models.Contact, error) {
	slog.DebugContext(ctx, "CreateContact", "company_id", companyID.String(), "site_id", in.SiteID.String())
	ok, err := ownedExists(ctx, p.pool, "sites", companyID, in.SiteID)
	if err != nil {
		return models.Contact{}, err
	}
	if !ok {
		return models.Contact{}, models.ErrNotFound
	}

	var c models.Contact
	err = pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		if in.IsMain {
			if _, err := tx.Exec(ctx,
				`UPDATE contacts SET is_main = false
				  WHERE company_id = $1 AND site_id = $2 AND is_main`,
				companyID, in.SiteID,
			); err != nil {
				return err
			}
		}
		return tx.QueryRow(ctx,
			`INSERT INTO contacts (company_id, site_id, name, email, phone, is_main, notes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id, company_id, site_id, name, email, phone, is_main, notes, created_at`,
			companyID, in.SiteID, in.Name, in.Email, in.Phone, in.IsMain, in.Notes,
		).Scan(&c.ID, &c.CompanyID, &c.SiteID, &c.Name, &c.Email, &c.Phone, &c.IsMain, &c.Notes, &c.CreatedAt)
	})
	if err != nil {
		slog.ErrorContext(ctx, "CreateContact failed", "err", err)
		return models.Contact{}, err
	}
	return c, nil
}

func (p *pgRepo) ListContacts(ctx context.Context, companyID uuid.UUID, siteID *uuid.UUID) ([]models.Contact, error) {
	q := `SELECT id, company_id, site_id, name, email, phone, is_main, notes, created_at
	        FROM contacts WHERE company_id = $1`
	args := []any{companyID}
	if siteID != nil {
		q += ` AND site_id = $2`
		args = append(args, *siteID)
	}
	q += ` ORDER BY is_main DESC, created_at DESC`

	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		slog.ErrorContext(ctx, "ListContacts failed", "err", err)
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Contact, 0)
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.SiteID, &c.Name, &c.Email, &c.Phone,
			&c.IsMain, &c.Notes, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
