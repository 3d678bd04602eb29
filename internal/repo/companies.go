package repo

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
)

// ---------------- Companies, users & memberships ----------------

// CreateCompanyWithOwner onboards a tenant: company, owner user and ADMIN
// membership are created in one transaction. A taken owner email fails the
// whole onboarding with ErrEmailTaken.
func (p *pgRepo) CreateCompanyWithOwner(ctx context.Context, companyName, ownerEmail, ownerName, passwordHash string) (uuid.UUID, uuid.UUID, error) {
	slog.DebugContext(ctx, "CreateCompanyWithOwner", "company", companyName)
	email := strings.ToLower(strings.TrimSpace(ownerEmail))

	var companyID, userID uuid.UUID
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO companies (name) VALUES ($1) RETURNING id`,
			companyName,
		).Scan(&companyID); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx,
			`INSERT INTO users (email, name, password_hash) VALUES ($1, $2, $3) RETURNING id`,
			email, ownerName, passwordHash,
		).Scan(&userID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO user_companies (company_id, user_id, role) VALUES ($1, $2, $3)`,
			companyID, userID, string(models.RoleAdmin),
		)
		return err
	})
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return uuid.Nil, uuid.Nil, models.ErrEmailTaken
		}
		slog.ErrorContext(ctx, "CreateCompanyWithOwner failed", "err", err)
		return uuid.Nil, uuid.Nil, err
	}
	return companyID, userID, nil
}

func (p *pgRepo) ListCompanies(ctx context.Context) ([]models.Company, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, name, created_at FROM companies ORDER BY created_at DESC`)
	if err != nil {
		slog.ErrorContext(ctx, "ListCompanies failed", "err", err)
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Company, 0)
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *pgRepo) GetCompany(ctx context.Context, id uuid.UUID) (models.Company, error) {
	slog.DebugContext(ctx, "GetCompany", "company_id", id.String())
	var c models.Company
	err := p.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM companies WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return models.Company{}, notFound(err)
	}
	return c, nil
}

// GetUserByEmail returns the user and its stored credential hash.
func (p *pgRepo) GetUserByEmail(ctx context.Context, email string) (models.User, string, error) {
	slog.DebugContext(ctx, "GetUserByEmail", "email", strings.ToLower(email))
	var u models.User
	var phc string
	err := p.pool.QueryRow(ctx,
		`SELECT id, email, name, password_hash FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&u.ID, &u.Email, &u.Name, &phc)
	if err != nil {
		return models.User{}, "", notFound(err)
	}
	return u, phc, nil
}

func (p *pgRepo) ListMemberships(ctx context.Context, userID uuid.UUID) ([]models.Membership, error) {
	slog.DebugContext(ctx, "ListMemberships", "user_id", userID.String())
	rows, err := p.pool.Query(ctx,
		`SELECT uc.company_id, uc.user_id, uc.role, c.name
		   FROM user_companies uc
		   JOIN companies c ON c.id = uc.company_id
		  WHERE uc.user_id = $1
		  ORDER BY uc.created_at`, userID)
	if err != nil {
		slog.ErrorContext(ctx, "ListMemberships failed", "err", err)
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Membership, 0)
	for rows.Next() {
		var m models.Membership
		var role string
		if err := rows.Scan(&m.CompanyID, &m.UserID, &role, &m.CompanyName); err != nil {
			return nil, err
		}
		m.Role = models.ParseRole(role)
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetMembership is the single lookup behind the tenant resolver. A missing
// row comes back as ErrNotMember.
func (p *pgRepo) GetMembership(ctx context.Context, companyID, userID uuid.UUID) (models.Role, error) {
	slog.DebugContext(ctx, "GetMembership", "company_id", companyID.String(), "user_id", userID.String())
	var role string
	err := p.pool.QueryRow(ctx,
		`SELECT role FROM user_companies WHERE company_id = $1 AND user_id = $2`,
		companyID, userID,
	).Scan(&role)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", models.ErrNotMember
		}
		slog.ErrorContext(ctx, "GetMembership failed", "err", err)
		return "", err
	}
	return models.ParseRole(role), nil
}

// EnsureDevUser idempotently seeds a company, user, membership and counter
// row for demo environments.
func (p *pgRepo) EnsureDevUser(ctx context.Context, companyName, email, userName, passwordHash string, role models.Role) (uuid.UUID, uuid.UUID, error) {
	slog.DebugContext(ctx, "EnsureDevUser", "company", companyName, "email", strings.ToLower(email))
	lower := strings.ToLower(strings.TrimSpace(email))

	var companyID, userID uuid.UUID
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT id FROM companies WHERE name = $1 LIMIT 1`, companyName,
		).Scan(&companyID)
		if err == pgx.ErrNoRows {
			err = tx.QueryRow(ctx,
				`INSERT INTO companies (name) VALUES ($1) RETURNING id`, companyName,
			).Scan(&companyID)
		}
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO users (email, name, password_hash) VALUES ($1, $2, $3)
			 ON CONFLICT ON CONSTRAINT users_email_key
			 DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`,
			lower, userName, passwordHash,
		).Scan(&userID)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO user_companies (company_id, user_id, role) VALUES ($1, $2, $3)
			 ON CONFLICT (company_id, user_id) DO NOTHING`,
			companyID, userID, string(role),
		); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO company_counters (company_id, work_order_seq) VALUES ($1, 0)
			 ON CONFLICT (company_id) DO NOTHING`,
			companyID,
		)
		return err
	})
	if err != nil {
		slog.ErrorContext(ctx, "EnsureDevUser failed", "err", err)
		return uuid.Nil, uuid.Nil, err
	}
	return companyID, userID, nil
}
