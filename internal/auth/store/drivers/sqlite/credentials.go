package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/artpromedia/oru/internal/auth/domain"
	"github.com/artpromedia/oru/internal/auth/store"
)

type credentialsRepo struct {
	db *sql.DB
}

type credentialRow struct {
	ID           string
	TenantID     string
	Email        string
	Name         string
	PasswordHash string
	Status       string
	Role         string
	Permissions  string
	MFASecret    sql.NullString
	LastLoginAt  sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const credentialColumns = `id, tenant_id, email, name, password_hash, status, role, permissions, mfa_secret, last_login_at, created_at, updated_at`

func scanCredential(row *sql.Row) (credentialRow, error) {
	var c credentialRow
	err := row.Scan(
		&c.ID, &c.TenantID, &c.Email, &c.Name, &c.PasswordHash,
		&c.Status, &c.Role, &c.Permissions, &c.MFASecret, &c.LastLoginAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *credentialsRepo) GetByEmail(ctx context.Context, tenantID, email string) (domain.Credential, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+credentialColumns+` FROM users WHERE tenant_id = ? AND email = ?`,
		tenantID, normalizeEmail(email),
	)
	raw, err := scanCredential(row)
	if err != nil {
		return domain.Credential{}, mapNotFound(err)
	}
	return mapCredential(raw), nil
}

func (r *credentialsRepo) GetByID(ctx context.Context, id string) (domain.Credential, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+credentialColumns+` FROM users WHERE id = ?`, id,
	)
	raw, err := scanCredential(row)
	if err != nil {
		return domain.Credential{}, mapNotFound(err)
	}
	return mapCredential(raw), nil
}

func (r *credentialsRepo) Create(ctx context.Context, c domain.Credential) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, tenant_id, email, name, password_hash, status, role, permissions, mfa_secret, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.TenantID, normalizeEmail(c.Email), c.Name, c.PasswordHash,
		string(c.Status), c.Role, joinPermissions(c.Permissions),
		mapOptionalString(c.MFASecret), now, now,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *credentialsRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = ?, updated_at = ? WHERE id = ?`,
		at.UTC(), time.Now().UTC(), id,
	)
	return err
}
