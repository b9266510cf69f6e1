package sqlite

import (
	"context"
	"database/sql"

	"github.com/artpromedia/oru/internal/auth/domain"
)

type auditLogsRepo struct {
	db *sql.DB
}

func (r *auditLogsRepo) Append(ctx context.Context, e domain.AuditEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, tenant_id, user_id, session_id, action, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.TenantID, e.UserID, e.SessionID, string(e.Action), e.At.UTC(),
	)
	return err
}

func (r *auditLogsRepo) ListByUser(ctx context.Context, tenantID, userID string, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, user_id, session_id, action, created_at
		 FROM audit_logs
		 WHERE tenant_id = ? AND user_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		tenantID, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []domain.AuditEvent
	for rows.Next() {
		var e domain.AuditEvent
		var action string
		if err := rows.Scan(&e.ID, &e.TenantID, &e.UserID, &e.SessionID, &action, &e.At); err != nil {
			return nil, err
		}
		e.Action = domain.AuditAction(action)
		events = append(events, e)
	}
	return events, rows.Err()
}
