package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

type PostgresEmergencyRepo struct {
	db *sql.DB
}

func NewPostgresEmergencyRepo(db *sql.DB) *PostgresEmergencyRepo {
	return &PostgresEmergencyRepo{db: db}
}

// GetEmergencyState 读取租户紧急播报字段；未设置时返回 (nil, nil)
func (r *PostgresEmergencyRepo) GetEmergencyState(ctx context.Context, tenantID string) (*domain.EmergencyState, error) {
	q := `
		SELECT
			t.tenant_id::text,
			t.emergency_content_kind,
			CASE WHEN t.emergency_content_id IS NULL THEN NULL ELSE t.emergency_content_id::text END as emergency_content_id,
			t.emergency_started_at,
			t.emergency_duration_minutes
		FROM tenants t
		WHERE t.tenant_id = $1`

	var (
		kind      sql.NullString
		contentID sql.NullString
		startedAt sql.NullTime
		duration  sql.NullInt64
	)
	var st domain.EmergencyState
	err := r.db.QueryRowContext(ctx, q, tenantID).Scan(
		&st.TenantID, &kind, &contentID, &startedAt, &duration,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tenant %s: %w", tenantID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get emergency state: %w", err)
	}

	if !contentID.Valid || contentID.String == "" {
		return nil, nil
	}
	st.ContentID = contentID.String
	st.ContentKind = kind.String
	if st.ContentKind == "" {
		st.ContentKind = domain.ContentKindMedia
	}
	if startedAt.Valid {
		st.StartedAt = startedAt.Time
	}
	st.DurationMinutes = duration
	return &st, nil
}

// ClearEmergencyState 清除租户紧急字段（幂等，允许并发轮询竞争）
func (r *PostgresEmergencyRepo) ClearEmergencyState(ctx context.Context, tenantID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tenants
		 SET emergency_content_kind = NULL,
		     emergency_content_id = NULL,
		     emergency_started_at = NULL,
		     emergency_duration_minutes = NULL
		 WHERE tenant_id = $1`,
		tenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear emergency state: %w", err)
	}
	return nil
}
