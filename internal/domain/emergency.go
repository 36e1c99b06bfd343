package domain

import (
	"database/sql"
	"time"
)

// EmergencyState 租户级紧急播报状态（tenants 表上的字段，非独立表）
// 由外部管理端设置；核心解析首次观察到过期时自动清除
type EmergencyState struct {
	TenantID string `db:"tenant_id"`

	ContentKind string    `db:"emergency_content_kind"` // playlist/layout/media
	ContentID   string    `db:"emergency_content_id"`
	StartedAt   time.Time `db:"emergency_started_at"`

	DurationMinutes sql.NullInt64 `db:"emergency_duration_minutes"` // nullable, null = 不限时长
}

// ExpiresAt 过期时刻；无限时长时 ok=false
func (e *EmergencyState) ExpiresAt() (time.Time, bool) {
	if !e.DurationMinutes.Valid {
		return time.Time{}, false
	}
	return e.StartedAt.Add(time.Duration(e.DurationMinutes.Int64) * time.Minute), true
}

// Expired 是否已过期
func (e *EmergencyState) Expired(now time.Time) bool {
	expiresAt, ok := e.ExpiresAt()
	if !ok {
		return false
	}
	return !now.Before(expiresAt)
}
