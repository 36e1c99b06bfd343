package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

type PostgresDevicesRepo struct {
	db *sql.DB
}

func NewPostgresDevicesRepo(db *sql.DB) *PostgresDevicesRepo {
	return &PostgresDevicesRepo{db: db}
}

func (r *PostgresDevicesRepo) GetDevice(ctx context.Context, deviceID string) (*domain.Device, error) {
	q := `
		SELECT
			d.device_id::text,
			d.tenant_id::text,
			CASE WHEN d.group_id IS NULL THEN NULL ELSE d.group_id::text END as group_id,
			CASE WHEN d.location_id IS NULL THEN NULL ELSE d.location_id::text END as location_id,
			d.device_name,
			d.timezone,
			d.display_language,
			CASE WHEN d.active_scene_id IS NULL THEN NULL ELSE d.active_scene_id::text END as active_scene_id,
			CASE WHEN d.assigned_schedule_id IS NULL THEN NULL ELSE d.assigned_schedule_id::text END as assigned_schedule_id,
			CASE WHEN d.assigned_layout_id IS NULL THEN NULL ELSE d.assigned_layout_id::text END as assigned_layout_id,
			CASE WHEN d.assigned_playlist_id IS NULL THEN NULL ELSE d.assigned_playlist_id::text END as assigned_playlist_id,
			d.last_seen_at,
			d.is_online
		FROM devices d
		WHERE d.device_id = $1`

	var dev domain.Device
	err := r.db.QueryRowContext(ctx, q, deviceID).Scan(
		&dev.DeviceID,
		&dev.TenantID,
		&dev.GroupID,
		&dev.LocationID,
		&dev.DeviceName,
		&dev.Timezone,
		&dev.DisplayLanguage,
		&dev.ActiveSceneID,
		&dev.AssignedScheduleID,
		&dev.AssignedLayoutID,
		&dev.AssignedPlaylistID,
		&dev.LastSeenAt,
		&dev.IsOnline,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("device %s: %w", deviceID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}
	return &dev, nil
}

func (r *PostgresDevicesRepo) UpdateHeartbeat(ctx context.Context, tenantID, deviceID string, seenAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE devices
		 SET last_seen_at = $1, is_online = true
		 WHERE tenant_id = $2 AND device_id = $3`,
		seenAt, tenantID, deviceID,
	)
	if err != nil {
		return fmt.Errorf("failed to update heartbeat: %w", err)
	}
	return nil
}

type PostgresGroupsRepo struct {
	db *sql.DB
}

func NewPostgresGroupsRepo(db *sql.DB) *PostgresGroupsRepo {
	return &PostgresGroupsRepo{db: db}
}

func (r *PostgresGroupsRepo) GetGroup(ctx context.Context, tenantID, groupID string) (*domain.ScreenGroup, error) {
	q := `
		SELECT
			g.group_id::text,
			g.tenant_id::text,
			g.group_name,
			CASE WHEN g.active_scene_id IS NULL THEN NULL ELSE g.active_scene_id::text END as active_scene_id,
			CASE WHEN g.assigned_schedule_id IS NULL THEN NULL ELSE g.assigned_schedule_id::text END as assigned_schedule_id,
			g.display_language
		FROM screen_groups g
		WHERE g.tenant_id = $1 AND g.group_id = $2`

	var grp domain.ScreenGroup
	err := r.db.QueryRowContext(ctx, q, tenantID, groupID).Scan(
		&grp.GroupID,
		&grp.TenantID,
		&grp.GroupName,
		&grp.ActiveSceneID,
		&grp.AssignedScheduleID,
		&grp.DisplayLanguage,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("screen group %s: %w", groupID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get screen group: %w", err)
	}
	return &grp, nil
}
