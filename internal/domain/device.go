package domain

import (
	"database/sql"
	"time"
)

// DefaultLanguage 未配置显示语言时的默认值
const DefaultLanguage = "en"

// Device 屏幕设备领域模型（对应 devices 表）
// 播放端轮询的主体；group/location 为可选的多对一关联
type Device struct {
	// 主键和租户
	DeviceID string `db:"device_id"`
	TenantID string `db:"tenant_id"` // NOT NULL

	// 可选关联
	GroupID    sql.NullString `db:"group_id"`    // nullable
	LocationID sql.NullString `db:"location_id"` // nullable

	// 标识
	DeviceName string `db:"device_name"` // NOT NULL

	// 播放环境
	Timezone        sql.NullString `db:"timezone"`         // nullable, IANA 名称，默认 UTC
	DisplayLanguage sql.NullString `db:"display_language"` // nullable, 设备级语言覆盖

	// 手动覆盖/排期/静态兜底
	ActiveSceneID      sql.NullString `db:"active_scene_id"`      // nullable, 手动场景覆盖
	AssignedScheduleID sql.NullString `db:"assigned_schedule_id"` // nullable
	AssignedLayoutID   sql.NullString `db:"assigned_layout_id"`   // nullable
	AssignedPlaylistID sql.NullString `db:"assigned_playlist_id"` // nullable

	// 在线状态（由轮询心跳维护）
	LastSeenAt sql.NullTime `db:"last_seen_at"` // nullable
	IsOnline   bool         `db:"is_online"`    // NOT NULL, default false
}

// Location 返回设备时区；未配置或非法时回退 UTC
func (d *Device) Location() *time.Location {
	if d.Timezone.Valid && d.Timezone.String != "" {
		if loc, err := time.LoadLocation(d.Timezone.String); err == nil {
			return loc
		}
	}
	return time.UTC
}

// ResolvedLanguage 解析显示语言：设备自身 > 分组 > 默认 "en"
func (d *Device) ResolvedLanguage(group *ScreenGroup) string {
	if d.DisplayLanguage.Valid && d.DisplayLanguage.String != "" {
		return d.DisplayLanguage.String
	}
	if group != nil && group.DisplayLanguage.Valid && group.DisplayLanguage.String != "" {
		return group.DisplayLanguage.String
	}
	return DefaultLanguage
}

// ScreenGroup 屏幕分组领域模型（对应 screen_groups 表）
// 设备仅在自身字段未设置时继承分组的语言/排期
type ScreenGroup struct {
	GroupID  string `db:"group_id"`
	TenantID string `db:"tenant_id"` // NOT NULL

	GroupName string `db:"group_name"` // NOT NULL

	ActiveSceneID      sql.NullString `db:"active_scene_id"`      // nullable, 分组级场景覆盖
	AssignedScheduleID sql.NullString `db:"assigned_schedule_id"` // nullable
	DisplayLanguage    sql.NullString `db:"display_language"`     // nullable
}
