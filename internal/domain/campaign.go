package domain

import (
	"database/sql"
	"time"
)

// 活动状态
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusScheduled = "scheduled"
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
	CampaignStatusPaused    = "paused"
)

// Campaign 营销活动领域模型（对应 campaigns 表）
// 仅 active/scheduled 参与解析，且时间窗口按屏幕时区判断
type Campaign struct {
	CampaignID   string `db:"campaign_id"`
	TenantID     string `db:"tenant_id"`
	CampaignName string `db:"campaign_name"`

	Status string `db:"status"` // NOT NULL, default 'draft'

	StartsAt sql.NullTime `db:"starts_at"` // nullable, null = 不限起点
	EndsAt   sql.NullTime `db:"ends_at"`   // nullable, null = 不限终点

	Priority int `db:"priority"` // NOT NULL, default 0，数值大者优先

	Targets  []CampaignTarget
	Contents []CampaignContent
}

// Runnable 状态是否参与解析
func (c *Campaign) Runnable() bool {
	return c.Status == CampaignStatusActive || c.Status == CampaignStatusScheduled
}

// InWindow 时间窗口判断；now 必须已转换到屏幕时区
func (c *Campaign) InWindow(now time.Time) bool {
	if c.StartsAt.Valid && c.StartsAt.Time.In(now.Location()).After(now) {
		return false
	}
	if c.EndsAt.Valid && !c.EndsAt.Time.In(now.Location()).After(now) {
		return false
	}
	return true
}

// CampaignTarget 活动投放目标（对应 campaign_targets 表）
type CampaignTarget struct {
	TargetID   string `db:"target_id"`
	CampaignID string `db:"campaign_id"`

	TargetKind  string         `db:"target_kind"`   // screen/screen_group/location/all
	TargetRefID sql.NullString `db:"target_ref_id"` // nullable（仅 kind=all 时为 null）
}

// CampaignContent 活动内容（对应 campaign_contents 表）
type CampaignContent struct {
	ID         string `db:"id"`
	CampaignID string `db:"campaign_id"`

	ContentKind string `db:"content_kind"` // playlist/layout/media
	ContentID   string `db:"content_id"`

	Weight   int `db:"weight"`   // default 1；<=0 不参与轮换
	Position int `db:"position"` // 确定性排序
}
