package repository

import (
	"context"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

// SchedulesRepository 排期Repository接口
type SchedulesRepository interface {
	// 返回按 priority DESC, position 稳定排序的启用条目
	ListEntries(ctx context.Context, scheduleID string) ([]*domain.ScheduleEntry, error)
}

// CampaignsRepository 活动Repository接口
type CampaignsRepository interface {
	// 返回租户下 status ∈ {active, scheduled} 的活动，预载 targets 和 contents
	ListRunnableCampaigns(ctx context.Context, tenantID string) ([]*domain.Campaign, error)
}

// EmergencyRepository 租户紧急播报状态Repository接口
type EmergencyRepository interface {
	// 未设置紧急内容时返回 (nil, nil)
	GetEmergencyState(ctx context.Context, tenantID string) (*domain.EmergencyState, error)

	// 清除租户紧急字段（幂等）
	ClearEmergencyState(ctx context.Context, tenantID string) error
}
