package repository

import (
	"context"
	"time"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

// DevicesRepository 设备Repository接口
// 使用强类型领域模型，不使用map[string]any
type DevicesRepository interface {
	// 播放端轮询只携带 screen id，调用方负责授权，这里不做租户过滤
	GetDevice(ctx context.Context, deviceID string) (*domain.Device, error)

	// 心跳（幂等，last-write-wins）
	UpdateHeartbeat(ctx context.Context, tenantID, deviceID string, seenAt time.Time) error
}

// GroupsRepository 屏幕分组Repository接口
type GroupsRepository interface {
	GetGroup(ctx context.Context, tenantID, groupID string) (*domain.ScreenGroup, error)
}
