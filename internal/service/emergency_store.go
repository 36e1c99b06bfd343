package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
	"github.com/massimodamico86-art/bizscreen-sub004/internal/repository"
)

// RefreshNotifier 播放端 refresh 提示发布方（可选；MQTT 实现见 internal/mqtt）
type RefreshNotifier interface {
	PublishRefresh(tenantID, reason string)
}

// NotifyingEmergencyStore 实现 resolver.EmergencySource：
// 清除过期紧急播报后向该租户的屏幕发布 refresh 提示，
// 让其余屏幕不必等到下个轮询周期才脱离紧急内容
type NotifyingEmergencyStore struct {
	repo     repository.EmergencyRepository
	notifier RefreshNotifier // 可为 nil
	logger   *zap.Logger
}

func NewNotifyingEmergencyStore(repo repository.EmergencyRepository, notifier RefreshNotifier, logger *zap.Logger) *NotifyingEmergencyStore {
	return &NotifyingEmergencyStore{repo: repo, notifier: notifier, logger: logger}
}

func (s *NotifyingEmergencyStore) GetEmergencyState(ctx context.Context, tenantID string) (*domain.EmergencyState, error) {
	return s.repo.GetEmergencyState(ctx, tenantID)
}

func (s *NotifyingEmergencyStore) ClearEmergencyState(ctx context.Context, tenantID string) error {
	if err := s.repo.ClearEmergencyState(ctx, tenantID); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.PublishRefresh(tenantID, "emergency_cleared")
	}
	return nil
}
