package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

type recordingNotifier struct {
	tenants []string
	reasons []string
}

func (n *recordingNotifier) PublishRefresh(tenantID, reason string) {
	n.tenants = append(n.tenants, tenantID)
	n.reasons = append(n.reasons, reason)
}

func TestNotifyingEmergencyStorePublishesOnClear(t *testing.T) {
	repo := &stubEmergency{state: &domain.EmergencyState{
		TenantID:    "tenant-1",
		ContentKind: domain.ContentKindMedia,
		ContentID:   "media-1",
		StartedAt:   time.Now(),
	}}
	notifier := &recordingNotifier{}
	store := NewNotifyingEmergencyStore(repo, notifier, zap.NewNop())

	require.NoError(t, store.ClearEmergencyState(context.Background(), "tenant-1"))

	assert.Equal(t, []string{"tenant-1"}, notifier.tenants)
	assert.Equal(t, []string{"emergency_cleared"}, notifier.reasons)
	assert.Nil(t, repo.state)
}

func TestNotifyingEmergencyStoreNilNotifier(t *testing.T) {
	repo := &stubEmergency{state: &domain.EmergencyState{
		TenantID:    "tenant-1",
		ContentKind: domain.ContentKindMedia,
		ContentID:   "media-1",
		StartedAt:   time.Now(),
	}}
	store := NewNotifyingEmergencyStore(repo, nil, zap.NewNop())

	require.NoError(t, store.ClearEmergencyState(context.Background(), "tenant-1"))
	assert.Nil(t, repo.state)
}

func TestNotifyingEmergencyStorePassesThroughGet(t *testing.T) {
	state := &domain.EmergencyState{
		TenantID:    "tenant-1",
		ContentKind: domain.ContentKindPlaylist,
		ContentID:   "pl-1",
		StartedAt:   time.Now(),
	}
	store := NewNotifyingEmergencyStore(&stubEmergency{state: state}, nil, zap.NewNop())

	got, err := store.GetEmergencyState(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, state, got)
}
