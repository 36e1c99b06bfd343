package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

func TestListRunnableCampaigns(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresCampaignsRepo(db)

	tenantID := uuid.New().String()
	campaignID := uuid.New().String()
	targetID := uuid.New().String()
	groupID := uuid.New().String()
	contentRowID := uuid.New().String()
	playlistID := uuid.New().String()
	startsAt := time.Now().Add(-time.Hour)

	campaignRows := sqlmock.NewRows([]string{
		"campaign_id", "tenant_id", "campaign_name", "status", "starts_at", "ends_at", "priority",
	}).AddRow(campaignID, tenantID, "Summer Sale", domain.CampaignStatusActive, startsAt, nil, 50)

	mock.ExpectQuery(`FROM campaigns`).
		WithArgs(tenantID, pq.Array([]string{domain.CampaignStatusActive, domain.CampaignStatusScheduled})).
		WillReturnRows(campaignRows)

	targetRows := sqlmock.NewRows([]string{
		"target_id", "campaign_id", "target_kind", "target_ref_id",
	}).AddRow(targetID, campaignID, domain.TargetKindScreenGroup, groupID)

	mock.ExpectQuery(`FROM campaign_targets`).
		WithArgs(pq.Array([]string{campaignID})).
		WillReturnRows(targetRows)

	contentRows := sqlmock.NewRows([]string{
		"id", "campaign_id", "content_kind", "content_id", "weight", "position",
	}).AddRow(contentRowID, campaignID, domain.ContentKindPlaylist, playlistID, 3, 0)

	mock.ExpectQuery(`FROM campaign_contents`).
		WithArgs(pq.Array([]string{campaignID})).
		WillReturnRows(contentRows)

	campaigns, err := repo.ListRunnableCampaigns(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, campaigns, 1)

	c := campaigns[0]
	assert.Equal(t, "Summer Sale", c.CampaignName)
	assert.Equal(t, domain.CampaignStatusActive, c.Status)
	assert.Equal(t, 50, c.Priority)
	assert.True(t, c.StartsAt.Valid)
	assert.False(t, c.EndsAt.Valid)

	require.Len(t, c.Targets, 1)
	assert.Equal(t, domain.TargetKindScreenGroup, c.Targets[0].TargetKind)
	assert.Equal(t, groupID, c.Targets[0].TargetRefID.String)

	require.Len(t, c.Contents, 1)
	assert.Equal(t, domain.ContentKindPlaylist, c.Contents[0].ContentKind)
	assert.Equal(t, playlistID, c.Contents[0].ContentID)
	assert.Equal(t, 3, c.Contents[0].Weight)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRunnableCampaignsEmpty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresCampaignsRepo(db)

	tenantID := uuid.New().String()
	rows := sqlmock.NewRows([]string{
		"campaign_id", "tenant_id", "campaign_name", "status", "starts_at", "ends_at", "priority",
	})
	mock.ExpectQuery(`FROM campaigns`).
		WithArgs(tenantID, pq.Array([]string{domain.CampaignStatusActive, domain.CampaignStatusScheduled})).
		WillReturnRows(rows)

	campaigns, err := repo.ListRunnableCampaigns(context.Background(), tenantID)
	require.NoError(t, err)
	assert.Empty(t, campaigns)

	// targets/contents 查询不应发生
	require.NoError(t, mock.ExpectationsWereMet())
}
