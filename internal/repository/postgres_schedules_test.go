package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

func TestListEntries(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresSchedulesRepo(db)

	scheduleID := uuid.New().String()
	entryID1 := uuid.New().String()
	entryID2 := uuid.New().String()
	sceneID := uuid.New().String()
	mediaID := uuid.New().String()

	rows := sqlmock.NewRows([]string{
		"entry_id", "schedule_id", "kind", "content_id", "target_kind",
		"target_id", "is_active", "priority", "days_of_week", "start_time", "end_time",
	}).AddRow(
		entryID1, scheduleID, domain.ContentKindScene, sceneID, nil,
		nil, true, 10, "{1,2,3,4,5}", "09:00:00", "18:00:00",
	).AddRow(
		entryID2, scheduleID, domain.ContentKindMedia, mediaID, domain.TargetKindAll,
		nil, true, 0, "{}", nil, nil,
	)

	mock.ExpectQuery(`SELECT`).WithArgs(scheduleID).WillReturnRows(rows)

	entries, err := repo.ListEntries(context.Background(), scheduleID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, entryID1, entries[0].EntryID)
	assert.Equal(t, domain.ContentKindScene, entries[0].Kind)
	assert.Equal(t, sceneID, entries[0].ContentID.String)
	assert.Equal(t, 10, entries[0].Priority)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, entries[0].DaysOfWeek)
	assert.Equal(t, "09:00:00", entries[0].StartTime.String)

	assert.Equal(t, domain.ContentKindMedia, entries[1].Kind)
	assert.Empty(t, entries[1].DaysOfWeek)
	assert.False(t, entries[1].StartTime.Valid)
	assert.False(t, entries[1].EndTime.Valid)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListEntriesEmpty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresSchedulesRepo(db)

	scheduleID := uuid.New().String()
	rows := sqlmock.NewRows([]string{
		"entry_id", "schedule_id", "kind", "content_id", "target_kind",
		"target_id", "is_active", "priority", "days_of_week", "start_time", "end_time",
	})
	mock.ExpectQuery(`SELECT`).WithArgs(scheduleID).WillReturnRows(rows)

	entries, err := repo.ListEntries(context.Background(), scheduleID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
