package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

type PostgresSchedulesRepo struct {
	db *sql.DB
}

func NewPostgresSchedulesRepo(db *sql.DB) *PostgresSchedulesRepo {
	return &PostgresSchedulesRepo{db: db}
}

func (r *PostgresSchedulesRepo) ListEntries(ctx context.Context, scheduleID string) ([]*domain.ScheduleEntry, error) {
	q := `
		SELECT
			e.entry_id::text,
			e.schedule_id::text,
			e.kind,
			CASE WHEN e.content_id IS NULL THEN NULL ELSE e.content_id::text END as content_id,
			e.target_kind,
			CASE WHEN e.target_id IS NULL THEN NULL ELSE e.target_id::text END as target_id,
			e.is_active,
			COALESCE(e.priority, 0) as priority,
			e.days_of_week,
			e.start_time::text,
			e.end_time::text
		FROM schedule_entries e
		WHERE e.schedule_id = $1 AND e.is_active = true
		ORDER BY e.priority DESC, e.entry_id ASC`

	rows, err := r.db.QueryContext(ctx, q, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ScheduleEntry
	for rows.Next() {
		var e domain.ScheduleEntry
		var days pq.Int64Array
		if err := rows.Scan(
			&e.EntryID,
			&e.ScheduleID,
			&e.Kind,
			&e.ContentID,
			&e.TargetKind,
			&e.TargetID,
			&e.IsActive,
			&e.Priority,
			&days,
			&e.StartTime,
			&e.EndTime,
		); err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		e.DaysOfWeek = []int64(days)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedule entries: %w", err)
	}
	return entries, nil
}
