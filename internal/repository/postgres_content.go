package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

type PostgresContentRepo struct {
	db *sql.DB
}

func NewPostgresContentRepo(db *sql.DB) *PostgresContentRepo {
	return &PostgresContentRepo{db: db}
}

// GetLayout 读取 layout 及其全部 zones（按 position 排序）
func (r *PostgresContentRepo) GetLayout(ctx context.Context, tenantID, layoutID string) (*domain.Layout, error) {
	var lay domain.Layout
	err := r.db.QueryRowContext(ctx,
		`SELECT l.layout_id::text, l.tenant_id::text, l.layout_name
		 FROM layouts l
		 WHERE l.tenant_id = $1 AND l.layout_id = $2`,
		tenantID, layoutID,
	).Scan(&lay.LayoutID, &lay.TenantID, &lay.LayoutName)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("layout %s: %w", layoutID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT
			z.zone_id::text,
			z.layout_id::text,
			z.zone_name,
			z.x, z.y, z.width, z.height,
			z.content_kind,
			CASE WHEN z.content_id IS NULL THEN NULL ELSE z.content_id::text END as content_id,
			z.position
		 FROM layout_zones z
		 WHERE z.layout_id = $1
		 ORDER BY z.position ASC`,
		layoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list layout zones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var z domain.LayoutZone
		if err := rows.Scan(
			&z.ZoneID, &z.LayoutID, &z.ZoneName,
			&z.X, &z.Y, &z.Width, &z.Height,
			&z.ContentKind, &z.ContentID, &z.Position,
		); err != nil {
			return nil, fmt.Errorf("failed to scan layout zone: %w", err)
		}
		lay.Zones = append(lay.Zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate layout zones: %w", err)
	}
	return &lay, nil
}

// GetPlaylist 读取 playlist 及其有序 items（JOIN media 元数据）
func (r *PostgresContentRepo) GetPlaylist(ctx context.Context, tenantID, playlistID string) (*domain.Playlist, error) {
	var pl domain.Playlist
	err := r.db.QueryRowContext(ctx,
		`SELECT p.playlist_id::text, p.tenant_id::text, p.playlist_name
		 FROM playlists p
		 WHERE p.tenant_id = $1 AND p.playlist_id = $2`,
		tenantID, playlistID,
	).Scan(&pl.PlaylistID, &pl.TenantID, &pl.PlaylistName)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("playlist %s: %w", playlistID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT
			i.item_id::text,
			i.playlist_id::text,
			i.media_id::text,
			i.position,
			i.duration_seconds,
			m.media_name,
			m.media_type,
			m.media_url
		 FROM playlist_items i
		 JOIN media m ON m.media_id = i.media_id
		 WHERE i.playlist_id = $1
		 ORDER BY i.position ASC`,
		playlistID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlist items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.PlaylistItem
		if err := rows.Scan(
			&it.ItemID, &it.PlaylistID, &it.MediaID, &it.Position,
			&it.DurationSeconds,
			&it.MediaName, &it.MediaType, &it.MediaURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan playlist item: %w", err)
		}
		pl.Items = append(pl.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate playlist items: %w", err)
	}
	return &pl, nil
}

func (r *PostgresContentRepo) GetMedia(ctx context.Context, tenantID, mediaID string) (*domain.Media, error) {
	var m domain.Media
	err := r.db.QueryRowContext(ctx,
		`SELECT m.media_id::text, m.tenant_id::text, m.media_name, m.media_type, m.media_url, m.duration_seconds
		 FROM media m
		 WHERE m.tenant_id = $1 AND m.media_id = $2`,
		tenantID, mediaID,
	).Scan(&m.MediaID, &m.TenantID, &m.MediaName, &m.MediaType, &m.MediaURL, &m.DurationSeconds)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("media %s: %w", mediaID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media: %w", err)
	}
	return &m, nil
}
