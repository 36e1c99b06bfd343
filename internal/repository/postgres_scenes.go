package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

type PostgresScenesRepo struct {
	db *sql.DB
}

func NewPostgresScenesRepo(db *sql.DB) *PostgresScenesRepo {
	return &PostgresScenesRepo{db: db}
}

func (r *PostgresScenesRepo) GetScene(ctx context.Context, tenantID, sceneID string) (*domain.Scene, error) {
	q := `
		SELECT
			s.scene_id::text,
			s.tenant_id::text,
			s.scene_name,
			CASE WHEN s.layout_id IS NULL THEN NULL ELSE s.layout_id::text END as layout_id,
			CASE WHEN s.primary_playlist_id IS NULL THEN NULL ELSE s.primary_playlist_id::text END as primary_playlist_id,
			s.is_active,
			CASE WHEN s.language_group_id IS NULL THEN NULL ELSE s.language_group_id::text END as language_group_id,
			COALESCE(s.language_code, 'en') as language_code
		FROM scenes s
		WHERE s.tenant_id = $1 AND s.scene_id = $2`

	var sc domain.Scene
	err := r.db.QueryRowContext(ctx, q, tenantID, sceneID).Scan(
		&sc.SceneID,
		&sc.TenantID,
		&sc.SceneName,
		&sc.LayoutID,
		&sc.PrimaryPlaylistID,
		&sc.IsActive,
		&sc.LanguageGroupID,
		&sc.LanguageCode,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scene %s: %w", sceneID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scene: %w", err)
	}
	return &sc, nil
}
