package repository

import (
	"context"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

// ScenesRepository 场景Repository接口
type ScenesRepository interface {
	GetScene(ctx context.Context, tenantID, sceneID string) (*domain.Scene, error)
}

// ContentRepository 内容展开Repository接口（layout 含 zones，playlist 含有序 items）
type ContentRepository interface {
	GetLayout(ctx context.Context, tenantID, layoutID string) (*domain.Layout, error)
	GetPlaylist(ctx context.Context, tenantID, playlistID string) (*domain.Playlist, error)
	GetMedia(ctx context.Context, tenantID, mediaID string) (*domain.Media, error)
}
