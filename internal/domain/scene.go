package domain

import "database/sql"

// 内容类型
const (
	ContentKindScene    = "scene"
	ContentKindLayout   = "layout"
	ContentKindPlaylist = "playlist"
	ContentKindMedia    = "media"
)

// Scene 场景领域模型（对应 scenes 表）
// 场景解析为 layout 或 playlist 二者之一（layout 优先）
type Scene struct {
	SceneID  string `db:"scene_id"`
	TenantID string `db:"tenant_id"` // NOT NULL

	SceneName string `db:"scene_name"` // NOT NULL

	LayoutID          sql.NullString `db:"layout_id"`           // nullable
	PrimaryPlaylistID sql.NullString `db:"primary_playlist_id"` // nullable

	IsActive bool `db:"is_active"` // NOT NULL, default true

	// 语言变体
	LanguageGroupID sql.NullString `db:"language_group_id"` // nullable, 同组互为变体
	LanguageCode    string         `db:"language_code"`     // NOT NULL, default 'en'
}

// ContentRef 返回场景指向的内容（layout 优先于 playlist）
// 两者都未设置时返回空 kind
func (s *Scene) ContentRef() (kind string, id string) {
	if s.LayoutID.Valid && s.LayoutID.String != "" {
		return ContentKindLayout, s.LayoutID.String
	}
	if s.PrimaryPlaylistID.Valid && s.PrimaryPlaylistID.String != "" {
		return ContentKindPlaylist, s.PrimaryPlaylistID.String
	}
	return "", ""
}

// Layout 版式领域模型（对应 layouts 表，展开 zones）
type Layout struct {
	LayoutID   string `db:"layout_id"`
	TenantID   string `db:"tenant_id"`
	LayoutName string `db:"layout_name"`

	Zones []LayoutZone
}

// LayoutZone 版式分区（对应 layout_zones 表）
type LayoutZone struct {
	ZoneID   string `db:"zone_id"`
	LayoutID string `db:"layout_id"`
	ZoneName string `db:"zone_name"`

	// 相对坐标（百分比 0-100）
	X      int `db:"x"`
	Y      int `db:"y"`
	Width  int `db:"width"`
	Height int `db:"height"`

	ContentKind sql.NullString `db:"content_kind"` // nullable（playlist/media）
	ContentID   sql.NullString `db:"content_id"`   // nullable
	Position    int            `db:"position"`
}

// Playlist 播放列表领域模型（对应 playlists 表，展开 items）
type Playlist struct {
	PlaylistID   string `db:"playlist_id"`
	TenantID     string `db:"tenant_id"`
	PlaylistName string `db:"playlist_name"`

	Items []PlaylistItem
}

// PlaylistItem 播放列表条目（对应 playlist_items 表，JOIN media 元数据）
type PlaylistItem struct {
	ItemID     string `db:"item_id"`
	PlaylistID string `db:"playlist_id"`
	MediaID    string `db:"media_id"`
	Position   int    `db:"position"`

	DurationSeconds sql.NullInt64 `db:"duration_seconds"` // nullable, 覆盖媒体默认时长

	// media JOIN 字段
	MediaName string `db:"media_name"`
	MediaType string `db:"media_type"` // image/video/web
	MediaURL  string `db:"media_url"`
}

// Media 媒体元数据（对应 media 表）
type Media struct {
	MediaID   string `db:"media_id"`
	TenantID  string `db:"tenant_id"`
	MediaName string `db:"media_name"`
	MediaType string `db:"media_type"`
	MediaURL  string `db:"media_url"`

	DurationSeconds sql.NullInt64 `db:"duration_seconds"` // nullable
}
