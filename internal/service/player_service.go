package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
	"github.com/massimodamico86-art/bizscreen-sub004/internal/repository"
	"github.com/massimodamico86-art/bizscreen-sub004/internal/resolver"
	"github.com/massimodamico86-art/bizscreen-sub004/internal/store"
)

// ErrDanglingReference 紧急播报指向已删除的内容
// 紧急层命中后不允许回落到后续层级，装配失败必须显式上抛
var ErrDanglingReference = errors.New("emergency content reference is dangling")

// PlayerService 播放端服务接口
type PlayerService interface {
	// 解析屏幕当前应播放的内容（含心跳副作用）
	ResolveContent(ctx context.Context, req ResolveContentRequest) (*PlayerContent, error)

	// 仅心跳
	Heartbeat(ctx context.Context, screenID string) error
}

// ResolveContentRequest 内容解析请求
type ResolveContentRequest struct {
	ScreenID string // 必填
}

// PlayerContent 解析结果（mode ≠ empty 时 layout/playlist 恰有其一）
type PlayerContent struct {
	Mode   string `json:"mode"`   // layout/playlist/empty
	Source string `json:"source"` // 命中层级标记

	Device   DeviceInfo       `json:"device"`
	Campaign *CampaignInfo    `json:"campaign,omitempty"`
	Scene    *SceneInfo       `json:"scene,omitempty"`
	Layout   *LayoutPayload   `json:"layout,omitempty"`
	Playlist *PlaylistPayload `json:"playlist,omitempty"`
}

// DeviceInfo 响应中的设备信息
type DeviceInfo struct {
	ID               string `json:"id"`
	Timezone         string `json:"timezone"`
	ResolvedLanguage string `json:"resolved_language"`
}

// CampaignInfo 活动命中信息
type CampaignInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SceneInfo 场景命中信息
type SceneInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	LanguageCode string `json:"language_code"`
}

// LayoutPayload 展开后的版式
type LayoutPayload struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Zones []ZonePayload `json:"zones"`
}

// ZonePayload 版式分区
type ZonePayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ContentKind string `json:"content_kind,omitempty"`
	ContentID   string `json:"content_id,omitempty"`
	Position    int    `json:"position"`
}

// PlaylistPayload 展开后的播放列表
type PlaylistPayload struct {
	ID    string                `json:"id"`
	Name  string                `json:"name"`
	Items []PlaylistItemPayload `json:"items"`
}

// PlaylistItemPayload 播放列表条目（含媒体元数据）
type PlaylistItemPayload struct {
	ID              string `json:"id"`
	MediaID         string `json:"media_id"`
	Position        int    `json:"position"`
	DurationSeconds *int64 `json:"duration_seconds,omitempty"`
	MediaName       string `json:"media_name"`
	MediaType       string `json:"media_type"`
	MediaURL        string `json:"media_url"`
}

// playerService 实现
type playerService struct {
	devices  repository.DevicesRepository
	groups   repository.GroupsRepository
	content  repository.ContentRepository
	resolver *resolver.Resolver
	presence *store.Presence // 可为 nil
	logger   *zap.Logger
	clock    func() time.Time
}

// NewPlayerService 创建 PlayerService 实例
// clock 为 nil 时使用 time.Now（测试注入固定时钟）
func NewPlayerService(
	devices repository.DevicesRepository,
	groups repository.GroupsRepository,
	content repository.ContentRepository,
	res *resolver.Resolver,
	presence *store.Presence,
	logger *zap.Logger,
	clock func() time.Time,
) PlayerService {
	if clock == nil {
		clock = time.Now
	}
	return &playerService{
		devices:  devices,
		groups:   groups,
		content:  content,
		resolver: res,
		presence: presence,
		logger:   logger,
		clock:    clock,
	}
}

func (s *playerService) ResolveContent(ctx context.Context, req ResolveContentRequest) (*PlayerContent, error) {
	device, err := s.devices.GetDevice(ctx, req.ScreenID)
	if err != nil {
		return nil, err
	}
	now := s.clock()

	s.recordHeartbeat(ctx, device, now)

	var group *domain.ScreenGroup
	if device.GroupID.Valid && device.GroupID.String != "" {
		g, err := s.groups.GetGroup(ctx, device.TenantID, device.GroupID.String)
		if err != nil {
			// 分组残引用不阻断解析，设备按无分组处理
			s.logger.Warn("screen group unavailable",
				zap.String("device_id", device.DeviceID),
				zap.String("group_id", device.GroupID.String),
				zap.Error(err),
			)
		} else {
			group = g
		}
	}

	res := s.resolver.Resolve(ctx, device, group, now)
	return s.assemble(ctx, device, res)
}

func (s *playerService) Heartbeat(ctx context.Context, screenID string) error {
	device, err := s.devices.GetDevice(ctx, screenID)
	if err != nil {
		return err
	}
	now := s.clock()
	if err := s.devices.UpdateHeartbeat(ctx, device.TenantID, device.DeviceID, now); err != nil {
		return err
	}
	if s.presence != nil {
		if err := s.presence.MarkOnline(ctx, device.DeviceID, now); err != nil {
			s.logger.Warn("presence mark failed", zap.String("device_id", device.DeviceID), zap.Error(err))
		}
	}
	return nil
}

// recordHeartbeat 解析路径上的心跳副作用：幂等，失败仅记录
func (s *playerService) recordHeartbeat(ctx context.Context, device *domain.Device, now time.Time) {
	if err := s.devices.UpdateHeartbeat(ctx, device.TenantID, device.DeviceID, now); err != nil {
		s.logger.Warn("heartbeat update failed",
			zap.String("device_id", device.DeviceID),
			zap.Error(err),
		)
	}
	if s.presence != nil {
		if err := s.presence.MarkOnline(ctx, device.DeviceID, now); err != nil {
			s.logger.Warn("presence mark failed",
				zap.String("device_id", device.DeviceID),
				zap.Error(err),
			)
		}
	}
}

// assemble 将解析结果展开为完整响应
func (s *playerService) assemble(ctx context.Context, device *domain.Device, res *resolver.Resolution) (*PlayerContent, error) {
	out := &PlayerContent{
		Mode:   res.Mode,
		Source: res.Source,
		Device: DeviceInfo{
			ID:               device.DeviceID,
			Timezone:         device.Location().String(),
			ResolvedLanguage: res.Language,
		},
	}
	if res.CampaignID != "" {
		out.Campaign = &CampaignInfo{ID: res.CampaignID, Name: res.CampaignName}
	}
	if res.SceneID != "" {
		out.Scene = &SceneInfo{ID: res.SceneID, Name: res.SceneName, LanguageCode: res.SceneLanguage}
	}
	if res.Content == nil {
		return out, nil
	}

	switch res.Content.Kind {
	case domain.ContentKindLayout:
		lay, err := s.content.GetLayout(ctx, device.TenantID, res.Content.ID)
		if err != nil {
			return s.expansionFailure(device, res, err)
		}
		out.Layout = layoutPayload(lay)
	case domain.ContentKindPlaylist:
		pl, err := s.content.GetPlaylist(ctx, device.TenantID, res.Content.ID)
		if err != nil {
			return s.expansionFailure(device, res, err)
		}
		out.Playlist = playlistPayload(pl)
	case domain.ContentKindMedia:
		m, err := s.content.GetMedia(ctx, device.TenantID, res.Content.ID)
		if err != nil {
			return s.expansionFailure(device, res, err)
		}
		out.Playlist = mediaAsPlaylist(m)
	default:
		return s.expansionFailure(device, res, fmt.Errorf("unknown content kind %q", res.Content.Kind))
	}
	return out, nil
}

// expansionFailure 内容展开失败的降级策略
// 紧急播报必须"压倒一切"，指向已删内容时显式报错而不是静默回落；
// 其余层级降级为空结果，播放端展示空白优于报错黑屏
func (s *playerService) expansionFailure(device *domain.Device, res *resolver.Resolution, err error) (*PlayerContent, error) {
	if res.Source == resolver.SourceEmergency {
		return nil, fmt.Errorf("%w: %v", ErrDanglingReference, err)
	}
	s.logger.Warn("content expansion failed, returning empty result",
		zap.String("device_id", device.DeviceID),
		zap.String("source", res.Source),
		zap.String("content_kind", res.Content.Kind),
		zap.String("content_id", res.Content.ID),
		zap.Error(err),
	)
	return &PlayerContent{
		Mode:   resolver.ModeEmpty,
		Source: resolver.SourceNone,
		Device: DeviceInfo{
			ID:               device.DeviceID,
			Timezone:         device.Location().String(),
			ResolvedLanguage: res.Language,
		},
	}, nil
}

func layoutPayload(lay *domain.Layout) *LayoutPayload {
	out := &LayoutPayload{
		ID:    lay.LayoutID,
		Name:  lay.LayoutName,
		Zones: make([]ZonePayload, 0, len(lay.Zones)),
	}
	for _, z := range lay.Zones {
		zp := ZonePayload{
			ID:       z.ZoneID,
			Name:     z.ZoneName,
			X:        z.X,
			Y:        z.Y,
			Width:    z.Width,
			Height:   z.Height,
			Position: z.Position,
		}
		if z.ContentKind.Valid {
			zp.ContentKind = z.ContentKind.String
		}
		if z.ContentID.Valid {
			zp.ContentID = z.ContentID.String
		}
		out.Zones = append(out.Zones, zp)
	}
	return out
}

func playlistPayload(pl *domain.Playlist) *PlaylistPayload {
	out := &PlaylistPayload{
		ID:    pl.PlaylistID,
		Name:  pl.PlaylistName,
		Items: make([]PlaylistItemPayload, 0, len(pl.Items)),
	}
	for _, it := range pl.Items {
		item := PlaylistItemPayload{
			ID:        it.ItemID,
			MediaID:   it.MediaID,
			Position:  it.Position,
			MediaName: it.MediaName,
			MediaType: it.MediaType,
			MediaURL:  it.MediaURL,
		}
		if it.DurationSeconds.Valid {
			d := it.DurationSeconds.Int64
			item.DurationSeconds = &d
		}
		out.Items = append(out.Items, item)
	}
	return out
}

// mediaAsPlaylist 将单个媒体包装为单条目播放列表形态
// （legacy media 条目与紧急/活动的 media 内容共用播放端渲染路径）
func mediaAsPlaylist(m *domain.Media) *PlaylistPayload {
	item := PlaylistItemPayload{
		ID:        m.MediaID,
		MediaID:   m.MediaID,
		Position:  0,
		MediaName: m.MediaName,
		MediaType: m.MediaType,
		MediaURL:  m.MediaURL,
	}
	if m.DurationSeconds.Valid {
		d := m.DurationSeconds.Int64
		item.DurationSeconds = &d
	}
	return &PlaylistPayload{
		ID:    m.MediaID,
		Name:  m.MediaName,
		Items: []PlaylistItemPayload{item},
	}
}
