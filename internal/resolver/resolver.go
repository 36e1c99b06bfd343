package resolver

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

// 解析来源（命中层级标记）
const (
	SourceEmergency        = "emergency"
	SourceCampaign         = "campaign"
	SourceDeviceOverride   = "device_override"
	SourceGroupOverride    = "group_override"
	SourceSchedule         = "schedule"
	SourceLegacySchedule   = "legacy_schedule"
	SourceAssignedLayout   = "assigned_layout"
	SourceAssignedPlaylist = "assigned_playlist"
	SourceNone             = "none"
)

// 播放模式
const (
	ModeLayout   = "layout"
	ModePlaylist = "playlist"
	ModeEmpty    = "empty"
)

// RandSource 可注入的随机源（加权轮换使用；测试可固定）
type RandSource interface {
	// Float64 返回 [0, 1) 区间的均匀分布值
	Float64() float64
}

// LanguageResolver 语言变体解析协作方（黑盒）
// 返回目标语言对应的场景变体 id；无变体时返回原 id
type LanguageResolver interface {
	ResolveVariant(ctx context.Context, tenantID, sceneID, languageCode string) (string, error)
}

// SceneSource 场景读取
type SceneSource interface {
	GetScene(ctx context.Context, tenantID, sceneID string) (*domain.Scene, error)
}

// ScheduleSource 排期条目读取（启用条目，priority DESC 排序）
type ScheduleSource interface {
	ListEntries(ctx context.Context, scheduleID string) ([]*domain.ScheduleEntry, error)
}

// CampaignSource 活动读取（active/scheduled，预载 targets/contents）
type CampaignSource interface {
	ListRunnableCampaigns(ctx context.Context, tenantID string) ([]*domain.Campaign, error)
}

// EmergencySource 租户紧急播报状态读取/清除
type EmergencySource interface {
	GetEmergencyState(ctx context.Context, tenantID string) (*domain.EmergencyState, error)
	ClearEmergencyState(ctx context.Context, tenantID string) error
}

// ContentRef 内容引用
type ContentRef struct {
	Kind string // layout/playlist/media
	ID   string
}

// Resolution 解析结果（中间形态，由 service 层展开为完整响应）
type Resolution struct {
	Mode     string // layout/playlist/empty（media 命中归入 playlist 模式，包装为单条目列表）
	Source   string
	Language string // 解析后的显示语言

	Content *ContentRef // Mode=empty 时为 nil

	// 场景命中时附带
	SceneID       string
	SceneName     string
	SceneLanguage string

	// 活动命中时附带
	CampaignID   string
	CampaignName string
}

// Resolver 播放内容解析引擎
// 固定层级顺序，命中即终止：
// Emergency → Campaign → DeviceOverride → GroupOverride → ScheduleScene
// → LegacyEntry → AssignedLayout → AssignedPlaylist → Empty
type Resolver struct {
	scenes    SceneSource
	schedules ScheduleSource
	campaigns CampaignSource
	emergency EmergencySource
	language  LanguageResolver // 可为 nil（不做变体替换）
	rand      RandSource
	logger    *zap.Logger
}

// New 创建解析引擎
func New(
	scenes SceneSource,
	schedules ScheduleSource,
	campaigns CampaignSource,
	emergency EmergencySource,
	language LanguageResolver,
	rand RandSource,
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		scenes:    scenes,
		schedules: schedules,
		campaigns: campaigns,
		emergency: emergency,
		language:  language,
		rand:      rand,
		logger:    logger,
	}
}

// Resolve 解析屏幕当前应播放的内容
// 只读计算（唯一副作用：观察到紧急播报过期时清除）；永远返回结果，
// 各层内部错误降级为"该层不命中"
func (r *Resolver) Resolve(ctx context.Context, device *domain.Device, group *domain.ScreenGroup, now time.Time) *Resolution {
	lang := device.ResolvedLanguage(group)
	nowLocal := now.In(device.Location())

	if res := r.resolveEmergency(ctx, device.TenantID, now, lang); res != nil {
		return res
	}
	if res := r.resolveCampaign(ctx, device, nowLocal, lang); res != nil {
		return res
	}
	if device.ActiveSceneID.Valid && device.ActiveSceneID.String != "" {
		if res := r.resolveSceneContent(ctx, device.TenantID, device.ActiveSceneID.String, lang, SourceDeviceOverride); res != nil {
			return res
		}
	}
	if group != nil && group.ActiveSceneID.Valid && group.ActiveSceneID.String != "" {
		if res := r.resolveSceneContent(ctx, device.TenantID, group.ActiveSceneID.String, lang, SourceGroupOverride); res != nil {
			return res
		}
	}
	if res := r.resolveScheduleScene(ctx, device, group, nowLocal, lang); res != nil {
		return res
	}
	if res := r.resolveLegacyEntry(ctx, device, group, nowLocal, lang); res != nil {
		return res
	}
	if device.AssignedLayoutID.Valid && device.AssignedLayoutID.String != "" {
		return &Resolution{
			Mode:     ModeLayout,
			Source:   SourceAssignedLayout,
			Language: lang,
			Content:  &ContentRef{Kind: domain.ContentKindLayout, ID: device.AssignedLayoutID.String},
		}
	}
	if device.AssignedPlaylistID.Valid && device.AssignedPlaylistID.String != "" {
		return &Resolution{
			Mode:     ModePlaylist,
			Source:   SourceAssignedPlaylist,
			Language: lang,
			Content:  &ContentRef{Kind: domain.ContentKindPlaylist, ID: device.AssignedPlaylistID.String},
		}
	}
	return &Resolution{Mode: ModeEmpty, Source: SourceNone, Language: lang}
}

// modeFor 内容类型到播放模式的映射；media 包装为单条目播放列表
func modeFor(contentKind string) string {
	switch contentKind {
	case domain.ContentKindLayout:
		return ModeLayout
	case domain.ContentKindPlaylist, domain.ContentKindMedia:
		return ModePlaylist
	}
	return ModeEmpty
}
