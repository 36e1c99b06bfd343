package resolver

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

// effectiveScheduleID 设备自身排期优先，其次继承分组排期
func effectiveScheduleID(device *domain.Device, group *domain.ScreenGroup) string {
	if device.AssignedScheduleID.Valid && device.AssignedScheduleID.String != "" {
		return device.AssignedScheduleID.String
	}
	if group != nil && group.AssignedScheduleID.Valid && group.AssignedScheduleID.String != "" {
		return group.AssignedScheduleID.String
	}
	return ""
}

// resolveScheduleScene 排期场景层：按设备本地时间/星期匹配 scene 类型条目
// 条目已按 priority DESC 排序，取第一条命中的；其场景走语言变体替换
func (r *Resolver) resolveScheduleScene(ctx context.Context, device *domain.Device, group *domain.ScreenGroup, nowLocal time.Time, lang string) *Resolution {
	entries := r.listScheduleEntries(ctx, device, group)
	for _, e := range entries {
		if e.Kind != domain.ContentKindScene || !e.ContentID.Valid || e.ContentID.String == "" {
			continue
		}
		if !windowFromEntry(e).MatchesAt(nowLocal) {
			continue
		}
		return r.resolveSceneContent(ctx, device.TenantID, e.ContentID.String, lang, SourceSchedule)
	}
	return nil
}

// resolveLegacyEntry 旧式直接内容条目层（playlist/layout/media）
// 按 screen/screen_group/all 寻址，不做语言变体替换；
// media 命中由装配层包装为单条目播放列表
func (r *Resolver) resolveLegacyEntry(ctx context.Context, device *domain.Device, group *domain.ScreenGroup, nowLocal time.Time, lang string) *Resolution {
	entries := r.listScheduleEntries(ctx, device, group)
	for _, e := range entries {
		switch e.Kind {
		case domain.ContentKindPlaylist, domain.ContentKindLayout, domain.ContentKindMedia:
		default:
			continue
		}
		if !e.ContentID.Valid || e.ContentID.String == "" {
			continue
		}
		if !e.AppliesTo(device) {
			continue
		}
		if !windowFromEntry(e).MatchesAt(nowLocal) {
			continue
		}
		return &Resolution{
			Mode:     modeFor(e.Kind),
			Source:   SourceLegacySchedule,
			Language: lang,
			Content:  &ContentRef{Kind: e.Kind, ID: e.ContentID.String},
		}
	}
	return nil
}

func (r *Resolver) listScheduleEntries(ctx context.Context, device *domain.Device, group *domain.ScreenGroup) []*domain.ScheduleEntry {
	scheduleID := effectiveScheduleID(device, group)
	if scheduleID == "" {
		return nil
	}
	entries, err := r.schedules.ListEntries(ctx, scheduleID)
	if err != nil {
		r.logger.Warn("schedule tier skipped",
			zap.String("device_id", device.DeviceID),
			zap.String("schedule_id", scheduleID),
			zap.Error(err),
		)
		return nil
	}
	return entries
}
