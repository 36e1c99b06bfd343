package resolver

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

// 投放目标精确度：数值小者优先
const (
	specificityScreen   = 1
	specificityGroup    = 2
	specificityLocation = 3
	specificityAll      = 4
)

// targetSpecificity 屏幕与活动目标的最精确匹配；0 = 不匹配
func targetSpecificity(device *domain.Device, targets []domain.CampaignTarget) int {
	best := 0
	for _, t := range targets {
		spec := 0
		switch t.TargetKind {
		case domain.TargetKindScreen:
			if t.TargetRefID.Valid && t.TargetRefID.String == device.DeviceID {
				spec = specificityScreen
			}
		case domain.TargetKindScreenGroup:
			if t.TargetRefID.Valid && device.GroupID.Valid && t.TargetRefID.String == device.GroupID.String {
				spec = specificityGroup
			}
		case domain.TargetKindLocation:
			if t.TargetRefID.Valid && device.LocationID.Valid && t.TargetRefID.String == device.LocationID.String {
				spec = specificityLocation
			}
		case domain.TargetKindAll:
			spec = specificityAll
		}
		if spec > 0 && (best == 0 || spec < best) {
			best = spec
		}
	}
	return best
}

// BestCampaign 选取屏幕当前最匹配的活动
// 过滤：状态 active/scheduled + 时间窗口（按屏幕时区）+ 至少一条目标命中；
// 排序：精确度优先（screen > group > location > all），同精确度 priority 大者优先
func BestCampaign(device *domain.Device, campaigns []*domain.Campaign, nowLocal time.Time) *domain.Campaign {
	var best *domain.Campaign
	bestSpec := 0
	for _, c := range campaigns {
		if !c.Runnable() || !c.InWindow(nowLocal) {
			continue
		}
		spec := targetSpecificity(device, c.Targets)
		if spec == 0 {
			continue
		}
		if best == nil || spec < bestSpec || (spec == bestSpec && c.Priority > best.Priority) {
			best = c
			bestSpec = spec
		}
	}
	return best
}

// resolveCampaign 活动层：选出最匹配活动后交给加权轮换
// 活动内容为空时该层不命中，继续后续层级
func (r *Resolver) resolveCampaign(ctx context.Context, device *domain.Device, nowLocal time.Time, lang string) *Resolution {
	campaigns, err := r.campaigns.ListRunnableCampaigns(ctx, device.TenantID)
	if err != nil {
		r.logger.Warn("campaign tier skipped",
			zap.String("device_id", device.DeviceID),
			zap.Error(err),
		)
		return nil
	}

	c := BestCampaign(device, campaigns, nowLocal)
	if c == nil {
		return nil
	}

	picked := PickWeighted(c.Contents, r.rand)
	if picked == nil {
		return nil
	}
	return &Resolution{
		Mode:         modeFor(picked.ContentKind),
		Source:       SourceCampaign,
		Language:     lang,
		Content:      &ContentRef{Kind: picked.ContentKind, ID: picked.ContentID},
		CampaignID:   c.CampaignID,
		CampaignName: c.CampaignName,
	}
}
