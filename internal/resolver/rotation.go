package resolver

import (
	"sort"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

// PickWeighted 加权轮换：按累积权重从活动内容中选取一项
// weight 为 null 的行在仓储层已补为 1；<=0 的行完全排除。
// 单条目时直接返回、不消耗随机源（绝大多数活动只挂一条内容，
// 这些活动在测试和日志里必须表现为确定性的）
func PickWeighted(contents []domain.CampaignContent, rnd RandSource) *domain.CampaignContent {
	eligible := make([]domain.CampaignContent, 0, len(contents))
	for _, c := range contents {
		if c.Weight > 0 {
			eligible = append(eligible, c)
		}
	}
	switch len(eligible) {
	case 0:
		return nil
	case 1:
		return &eligible[0]
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Position < eligible[j].Position
	})

	total := 0
	for _, c := range eligible {
		total += c.Weight
	}

	draw := rnd.Float64() * float64(total)
	cumulative := 0
	for i := range eligible {
		cumulative += eligible[i].Weight
		if float64(cumulative) > draw {
			return &eligible[i]
		}
	}
	// Float64 < 1 保证不会走到这里；防御浮点边界
	return &eligible[len(eligible)-1]
}
