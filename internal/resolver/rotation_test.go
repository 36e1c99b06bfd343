package resolver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

// countingRand 记录调用次数的随机源
type countingRand struct {
	calls int
	value float64
}

func (c *countingRand) Float64() float64 {
	c.calls++
	return c.value
}

func content(id string, weight, position int) domain.CampaignContent {
	return domain.CampaignContent{
		ID:          "row-" + id,
		CampaignID:  "camp-1",
		ContentKind: domain.ContentKindPlaylist,
		ContentID:   id,
		Weight:      weight,
		Position:    position,
	}
}

func TestPickWeighted_Empty(t *testing.T) {
	rnd := &countingRand{}
	assert.Nil(t, PickWeighted(nil, rnd))
	assert.Zero(t, rnd.calls)
}

func TestPickWeighted_SingleItemSkipsRand(t *testing.T) {
	// 单条目直接返回，零次随机调用
	rnd := &countingRand{}
	picked := PickWeighted([]domain.CampaignContent{content("a", 5, 0)}, rnd)

	require.NotNil(t, picked)
	assert.Equal(t, "a", picked.ContentID)
	assert.Zero(t, rnd.calls)
}

func TestPickWeighted_NonpositiveWeightExcluded(t *testing.T) {
	rnd := &countingRand{}
	contents := []domain.CampaignContent{
		content("zero", 0, 0),
		content("negative", -3, 1),
		content("only", 2, 2),
	}
	picked := PickWeighted(contents, rnd)

	require.NotNil(t, picked)
	assert.Equal(t, "only", picked.ContentID)
	assert.Zero(t, rnd.calls) // 过滤后只剩一条，仍走直接返回路径
}

func TestPickWeighted_AllExcluded(t *testing.T) {
	contents := []domain.CampaignContent{
		content("a", 0, 0),
		content("b", -1, 1),
	}
	assert.Nil(t, PickWeighted(contents, &countingRand{}))
}

func TestPickWeighted_DeterministicDraw(t *testing.T) {
	// weights: a=1, b=3, 累积 [1, 4)
	contents := []domain.CampaignContent{
		content("a", 1, 0),
		content("b", 3, 1),
	}

	tests := []struct {
		value float64 // draw = value * 4
		want  string
	}{
		{0.0, "a"},
		{0.24, "a"},  // draw 0.96 < 1
		{0.25, "b"},  // draw 1.0
		{0.999, "b"}, // draw 3.996
	}
	for _, tt := range tests {
		rnd := &countingRand{value: tt.value}
		picked := PickWeighted(contents, rnd)
		require.NotNil(t, picked)
		assert.Equal(t, tt.want, picked.ContentID, "value=%v", tt.value)
		assert.Equal(t, 1, rnd.calls)
	}
}

func TestPickWeighted_PositionOrderIndependent(t *testing.T) {
	// 入参顺序打乱，position 决定累积顺序
	contents := []domain.CampaignContent{
		content("b", 3, 1),
		content("a", 1, 0),
	}
	rnd := &countingRand{value: 0.0}
	picked := PickWeighted(contents, rnd)
	require.NotNil(t, picked)
	assert.Equal(t, "a", picked.ContentID)
}

func TestPickWeighted_Distribution(t *testing.T) {
	// weight 1:3 → b 约 75%
	contents := []domain.CampaignContent{
		content("a", 1, 0),
		content("b", 3, 1),
	}

	rnd := rand.New(rand.NewSource(42))
	const n = 20000
	hits := map[string]int{}
	for i := 0; i < n; i++ {
		picked := PickWeighted(contents, rnd)
		require.NotNil(t, picked)
		hits[picked.ContentID]++
	}

	ratio := float64(hits["b"]) / float64(n)
	assert.InDelta(t, 0.75, ratio, 0.02)
}
