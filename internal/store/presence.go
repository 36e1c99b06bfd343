package store

import (
	"context"
	"time"
)

// DefaultPresenceTTL 在线标记 TTL；超过两个轮询周期未见即视为离线
const DefaultPresenceTTL = 90 * time.Second

// Presence 屏幕在线状态（TTL 键，轮询心跳续期）
// Postgres 的 last_seen_at/is_online 是持久记录，这里是低成本的实时视图
type Presence struct {
	kv  KV
	ttl time.Duration
}

func NewPresence(kv KV, ttl time.Duration) *Presence {
	if ttl <= 0 {
		ttl = DefaultPresenceTTL
	}
	return &Presence{kv: kv, ttl: ttl}
}

func presenceKey(deviceID string) string {
	return "signage:screen:" + deviceID + ":online"
}

// MarkOnline 写入/续期在线标记
func (p *Presence) MarkOnline(ctx context.Context, deviceID string, seenAt time.Time) error {
	return p.kv.Set(ctx, presenceKey(deviceID), seenAt.UTC().Format(time.RFC3339), p.ttl)
}

// IsOnline 标记存在即在线
func (p *Presence) IsOnline(ctx context.Context, deviceID string) (bool, error) {
	return p.kv.Exists(ctx, presenceKey(deviceID))
}
