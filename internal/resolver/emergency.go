package resolver

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// resolveEmergency 紧急播报层：命中即短路全部后续层级
// 紧急内容对所有屏幕一致展示，不做语言变体替换；
// 首次观察到过期时清除租户字段并放行后续层（幂等，允许并发轮询竞争）
func (r *Resolver) resolveEmergency(ctx context.Context, tenantID string, now time.Time, lang string) *Resolution {
	st, err := r.emergency.GetEmergencyState(ctx, tenantID)
	if err != nil {
		r.logger.Warn("emergency tier skipped",
			zap.String("tenant_id", tenantID),
			zap.Error(err),
		)
		return nil
	}
	if st == nil {
		return nil
	}

	if st.Expired(now) {
		if err := r.emergency.ClearEmergencyState(ctx, tenantID); err != nil {
			r.logger.Error("failed to clear expired emergency state",
				zap.String("tenant_id", tenantID),
				zap.Error(err),
			)
		} else {
			r.logger.Info("expired emergency broadcast cleared",
				zap.String("tenant_id", tenantID),
				zap.String("content_id", st.ContentID),
			)
		}
		return nil
	}

	return &Resolution{
		Mode:     modeFor(st.ContentKind),
		Source:   SourceEmergency,
		Language: lang,
		Content:  &ContentRef{Kind: st.ContentKind, ID: st.ContentID},
	}
}
