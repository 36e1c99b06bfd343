package resolver

import (
	"context"

	"go.uber.org/zap"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

// resolveSceneContent 场景引用 → 语言变体替换 → 启用检查 → 内容引用
// 变体不可用（不存在/停用）时回退原场景；原场景也不可用则该层不命中。
// 语言替换永远不会让没有它就能命中的层级失败
func (r *Resolver) resolveSceneContent(ctx context.Context, tenantID, sceneID, lang, source string) *Resolution {
	variantID := sceneID
	if r.language != nil {
		v, err := r.language.ResolveVariant(ctx, tenantID, sceneID, lang)
		if err != nil {
			r.logger.Warn("language variant resolution failed, using original scene",
				zap.String("scene_id", sceneID),
				zap.String("language", lang),
				zap.Error(err),
			)
		} else if v != "" {
			variantID = v
		}
	}

	scene := r.fetchActiveScene(ctx, tenantID, variantID)
	if scene == nil && variantID != sceneID {
		scene = r.fetchActiveScene(ctx, tenantID, sceneID)
	}
	if scene == nil {
		return nil
	}

	kind, id := scene.ContentRef()
	if kind == "" {
		return nil
	}
	return &Resolution{
		Mode:          modeFor(kind),
		Source:        source,
		Language:      lang,
		Content:       &ContentRef{Kind: kind, ID: id},
		SceneID:       scene.SceneID,
		SceneName:     scene.SceneName,
		SceneLanguage: scene.LanguageCode,
	}
}

// fetchActiveScene 读取场景；不存在或停用时返回 nil
func (r *Resolver) fetchActiveScene(ctx context.Context, tenantID, sceneID string) *domain.Scene {
	scene, err := r.scenes.GetScene(ctx, tenantID, sceneID)
	if err != nil {
		r.logger.Debug("scene unavailable",
			zap.String("scene_id", sceneID),
			zap.Error(err),
		)
		return nil
	}
	if !scene.IsActive {
		return nil
	}
	return scene
}
