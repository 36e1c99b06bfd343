package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/store"
)

// LanguageVariantClient 语言变体解析服务客户端（外部协作方，黑盒）
// 给定场景 id 和目标语言，返回对应语言变体的场景 id；无变体时返回原 id
type LanguageVariantClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewLanguageVariantClient 创建语言变体解析客户端
func NewLanguageVariantClient(baseURL string, timeout time.Duration, logger *zap.Logger) *LanguageVariantClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(1 * time.Second).
		SetHeader("Accept", "application/json")

	return &LanguageVariantClient{
		httpClient: client,
		logger:     logger,
	}
}

type variantResponse struct {
	SceneID string `json:"scene_id"`
}

// ResolveVariant 实现 resolver.LanguageResolver
func (c *LanguageVariantClient) ResolveVariant(ctx context.Context, tenantID, sceneID, languageCode string) (string, error) {
	var out variantResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("X-Tenant-ID", tenantID).
		SetQueryParam("language", languageCode).
		SetResult(&out).
		Get("/lang/api/v1/scenes/" + sceneID + "/variant")
	if err != nil {
		return "", fmt.Errorf("language resolver request failed: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		// 无变体：原样返回
		return sceneID, nil
	}
	if resp.IsError() {
		return "", fmt.Errorf("language resolver returned status %d", resp.StatusCode())
	}
	if out.SceneID == "" {
		return sceneID, nil
	}
	return out.SceneID, nil
}

// CachedLanguageResolver 在语言变体解析外包一层 Redis 缓存
// 播放端轮询频繁而变体映射变化很少，短 TTL 即可挡掉绝大部分外呼
type CachedLanguageResolver struct {
	inner interface {
		ResolveVariant(ctx context.Context, tenantID, sceneID, languageCode string) (string, error)
	}
	kv     store.KV
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedLanguageResolver(inner *LanguageVariantClient, kv store.KV, ttl time.Duration, logger *zap.Logger) *CachedLanguageResolver {
	return &CachedLanguageResolver{inner: inner, kv: kv, ttl: ttl, logger: logger}
}

func variantCacheKey(tenantID, sceneID, languageCode string) string {
	return "signage:variant:" + tenantID + ":" + sceneID + ":" + languageCode
}

// ResolveVariant 实现 resolver.LanguageResolver
func (c *CachedLanguageResolver) ResolveVariant(ctx context.Context, tenantID, sceneID, languageCode string) (string, error) {
	key := variantCacheKey(tenantID, sceneID, languageCode)
	if cached, err := c.kv.Get(ctx, key); err == nil && cached != "" {
		return cached, nil
	} else if err != nil && err != store.ErrMiss {
		c.logger.Warn("variant cache read failed", zap.String("key", key), zap.Error(err))
	}

	variantID, err := c.inner.ResolveVariant(ctx, tenantID, sceneID, languageCode)
	if err != nil {
		return "", err
	}
	if err := c.kv.Set(ctx, key, variantID, c.ttl); err != nil {
		c.logger.Warn("variant cache write failed", zap.String("key", key), zap.Error(err))
	}
	return variantID, nil
}
