package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

type PostgresCampaignsRepo struct {
	db *sql.DB
}

func NewPostgresCampaignsRepo(db *sql.DB) *PostgresCampaignsRepo {
	return &PostgresCampaignsRepo{db: db}
}

// ListRunnableCampaigns 读取租户下可参与解析的活动（active/scheduled），
// 预载 targets 和 contents；时间窗口在解析层按屏幕时区判断，这里不过滤
func (r *PostgresCampaignsRepo) ListRunnableCampaigns(ctx context.Context, tenantID string) ([]*domain.Campaign, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT
			c.campaign_id::text,
			c.tenant_id::text,
			c.campaign_name,
			c.status,
			c.starts_at,
			c.ends_at,
			COALESCE(c.priority, 0) as priority
		 FROM campaigns c
		 WHERE c.tenant_id = $1 AND c.status = ANY($2)
		 ORDER BY c.priority DESC, c.campaign_id ASC`,
		tenantID,
		pq.Array([]string{domain.CampaignStatusActive, domain.CampaignStatusScheduled}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []*domain.Campaign
	byID := map[string]*domain.Campaign{}
	var ids []string
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(
			&c.CampaignID,
			&c.TenantID,
			&c.CampaignName,
			&c.Status,
			&c.StartsAt,
			&c.EndsAt,
			&c.Priority,
		); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, &c)
		byID[c.CampaignID] = &c
		ids = append(ids, c.CampaignID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate campaigns: %w", err)
	}
	if len(campaigns) == 0 {
		return campaigns, nil
	}

	if err := r.loadTargets(ctx, ids, byID); err != nil {
		return nil, err
	}
	if err := r.loadContents(ctx, ids, byID); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *PostgresCampaignsRepo) loadTargets(ctx context.Context, ids []string, byID map[string]*domain.Campaign) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT
			t.target_id::text,
			t.campaign_id::text,
			t.target_kind,
			CASE WHEN t.target_ref_id IS NULL THEN NULL ELSE t.target_ref_id::text END as target_ref_id
		 FROM campaign_targets t
		 WHERE t.campaign_id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("failed to list campaign targets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.CampaignTarget
		if err := rows.Scan(&t.TargetID, &t.CampaignID, &t.TargetKind, &t.TargetRefID); err != nil {
			return fmt.Errorf("failed to scan campaign target: %w", err)
		}
		if c, ok := byID[t.CampaignID]; ok {
			c.Targets = append(c.Targets, t)
		}
	}
	return rows.Err()
}

func (r *PostgresCampaignsRepo) loadContents(ctx context.Context, ids []string, byID map[string]*domain.Campaign) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT
			cc.id::text,
			cc.campaign_id::text,
			cc.content_kind,
			cc.content_id::text,
			COALESCE(cc.weight, 1) as weight,
			COALESCE(cc.position, 0) as position
		 FROM campaign_contents cc
		 WHERE cc.campaign_id = ANY($1)
		 ORDER BY cc.position ASC, cc.id ASC`,
		pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("failed to list campaign contents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cc domain.CampaignContent
		if err := rows.Scan(&cc.ID, &cc.CampaignID, &cc.ContentKind, &cc.ContentID, &cc.Weight, &cc.Position); err != nil {
			return fmt.Errorf("failed to scan campaign content: %w", err)
		}
		if c, ok := byID[cc.CampaignID]; ok {
			c.Contents = append(c.Contents, cc)
		}
	}
	return rows.Err()
}
