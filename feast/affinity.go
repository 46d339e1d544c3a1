package feast

import (
	"context"
	"strings"

	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/pkg/conv"
)

// AffinityProvider 把特征服务里预聚合的类目兴趣分翻译成 AffinityMap，
// 实现 signal.Provider。
//
// 约定特征命名为 {FeatureView}:{category_id}，例如 "user_affinity:tech"；
// 特征值须可转为非负数值，非法值跳过。
type AffinityProvider struct {
	Client Client

	// FeatureView 是特征视图名，缺省 "user_affinity"。
	FeatureView string

	// Categories 是要查询的类目集合。
	Categories []string

	// EntityKey 是实体键名，缺省 "user_id"。
	EntityKey string
}

// AffinityFor 查询单个用户的预聚合兴趣图谱。
func (p *AffinityProvider) AffinityFor(ctx context.Context, userID string) (core.AffinityMap, error) {
	if p.Client == nil || userID == "" || len(p.Categories) == 0 {
		return core.AffinityMap{}, nil
	}

	view := p.FeatureView
	if view == "" {
		view = "user_affinity"
	}
	entityKey := p.EntityKey
	if entityKey == "" {
		entityKey = "user_id"
	}

	features := make([]string, 0, len(p.Categories))
	for _, cat := range p.Categories {
		features = append(features, view+":"+cat)
	}

	resp, err := p.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   features,
		EntityRows: []map[string]any{{entityKey: userID}},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.FeatureVectors) == 0 {
		return core.AffinityMap{}, nil
	}

	out := make(core.AffinityMap, len(p.Categories))
	for name, val := range resp.FeatureVectors[0].Values {
		score, ok := conv.ToFloat64(val)
		if !ok || score <= 0 {
			continue
		}
		// 去掉 "{view}:" 前缀还原类目 ID
		cat := strings.TrimPrefix(name, view+":")
		out.Add(cat, score)
	}
	return out, nil
}
