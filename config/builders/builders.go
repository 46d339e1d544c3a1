// Package builders 注册内置 Node 的配置构建逻辑。
// 在入口处 import _ "github.com/rushteam/newsrec/config/builders" 即可启用配置驱动。
package builders

import (
	"fmt"
	"time"

	"github.com/rushteam/newsrec/config"
	"github.com/rushteam/newsrec/filter"
	"github.com/rushteam/newsrec/pipeline"
	"github.com/rushteam/newsrec/pkg/conv"
	"github.com/rushteam/newsrec/rank"
	"github.com/rushteam/newsrec/rerank"
)

func init() {
	config.Register("rank.score", BuildScoreNode)
	config.Register("rerank.order", BuildOrderNode)
	config.Register("rerank.dedup", BuildDedupNode)
	config.Register("rerank.diversity", BuildDiversityNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("filter", BuildFilterNode)
}

// BuildScoreNode 根据配置构建打分 Node。支持的键：
// mode（full/popularity）、parallel、recency_bonus、recency_window_days、
// popularity_cap、view_weight、like_weight、share_weight。
func BuildScoreNode(cfg map[string]interface{}) (pipeline.Node, error) {
	scorer := rank.NewScorer()
	scorer.RecencyBonus = conv.ConfigGetFloat64(cfg, "recency_bonus", scorer.RecencyBonus)
	if days := conv.ConfigGetFloat64(cfg, "recency_window_days", 0); days > 0 {
		scorer.RecencyWindow = time.Duration(days * 24 * float64(time.Hour))
	}
	scorer.PopularityCap = conv.ConfigGetFloat64(cfg, "popularity_cap", scorer.PopularityCap)
	scorer.ViewWeight = conv.ConfigGetFloat64(cfg, "view_weight", scorer.ViewWeight)
	scorer.LikeWeight = conv.ConfigGetFloat64(cfg, "like_weight", scorer.LikeWeight)
	scorer.ShareWeight = conv.ConfigGetFloat64(cfg, "share_weight", scorer.ShareWeight)

	node := &rank.ScoreNode{Scorer: scorer, Mode: rank.ModeFull}
	switch mode := conv.ConfigGet(cfg, "mode", "full"); mode {
	case "full":
	case "popularity":
		node.Mode = rank.ModePopularity
	default:
		return nil, fmt.Errorf("unknown score mode: %s", mode)
	}
	if n := conv.ConfigGetInt64(cfg, "parallel", 0); n > 0 {
		node.Parallel = int(n)
	}
	return node, nil
}

func BuildOrderNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.OrderNode{}, nil
}

func BuildDedupNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.DedupNode{}, nil
}

// BuildDiversityNode 构建同类目上限 Node，键：max_per_category。
func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.CategoryCapNode{
		Max: int(conv.ConfigGetInt64(cfg, "max_per_category", 0)),
	}, nil
}

// BuildTopNNode 构建截断 Node，键：n。
func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(cfg, "n", 0)
	if n <= 0 {
		return nil, fmt.Errorf("topn: n must be positive")
	}
	return &rerank.TopNNode{N: int(n)}, nil
}

// BuildFilterNode 根据配置构建过滤 Node。支持的键：
// excluded（bool，默认 true）、eligible（bool，默认 true）、
// status（准入状态）、rules（CEL 表达式列表）。
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	var filters []filter.Filter
	if conv.ConfigGet(cfg, "excluded", true) {
		filters = append(filters, &filter.ExcludedFilter{})
	}
	if conv.ConfigGet(cfg, "eligible", true) {
		filters = append(filters, &filter.EligibleFilter{
			Status: conv.ConfigGet(cfg, "status", ""),
		})
	}
	for _, expr := range conv.SliceAnyToString(cfg["rules"]) {
		rf, err := filter.NewRuleFilter(expr)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", expr, err)
		}
		filters = append(filters, rf)
	}
	return &filter.FilterNode{Filters: filters}, nil
}
