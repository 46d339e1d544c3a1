// Package explain 为每条结果生成一条推荐理由。
//
// 只选最优一条，按特异性排序：
// 显式类目命中 > 推断兴趣命中 > 近读相似 > 热门 > 通用兜底。
// 生成器不枚举全部贡献信号，也不参与打分。
package explain

import (
	"context"
	"fmt"

	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/pkg/utils"
)

// 理由代码，按特异性从高到低。
const (
	ReasonExplicitCategory = "explicit_category"
	ReasonInferredInterest = "inferred_interest"
	ReasonRecentSimilar    = "recent_similar"
	ReasonTrending         = "trending"
	ReasonSuggested        = "suggested"
)

// Generator 生成推荐理由。Catalog 仅用于类目展示名，可为 nil（降级为类目 ID）。
type Generator struct {
	Catalog core.CategoryCatalog
}

// Annotate 为每条结果附加最优理由。
func (g *Generator) Annotate(ctx context.Context, rctx *core.RecommendContext, items []*core.Item) {
	for _, it := range items {
		if it == nil {
			continue
		}
		it.Reason = g.reason(ctx, rctx, it)
		it.PutLabel("reason", utils.Label{Value: it.Reason.Code, Source: "explain"})
	}
}

// reason 按特异性挑选唯一理由。
func (g *Generator) reason(ctx context.Context, rctx *core.RecommendContext, it *core.Item) *core.Reason {
	// 随机兜底层固定使用最低置信度理由
	if it.Tier == core.TierRandomFill {
		return &core.Reason{Code: ReasonSuggested, Text: "Suggested for you"}
	}

	if rctx != nil && it.CategoryID != "" {
		if w, ok := rctx.Explicit[it.CategoryID]; ok && w > 0 {
			return &core.Reason{
				Code: ReasonExplicitCategory,
				Text: fmt.Sprintf("More from %s, one of your chosen interests", g.displayName(ctx, it.CategoryID)),
			}
		}
		if s, ok := rctx.Affinity[it.CategoryID]; ok && s > 0 {
			return &core.Reason{
				Code: ReasonInferredInterest,
				Text: fmt.Sprintf("Because you often read %s", g.displayName(ctx, it.CategoryID)),
			}
		}
	}

	switch it.Tier {
	case core.TierRecentSimilar:
		return &core.Reason{Code: ReasonRecentSimilar, Text: "Similar to what you just read"}
	case core.TierTrending:
		return &core.Reason{Code: ReasonTrending, Text: "Trending content"}
	}
	return &core.Reason{Code: ReasonSuggested, Text: "Suggested for you"}
}

func (g *Generator) displayName(ctx context.Context, categoryID string) string {
	if g.Catalog != nil {
		if name, ok := g.Catalog.DisplayName(ctx, categoryID); ok && name != "" {
			return name
		}
	}
	return categoryID
}
