// Package filter 实现候选剔除：排除集、状态准入、已读布隆、规则表达式。
package filter

import (
	"context"

	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/pipeline"
	"github.com/rushteam/newsrec/pkg/utils"
)

// Filter 判断一个候选是否应该被剔除。
// 返回 true 表示剔除，false 表示保留。
type Filter interface {
	Name() string
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}

// FilterNode 把一组 Filter 组合成一个 Pipeline Node。
// 单个 Filter 求值失败时跳过该 Filter（保留候选）并打降级标签，不中断请求。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string        { return "filter" }
func (n *FilterNode) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		drop := false
		for _, f := range n.Filters {
			matched, err := f.ShouldFilter(ctx, rctx, it)
			if err != nil {
				if rctx != nil {
					rctx.PutLabel("filter_degraded", utils.Label{Value: f.Name(), Source: "filter"})
				}
				continue
			}
			if matched {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, it)
		}
	}
	return out, nil
}
