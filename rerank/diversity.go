package rerank

import (
	"context"

	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/pipeline"
)

// CategoryCapNode 限制同一类目最多出现 Max 条，避免单一话题刷屏。
// Max <= 0 表示关闭（默认），与来源系统的观测行为一致。
// 输入应已有序：超出上限的条目被丢弃，保留顺序不变。
type CategoryCapNode struct {
	Max int
}

func (n *CategoryCapNode) Name() string        { return "rerank.category_cap" }
func (n *CategoryCapNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *CategoryCapNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Max <= 0 || len(items) == 0 {
		return items, nil
	}

	seen := make(map[string]int, 16)
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if it.CategoryID != "" && seen[it.CategoryID] >= n.Max {
			continue
		}
		seen[it.CategoryID]++
		out = append(out, it)
	}
	return out, nil
}
