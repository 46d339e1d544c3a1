package rerank

import (
	"context"

	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/pipeline"
)

// DedupNode 按 ContentID 去重，保留首次出现的条目。
// 排除集只保障跨层不重复；供给方在一批候选内返回重复 ID 时
// （core.CandidateSupplier 并不承诺批内唯一），由本节点兜住。
// 放在 OrderNode 之后时“首次出现”即为最高分的那条。
type DedupNode struct{}

func (n *DedupNode) Name() string        { return "rerank.dedup" }
func (n *DedupNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *DedupNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) < 2 {
		return items, nil
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if _, ok := seen[it.ContentID]; ok {
			continue
		}
		seen[it.ContentID] = struct{}{}
		out = append(out, it)
	}
	return out, nil
}
