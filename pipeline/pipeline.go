package pipeline

import (
	"context"

	"github.com/rushteam/newsrec/core"
)

// Pipeline 把一层推荐逻辑拆成可组合的 Node 链。
// 级联控制器按层驱动各自的 Pipeline（过滤 → 打分 → 重排）。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
