package rank

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/pipeline"
	"github.com/rushteam/newsrec/pkg/utils"
)

// Mode 控制 ScoreNode 使用哪部分打分。
type Mode string

const (
	// ModeFull 使用完整综合分（类目权重 + 时效 + 热度）
	ModeFull Mode = "full"

	// ModePopularity 仅使用热度分（热门层排序用）
	ModePopularity Mode = "popularity"
)

// ScoreNode 对候选批量打分。单个候选的打分相互独立，
// 候选较多时通过 errgroup 并发执行；写入按下标寻址，无共享可变状态。
type ScoreNode struct {
	Scorer *Scorer
	Mode   Mode

	// Parallel 是最大并发数，<=1 表示串行。
	Parallel int

	// ParallelThreshold 是启用并发的最小候选数，避免小批量的调度开销。
	ParallelThreshold int
}

func (n *ScoreNode) Name() string        { return "rank.score" }
func (n *ScoreNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *ScoreNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	scorer := n.Scorer
	if scorer == nil {
		scorer = NewScorer()
	}

	threshold := n.ParallelThreshold
	if threshold <= 0 {
		threshold = 64
	}

	if n.Parallel > 1 && len(items) >= threshold {
		eg, _ := errgroup.WithContext(ctx)
		eg.SetLimit(n.Parallel)
		for _, it := range items {
			it := it
			eg.Go(func() error {
				n.score(scorer, rctx, it)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		return items, nil
	}

	for _, it := range items {
		n.score(scorer, rctx, it)
	}
	return items, nil
}

func (n *ScoreNode) score(scorer *Scorer, rctx *core.RecommendContext, it *core.Item) {
	if it == nil {
		return
	}
	switch n.Mode {
	case ModePopularity:
		it.Score = scorer.PopularityBonus(it.Views, it.Likes, it.Shares)
		it.PutLabel("rank_mode", utils.Label{Value: string(ModePopularity), Source: "rank"})
	default:
		var weights core.WeightMap
		if rctx != nil {
			weights = rctx.Weights
		}
		it.Score = scorer.Score(weights, it)
		it.PutLabel("rank_mode", utils.Label{Value: string(ModeFull), Source: "rank"})
	}
}
