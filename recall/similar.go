package recall

import (
	"context"
	"time"

	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/pkg/utils"
)

// RecentSimilar 是近读相似层：拉取与用户最近一次交互内容同类目的候选。
// 这是比兴趣图谱更窄的“你刚读了这个”信号，不参考整体权重。
type RecentSimilar struct {
	Supplier core.CandidateSupplier

	// Window 是发布时间回看窗口，<=0 表示不限制。
	Window time.Duration

	Limit int
}

func (r *RecentSimilar) Name() string    { return "recall.recent_similar" }
func (r *RecentSimilar) Tier() core.Tier { return core.TierRecentSimilar }

func (r *RecentSimilar) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Supplier == nil || rctx == nil || rctx.LastCategory == "" {
		return nil, nil
	}

	items, err := r.Supplier.Candidates(ctx, core.CandidateQuery{
		Categories:     []string{rctx.LastCategory},
		PublishedSince: sinceOr(r.Window),
		Exclude:        rctx.ExcludedIDs(),
		Status:         core.StatusPublished,
		Limit:          limitOr(r.Limit, 50),
	})
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		if it != nil {
			it.PutLabel("recall_source", utils.Label{Value: r.Name(), Source: "recall"})
		}
	}
	return tagTier(items, r.Tier()), nil
}
