package recall

import (
	"context"
	"time"

	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/pkg/utils"
)

// Personalized 是个性化层：拉取合并权重非零的类目下的候选。
// 用户没有任何权重类目时返回空（级联随即走低层）。
type Personalized struct {
	Supplier core.CandidateSupplier

	// Window 是发布时间回看窗口，<=0 表示不限制。
	Window time.Duration

	// Limit 是单次拉取上限，缺省 100。
	Limit int
}

func (r *Personalized) Name() string    { return "recall.personalized" }
func (r *Personalized) Tier() core.Tier { return core.TierPersonalized }

func (r *Personalized) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Supplier == nil || rctx == nil || len(rctx.Weights) == 0 {
		return nil, nil
	}

	items, err := r.Supplier.Candidates(ctx, core.CandidateQuery{
		Categories:     rctx.Weights.Categories(),
		PublishedSince: sinceOr(r.Window),
		Exclude:        rctx.ExcludedIDs(),
		Status:         core.StatusPublished,
		Limit:          limitOr(r.Limit, 100),
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

func limitOr(limit, def int) int {
	if limit > 0 {
		return limit
	}
	return def
}
