package recall

import (
	"context"
	"time"

	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/pkg/utils"
)

// Trending 是热门层：拉取时间窗内发布的候选，由热度分单独排序。
// 不依赖任何用户信号，新用户冷启动主要落在这一层。
type Trending struct {
	Supplier core.CandidateSupplier

	// Window 是发布时间回看窗口，缺省 7 天。
	Window time.Duration

	Limit int

	// Now 供测试注入时钟，缺省为 time.Now。
	Now func() time.Time
}

func (r *Trending) Name() string    { return "recall.trending" }
func (r *Trending) Tier() core.Tier { return core.TierTrending }

func (r *Trending) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Supplier == nil || rctx == nil {
		return nil, nil
	}

	window := r.Window
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}

	items, err := r.Supplier.Candidates(ctx, core.CandidateQuery{
		PublishedSince: now.Add(-window),
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
