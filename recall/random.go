package recall

import (
	"context"
	"sort"
	"time"

	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/pkg/sample"
	"github.com/rushteam/newsrec/pkg/utils"
)

// RandomFill 是随机兜底层：对剩余合格候选做均匀采样补足配额。
// 这是整条链路唯一允许随机的环节；采样由 rctx.Seed 驱动，
// 固定 seed 时输出完全可复现。
type RandomFill struct {
	Supplier core.CandidateSupplier

	// Window 是发布时间回看窗口，<=0 表示不限制。
	Window time.Duration

	// Limit 是拉取上限，缺省 200；采样前先确定性排序再洗牌，
	// 保证相同快照 + 相同 seed => 相同输出。
	Limit int
}

func (r *RandomFill) Name() string    { return "recall.random_fill" }
func (r *RandomFill) Tier() core.Tier { return core.TierRandomFill }

func (r *RandomFill) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Supplier == nil || rctx == nil {
		return nil, nil
	}

	items, err := r.Supplier.Candidates(ctx, core.CandidateQuery{
		PublishedSince: sinceOr(r.Window),
		Exclude:        rctx.ExcludedIDs(),
		Status:         core.StatusPublished,
		Limit:          limitOr(r.Limit, 200),
	})
	if err != nil {
		return nil, err
	}

	// 供给方返回顺序不可假定：先按 ID 归一化顺序，再做播种洗牌。
	sortByContentID(items)
	sample.Shuffle(items, rctx.Seed)

	for _, it := range items {
		if it != nil {
			it.PutLabel("recall_source", utils.Label{Value: r.Name(), Source: "recall"})
		}
	}
	return tagTier(items, r.Tier()), nil
}

func sortByContentID(items []*core.Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i] == nil || items[j] == nil {
			return items[j] == nil
		}
		return items[i].ContentID < items[j].ContentID
	})
}
