package recall

import (
	"context"
	"sort"
	"time"

	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/pkg/utils"
)

// Expanded 是类目扩展层：个性化层配额不满时，放宽到关联类目。
//
// 扩展顺序：
//  1. 类目目录里与权重类目关联的类目
//  2. 兴趣图谱中存在、但未进入权重快照的长尾类目
//
// 已在权重快照中的类目不重复拉取（个性化层已覆盖）。
type Expanded struct {
	Supplier core.CandidateSupplier
	Catalog  core.CategoryCatalog

	// Window 是发布时间回看窗口，<=0 表示不限制。
	Window time.Duration

	Limit int
}

func (r *Expanded) Name() string    { return "recall.expanded" }
func (r *Expanded) Tier() core.Tier { return core.TierExpanded }

func (r *Expanded) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Supplier == nil || rctx == nil {
		return nil, nil
	}

	cats := r.expandCategories(ctx, rctx)
	if len(cats) == 0 {
		return nil, nil
	}

	items, err := r.Supplier.Candidates(ctx, core.CandidateQuery{
		Categories:     cats,
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

func (r *Expanded) expandCategories(ctx context.Context, rctx *core.RecommendContext) []string {
	inWeights := func(cat string) bool {
		_, ok := rctx.Weights[cat]
		return ok
	}

	seen := make(map[string]struct{}, 16)
	out := make([]string, 0, 16)
	add := func(cat string) {
		if cat == "" || inWeights(cat) {
			return
		}
		if _, ok := seen[cat]; ok {
			return
		}
		seen[cat] = struct{}{}
		out = append(out, cat)
	}

	if r.Catalog != nil {
		for _, cat := range rctx.Weights.Categories() {
			for _, rel := range r.Catalog.Related(ctx, cat) {
				add(rel)
			}
		}
	}
	for _, cat := range rctx.Affinity.Categories() {
		add(cat)
	}

	sort.Strings(out)
	return out
}
