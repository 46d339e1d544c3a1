package cascade

import (
	"time"

	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/filter"
	"github.com/rushteam/newsrec/pipeline"
	"github.com/rushteam/newsrec/rank"
	"github.com/rushteam/newsrec/recall"
	"github.com/rushteam/newsrec/rerank"
)

// Deps 是装配默认级联所需的协作方与策略件。
type Deps struct {
	Supplier core.CandidateSupplier
	Catalog  core.CategoryCatalog
	Scorer   *rank.Scorer

	// TrendingWindow 是热门层回看窗口，<=0 取 7 天。
	TrendingWindow time.Duration

	// PerTierLimit 是各层单次拉取上限，<=0 由各层自定缺省。
	PerTierLimit int

	// TierLimits 按层覆盖拉取上限，未配置的层用 PerTierLimit。
	TierLimits map[core.Tier]int

	// TierWindows 按层覆盖回看窗口；热门层未配置时退回 TrendingWindow，
	// 其余层未配置表示不限发布时间。
	TierWindows map[core.Tier]time.Duration

	// CategoryCap 是同类目上限，<=0 关闭。
	CategoryCap int

	// Parallel 是打分并发度，<=1 串行。
	Parallel int

	// ExtraFilters 追加到各层过滤链（规则过滤、已读布隆等）。
	ExtraFilters []filter.Filter

	// Tiers 指定层顺序（可裁剪/重排），空表示标准五层。
	Tiers []core.Tier
}

// NewController 按规格装配标准五层级联。
//
// 各层处理链：
//   - 个性化/扩展/近读相似：过滤 → 综合分 → 排序 → 去重 →（可选）类目上限
//   - 热门：过滤 → 纯热度分 → 排序 → 去重
//   - 随机兜底：过滤 → 去重（顺序已由播种采样决定，不再排序）
func NewController(d Deps) *Controller {
	baseFilters := append([]filter.Filter{
		&filter.ExcludedFilter{},
		&filter.EligibleFilter{},
	}, d.ExtraFilters...)

	scored := func(mode rank.Mode) *pipeline.Pipeline {
		nodes := []pipeline.Node{
			&filter.FilterNode{Filters: baseFilters},
			&rank.ScoreNode{Scorer: d.Scorer, Mode: mode, Parallel: d.Parallel},
			&rerank.OrderNode{},
			&rerank.DedupNode{},
		}
		if d.CategoryCap > 0 {
			nodes = append(nodes, &rerank.CategoryCapNode{Max: d.CategoryCap})
		}
		return &pipeline.Pipeline{Nodes: nodes}
	}

	filterOnly := &pipeline.Pipeline{Nodes: []pipeline.Node{
		&filter.FilterNode{Filters: baseFilters},
		&rerank.DedupNode{},
	}}

	limitFor := func(tier core.Tier) int {
		if n, ok := d.TierLimits[tier]; ok && n > 0 {
			return n
		}
		return d.PerTierLimit
	}
	windowFor := func(tier core.Tier) time.Duration {
		return d.TierWindows[tier]
	}

	stageFor := func(tier core.Tier) (Stage, bool) {
		switch tier {
		case core.TierPersonalized:
			return Stage{
				Source:   &recall.Personalized{Supplier: d.Supplier, Window: windowFor(tier), Limit: limitFor(tier)},
				Pipeline: scored(rank.ModeFull),
			}, true
		case core.TierExpanded:
			return Stage{
				Source:   &recall.Expanded{Supplier: d.Supplier, Catalog: d.Catalog, Window: windowFor(tier), Limit: limitFor(tier)},
				Pipeline: scored(rank.ModeFull),
			}, true
		case core.TierRecentSimilar:
			return Stage{
				Source:   &recall.RecentSimilar{Supplier: d.Supplier, Window: windowFor(tier), Limit: limitFor(tier)},
				Pipeline: scored(rank.ModeFull),
			}, true
		case core.TierTrending:
			window := windowFor(tier)
			if window <= 0 {
				window = d.TrendingWindow
			}
			return Stage{
				Source:   &recall.Trending{Supplier: d.Supplier, Window: window, Limit: limitFor(tier)},
				Pipeline: scored(rank.ModePopularity),
			}, true
		case core.TierRandomFill:
			return Stage{
				Source:   &recall.RandomFill{Supplier: d.Supplier, Window: windowFor(tier), Limit: limitFor(tier)},
				Pipeline: filterOnly,
			}, true
		}
		return Stage{}, false
	}

	tiers := d.Tiers
	if len(tiers) == 0 {
		tiers = []core.Tier{
			core.TierPersonalized,
			core.TierExpanded,
			core.TierRecentSimilar,
			core.TierTrending,
			core.TierRandomFill,
		}
	}

	stages := make([]Stage, 0, len(tiers))
	for _, tier := range tiers {
		if s, ok := stageFor(tier); ok {
			stages = append(stages, s)
		}
	}
	return &Controller{Stages: stages}
}
