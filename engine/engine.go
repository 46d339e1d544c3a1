// Package engine 是推荐引擎的装配层与请求入口：
// 校验请求 → 装配信号快照 → 驱动兜底级联 → 生成理由 → 落盘结果。
//
// 错误传播遵循统一策略：只有 INVALID_INPUT 向调用方返回错误；
// 任何协作方（事件源、偏好库、特征服务、候选供给）失败都降级为
// 空信号/空候选并记入 Warnings，结果始终结构完整。
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rushteam/newsrec/cascade"
	"github.com/rushteam/newsrec/config"
	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/explain"
	"github.com/rushteam/newsrec/filter"
	"github.com/rushteam/newsrec/rank"
	"github.com/rushteam/newsrec/signal"
)

// Request 是一次推荐调用的入参。
type Request struct {
	UserID string
	Scene  string

	// Count 是期望条数，必须为正。
	Count int

	// ExcludeIDs 是调用方排除的内容 ID（如正在阅读的文章）。
	ExcludeIDs []string

	// IncludeReasons 控制是否为每条结果生成推荐理由。
	IncludeReasons bool

	// Seed 驱动随机兜底层采样；0 表示取当前时间。
	Seed int64
}

// ResultSink 接收最终结果的落盘方（可选），失败只降级为告警。
// store.RecommendationLog 实现了该接口。
type ResultSink interface {
	SaveResult(ctx context.Context, userID string, items []*core.Item) error
}

// Deps 是引擎的外部协作方。Supplier 必填，其余均可为 nil（对应能力降级）。
type Deps struct {
	Supplier core.CandidateSupplier
	Catalog  core.CategoryCatalog
	Events   core.EventSource
	Sink     core.EventSink
	Prefs    core.PreferenceStore

	// Provider 覆盖默认的行为折算（如 Feast 预聚合）；nil 时由 Events 本地折算。
	Provider signal.Provider

	// Results 接收最终结果落盘，可为 nil。
	Results ResultSink

	// FilterSeen 启用已读布隆过滤（按请求从事件窗口构建）。
	FilterSeen bool
}

// Engine 是线程安全的推荐引擎实例，可被并发请求共享。
type Engine struct {
	cfg  *config.Config
	deps Deps

	collector *signal.Collector
	merger    *signal.Merger
	scorer    *rank.Scorer
	explainer *explain.Generator
	rules     []filter.Filter

	writer *FeedbackWriter
}

// New 装配引擎。cfg 为 nil 时使用默认配置；配置中的 CEL 规则在此一次性编译。
func New(cfg *config.Config, deps Deps) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if deps.Supplier == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"engine: candidate supplier is required")
	}

	collector := signal.NewCollector()
	collector.Points = cfg.SignalPoints()
	collector.Boost = cfg.Signal.Boost
	collector.BoostWindow = config.Days(cfg.Signal.BoostWindowDays)
	collector.HalfLife = config.Days(cfg.Signal.HalfLifeDays)

	merger := &signal.Merger{
		ExplicitWeight: cfg.Merge.ExplicitWeight,
		InferredWeight: cfg.Merge.InferredWeight,
	}

	scorer := &rank.Scorer{
		RecencyBonus:  cfg.Score.RecencyBonus,
		RecencyWindow: config.Days(cfg.Score.RecencyWindowDays),
		ViewWeight:    cfg.Score.ViewWeight,
		LikeWeight:    cfg.Score.LikeWeight,
		ShareWeight:   cfg.Score.ShareWeight,
		PopularityCap: cfg.Score.PopularityCap,
	}

	rules := make([]filter.Filter, 0, len(cfg.Cascade.Rules))
	for _, expr := range cfg.Cascade.Rules {
		rf, err := filter.NewRuleFilter(expr)
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", expr, err)
		}
		rules = append(rules, rf)
	}

	e := &Engine{
		cfg:       cfg,
		deps:      deps,
		collector: collector,
		merger:    merger,
		scorer:    scorer,
		explainer: &explain.Generator{Catalog: deps.Catalog},
		rules:     rules,
	}
	if deps.Sink != nil {
		e.writer = NewFeedbackWriter(deps.Sink, 0, 0, 0)
	}
	return e, nil
}

// Recommend 执行一次完整推荐。
//
// 返回错误仅当请求本身无效（INVALID_INPUT）；其余一切失败都体现为
// Result.Warnings 与更保守的结果（更依赖热门/随机层）。
func (e *Engine) Recommend(ctx context.Context, req Request) (*core.Result, error) {
	if req.UserID == "" {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"recommend: user id is required")
	}
	if req.Count <= 0 {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			fmt.Sprintf("recommend: count must be positive, got %d", req.Count))
	}

	rctx := core.NewRecommendContext(req.UserID, req.Count)
	rctx.Scene = req.Scene
	rctx.IncludeReasons = req.IncludeReasons
	rctx.Seed = req.Seed
	if rctx.Seed == 0 {
		rctx.Seed = time.Now().UnixNano()
	}
	rctx.Exclude(req.ExcludeIDs...)

	warnings := e.loadSignals(ctx, rctx)

	extra := e.rules
	if e.deps.FilterSeen && e.deps.Events != nil {
		seen, err := filter.LoadSeenBloom(ctx, e.deps.Events, req.UserID, e.cfg.Signal.Window, 0)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("seen filter: %v", err))
		} else if seen != nil {
			extra = append(append([]filter.Filter{}, e.rules...), seen)
		}
	}

	ctrl := cascade.NewController(cascade.Deps{
		Supplier:       e.deps.Supplier,
		Catalog:        e.deps.Catalog,
		Scorer:         e.scorer,
		TrendingWindow: config.Days(e.cfg.Cascade.TrendingWindowDays),
		PerTierLimit:   e.cfg.Cascade.PerTierLimit,
		TierLimits:     e.cfg.TierLimits(),
		TierWindows:    e.cfg.TierWindows(),
		CategoryCap:    e.cfg.Cascade.CategoryCap,
		Parallel:       e.cfg.Score.Parallel,
		ExtraFilters:   extra,
		Tiers:          e.cfg.TierOrder(),
	})

	items, cascadeWarnings := ctrl.Run(ctx, rctx)
	warnings = append(warnings, cascadeWarnings...)

	if req.IncludeReasons {
		e.explainer.Annotate(ctx, rctx, items)
	}

	if e.deps.Results != nil && len(items) > 0 {
		if err := e.deps.Results.SaveResult(ctx, req.UserID, items); err != nil {
			warnings = append(warnings, fmt.Sprintf("result log: %v", err))
		}
	}

	return &core.Result{Items: items, Warnings: warnings}, nil
}

// loadSignals 装配只读信号快照：显式偏好、推断兴趣、合并权重、最近类目。
// 任一信号源失败降级为空并返回告警。
func (e *Engine) loadSignals(ctx context.Context, rctx *core.RecommendContext) []string {
	var warnings []string

	var prefs []core.ExplicitPreference
	if e.deps.Prefs != nil {
		var err error
		prefs, err = e.deps.Prefs.Preferences(ctx, rctx.UserID)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("preferences: %v", err))
			prefs = nil
		}
	}
	for _, p := range prefs {
		if p.Weight > 0 {
			rctx.Explicit[p.CategoryID] = p.Weight
		}
	}

	provider := e.deps.Provider
	if provider == nil && e.deps.Events != nil {
		provider = &signal.EventProvider{
			Events:    e.deps.Events,
			Collector: e.collector,
			Window:    e.cfg.Signal.Window,
		}
	}
	if provider != nil {
		affinity, err := provider.AffinityFor(ctx, rctx.UserID)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("signals: %v", err))
		} else {
			rctx.Affinity = affinity
		}
	}

	rctx.Weights = e.merger.Merge(prefs, rctx.Affinity)

	if e.deps.Events != nil {
		events, err := e.deps.Events.RecentEvents(ctx, rctx.UserID, 20)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("recent events: %v", err))
		} else {
			for _, ev := range events {
				if ev.CategoryID != "" {
					rctx.LastCategory = ev.CategoryID
					break
				}
			}
		}
	}

	return warnings
}

// RecordFeedback 记录一条行为事件：补全类目、附加积分、异步落盘。
// 写入路径不更新任何聚合，兴趣图谱在下一次读取时自然吸收该事件。
func (e *Engine) RecordFeedback(ctx context.Context, userID, contentID string, action core.InteractionType) error {
	if userID == "" || contentID == "" {
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"feedback: user id and content id are required")
	}
	if !core.ValidInteraction(action) {
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			fmt.Sprintf("feedback: unknown interaction type %q", action))
	}
	if e.writer == nil {
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeNotSupported,
			"feedback: no event sink configured")
	}

	ev := core.InteractionEvent{
		UserID:    userID,
		ContentID: contentID,
		Type:      action,
		Timestamp: time.Now(),
	}

	// 类目补全失败不阻断写入，事件仍可用于已读过滤与积分
	if lookup, ok := e.deps.Supplier.(core.ContentLookup); ok {
		if it, err := lookup.Content(ctx, contentID); err == nil && it != nil {
			ev.CategoryID = it.CategoryID
		}
	}

	if pts, ok := e.cfg.Loyalty.Points[string(action)]; ok && pts > 0 {
		ev.Meta = map[string]any{"loyalty_points": pts}
	}

	e.writer.Enqueue(ev)
	return nil
}

// Close 刷出未落盘的反馈事件并释放资源。
func (e *Engine) Close() error {
	if e.writer != nil {
		return e.writer.Close()
	}
	return nil
}
