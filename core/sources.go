package core

import (
	"context"
	"time"
)

// 本文件定义引擎消费的外部协作方接口。
// 任一协作方失败或超时，引擎降级为空信号/空候选继续级联，不向调用方抛错。

// EventSource 是行为事件的读侧：按用户返回时间降序、有界数量的事件窗口。
type EventSource interface {
	RecentEvents(ctx context.Context, userID string, limit int) ([]InteractionEvent, error)
}

// EventSink 是行为事件的写侧：只追加，不修改。
type EventSink interface {
	Append(ctx context.Context, ev InteractionEvent) error
}

// PreferenceStore 按用户返回显式类目偏好。
type PreferenceStore interface {
	Preferences(ctx context.Context, userID string) ([]ExplicitPreference, error)
}

// CandidateQuery 是候选查询条件。零值字段表示不限制。
type CandidateQuery struct {
	// Categories 限定类目集合；空表示不限类目
	Categories []string

	// PublishedSince 限定发布时间下界（热门层的时间窗）
	PublishedSince time.Time

	// Exclude 是排除的内容 ID（供给方可下推，也可由引擎侧过滤兜底）
	Exclude []string

	// Status 限定状态；引擎总是传 StatusPublished
	Status string

	// Limit 限制返回数量，<=0 表示由供给方决定
	Limit int
}

// CandidateSupplier 供给合格候选内容。
type CandidateSupplier interface {
	Candidates(ctx context.Context, q CandidateQuery) ([]*Item, error)
}

// ContentLookup 是可选的单条内容查询能力，用于反馈写入时补全类目。
// 由 CandidateSupplier 的实现按需提供（类型断言探测）。
type ContentLookup interface {
	Content(ctx context.Context, contentID string) (*Item, error)
}

// CategoryCatalog 提供类目展示元数据，仅供理由生成使用，不参与打分。
type CategoryCatalog interface {
	// DisplayName 返回类目的展示名；未收录时 ok 为 false
	DisplayName(ctx context.Context, categoryID string) (name string, ok bool)

	// Related 返回与给定类目关联的类目 ID（类目扩展层使用），可返回空
	Related(ctx context.Context, categoryID string) []string
}

// Result 是一次推荐调用的最终产物。
// 不变式：len(Items) <= 请求条数；Items 间 ContentID 互不相同；
// 不包含调用方排除的 ID；所有条目状态均为 published。
type Result struct {
	Items []*Item

	// Warnings 记录本次调用中被降级的依赖（如 "events: unavailable"）。
	// 降级不是错误：结果仍然是结构完整的。
	Warnings []string
}
