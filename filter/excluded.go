package filter

import (
	"context"

	"github.com/rushteam/newsrec/core"
)

// ExcludedFilter 剔除请求排除集中的内容。
// 排除集以调用方给定的 ID 为种子（如当前正在阅读的文章），
// 每层选中的结果也会进入排除集，因此天然完成跨层去重。
type ExcludedFilter struct{}

func (f *ExcludedFilter) Name() string { return "filter.excluded" }

func (f *ExcludedFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx == nil {
		return false, nil
	}
	return rctx.IsExcluded(item.ContentID), nil
}

// EligibleFilter 剔除不可推荐状态的候选。
// Status 为空时按 core.StatusPublished 判定。
type EligibleFilter struct {
	Status string
}

func (f *EligibleFilter) Name() string { return "filter.eligible" }

func (f *EligibleFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	status := f.Status
	if status == "" {
		status = core.StatusPublished
	}
	return item.Status != status, nil
}
