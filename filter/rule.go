package filter

import (
	"context"

	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/pkg/dsl"
)

// RuleFilter 用 CEL 表达式描述剔除规则，规则可从配置下发。
// 表达式返回 true 表示剔除，例如：
//
//	item.category == "ads"
//	item.age_hours > 720 && item.views < 10
type RuleFilter struct {
	prg *dsl.Program
}

// NewRuleFilter 编译表达式并返回过滤器，表达式非法时返回错误。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &RuleFilter{prg: prg}, nil
}

func (f *RuleFilter) Name() string { return "filter.rule" }

// ShouldFilter 求值失败时返回错误，由 FilterNode 降级处理（保留候选）。
func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.prg == nil {
		return false, nil
	}
	return f.prg.Match(item, rctx)
}
