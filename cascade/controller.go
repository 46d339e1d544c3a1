// Package cascade 实现兜底级联状态机：
//
//	PERSONALIZED → CATEGORY_AFFINITY_EXPANDED → RECENT_SIMILAR → TRENDING → RANDOM_FILL → DONE
//
// 每层拉取本层候选，经过滤/打分/重排后贡献至多 remaining 条；
// remaining 归零立即进入 DONE。跨层不变式：每层选中的 ID 在进入下一层前
// 并入排除集，排除集只增不减，后层无法重新引入已选或已排除的内容。
//
// 候选穷尽所有层仍不满配额不是错误，只是更短的结果。
package cascade

import (
	"context"
	"fmt"

	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/pipeline"
	"github.com/rushteam/newsrec/pkg/utils"
	"github.com/rushteam/newsrec/recall"
)

// Stage 是级联中的一层：候选来源 + 本层的处理链。
type Stage struct {
	Source recall.Source

	// Pipeline 是本层的过滤/打分/重排链，可为 nil（仅随机层）。
	Pipeline *pipeline.Pipeline
}

// Controller 按层顺序驱动级联。
type Controller struct {
	Stages []Stage
}

// Run 执行级联，返回有序结果与降级告警。
//
// 取消语义：每层开始前检查 ctx；取消只截断后续层，已装配的结果原样返回。
// 单层失败（拉取或处理链出错）降级为空贡献并记录告警，级联继续。
func (c *Controller) Run(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, []string) {
	var (
		out      []*core.Item
		warnings []string
	)

	for _, stage := range c.Stages {
		remaining := rctx.Count - len(out)
		if remaining <= 0 {
			break
		}
		if ctx.Err() != nil {
			warnings = append(warnings, fmt.Sprintf("cascade: truncated before %s: %v", stage.Source.Tier(), ctx.Err()))
			break
		}

		items, err := stage.Source.Recall(ctx, rctx)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", stage.Source.Name(), err))
			rctx.PutLabel("tier_degraded", utils.Label{Value: string(stage.Source.Tier()), Source: "cascade"})
			continue
		}
		if len(items) == 0 {
			continue
		}

		if stage.Pipeline != nil {
			items, err = stage.Pipeline.Run(ctx, rctx, items)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("%s pipeline: %v", stage.Source.Name(), err))
				rctx.PutLabel("tier_degraded", utils.Label{Value: string(stage.Source.Tier()), Source: "cascade"})
				continue
			}
		}

		if len(items) > remaining {
			items = items[:remaining]
		}

		selected := make([]string, 0, len(items))
		for _, it := range items {
			if it == nil {
				continue
			}
			it.PutLabel("tier", utils.Label{Value: string(stage.Source.Tier()), Source: "cascade"})
			selected = append(selected, it.ContentID)
			out = append(out, it)
		}

		// 进入下一层前扩大排除集，保证后层不会重新引入
		rctx.Exclude(selected...)
	}

	return out, warnings
}
