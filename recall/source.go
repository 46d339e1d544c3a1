// Package recall 实现兜底级联各层的候选拉取。
//
// 每层是一个 Source：从候选供给方拉取本层语义下的候选切片。
// Source 失败只影响本层（降级为空切片），由级联控制器继续走低层。
package recall

import (
	"context"
	"time"

	"github.com/rushteam/newsrec/core"
)

// Source 表示级联中一层的候选来源。
type Source interface {
	Name() string
	Tier() core.Tier
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// sinceOr 把回看窗口换算成发布时间下限，<=0 表示不限制（零值）。
func sinceOr(window time.Duration) time.Time {
	if window <= 0 {
		return time.Time{}
	}
	return time.Now().Add(-window)
}

// tagTier 给本层候选打上层级标记。
func tagTier(items []*core.Item, tier core.Tier) []*core.Item {
	for _, it := range items {
		if it != nil {
			it.Tier = tier
		}
	}
	return items
}
