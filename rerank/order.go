// Package rerank 实现排序、平手裁决、多样性与截断。
package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/pipeline"
)

// OrderNode 按分数降序排序；平手先比 published_at（新者在前），
// 再比 content_id（升序），保证完全确定的输出顺序。
type OrderNode struct{}

func (n *OrderNode) Name() string        { return "rerank.order" }
func (n *OrderNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *OrderNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	sort.Slice(items, func(i, j int) bool {
		return Less(items[i], items[j])
	})
	return items, nil
}

// Less 是全链路统一的裁决顺序：score desc → published_at desc → content_id asc。
func Less(a, b *core.Item) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.PublishedAt.Equal(b.PublishedAt) {
		return a.PublishedAt.After(b.PublishedAt)
	}
	return a.ContentID < b.ContentID
}
