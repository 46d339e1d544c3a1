package filter

import (
	"context"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/rushteam/newsrec/core"
)

// SeenBloomFilter 用布隆过滤器剔除用户长周期内交互过的内容。
// 排除集保障的是本次请求内不重复；布隆覆盖的是跨请求的“看过就不再推”。
//
// 布隆存在误判（把没看过的判成看过），不存在漏判；
// 误判只会让个别候选被多过滤一条，由下一层补足配额，可接受。
type SeenBloomFilter struct {
	bf *bloom.BloomFilter
}

// NewSeenBloom 用已知的交互内容 ID 构建布隆过滤器。
// fpRate <= 0 时取 1%。
func NewSeenBloom(contentIDs []string, fpRate float64) *SeenBloomFilter {
	if fpRate <= 0 {
		fpRate = 0.01
	}
	n := uint(len(contentIDs))
	if n < 64 {
		n = 64
	}
	bf := bloom.NewWithEstimates(n, fpRate)
	for _, id := range contentIDs {
		if id != "" {
			bf.AddString(id)
		}
	}
	return &SeenBloomFilter{bf: bf}
}

// LoadSeenBloom 从事件源读取用户最近 limit 条交互并构建布隆过滤器。
// 事件源不可用时返回错误，调用方应降级为不启用该过滤器。
func LoadSeenBloom(ctx context.Context, events core.EventSource, userID string, limit int, fpRate float64) (*SeenBloomFilter, error) {
	if events == nil || userID == "" {
		return NewSeenBloom(nil, fpRate), nil
	}
	if limit <= 0 {
		limit = 500
	}
	evs, err := events.RecentEvents(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(evs))
	for _, ev := range evs {
		ids = append(ids, ev.ContentID)
	}
	return NewSeenBloom(ids, fpRate), nil
}

func (f *SeenBloomFilter) Name() string { return "filter.seen_bloom" }

func (f *SeenBloomFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.bf == nil {
		return false, nil
	}
	return f.bf.TestString(item.ContentID), nil
}
