package rank

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rushteam/newsrec/core"
)

func TestScorer_Score(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewScorer()
	s.Now = func() time.Time { return now }
	weights := core.WeightMap{"tech": 9}

	tests := []struct {
		name string
		item *core.Item
		want float64
	}{
		{
			name: "nil 候选",
			item: nil,
			want: 0,
		},
		{
			name: "类目权重 + 满时效",
			item: &core.Item{CategoryID: "tech", PublishedAt: now},
			want: 19, // 9 + 10
		},
		{
			name: "窗口中点时效减半",
			item: &core.Item{CategoryID: "tech", PublishedAt: now.Add(-3*24*time.Hour - 12*time.Hour)},
			want: 14, // 9 + 5
		},
		{
			name: "窗口外时效为零",
			item: &core.Item{CategoryID: "tech", PublishedAt: now.Add(-8 * 24 * time.Hour)},
			want: 9,
		},
		{
			name: "未命中类目且无发布时间",
			item: &core.Item{CategoryID: "unknown"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(weights, tt.item)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScorer_PopularityBonus(t *testing.T) {
	s := NewScorer()

	if got := s.PopularityBonus(0, 0, 0); got != 0 {
		t.Errorf("零互动应为 0: got %v", got)
	}

	// 次线性：互动翻倍，加分远不到翻倍
	low := s.PopularityBonus(1000, 0, 0)
	high := s.PopularityBonus(2000, 0, 0)
	if high >= low*2 {
		t.Errorf("热度分应为次线性: low=%v high=%v", low, high)
	}

	// 病毒式传播也压不过封顶
	viral := s.PopularityBonus(10_000_000, 500_000, 100_000)
	if viral != s.PopularityCap {
		t.Errorf("应封顶在 %v: got %v", s.PopularityCap, viral)
	}

	// 封顶关闭时恒为 0
	s.PopularityCap = 0
	if got := s.PopularityBonus(1000, 100, 10); got != 0 {
		t.Errorf("关闭后应为 0: got %v", got)
	}
}

// 相同输入必然得到相同分数。
func TestScorer_Deterministic(t *testing.T) {
	now := time.Now()
	s := NewScorer()
	s.Now = func() time.Time { return now }
	weights := core.WeightMap{"tech": 5}
	it := &core.Item{CategoryID: "tech", PublishedAt: now.Add(-time.Hour), Views: 1234, Likes: 56}

	first := s.Score(weights, it)
	for i := 0; i < 10; i++ {
		if got := s.Score(weights, it); got != first {
			t.Fatalf("第 %d 次打分不一致: %v != %v", i, got, first)
		}
	}
}

func TestScoreNode_Process(t *testing.T) {
	now := time.Now()
	scorer := NewScorer()
	scorer.Now = func() time.Time { return now }

	rctx := core.NewRecommendContext("u1", 10)
	rctx.Weights = core.WeightMap{"tech": 9}

	mk := func(n int) []*core.Item {
		items := make([]*core.Item, n)
		for i := range items {
			items[i] = &core.Item{
				ContentID:   string(rune('a' + i%26)),
				CategoryID:  "tech",
				PublishedAt: now.Add(-time.Duration(i) * time.Hour),
				Views:       int64(i * 100),
			}
		}
		return items
	}

	serial := &ScoreNode{Scorer: scorer, Mode: ModeFull}
	parallel := &ScoreNode{Scorer: scorer, Mode: ModeFull, Parallel: 4, ParallelThreshold: 1}

	a, err := serial.Process(context.Background(), rctx, mk(100))
	if err != nil {
		t.Fatalf("串行打分失败: %v", err)
	}
	b, err := parallel.Process(context.Background(), rctx, mk(100))
	if err != nil {
		t.Fatalf("并发打分失败: %v", err)
	}
	for i := range a {
		if a[i].Score != b[i].Score {
			t.Fatalf("并发与串行结果不一致: i=%d %v != %v", i, a[i].Score, b[i].Score)
		}
	}
}

func TestScoreNode_PopularityMode(t *testing.T) {
	scorer := NewScorer()
	rctx := core.NewRecommendContext("u1", 10)
	rctx.Weights = core.WeightMap{"tech": 100}

	node := &ScoreNode{Scorer: scorer, Mode: ModePopularity}
	items, err := node.Process(context.Background(), rctx, []*core.Item{
		{ContentID: "a", CategoryID: "tech", Views: 1000},
	})
	if err != nil {
		t.Fatalf("打分失败: %v", err)
	}
	// 热度模式不应吸收类目权重
	if items[0].Score >= 100 {
		t.Errorf("热度模式不应包含类目权重: got %v", items[0].Score)
	}
	if items[0].Score <= 0 {
		t.Errorf("有互动时热度分应为正: got %v", items[0].Score)
	}
}
