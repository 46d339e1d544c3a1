package recall

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rushteam/newsrec/core"
)

// fakeSupplier 按查询条件过滤内存候选，记录最近一次查询供断言。
type fakeSupplier struct {
	items []*core.Item
	err   error
	lastQ core.CandidateQuery
}

func (s *fakeSupplier) Candidates(_ context.Context, q core.CandidateQuery) ([]*core.Item, error) {
	s.lastQ = q
	if s.err != nil {
		return nil, s.err
	}
	allowed := func(it *core.Item) bool {
		if len(q.Categories) > 0 {
			ok := false
			for _, c := range q.Categories {
				if it.CategoryID == c {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		}
		if !q.PublishedSince.IsZero() && it.PublishedAt.Before(q.PublishedSince) {
			return false
		}
		for _, ex := range q.Exclude {
			if it.ContentID == ex {
				return false
			}
		}
		return true
	}
	var out []*core.Item
	for _, it := range s.items {
		if allowed(it) {
			out = append(out, it.Clone())
		}
	}
	return out, nil
}

func pool(now time.Time) []*core.Item {
	return []*core.Item{
		{ContentID: "t1", CategoryID: "tech", PublishedAt: now.Add(-time.Hour), Status: core.StatusPublished},
		{ContentID: "t2", CategoryID: "tech", PublishedAt: now.Add(-2 * time.Hour), Status: core.StatusPublished},
		{ContentID: "s1", CategoryID: "sports", PublishedAt: now.Add(-3 * time.Hour), Status: core.StatusPublished},
		{ContentID: "l1", CategoryID: "local", PublishedAt: now.Add(-10 * 24 * time.Hour), Status: core.StatusPublished},
	}
}

func TestPersonalized_Recall(t *testing.T) {
	now := time.Now()
	sup := &fakeSupplier{items: pool(now)}
	src := &Personalized{Supplier: sup}

	rctx := core.NewRecommendContext("u1", 10)
	rctx.Weights = core.WeightMap{"tech": 9}

	items, err := src.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("拉取失败: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("应只拉取权重类目: got %d", len(items))
	}
	for _, it := range items {
		if it.Tier != core.TierPersonalized {
			t.Errorf("应标记个性化层: got %s", it.Tier)
		}
	}

	// 无权重类目时返回空（冷启动直接走低层）
	cold, err := src.Recall(context.Background(), core.NewRecommendContext("u2", 10))
	if err != nil || cold != nil {
		t.Errorf("无权重应返回空: got %v, err %v", cold, err)
	}
}

func TestExpanded_Categories(t *testing.T) {
	now := time.Now()
	sup := &fakeSupplier{items: pool(now)}
	catalog := &fakeCatalog{links: map[string][]string{"tech": {"local", "tech"}}}

	rctx := core.NewRecommendContext("u1", 10)
	rctx.Weights = core.WeightMap{"tech": 9}
	rctx.Affinity = core.AffinityMap{"tech": 2, "sports": 1}

	src := &Expanded{Supplier: sup, Catalog: catalog}
	if _, err := src.Recall(context.Background(), rctx); err != nil {
		t.Fatalf("拉取失败: %v", err)
	}

	// 权重内类目不重复拉取；关联类目 + 长尾兴趣类目按升序
	want := []string{"local", "sports"}
	if len(sup.lastQ.Categories) != len(want) {
		t.Fatalf("扩展类目不符: got %v, want %v", sup.lastQ.Categories, want)
	}
	for i, c := range want {
		if sup.lastQ.Categories[i] != c {
			t.Fatalf("扩展类目不符: got %v, want %v", sup.lastQ.Categories, want)
		}
	}
}

func TestRecentSimilar_Recall(t *testing.T) {
	now := time.Now()
	sup := &fakeSupplier{items: pool(now)}
	src := &RecentSimilar{Supplier: sup}

	rctx := core.NewRecommendContext("u1", 10)
	rctx.LastCategory = "sports"

	items, err := src.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("拉取失败: %v", err)
	}
	if len(items) != 1 || items[0].ContentID != "s1" {
		t.Fatalf("应只拉取最近类目: got %v", items)
	}

	// 无近期类目返回空
	empty, _ := src.Recall(context.Background(), core.NewRecommendContext("u2", 10))
	if empty != nil {
		t.Errorf("无 LastCategory 应返回空: got %v", empty)
	}
}

func TestTrending_Window(t *testing.T) {
	now := time.Now()
	sup := &fakeSupplier{items: pool(now)}
	src := &Trending{Supplier: sup, Now: func() time.Time { return now }}

	items, err := src.Recall(context.Background(), core.NewRecommendContext("u1", 10))
	if err != nil {
		t.Fatalf("拉取失败: %v", err)
	}
	// l1 发布在 10 天前，超出 7 天窗口
	for _, it := range items {
		if it.ContentID == "l1" {
			t.Error("窗口外内容不应进入热门层")
		}
	}
	if len(items) != 3 {
		t.Errorf("窗口内应有 3 条: got %d", len(items))
	}
}

func TestRandomFill_SeededDeterminism(t *testing.T) {
	now := time.Now()
	src := &RandomFill{Supplier: &fakeSupplier{items: pool(now)}}

	run := func(seed int64) []string {
		rctx := core.NewRecommendContext("u1", 10)
		rctx.Seed = seed
		items, err := src.Recall(context.Background(), rctx)
		if err != nil {
			t.Fatalf("拉取失败: %v", err)
		}
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.ContentID)
		}
		return out
	}

	a, b := run(42), run(42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("相同 seed 应产生相同顺序: %v vs %v", a, b)
		}
	}
}

// 各层的回看窗口下推到供给方查询；缺省不限发布时间。
func TestRecall_WindowPushdown(t *testing.T) {
	now := time.Now()
	sup := &fakeSupplier{items: pool(now)}

	rctx := core.NewRecommendContext("u1", 10)
	rctx.Weights = core.WeightMap{"tech": 9}
	rctx.LastCategory = "sports"

	// 缺省：不限发布时间
	if _, err := (&Personalized{Supplier: sup}).Recall(context.Background(), rctx); err != nil {
		t.Fatalf("拉取失败: %v", err)
	}
	if !sup.lastQ.PublishedSince.IsZero() {
		t.Errorf("无窗口时不应限制发布时间: %v", sup.lastQ.PublishedSince)
	}

	// 配置窗口后查询带发布时间下界
	window := 14 * 24 * time.Hour
	sources := []Source{
		&Personalized{Supplier: sup, Window: window},
		&RecentSimilar{Supplier: sup, Window: window},
		&RandomFill{Supplier: sup, Window: window},
	}
	for _, src := range sources {
		if _, err := src.Recall(context.Background(), rctx); err != nil {
			t.Fatalf("%s 拉取失败: %v", src.Name(), err)
		}
		since := sup.lastQ.PublishedSince
		if since.IsZero() {
			t.Errorf("%s 应下推发布时间下界", src.Name())
			continue
		}
		got := time.Since(since)
		if got < window-time.Minute || got > window+time.Minute {
			t.Errorf("%s 窗口不符: got %v, want %v", src.Name(), got, window)
		}
	}

	// l1 发布在 10 天前，7 天窗口下被供给方过滤
	narrow := &RecentSimilar{Supplier: sup, Window: 7 * 24 * time.Hour}
	rctx.LastCategory = "local"
	items, _ := narrow.Recall(context.Background(), rctx)
	if len(items) != 0 {
		t.Errorf("窗口外内容不应返回: got %v", items)
	}
}

func TestRecall_SupplierErrorPropagates(t *testing.T) {
	sup := &fakeSupplier{err: errors.New("db down")}
	rctx := core.NewRecommendContext("u1", 10)
	rctx.Weights = core.WeightMap{"tech": 1}

	if _, err := (&Personalized{Supplier: sup}).Recall(context.Background(), rctx); err == nil {
		t.Error("供给方失败应向上返回（由级联降级）")
	}
}

type fakeCatalog struct {
	links map[string][]string
}

func (c *fakeCatalog) DisplayName(_ context.Context, id string) (string, bool) { return id, true }
func (c *fakeCatalog) Related(_ context.Context, id string) []string           { return c.links[id] }
