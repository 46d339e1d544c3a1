package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/newsrec/core"
)

func TestExcludedFilter(t *testing.T) {
	rctx := core.NewRecommendContext("u1", 10)
	rctx.Exclude("a", "b")

	f := &ExcludedFilter{}
	tests := []struct {
		id   string
		want bool
	}{
		{"a", true},
		{"b", true},
		{"c", false},
	}
	for _, tt := range tests {
		got, err := f.ShouldFilter(context.Background(), rctx, &core.Item{ContentID: tt.id})
		if err != nil {
			t.Fatalf("不应返回错误: %v", err)
		}
		if got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestEligibleFilter(t *testing.T) {
	f := &EligibleFilter{}
	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{"已发布保留", core.StatusPublished, false},
		{"草稿剔除", "draft", true},
		{"下线剔除", "archived", true},
		{"空状态剔除", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := f.ShouldFilter(context.Background(), nil, &core.Item{Status: tt.status})
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

type failingFilter struct{}

func (failingFilter) Name() string { return "filter.failing" }
func (failingFilter) ShouldFilter(context.Context, *core.RecommendContext, *core.Item) (bool, error) {
	return false, errors.New("boom")
}

// 单个过滤器失败降级：候选保留，请求打降级标签，不中断。
func TestFilterNode_DegradesOnError(t *testing.T) {
	rctx := core.NewRecommendContext("u1", 10)
	node := &FilterNode{Filters: []Filter{failingFilter{}, &ExcludedFilter{}}}

	items, err := node.Process(context.Background(), rctx, []*core.Item{
		{ContentID: "a", Status: core.StatusPublished},
	})
	if err != nil {
		t.Fatalf("降级不应返回错误: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("失败的过滤器应保留候选: got %d", len(items))
	}
	if _, ok := rctx.GetLabel("filter_degraded"); !ok {
		t.Error("应打出 filter_degraded 标签")
	}
}

func TestSeenBloomFilter(t *testing.T) {
	f := NewSeenBloom([]string{"a", "b"}, 0)

	for _, id := range []string{"a", "b"} {
		got, _ := f.ShouldFilter(context.Background(), nil, &core.Item{ContentID: id})
		if !got {
			t.Errorf("已读内容 %s 应被剔除", id)
		}
	}
	// 假阳率 1% 下未读内容几乎必然保留
	got, _ := f.ShouldFilter(context.Background(), nil, &core.Item{ContentID: "never-seen-content"})
	if got {
		t.Error("未读内容不应被剔除")
	}
}

func TestLoadSeenBloom(t *testing.T) {
	events := &stubEventSource{events: []core.InteractionEvent{
		{ContentID: "a", Type: core.InteractionView},
		{ContentID: "b", Type: core.InteractionRead},
	}}

	f, err := LoadSeenBloom(context.Background(), events, "u1", 0, 0)
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	got, _ := f.ShouldFilter(context.Background(), nil, &core.Item{ContentID: "a"})
	if !got {
		t.Error("事件窗口内的内容应被剔除")
	}

	// 事件源失败向上返回，由引擎降级
	events.err = errors.New("down")
	if _, err := LoadSeenBloom(context.Background(), events, "u1", 0, 0); err == nil {
		t.Error("事件源失败应返回错误")
	}
}

type stubEventSource struct {
	events []core.InteractionEvent
	err    error
}

func (s *stubEventSource) RecentEvents(context.Context, string, int) ([]core.InteractionEvent, error) {
	return s.events, s.err
}

func TestRuleFilter(t *testing.T) {
	f, err := NewRuleFilter(`item.category == "ads" || item.views < 0`)
	if err != nil {
		t.Fatalf("编译失败: %v", err)
	}

	tests := []struct {
		name string
		item *core.Item
		want bool
	}{
		{"命中规则", &core.Item{ContentID: "a", CategoryID: "ads"}, true},
		{"未命中", &core.Item{ContentID: "b", CategoryID: "tech", Views: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.ShouldFilter(context.Background(), core.NewRecommendContext("u1", 5), tt.item)
			if err != nil {
				t.Fatalf("求值失败: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := NewRuleFilter("item.category =="); err == nil {
		t.Error("非法表达式应编译失败")
	}
}
