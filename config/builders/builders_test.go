package builders

import (
	"context"
	"testing"

	"github.com/rushteam/newsrec/config"
	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/pipeline"
	"github.com/rushteam/newsrec/rank"
)

func TestRegisteredTypes(t *testing.T) {
	supported := config.SupportedTypes()
	want := []string{"filter", "rank.score", "rerank.dedup", "rerank.diversity", "rerank.order", "rerank.topn"}
	got := make(map[string]bool, len(supported))
	for _, typ := range supported {
		got[typ] = true
	}
	for _, typ := range want {
		if !got[typ] {
			t.Errorf("类型 %s 未注册: %v", typ, supported)
		}
	}
}

func TestBuildScoreNode(t *testing.T) {
	node, err := BuildScoreNode(map[string]any{
		"mode":          "popularity",
		"parallel":      4,
		"recency_bonus": 20.0,
	})
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	sn, ok := node.(*rank.ScoreNode)
	if !ok {
		t.Fatalf("类型不符: %T", node)
	}
	if sn.Mode != rank.ModePopularity || sn.Parallel != 4 {
		t.Errorf("配置未生效: %+v", sn)
	}
	if sn.Scorer.RecencyBonus != 20 {
		t.Errorf("打分参数未生效: %v", sn.Scorer.RecencyBonus)
	}

	if _, err := BuildScoreNode(map[string]any{"mode": "magic"}); err == nil {
		t.Error("未知模式应报错")
	}
}

func TestBuildFilterNode_Rules(t *testing.T) {
	node, err := BuildFilterNode(map[string]any{
		"rules": []any{`item.category == "ads"`},
	})
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}

	rctx := core.NewRecommendContext("u1", 10)
	items, err := node.Process(context.Background(), rctx, []*core.Item{
		{ContentID: "a", CategoryID: "ads", Status: core.StatusPublished},
		{ContentID: "b", CategoryID: "tech", Status: core.StatusPublished},
	})
	if err != nil {
		t.Fatalf("处理失败: %v", err)
	}
	if len(items) != 1 || items[0].ContentID != "b" {
		t.Errorf("规则应剔除 ads: got %v", items)
	}

	if _, err := BuildFilterNode(map[string]any{"rules": []any{"(("}}); err == nil {
		t.Error("非法规则应构建失败")
	}
}

// 配置驱动的整条处理链：工厂构建 → Pipeline 运行。
func TestConfigDrivenPipeline(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Name = "tier"
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "filter", Config: map[string]any{}},
		{Type: "rank.score", Config: map[string]any{"mode": "full"}},
		{Type: "rerank.order", Config: map[string]any{}},
		{Type: "rerank.topn", Config: map[string]any{"n": 1}},
	}

	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("校验失败: %v", err)
	}
	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}

	rctx := core.NewRecommendContext("u1", 10)
	rctx.Weights = core.WeightMap{"tech": 9}
	items, err := p.Run(context.Background(), rctx, []*core.Item{
		{ContentID: "a", CategoryID: "tech", Status: core.StatusPublished},
		{ContentID: "b", CategoryID: "misc", Status: core.StatusPublished},
	})
	if err != nil {
		t.Fatalf("运行失败: %v", err)
	}
	if len(items) != 1 || items[0].ContentID != "a" {
		t.Errorf("应保留最高分 1 条: got %v", items)
	}

	cfg.Pipeline.Nodes = append(cfg.Pipeline.Nodes, pipeline.NodeConfig{Type: "node.unknown"})
	if err := config.ValidatePipelineConfig(cfg); err == nil {
		t.Error("未注册类型应校验失败")
	}
}
