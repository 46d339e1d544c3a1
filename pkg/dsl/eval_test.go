package dsl

import (
	"testing"
	"time"

	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/pkg/utils"
)

func TestCompileAndMatch(t *testing.T) {
	item := &core.Item{
		ContentID:   "a1",
		CategoryID:  "tech",
		Status:      core.StatusPublished,
		Views:       500,
		PublishedAt: time.Now().Add(-2 * time.Hour),
	}
	item.PutLabel("tier", utils.Label{Value: "trending", Source: "cascade"})

	rctx := core.NewRecommendContext("u1", 10)
	rctx.Scene = "feed"

	tests := []struct {
		expr string
		want bool
	}{
		{`item.category == "tech"`, true},
		{`item.category == "ads"`, false},
		{`item.views > 100 && item.status == "published"`, true},
		{`item.age_hours < 1.0`, false},
		{`label.tier == "trending"`, true},
		{`rctx.scene == "feed"`, true},
		{`rctx.user_id == "u1" && item.views >= 500`, true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			prg, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("编译失败: %v", err)
			}
			got, err := prg.Match(item, rctx)
			if err != nil {
				t.Fatalf("求值失败: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompile_Invalid(t *testing.T) {
	for _, expr := range []string{
		`item.category ==`,
		`((`,
	} {
		if _, err := Compile(expr); err == nil {
			t.Errorf("非法表达式 %q 应编译失败", expr)
		}
	}
}

func TestMatch_NonBoolean(t *testing.T) {
	prg, err := Compile(`item.views`)
	if err != nil {
		t.Fatalf("编译失败: %v", err)
	}
	if _, err := prg.Match(&core.Item{Views: 1}, nil); err == nil {
		t.Error("非布尔结果应报错")
	}
}

func TestMatch_NilSafe(t *testing.T) {
	prg, err := Compile(`item.content_id == ""`)
	if err != nil {
		t.Fatalf("编译失败: %v", err)
	}
	// nil item 展开为空 map，字段缺失求值报错而不是 panic
	if _, err := prg.Match(nil, nil); err == nil {
		t.Log("空 item 求值未报错（字段缺省）")
	}
}
