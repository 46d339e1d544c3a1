// Package dsl 提供基于 CEL (Common Expression Language) 的候选规则解释器。
//
// 用于可配置的候选准入/剔除规则，例如：
//   - `item.status == "published"`
//   - `item.views > 100 && item.category != "ads"`
//   - `label.tier == "trending"`
//
// CEL 表达式编译一次后可并发复用，规则求值纯函数、无副作用。
package dsl

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/newsrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译后的规则程序，可多次并发求值。
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译 CEL 表达式。表达式必须返回布尔值。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}

	return &Program{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式文本。
func (p *Program) Expr() string { return p.expr }

// Match 对单个候选求值，返回布尔结果。
// 表达式返回非布尔值时视为错误。
func (p *Program) Match(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(map[string]any{
		"item":  itemVars(item),
		"label": labelVars(item),
		"rctx":  rctxVars(rctx),
	})
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", p.expr, err)
	}

	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("eval %q: non-boolean result %T", p.expr, out.Value())
	}
	return b, nil
}

// itemVars 把 Item 展开为 CEL 可访问的 map。
func itemVars(item *core.Item) map[string]any {
	if item == nil {
		return map[string]any{}
	}
	return map[string]any{
		"content_id":   item.ContentID,
		"category":     item.CategoryID,
		"status":       item.Status,
		"score":        item.Score,
		"views":        item.Views,
		"likes":        item.Likes,
		"shares":       item.Shares,
		"published_at": item.PublishedAt.Unix(),
		"age_hours":    time.Since(item.PublishedAt).Hours(),
	}
}

func labelVars(item *core.Item) map[string]any {
	out := map[string]any{}
	if item == nil {
		return out
	}
	for k, lbl := range item.Labels {
		out[k] = lbl.Value
	}
	return out
}

func rctxVars(rctx *core.RecommendContext) map[string]any {
	if rctx == nil {
		return map[string]any{}
	}
	return map[string]any{
		"user_id": rctx.UserID,
		"scene":   rctx.Scene,
		"count":   rctx.Count,
	}
}
