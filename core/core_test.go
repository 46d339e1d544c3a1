package core

import (
	"testing"

	"github.com/rushteam/newsrec/pkg/utils"
)

func TestAffinityMap_Add(t *testing.T) {
	m := AffinityMap{}
	m.Add("tech", 5)
	m.Add("tech", 3)
	if m["tech"] != 8 {
		t.Errorf("应累加: got %v", m["tech"])
	}

	m.Add("tech", -8)
	if _, ok := m["tech"]; ok {
		t.Error("归零后应移除")
	}

	m.Add("", 5)
	if len(m) != 0 {
		t.Errorf("空类目应忽略: %v", m)
	}
}

// Categories 输出确定：分值降序，同分按 ID 升序。
func TestAffinityMap_CategoriesDeterministic(t *testing.T) {
	m := AffinityMap{"b": 2, "a": 2, "c": 9}
	want := []string{"c", "a", "b"}
	for i := 0; i < 5; i++ {
		got := m.Categories()
		for j, cat := range want {
			if got[j] != cat {
				t.Fatalf("第 %d 次输出不符: %v", i, got)
			}
		}
	}

	top := m.Top(2)
	if len(top) != 2 || top[0] != "c" || top[1] != "a" {
		t.Errorf("Top 不符: %v", top)
	}
}

func TestRecommendContext_ExclusionGrowsOnly(t *testing.T) {
	rctx := NewRecommendContext("u1", 10)
	rctx.Exclude("a", "b", "")

	if !rctx.IsExcluded("a") || !rctx.IsExcluded("b") {
		t.Error("排除未生效")
	}
	if rctx.IsExcluded("") || rctx.IsExcluded("c") {
		t.Error("不应误排除")
	}

	rctx.Exclude("c")
	ids := rctx.ExcludedIDs()
	want := []string{"a", "b", "c"}
	if len(ids) != 3 {
		t.Fatalf("排除集不符: %v", ids)
	}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("快照应升序: %v", ids)
		}
	}
}

func TestItem_Clone(t *testing.T) {
	it := NewItem("a")
	it.PutLabel("tier", utils.Label{Value: "trending", Source: "cascade"})

	c := it.Clone()
	c.Score = 5
	c.PutLabel("tier", utils.Label{Value: "random_fill", Source: "cascade"})

	if it.Score != 0 {
		t.Error("副本修改污染了原件")
	}
	if it.Labels["tier"].Value != "trending" {
		t.Errorf("Labels 应独立: %v", it.Labels["tier"])
	}
}

func TestValidInteraction(t *testing.T) {
	for _, typ := range []InteractionType{
		InteractionView, InteractionRead, InteractionLike, InteractionUnlike,
		InteractionSave, InteractionUnsave, InteractionShare, InteractionComment,
	} {
		if !ValidInteraction(typ) {
			t.Errorf("%s 应为合法类型", typ)
		}
	}
	if ValidInteraction("poke") || ValidInteraction("") {
		t.Error("未知类型应不合法")
	}
}

func TestDomainError(t *testing.T) {
	err := NewDomainError(ModuleEngine, ErrorCodeInvalidInput, "count must be positive")
	if !IsInvalidInput(err) {
		t.Error("应识别为 INVALID_INPUT")
	}
	if IsNotFound(err) || IsUnavailable(err) {
		t.Error("不应误判其他代码")
	}
	if IsInvalidInput(nil) {
		t.Error("nil 不应命中")
	}
}
