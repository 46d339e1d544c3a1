package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/newsrec/core"
)

func TestDedupNode_KeepsFirstOccurrence(t *testing.T) {
	items := []*core.Item{
		{ContentID: "a1", Score: 9},
		{ContentID: "a1", Score: 3},
		{ContentID: "a2", Score: 5},
	}

	node := &DedupNode{}
	got, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("去重失败: %v", err)
	}

	want := []string{"a1", "a2"}
	if len(got) != len(want) {
		t.Fatalf("条数不符: got %v, want %v", ids(got), want)
	}
	for i, id := range want {
		if got[i].ContentID != id {
			t.Fatalf("第 %d 位应为 %s: got %v", i, id, ids(got))
		}
	}
	// 首次出现的那条（高分）被保留
	if got[0].Score != 9 {
		t.Errorf("应保留首次出现的条目: got score %v", got[0].Score)
	}
}

func TestDedupNode_PassThroughAndNil(t *testing.T) {
	node := &DedupNode{}

	// 无重复时顺序不变
	clean := []*core.Item{{ContentID: "a"}, {ContentID: "b"}}
	got, _ := node.Process(context.Background(), nil, clean)
	if len(got) != 2 || got[0].ContentID != "a" || got[1].ContentID != "b" {
		t.Errorf("无重复时应原样返回: got %v", ids(got))
	}

	// nil 条目被剔除
	withNil := []*core.Item{{ContentID: "a"}, nil, {ContentID: "a"}}
	got, _ = node.Process(context.Background(), nil, withNil)
	if len(got) != 1 || got[0].ContentID != "a" {
		t.Errorf("nil 条目应剔除: got %v", ids(got))
	}

	// 空切片
	empty, _ := node.Process(context.Background(), nil, nil)
	if len(empty) != 0 {
		t.Errorf("空输入应返回空: got %v", ids(empty))
	}
}
