package sample

import (
	"sort"
	"testing"
)

func shuffled(src []string, seed int64) []string {
	out := append([]string(nil), src...)
	Shuffle(out, seed)
	return out
}

func TestShuffle_Deterministic(t *testing.T) {
	src := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	first := shuffled(src, 42)
	second := shuffled(src, 42)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("相同 seed 应产生相同顺序: %v vs %v", first, second)
		}
	}

	other := shuffled(src, 43)
	same := true
	for i := range first {
		if first[i] != other[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("不同 seed 产生了相同顺序（8 个元素下概率可忽略）")
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	got := shuffled([]string{"a", "b", "c", "d", "e"}, 7)

	if len(got) != 5 {
		t.Fatalf("长度不符: got %d", len(got))
	}
	sorted := append([]string(nil), got...)
	sort.Strings(sorted)
	for i, v := range []string{"a", "b", "c", "d", "e"} {
		if sorted[i] != v {
			t.Fatalf("不是排列: %v", got)
		}
	}
}

func TestPick(t *testing.T) {
	src := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"取部分", 3, 3},
		{"n 超长取全部", 10, 5},
		{"n 为零", 0, 0},
		{"n 为负", -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pick(src, tt.n, 99)
			if len(got) != tt.want {
				t.Errorf("got %d 条, want %d", len(got), tt.want)
			}
		})
	}

	// Pick 不修改原切片
	_ = Pick(src, 5, 1)
	for i, v := range []int{1, 2, 3, 4, 5} {
		if src[i] != v {
			t.Fatal("Pick 不应修改输入")
		}
	}

	a := Pick(src, 3, 5)
	b := Pick(src, 3, 5)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("相同 seed 应选出相同子集: %v vs %v", a, b)
		}
	}
}
