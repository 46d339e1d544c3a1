// Package sample 提供显式可播种的随机采样原语。
//
// 随机兜底（random_fill）是整条推荐链路中唯一允许随机性的环节；
// 通过固定 seed，可在测试中机械化验证“相同快照 + 相同 seed => 相同输出”。
package sample

import "math/rand"

// Shuffle 按给定 seed 对 items 做确定性洗牌（Fisher-Yates）。
// 相同 seed 与相同输入顺序必然产生相同输出。
func Shuffle[T any](items []T, seed int64) {
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// Pick 从 items 中按 seed 均匀采样最多 n 个元素，不修改原切片。
// n >= len(items) 时返回全量（洗牌后）的副本。
func Pick[T any](items []T, n int, seed int64) []T {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	out := make([]T, len(items))
	copy(out, items)
	Shuffle(out, seed)
	if n < len(out) {
		out = out[:n]
	}
	return out
}
