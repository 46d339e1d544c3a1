package core

import "sort"

// ExplicitPreference 是用户或运营显式设置的类目权重，优先级高于行为推断。
// Weight 取值 [0,1]。
type ExplicitPreference struct {
	UserID     string  `json:"user_id"`
	CategoryID string  `json:"category_id"`
	Weight     float64 `json:"weight"`
}

// AffinityMap 是 category_id -> 分值 (>=0) 的兴趣图谱。
// 由信号收集器从行为窗口推断，或由特征服务预聚合提供；本引擎不落库。
// 零值条目不保留：weight 归零时从 map 中删除，下游无需跳过空条目。
type AffinityMap map[string]float64

// Add 向指定类目累加分值，累加后 <=0 的类目被移除。
func (m AffinityMap) Add(categoryID string, delta float64) {
	if categoryID == "" || delta == 0 {
		return
	}
	next := m[categoryID] + delta
	if next <= 0 {
		delete(m, categoryID)
		return
	}
	m[categoryID] = next
}

// Merge 将 other 的分值并入当前 map。
func (m AffinityMap) Merge(other AffinityMap) {
	for k, v := range other {
		m.Add(k, v)
	}
}

// Categories 返回所有类目 ID，按分值降序、同分按 ID 升序，保证确定性。
func (m AffinityMap) Categories() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if m[out[i]] != m[out[j]] {
			return m[out[i]] > m[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// Top 返回分值最高的 n 个类目（确定性排序）。
func (m AffinityMap) Top(n int) []string {
	cats := m.Categories()
	if n > 0 && len(cats) > n {
		cats = cats[:n]
	}
	return cats
}

// Clone 返回独立副本。
func (m AffinityMap) Clone() AffinityMap {
	out := make(AffinityMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// WeightMap 是显式偏好与推断兴趣合并后的最终类目权重。
// 语义与 AffinityMap 一致：零权类目不存在于 map 中。
type WeightMap = AffinityMap
