package signal

import "github.com/rushteam/newsrec/core"

// Merger 把显式偏好与推断兴趣合并成最终类目权重：
//
//	final = explicit * ExplicitWeight + inferred * InferredWeight
//
// 显式信任必须压过推断信号（ExplicitWeight > InferredWeight），
// 默认 10:5。合并后权重为零的类目不会出现在结果中。
type Merger struct {
	ExplicitWeight float64
	InferredWeight float64
}

// NewMerger 返回默认 10:5 配比的合并器。
func NewMerger() *Merger {
	return &Merger{ExplicitWeight: 10, InferredWeight: 5}
}

// Merge 产出最终的类目权重快照。
func (m *Merger) Merge(prefs []core.ExplicitPreference, affinity core.AffinityMap) core.WeightMap {
	out := make(core.WeightMap, len(prefs)+len(affinity))

	for _, p := range prefs {
		out.Add(p.CategoryID, p.Weight*m.ExplicitWeight)
	}
	for cat, score := range affinity {
		out.Add(cat, score*m.InferredWeight)
	}
	return out
}
