package core

import (
	"sort"

	"github.com/rushteam/newsrec/pkg/utils"
)

// RecommendContext 承载单次推荐请求的用户/场景/信号快照，贯穿整个级联透传。
//
// 信号字段（Weights / Affinity / Explicit / LastCategory）在请求入口一次性装配，
// 之后只读；排除集（excluded）是唯一的可变状态，且只增不减：
// 每层选中的结果与调用方给定的排除 ID 都会进入排除集，后续层无法重新引入。
type RecommendContext struct {
	UserID string
	Scene  string

	// Count 是请求的结果条数；IncludeReasons 控制是否生成推荐理由。
	Count          int
	IncludeReasons bool

	// Seed 驱动随机兜底层的采样，固定 seed 可复现完整输出。
	Seed int64

	// Weights 是显式偏好 + 推断兴趣合并后的类目权重（只读快照）。
	Weights WeightMap

	// Affinity 是纯推断兴趣（未合并显式偏好），供类目扩展层与理由生成使用。
	Affinity AffinityMap

	// Explicit 是显式偏好快照，供理由生成判断“显式命中”。
	Explicit map[string]float64

	// LastCategory 是用户最近一次交互内容的类目，为空表示无近期行为。
	LastCategory string

	// Labels 是请求级标签：降级原因、命中策略等都通过 Label 透传。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（device、position 等），引擎本身不解释。
	Params map[string]any

	excluded map[string]struct{}
}

func NewRecommendContext(userID string, count int) *RecommendContext {
	return &RecommendContext{
		UserID:   userID,
		Count:    count,
		Weights:  make(WeightMap),
		Affinity: make(AffinityMap),
		Explicit: make(map[string]float64),
		Labels:   make(map[string]utils.Label),
		excluded: make(map[string]struct{}),
	}
}

// Exclude 将内容 ID 加入排除集。排除集只增不减。
func (rctx *RecommendContext) Exclude(contentIDs ...string) {
	if rctx.excluded == nil {
		rctx.excluded = make(map[string]struct{}, len(contentIDs))
	}
	for _, id := range contentIDs {
		if id != "" {
			rctx.excluded[id] = struct{}{}
		}
	}
}

// IsExcluded 判断内容是否已被排除。
func (rctx *RecommendContext) IsExcluded(contentID string) bool {
	_, ok := rctx.excluded[contentID]
	return ok
}

// ExcludedIDs 返回当前排除集的快照（升序，确定性），供候选供给方下推过滤。
func (rctx *RecommendContext) ExcludedIDs() []string {
	out := make([]string, 0, len(rctx.excluded))
	for id := range rctx.excluded {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
