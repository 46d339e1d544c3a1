package core

import (
	"time"

	"github.com/rushteam/newsrec/pkg/utils"
)

// StatusPublished 是候选内容可参与推荐的唯一状态。
const StatusPublished = "published"

// Tier 标记推荐结果来自兜底级联的哪一层。
type Tier string

const (
	TierPersonalized  Tier = "personalized"               // 个性化层：命中加权类目
	TierExpanded      Tier = "category_affinity_expanded" // 类目扩展层：关联/低权类目
	TierRecentSimilar Tier = "recent_similar"             // 近读相似层：最近一次交互的类目
	TierTrending      Tier = "trending"                   // 热门层：时间窗内按热度
	TierRandomFill    Tier = "random_fill"                // 随机兜底层：唯一允许随机的层
)

// Reason 是附在单条结果上的推荐理由（只保留最优一条）。
type Reason struct {
	Code string `json:"code"` // explicit_category / inferred_interest / recent_similar / trending / suggested
	Text string `json:"text"`
}

// Item 是推荐链路中的统一承载结构：候选元数据、分数、层级、理由、标签。
// 由候选供给方产出，经打分/排序后不再修改元数据字段。
type Item struct {
	ContentID   string
	CategoryID  string
	PublishedAt time.Time
	Status      string

	// 互动统计，缺失字段按 0 参与打分
	Views  int64
	Likes  int64
	Shares int64

	Score  float64
	Tier   Tier
	Reason *Reason

	Labels map[string]utils.Label
}

func NewItem(contentID string) *Item {
	return &Item{
		ContentID: contentID,
		Labels:    make(map[string]utils.Label),
	}
}

// Eligible 判断候选是否可参与推荐。
func (it *Item) Eligible() bool {
	return it != nil && it.Status == StatusPublished
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Clone 返回 Item 的浅拷贝（Labels 独立），用于保证打分层不污染候选池。
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	cp := *it
	cp.Labels = make(map[string]utils.Label, len(it.Labels))
	for k, v := range it.Labels {
		cp.Labels[k] = v
	}
	if it.Reason != nil {
		r := *it.Reason
		cp.Reason = &r
	}
	return &cp
}
