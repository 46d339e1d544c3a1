// Package rank 实现候选打分：类目权重 + 时效加分 + 热度加分。
//
// 打分是纯函数：相同输入必然得到相同分数；字段缺失按 0 贡献，
// 稀疏元数据不会让打分失败。
package rank

import (
	"math"
	"time"

	"github.com/rushteam/newsrec/core"
)

// Scorer 计算单个候选的综合分。
//
//	score = weights[category] + recencyBonus(published_at) + popularityBonus(views, likes, shares)
type Scorer struct {
	// RecencyBonus 是时效满分，发布后在 RecencyWindow 内线性衰减到 0，窗口外为 0。
	RecencyBonus  float64
	RecencyWindow time.Duration

	// 热度折算系数（来源系统的经验值：浏览 0.001、点赞 0.01、分享 0.02），
	// 加权和经过 log 压缩后再被 PopularityCap 封顶，热度无法压过类目相关性。
	ViewWeight    float64
	LikeWeight    float64
	ShareWeight   float64
	PopularityCap float64

	// Now 供测试注入时钟，缺省为 time.Now。
	Now func() time.Time
}

// NewScorer 返回默认参数的打分器：时效满分 10 / 窗口 7 天 / 热度封顶 2。
func NewScorer() *Scorer {
	return &Scorer{
		RecencyBonus:  10,
		RecencyWindow: 7 * 24 * time.Hour,
		ViewWeight:    0.001,
		LikeWeight:    0.01,
		ShareWeight:   0.02,
		PopularityCap: 2,
	}
}

// Score 计算综合分。weights 为空或未命中类目时，类目项贡献 0。
func (s *Scorer) Score(weights core.WeightMap, it *core.Item) float64 {
	if it == nil {
		return 0
	}
	score := 0.0
	if weights != nil {
		score += weights[it.CategoryID]
	}
	score += s.recencyBonus(it.PublishedAt)
	score += s.PopularityBonus(it.Views, it.Likes, it.Shares)
	return score
}

// recencyBonus 在窗口内从满分线性衰减到 0。
func (s *Scorer) recencyBonus(publishedAt time.Time) float64 {
	if s.RecencyBonus <= 0 || s.RecencyWindow <= 0 || publishedAt.IsZero() {
		return 0
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	age := now.Sub(publishedAt)
	if age < 0 {
		age = 0
	}
	if age >= s.RecencyWindow {
		return 0
	}
	return s.RecencyBonus * (1 - float64(age)/float64(s.RecencyWindow))
}

// PopularityBonus 是封顶的次线性热度分，热门层单独用它排序。
func (s *Scorer) PopularityBonus(views, likes, shares int64) float64 {
	if s.PopularityCap <= 0 {
		return 0
	}
	engagement := float64(views)*s.ViewWeight +
		float64(likes)*s.LikeWeight +
		float64(shares)*s.ShareWeight
	if engagement <= 0 {
		return 0
	}
	bonus := math.Log1p(engagement)
	if bonus > s.PopularityCap {
		return s.PopularityCap
	}
	return bonus
}
