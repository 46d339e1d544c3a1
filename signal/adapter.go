package signal

import "github.com/rushteam/newsrec/core"

// 历史存量里并存着两套偏好 schema：
//  1. 老版：按类目一条记录（category_id + weight）
//  2. 新版：兴趣词列表（interest + score），类目需经解析映射
//
// 引擎核心只接受归一化的 ExplicitPreference；schema 对账在这里完成，
// 不允许渗透进打分链路。

// CategoryRecord 是老版按类目的偏好记录。
type CategoryRecord struct {
	UserID     string  `json:"user_id"`
	CategoryID string  `json:"category_id"`
	Weight     float64 `json:"weight"`
}

// InterestRecord 是新版兴趣词记录。
type InterestRecord struct {
	UserID   string  `json:"user_id"`
	Interest string  `json:"interest"`
	Score    float64 `json:"score"`
}

// NormalizeCategoryRecords 把老版记录归一化为 ExplicitPreference。
// 同一类目出现多条时取最大权重；权重截断到 [0,1]。
func NormalizeCategoryRecords(records []CategoryRecord) []core.ExplicitPreference {
	best := make(map[string]core.ExplicitPreference, len(records))
	order := make([]string, 0, len(records))

	for _, r := range records {
		if r.CategoryID == "" {
			continue
		}
		w := clamp01(r.Weight)
		if w == 0 {
			continue
		}
		if old, ok := best[r.CategoryID]; ok {
			if w > old.Weight {
				old.Weight = w
				best[r.CategoryID] = old
			}
			continue
		}
		best[r.CategoryID] = core.ExplicitPreference{
			UserID:     r.UserID,
			CategoryID: r.CategoryID,
			Weight:     w,
		}
		order = append(order, r.CategoryID)
	}

	out := make([]core.ExplicitPreference, 0, len(order))
	for _, cat := range order {
		out = append(out, best[cat])
	}
	return out
}

// NormalizeInterests 把新版兴趣词记录归一化为 ExplicitPreference。
// resolve 负责兴趣词到类目的映射（兴趣词本身不是类目 ID）；
// 无法映射的兴趣词被跳过。同一类目取最大分值，分值截断到 [0,1]。
func NormalizeInterests(records []InterestRecord, resolve func(interest string) (categoryID string, ok bool)) []core.ExplicitPreference {
	if resolve == nil {
		return nil
	}

	converted := make([]CategoryRecord, 0, len(records))
	for _, r := range records {
		cat, ok := resolve(r.Interest)
		if !ok {
			continue
		}
		converted = append(converted, CategoryRecord{
			UserID:     r.UserID,
			CategoryID: cat,
			Weight:     r.Score,
		})
	}
	return NormalizeCategoryRecords(converted)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
