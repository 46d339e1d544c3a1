package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rushteam/newsrec/core"
)

// RecommendationLog 把产出的推荐结果落盘（带 TTL），并按理由代码累积统计。
// 落盘结果供 CTR 分析/调参使用，过期自动淘汰；统计是 read-modify-write，
// 非原子，计数允许少量偏差。
type RecommendationLog struct {
	KV core.KeyValueStore

	// KeyPrefix 缺省 "rec:result"。
	KeyPrefix string

	// TTL 是结果保存时长，缺省 24h。
	TTL time.Duration
}

type savedItem struct {
	ContentID string    `json:"content_id"`
	Category  string    `json:"category_id"`
	Score     float64   `json:"score"`
	Tier      core.Tier `json:"tier"`
	Reason    string    `json:"reason,omitempty"`
	SavedAt   time.Time `json:"saved_at"`
}

func (l *RecommendationLog) prefix() string {
	if l.KeyPrefix != "" {
		return l.KeyPrefix
	}
	return "rec:result"
}

// SaveResult 保存一次推荐产出。
func (l *RecommendationLog) SaveResult(ctx context.Context, userID string, items []*core.Item) error {
	if l.KV == nil {
		return core.ErrStoreNotSupported
	}

	saved := make([]savedItem, 0, len(items))
	now := time.Now()
	for _, it := range items {
		if it == nil {
			continue
		}
		s := savedItem{
			ContentID: it.ContentID,
			Category:  it.CategoryID,
			Score:     it.Score,
			Tier:      it.Tier,
			SavedAt:   now,
		}
		if it.Reason != nil {
			s.Reason = it.Reason.Code
		}
		saved = append(saved, s)
	}

	data, err := json.Marshal(saved)
	if err != nil {
		return err
	}

	ttl := l.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if err := l.KV.Set(ctx, l.prefix()+":"+userID, data, int(ttl.Seconds())); err != nil {
		return err
	}

	for _, s := range saved {
		if s.Reason != "" {
			l.bumpReason(ctx, s.Reason)
		}
	}
	return nil
}

// LastResult 读取用户最近一次落盘结果（可能已过期）。
func (l *RecommendationLog) LastResult(ctx context.Context, userID string) ([]*core.Item, error) {
	if l.KV == nil {
		return nil, core.ErrStoreNotSupported
	}
	data, err := l.KV.Get(ctx, l.prefix()+":"+userID)
	if err != nil {
		return nil, err
	}
	var saved []savedItem
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(saved))
	for _, s := range saved {
		it := core.NewItem(s.ContentID)
		it.CategoryID = s.Category
		it.Score = s.Score
		it.Tier = s.Tier
		if s.Reason != "" {
			it.Reason = &core.Reason{Code: s.Reason}
		}
		out = append(out, it)
	}
	return out, nil
}

// ReasonStats 返回理由代码 -> 累计出现次数。
func (l *RecommendationLog) ReasonStats(ctx context.Context) (map[string]int64, error) {
	if l.KV == nil {
		return nil, core.ErrStoreNotSupported
	}
	fields, err := l.KV.HGetAll(ctx, l.prefix()+":stats")
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(fields))
	for code, raw := range fields {
		if n, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
			out[code] = n
		}
	}
	return out, nil
}

func (l *RecommendationLog) bumpReason(ctx context.Context, code string) {
	key := l.prefix() + ":stats"
	var n int64
	if raw, err := l.KV.HGet(ctx, key, code); err == nil {
		n, _ = strconv.ParseInt(string(raw), 10, 64)
	}
	_ = l.KV.HSet(ctx, key, code, []byte(strconv.FormatInt(n+1, 10)))
}
