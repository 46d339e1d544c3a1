package store

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rushteam/newsrec/core"
)

// EventLog 是搭在 KeyValueStore 上的行为日志：
// 每个用户一个 ZSet，member 是事件 JSON，score 是时间戳（降序读取即最近优先）。
// 只追加：引擎从不修改或删除历史行为。
type EventLog struct {
	KV core.KeyValueStore

	// KeyPrefix 缺省 "user:events"，实际 key 为 {KeyPrefix}:{UserID}。
	KeyPrefix string
}

var (
	_ core.EventSource = (*EventLog)(nil)
	_ core.EventSink   = (*EventLog)(nil)
)

func (l *EventLog) key(userID string) string {
	prefix := l.KeyPrefix
	if prefix == "" {
		prefix = "user:events"
	}
	return prefix + ":" + userID
}

// Append 追加一条行为事件。
func (l *EventLog) Append(ctx context.Context, ev core.InteractionEvent) error {
	if l.KV == nil {
		return core.ErrStoreNotSupported
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	// score 用纳秒时间戳，避免同秒事件互相覆盖排序
	return l.KV.ZAdd(ctx, l.key(ev.UserID), float64(ev.Timestamp.UnixNano()), string(data))
}

// RecentEvents 返回时间降序的最近 limit 条事件。
func (l *EventLog) RecentEvents(ctx context.Context, userID string, limit int) ([]core.InteractionEvent, error) {
	if l.KV == nil {
		return nil, core.ErrStoreNotSupported
	}
	if limit <= 0 {
		limit = 100
	}
	members, err := l.KV.ZRange(ctx, l.key(userID), 0, int64(limit-1))
	if err != nil {
		return nil, err
	}

	out := make([]core.InteractionEvent, 0, len(members))
	for _, m := range members {
		var ev core.InteractionEvent
		if json.Unmarshal([]byte(m), &ev) != nil {
			continue // 脏数据跳过，不影响整体读取
		}
		out = append(out, ev)
	}
	return out, nil
}

// PreferenceRepo 是搭在 Hash 上的显式偏好仓库：
// 每个用户一个 Hash，field 是类目 ID，value 是权重。
type PreferenceRepo struct {
	KV core.KeyValueStore

	// KeyPrefix 缺省 "user:prefs"。
	KeyPrefix string
}

var _ core.PreferenceStore = (*PreferenceRepo)(nil)

func (r *PreferenceRepo) key(userID string) string {
	prefix := r.KeyPrefix
	if prefix == "" {
		prefix = "user:prefs"
	}
	return prefix + ":" + userID
}

// SetPreference 写入/覆盖一条显式偏好。
func (r *PreferenceRepo) SetPreference(ctx context.Context, p core.ExplicitPreference) error {
	if r.KV == nil {
		return core.ErrStoreNotSupported
	}
	return r.KV.HSet(ctx, r.key(p.UserID), p.CategoryID,
		[]byte(strconv.FormatFloat(p.Weight, 'f', -1, 64)))
}

// Preferences 返回用户的全部显式偏好，权重非法的条目被跳过。
func (r *PreferenceRepo) Preferences(ctx context.Context, userID string) ([]core.ExplicitPreference, error) {
	if r.KV == nil {
		return nil, core.ErrStoreNotSupported
	}
	fields, err := r.KV.HGetAll(ctx, r.key(userID))
	if err != nil {
		return nil, err
	}

	out := make([]core.ExplicitPreference, 0, len(fields))
	for cat, raw := range fields {
		w, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			continue
		}
		out = append(out, core.ExplicitPreference{UserID: userID, CategoryID: cat, Weight: w})
	}
	return out, nil
}
