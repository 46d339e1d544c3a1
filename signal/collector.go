// Package signal 把用户的行为窗口与显式偏好归一成类目权重。
//
// 链路：EventSource → Collector（行为 → 兴趣图谱）→ Merger（显式 + 推断 → 最终权重）。
// 所有输入都是只读快照；空输入产出空图谱而不是错误，空图谱正是兜底级联低层的触发条件。
package signal

import (
	"context"
	"math"
	"time"

	"github.com/rushteam/newsrec/core"
)

// DefaultPoints 是各行为类型的默认偏好分值。
// view 的权重在来源系统中并不一致，这里保持可配置，默认按最保守的 1 分计。
func DefaultPoints() map[core.InteractionType]float64 {
	return map[core.InteractionType]float64{
		core.InteractionView:    1,
		core.InteractionRead:    2,
		core.InteractionSave:    3,
		core.InteractionComment: 4,
		core.InteractionLike:    5,
		core.InteractionShare:   8,
		core.InteractionUnlike:  -5,
		core.InteractionUnsave:  -3,
	}
}

// Collector 把有界行为窗口折算成 AffinityMap。
type Collector struct {
	// Points 是行为类型 -> 分值；未配置的类型按 0 计（即忽略）。
	Points map[core.InteractionType]float64

	// Boost 是近期行为的加权倍率，<=1 表示关闭时间加权。
	// 发生在 BoostWindow 内的行为按 Boost 倍计分，
	// 之后按 HalfLife 半衰期向 1 平滑衰减。
	Boost       float64
	BoostWindow time.Duration
	HalfLife    time.Duration

	// Now 供测试注入时钟，缺省为 time.Now。
	Now func() time.Time
}

// NewCollector 返回带默认分值、默认 7 天加权窗口的收集器。
func NewCollector() *Collector {
	return &Collector{
		Points:      DefaultPoints(),
		Boost:       1.5,
		BoostWindow: 7 * 24 * time.Hour,
		HalfLife:    7 * 24 * time.Hour,
	}
}

// Collect 遍历事件窗口，按类型分值累加到类目。
// 空窗口返回空 map；事件缺类目或类型未配置时跳过该事件。
func (c *Collector) Collect(events []core.InteractionEvent) core.AffinityMap {
	out := make(core.AffinityMap, 16)
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}

	for _, ev := range events {
		pts, ok := c.Points[ev.Type]
		if !ok || pts == 0 || ev.CategoryID == "" {
			continue
		}
		out.Add(ev.CategoryID, pts*c.multiplier(now, ev.Timestamp))
	}
	return out
}

// multiplier 计算时间加权倍率：窗口内取 Boost，之后按半衰期衰减回 1。
func (c *Collector) multiplier(now, ts time.Time) float64 {
	if c.Boost <= 1 || c.BoostWindow <= 0 || ts.IsZero() {
		return 1
	}
	age := now.Sub(ts)
	if age < 0 {
		age = 0
	}
	if age <= c.BoostWindow {
		return c.Boost
	}
	if c.HalfLife <= 0 {
		return 1
	}
	over := age - c.BoostWindow
	decay := math.Exp2(-over.Hours() / c.HalfLife.Hours())
	return 1 + (c.Boost-1)*decay
}

// Provider 屏蔽兴趣图谱的来源：本地从行为窗口折算，或由特征服务预聚合。
type Provider interface {
	AffinityFor(ctx context.Context, userID string) (core.AffinityMap, error)
}

// EventProvider 是 Provider 的默认实现：读事件源 + Collector 折算。
type EventProvider struct {
	Events    core.EventSource
	Collector *Collector

	// Window 是事件窗口大小，缺省 100。
	Window int
}

func (p *EventProvider) AffinityFor(ctx context.Context, userID string) (core.AffinityMap, error) {
	if p.Events == nil || userID == "" {
		return core.AffinityMap{}, nil
	}
	window := p.Window
	if window <= 0 {
		window = 100
	}
	events, err := p.Events.RecentEvents(ctx, userID, window)
	if err != nil {
		return nil, err
	}
	collector := p.Collector
	if collector == nil {
		collector = NewCollector()
	}
	return collector.Collect(events), nil
}
