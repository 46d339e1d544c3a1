// Package config 提供引擎的外部可调参配置（YAML）与配置驱动的 Node 工厂。
//
// 规格要求所有策略常量可外部调参，任何一处都不允许硬编码：
// 行为分值、时效窗口/半衰期、热度封顶、类目上限、层顺序与各层回看窗口。
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/newsrec/core"
)

// Config 是引擎全量配置。
type Config struct {
	Signal  SignalConfig  `yaml:"signal"`
	Merge   MergeConfig   `yaml:"merge"`
	Score   ScoreConfig   `yaml:"score"`
	Cascade CascadeConfig `yaml:"cascade"`
	Loyalty LoyaltyConfig `yaml:"loyalty"`
}

// SignalConfig 控制行为折算。
type SignalConfig struct {
	// Points 是行为类型 -> 偏好分值
	Points map[string]float64 `yaml:"points"`

	// Window 是事件窗口大小（条数）
	Window int `yaml:"window"`

	// Boost 是近期行为倍率，<=1 关闭时间加权
	Boost float64 `yaml:"boost"`

	// BoostWindowDays / HalfLifeDays 是加权窗口与半衰期（天）
	BoostWindowDays float64 `yaml:"boost_window_days"`
	HalfLifeDays    float64 `yaml:"half_life_days"`
}

// MergeConfig 控制显式/推断权重配比，Explicit 必须大于 Inferred。
type MergeConfig struct {
	ExplicitWeight float64 `yaml:"explicit_weight"`
	InferredWeight float64 `yaml:"inferred_weight"`
}

// ScoreConfig 控制综合打分。
type ScoreConfig struct {
	RecencyBonus      float64 `yaml:"recency_bonus"`
	RecencyWindowDays float64 `yaml:"recency_window_days"`
	PopularityCap     float64 `yaml:"popularity_cap"`
	ViewWeight        float64 `yaml:"view_weight"`
	LikeWeight        float64 `yaml:"like_weight"`
	ShareWeight       float64 `yaml:"share_weight"`

	// Parallel 是打分并发度，<=1 串行
	Parallel int `yaml:"parallel"`
}

// CascadeConfig 控制级联装配。
type CascadeConfig struct {
	// Tiers 是层顺序，空表示标准五层
	Tiers []string `yaml:"tiers"`

	TrendingWindowDays float64 `yaml:"trending_window_days"`
	PerTierLimit       int     `yaml:"per_tier_limit"`

	// TierLimits 按层覆盖拉取上限，未配置的层用 PerTierLimit
	TierLimits map[string]int `yaml:"tier_limits"`

	// TierWindowDays 按层覆盖回看窗口（天）；热门层未配置时
	// 退回 TrendingWindowDays，其余层未配置表示不限发布时间
	TierWindowDays map[string]float64 `yaml:"tier_window_days"`

	// CategoryCap 是同类目上限，0 关闭
	CategoryCap int `yaml:"category_cap"`

	// Rules 是 CEL 剔除规则表达式（可选）
	Rules []string `yaml:"rules"`
}

// LoyaltyConfig 是各行为的积分值，随事件透传给积分账本，引擎不消费。
type LoyaltyConfig struct {
	Points map[string]int `yaml:"points"`
}

// Default 返回与来源系统观测值一致的默认配置。
func Default() *Config {
	return &Config{
		Signal: SignalConfig{
			Points: map[string]float64{
				string(core.InteractionView):    1,
				string(core.InteractionRead):    2,
				string(core.InteractionSave):    3,
				string(core.InteractionComment): 4,
				string(core.InteractionLike):    5,
				string(core.InteractionShare):   8,
				string(core.InteractionUnlike):  -5,
				string(core.InteractionUnsave):  -3,
			},
			Window:          100,
			Boost:           1.5,
			BoostWindowDays: 7,
			HalfLifeDays:    7,
		},
		Merge: MergeConfig{
			ExplicitWeight: 10,
			InferredWeight: 5,
		},
		Score: ScoreConfig{
			RecencyBonus:      10,
			RecencyWindowDays: 7,
			PopularityCap:     2,
			ViewWeight:        0.001,
			LikeWeight:        0.01,
			ShareWeight:       0.02,
			Parallel:          8,
		},
		Cascade: CascadeConfig{
			TrendingWindowDays: 7,
			PerTierLimit:       100,
			CategoryCap:        0,
		},
		Loyalty: LoyaltyConfig{
			Points: map[string]int{
				string(core.InteractionView):    1,
				string(core.InteractionRead):    5,
				string(core.InteractionLike):    10,
				string(core.InteractionSave):    15,
				string(core.InteractionShare):   20,
				string(core.InteractionComment): 25,
			},
		},
	}
}

// Load 从 YAML 文件加载配置，缺省字段以 Default 补齐。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置的结构性约束。
func (c *Config) Validate() error {
	if c.Merge.ExplicitWeight <= c.Merge.InferredWeight {
		return fmt.Errorf("merge: explicit_weight (%v) must exceed inferred_weight (%v)",
			c.Merge.ExplicitWeight, c.Merge.InferredWeight)
	}
	if c.Score.PopularityCap < 0 {
		return fmt.Errorf("score: popularity_cap must be >= 0")
	}
	for _, tier := range c.Cascade.Tiers {
		if !knownTier(tier) {
			return fmt.Errorf("cascade: unknown tier %q", tier)
		}
	}
	for tier := range c.Cascade.TierLimits {
		if !knownTier(tier) {
			return fmt.Errorf("cascade: tier_limits: unknown tier %q", tier)
		}
	}
	for tier := range c.Cascade.TierWindowDays {
		if !knownTier(tier) {
			return fmt.Errorf("cascade: tier_window_days: unknown tier %q", tier)
		}
	}
	return nil
}

func knownTier(name string) bool {
	switch core.Tier(name) {
	case core.TierPersonalized, core.TierExpanded, core.TierRecentSimilar,
		core.TierTrending, core.TierRandomFill:
		return true
	}
	return false
}

// TierOrder 把配置的层名翻译成 core.Tier 序列。
func (c *Config) TierOrder() []core.Tier {
	out := make([]core.Tier, 0, len(c.Cascade.Tiers))
	for _, t := range c.Cascade.Tiers {
		out = append(out, core.Tier(t))
	}
	return out
}

// TierLimits 把按层上限翻译成领域类型键。
func (c *Config) TierLimits() map[core.Tier]int {
	if len(c.Cascade.TierLimits) == 0 {
		return nil
	}
	out := make(map[core.Tier]int, len(c.Cascade.TierLimits))
	for k, v := range c.Cascade.TierLimits {
		out[core.Tier(k)] = v
	}
	return out
}

// TierWindows 把按层回看窗口（天）翻译成 Duration 表。
func (c *Config) TierWindows() map[core.Tier]time.Duration {
	if len(c.Cascade.TierWindowDays) == 0 {
		return nil
	}
	out := make(map[core.Tier]time.Duration, len(c.Cascade.TierWindowDays))
	for k, v := range c.Cascade.TierWindowDays {
		out[core.Tier(k)] = Days(v)
	}
	return out
}

// SignalPoints 把配置的分值表翻译成领域类型键。
func (c *Config) SignalPoints() map[core.InteractionType]float64 {
	out := make(map[core.InteractionType]float64, len(c.Signal.Points))
	for k, v := range c.Signal.Points {
		out[core.InteractionType(k)] = v
	}
	return out
}

// Days 把天数配置转为 Duration。
func Days(d float64) time.Duration {
	return time.Duration(d * 24 * float64(time.Hour))
}
