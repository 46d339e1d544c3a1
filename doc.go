// Package newsrec 是一个内容推荐引擎（News Recommender）。
//
// 设计要点：
// - Cascade-first: 结果由兜底级联装配（个性化 → 类目扩展 → 近读相似 → 热门 → 随机兜底），
//   候选不足逐层下沉，保证结构完整的输出
// - Signal 快照: 显式偏好与行为推断在请求入口一次性合并，级联过程只读
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 降级追踪
// - 可降级: 除无效输入外一切失败都降级为告警与更保守的结果
package newsrec

import (
	"github.com/rushteam/newsrec/core"
	"github.com/rushteam/newsrec/engine"
	"github.com/rushteam/newsrec/pipeline"
)

// 轻量 facade：便于用户直接 import "newsrec" 使用核心抽象。
type Engine = engine.Engine
type Request = engine.Request
type Deps = engine.Deps

type Item = core.Item
type Result = core.Result
type Tier = core.Tier
type InteractionEvent = core.InteractionEvent

type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)

const (
	TierPersonalized  = core.TierPersonalized
	TierExpanded      = core.TierExpanded
	TierRecentSimilar = core.TierRecentSimilar
	TierTrending      = core.TierTrending
	TierRandomFill    = core.TierRandomFill
)

// New 装配引擎，等价于 engine.New。
var New = engine.New
