package core

import "time"

// InteractionType 是用户对内容的行为类型。
// unlike/unsave 是撤销行为，配置中通常给负的偏好分值。
type InteractionType string

const (
	InteractionView    InteractionType = "view"
	InteractionRead    InteractionType = "read"
	InteractionLike    InteractionType = "like"
	InteractionUnlike  InteractionType = "unlike"
	InteractionSave    InteractionType = "save"
	InteractionUnsave  InteractionType = "unsave"
	InteractionShare   InteractionType = "share"
	InteractionComment InteractionType = "comment"
)

// ValidInteraction 判断行为类型是否为已知类型。
func ValidInteraction(t InteractionType) bool {
	switch t {
	case InteractionView, InteractionRead, InteractionLike, InteractionUnlike,
		InteractionSave, InteractionUnsave, InteractionShare, InteractionComment:
		return true
	}
	return false
}

// InteractionEvent 是一条只追加的用户行为记录。
// 本引擎只读取有界、按时间排序的窗口（如最近 50~100 条），不修改、不删除。
type InteractionEvent struct {
	UserID     string          `json:"user_id"`
	ContentID  string          `json:"content_id"`
	CategoryID string          `json:"category_id"`
	Type       InteractionType `json:"type"`
	Timestamp  time.Time       `json:"timestamp"`

	// Meta 携带积分等附加信息，供积分账本等下游消费，引擎本身不读取。
	Meta map[string]any `json:"meta,omitempty"`
}
