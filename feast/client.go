// Package feast 对接 Feast Feature Store，为引擎提供预聚合的兴趣图谱。
//
// 规格允许兴趣图谱不在引擎内折算，而是由特征服务预先聚合好；
// AffinityProvider 实现 signal.Provider，把在线特征向量翻译成 AffinityMap。
// 特征服务不可用时由引擎降级为本地行为折算或空信号。
package feast

import (
	"context"
	"time"
)

// Client 是 Feast Feature Server 的客户端接口。
// 接口保持领域层语义；gRPC 实现见 grpc_client.go。
type Client interface {
	// GetOnlineFeatures 获取在线特征
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 是在线特征请求。
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["user_affinity:tech", "user_affinity:sports"]
	Features []string

	// EntityRows 实体行，例如 [{"user_id": "42"}]
	EntityRows []map[string]any

	// Project 项目名称，为空时取客户端默认值
	Project string
}

// FeatureVector 是单个实体的特征向量。
type FeatureVector struct {
	Values    map[string]any
	EntityRow map[string]any
}

// GetOnlineFeaturesResponse 是在线特征响应。
type GetOnlineFeaturesResponse struct {
	FeatureVectors []FeatureVector
}

// ClientConfig 是客户端配置。
type ClientConfig struct {
	Endpoint string
	Project  string
	Timeout  time.Duration
}

// ClientOption 是客户端配置选项。
type ClientOption func(*ClientConfig)

// WithTimeout 配置选项：设置超时时间。
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}
