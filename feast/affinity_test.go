package feast

import (
	"context"
	"errors"
	"testing"
)

type stubClient struct {
	resp *GetOnlineFeaturesResponse
	err  error
	req  *GetOnlineFeaturesRequest
}

func (c *stubClient) GetOnlineFeatures(_ context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error) {
	c.req = req
	return c.resp, c.err
}

func (c *stubClient) Close() error { return nil }

func TestAffinityProvider_AffinityFor(t *testing.T) {
	client := &stubClient{resp: &GetOnlineFeaturesResponse{
		FeatureVectors: []FeatureVector{{
			Values: map[string]any{
				"user_affinity:tech":   12.5,
				"user_affinity:sports": int64(3), // 整型值也可转换
				"user_affinity:local":  0.0,      // 非正跳过
				"user_affinity:misc":   "bad",    // 非法值跳过
			},
		}},
	}}

	p := &AffinityProvider{
		Client:     client,
		Categories: []string{"tech", "sports", "local", "misc"},
	}

	got, err := p.AffinityFor(context.Background(), "u1")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(got) != 2 || got["tech"] != 12.5 || got["sports"] != 3 {
		t.Errorf("图谱不符: %v", got)
	}

	// 请求应使用缺省视图/实体键
	if client.req.EntityRows[0]["user_id"] != "u1" {
		t.Errorf("实体键不符: %v", client.req.EntityRows)
	}
	if client.req.Features[0] != "user_affinity:tech" {
		t.Errorf("特征名不符: %v", client.req.Features)
	}
}

func TestAffinityProvider_Degrades(t *testing.T) {
	// 空输入返回空图谱
	p := &AffinityProvider{}
	got, err := p.AffinityFor(context.Background(), "u1")
	if err != nil || len(got) != 0 {
		t.Errorf("无客户端应返回空: %v, %v", got, err)
	}

	// 客户端失败向上返回，由引擎降级
	p = &AffinityProvider{
		Client:     &stubClient{err: errors.New("grpc down")},
		Categories: []string{"tech"},
	}
	if _, err := p.AffinityFor(context.Background(), "u1"); err == nil {
		t.Error("客户端失败应返回错误")
	}
}
