package store

import (
	"context"
	"sort"
	"sync"

	"github.com/rushteam/newsrec/core"
)

// MemoryCandidates 是内存候选供给方，用于测试/开发/原型。
// 生产部署通常由内容检索服务实现 core.CandidateSupplier。
type MemoryCandidates struct {
	mu    sync.RWMutex
	items map[string]*core.Item
}

var (
	_ core.CandidateSupplier = (*MemoryCandidates)(nil)
	_ core.ContentLookup     = (*MemoryCandidates)(nil)
)

func NewMemoryCandidates(items ...*core.Item) *MemoryCandidates {
	s := &MemoryCandidates{items: make(map[string]*core.Item, len(items))}
	s.Put(items...)
	return s
}

// Put 写入/覆盖候选。
func (s *MemoryCandidates) Put(items ...*core.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		if it != nil && it.ContentID != "" {
			s.items[it.ContentID] = it
		}
	}
}

// Candidates 按查询条件返回候选副本（ContentID 升序，确定性）。
// 每次返回 Clone，调用方的打分/打标不会污染存量数据。
func (s *MemoryCandidates) Candidates(ctx context.Context, q core.CandidateQuery) ([]*core.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cats map[string]struct{}
	if len(q.Categories) > 0 {
		cats = make(map[string]struct{}, len(q.Categories))
		for _, c := range q.Categories {
			cats[c] = struct{}{}
		}
	}
	excluded := make(map[string]struct{}, len(q.Exclude))
	for _, id := range q.Exclude {
		excluded[id] = struct{}{}
	}

	out := make([]*core.Item, 0, 32)
	for _, it := range s.items {
		if _, ok := excluded[it.ContentID]; ok {
			continue
		}
		if q.Status != "" && it.Status != q.Status {
			continue
		}
		if cats != nil {
			if _, ok := cats[it.CategoryID]; !ok {
				continue
			}
		}
		if !q.PublishedSince.IsZero() && it.PublishedAt.Before(q.PublishedSince) {
			continue
		}
		out = append(out, it.Clone())
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ContentID < out[j].ContentID })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Content 按 ID 查询单条内容（反馈写入时补全类目用）。
func (s *MemoryCandidates) Content(ctx context.Context, contentID string) (*core.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[contentID]
	if !ok {
		return nil, ErrNotFound
	}
	return it.Clone(), nil
}

// MemoryCatalog 是内存类目目录：展示名 + 关联类目。
type MemoryCatalog struct {
	Names   map[string]string   // category_id -> 展示名
	Links   map[string][]string // category_id -> 关联类目
}

var _ core.CategoryCatalog = (*MemoryCatalog)(nil)

func (c *MemoryCatalog) DisplayName(ctx context.Context, categoryID string) (string, bool) {
	name, ok := c.Names[categoryID]
	return name, ok
}

func (c *MemoryCatalog) Related(ctx context.Context, categoryID string) []string {
	return c.Links[categoryID]
}
