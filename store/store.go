// Package store 提供 core.Store / core.KeyValueStore 的实现与领域适配器。
//
// 接口定义在 core 包；这里是基础设施层：
//   - MemoryStore：内存实现，测试/开发/原型
//   - RedisStore：生产常用
//   - EventLog / PreferenceRepo / MemoryCandidates / MemoryCatalog /
//     RecommendationLog：搭在 Store 之上的领域适配器
package store

import "github.com/rushteam/newsrec/core"

// ErrNotFound 是 core.ErrStoreNotFound 的包内别名。
var ErrNotFound = core.ErrStoreNotFound
