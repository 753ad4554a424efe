// Package xcache 提供进程内的具名缓存注册表。
//
// # 核心组件
//
//   - Cache：一个独立配置的具名缓存，包含条目、元数据（创建/访问/过期时间）
//     以及命中、未命中、淘汰计数，并持有自己的淘汰策略
//   - Registry：管理缓存名称到 Cache 的映射，路由 Get/Set/Clear/Stats，
//     并运行周期性维护任务（过期清理 + 统计上报）
//
// # 快速开始
//
//	reg := xcache.NewRegistry(xcache.WithLogger(logger))
//	replies, err := reg.GetOrCreate("ai_responses",
//		xcache.WithMaxSize(500),
//		xcache.WithDefaultTTL(10*time.Minute),
//	)
//	if err != nil {
//		return err
//	}
//	replies.Set("channel:42", answer)
//	if v, ok := replies.Get("channel:42"); ok {
//		// ...
//	}
//
// # 过期语义
//
// 过期采用"读时检查 + 周期清理"双机制：
//   - Get 发现 now >= expiresAt 时按未命中处理并立即移除该条目
//   - Sweep 周期性回收所有已过期条目
//
// 两种回收都计入 Evictions，与容量淘汰共用同一个计数器。
//
// # 淘汰策略
//
//   - PolicyLRU：淘汰最久未访问的条目。UpdateAgeOnGet 关闭时，
//     读命中不刷新访问时间，LRU 退化为按写入顺序淘汰
//   - PolicyFIFO：淘汰最早写入的条目，读命中从不影响顺序
//
// 覆盖写入视为重新写入：创建时间、访问时间、过期时间全部刷新。
// 同一时刻写入的条目按操作先后淘汰，顺序是确定的。
//
// # 创建语义
//
// GetOrCreate 是先写者胜（first-writer-wins）：名称已存在时直接返回已有缓存，
// 忽略本次传入的选项，不做合并。
//
// # 错误
//
//   - ErrInvalidConfig：GetOrCreate 时选项无效（容量 <= 0、TTL <= 0、未知策略、空名称）
//   - ErrUnknownCache：对从未创建的缓存名调用 Get/Set/Clear/Stats
//
// 未命中、过期和淘汰都不是错误，只能通过统计计数观察到。
//
// # 并发
//
// 每个 Cache 使用一把互斥锁保护条目和计数（Get 会修改访问顺序与计数，
// 因此不使用读写锁）。Registry 的名称映射使用读写锁，只有 GetOrCreate 会写。
package xcache
