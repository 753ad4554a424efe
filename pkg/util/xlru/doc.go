// Package xlru 提供有序键索引，作为本地缓存淘汰顺序的底层结构。
//
// xlru 基于 github.com/hashicorp/golang-lru/v2/simplelru 封装，
// 只负责"哪个键最旧"，不关心 TTL、统计或并发控制，这些由上层缓存负责。
//
// # 顺序语义
//
// Index 维护一条从最旧到最新的链表：
//   - Put：插入或覆盖，条目移动到最新位置
//   - Touch：读取并移动到最新位置（LRU 场景使用）
//   - Peek：只读，不改变顺序（FIFO 场景、或关闭访问刷新时使用）
//   - Oldest / RemoveOldest：取出下一个淘汰对象
//
// 由此，同一个 Index 可以同时表达两种淘汰策略：
//   - LRU：读命中时调用 Touch
//   - FIFO：读命中时只调用 Peek，顺序仅由插入（含覆盖）决定
//
// 顺序由操作先后决定，而不是时间戳，所以在时钟精度不足或使用
// 假时钟的测试中，同一时刻写入的条目仍然有确定的淘汰顺序。
//
// # 容量
//
// Index 的容量在创建时固定，Put 在已满时会静默淘汰最旧条目（底层库行为）。
// 需要感知淘汰的调用方应在 Put 前检查 Len/Contains 并显式调用 RemoveOldest。
//
// # 注意事项
//
//   - Index 不是并发安全的，调用方必须自行加锁
//   - Keys 会分配新切片，复杂度 O(n)
//   - 容量上限为 16,777,216
package xlru
