// Package storage 提供数据存储相关的子包。
//
// 子包列表：
//   - xcache: 具名进程内缓存与注册表，支持 LRU/FIFO 淘汰、TTL 过期和周期维护
package storage
