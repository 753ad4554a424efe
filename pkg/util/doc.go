// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xlru: 泛型有序索引，基于 golang-lru 的 simplelru，供缓存实现淘汰顺序
package util
