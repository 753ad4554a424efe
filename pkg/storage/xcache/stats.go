package xcache

// Stats 单个缓存的统计快照。
type Stats struct {
	// Name 缓存名称。
	Name string

	// Size 当前条目数（可能包含已过期但尚未被清理的条目）。
	Size int

	// MaxSize 最大条目数。
	MaxSize int

	// Hits 命中次数。
	Hits uint64

	// Misses 未命中次数（包括读到已过期条目）。
	Misses uint64

	// Evictions 淘汰次数（容量淘汰 + 过期回收）。
	Evictions uint64

	// HitRate 命中率 (0.0 - 1.0)，无访问时为 0。
	HitRate float64
}

// GlobalStats 注册表内所有缓存的汇总统计。
// 查询时由各缓存快照求和得到，不单独存储。
type GlobalStats struct {
	// Caches 缓存数量。
	Caches int

	// Size 所有缓存的条目总数。
	Size int

	// Hits 命中总数。
	Hits uint64

	// Misses 未命中总数。
	Misses uint64

	// Evictions 淘汰总数。
	Evictions uint64

	// HitRate 汇总命中率，无访问时为 0。
	HitRate float64
}

// hitRate 计算命中率，总访问为 0 时返回 0，不会出现 NaN。
func hitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// aggregate 汇总多个快照。
func aggregate(all []Stats) GlobalStats {
	g := GlobalStats{Caches: len(all)}
	for _, s := range all {
		g.Size += s.Size
		g.Hits += s.Hits
		g.Misses += s.Misses
		g.Evictions += s.Evictions
	}
	g.HitRate = hitRate(g.Hits, g.Misses)
	return g
}
