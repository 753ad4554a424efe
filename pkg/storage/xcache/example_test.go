package xcache_test

import (
	"errors"
	"fmt"
	"time"

	"github.com/omeyang/xcachekit/pkg/storage/xcache"
)

func ExampleRegistry_GetOrCreate() {
	registry := xcache.NewRegistry()

	cooldowns, err := registry.GetOrCreate("cooldowns",
		xcache.WithMaxSize(100),
		xcache.WithDefaultTTL(30*time.Second),
		xcache.WithEvictionPolicy(xcache.PolicyFIFO),
	)
	if err != nil {
		fmt.Println("create failed:", err)
		return
	}

	cooldowns.Set("user:42", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if until, ok := xcache.GetAs[time.Time](cooldowns, "user:42"); ok {
		fmt.Println("cooldown until", until.Format(time.RFC3339))
	}

	// 第二次创建返回同一个缓存，选项被忽略
	again, _ := registry.GetOrCreate("cooldowns", xcache.WithMaxSize(1))
	fmt.Println(again.Options().MaxSize)

	// Output:
	// cooldown until 2026-01-01T00:00:00Z
	// 100
}

func ExampleUnknownCacheError() {
	registry := xcache.NewRegistry()

	_, _, err := registry.Get("never_created", "key")

	var unknown *xcache.UnknownCacheError
	if errors.As(err, &unknown) {
		fmt.Println("unknown cache:", unknown.Name)
	}
	fmt.Println(errors.Is(err, xcache.ErrUnknownCache))

	// Output:
	// unknown cache: never_created
	// true
}

func ExampleRegistry_GlobalStats() {
	registry := xcache.NewRegistry()
	a, _ := registry.GetOrCreate("a")
	b, _ := registry.GetOrCreate("b")

	a.Set("k", 1)
	a.Get("k")
	b.Get("missing")

	g := registry.GlobalStats()
	fmt.Printf("caches=%d hits=%d misses=%d hit_rate=%.2f\n", g.Caches, g.Hits, g.Misses, g.HitRate)

	// Output:
	// caches=2 hits=1 misses=1 hit_rate=0.50
}
