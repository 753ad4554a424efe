package main

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/omeyang/xcachekit/pkg/storage/xcache"
)

// workload 模拟调用方：随机读键，未命中时回填。
// 只由 xrun.Ticker 的单个 goroutine 驱动。
type workload struct {
	registry *xcache.Registry
	keys     int
	rng      *rand.Rand
	count    int
}

func newWorkload(registry *xcache.Registry, keys int, seed int64) *workload {
	return &workload{
		registry: registry,
		keys:     keys,
		rng:      rand.New(rand.NewPCG(uint64(seed), 0x5eed)),
	}
}

// step 对每个缓存执行一次读取，未命中时写入。
func (w *workload) step(context.Context) error {
	w.count++
	for _, name := range w.registry.Names() {
		key := fmt.Sprintf("key-%d", w.rng.IntN(w.keys))
		if _, ok, err := w.registry.Get(name, key); err != nil {
			return err
		} else if ok {
			continue
		}
		if err := w.registry.Set(name, key, w.count); err != nil {
			return err
		}
	}
	return nil
}

func (w *workload) steps() int {
	return w.count
}

