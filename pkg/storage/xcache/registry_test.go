package xcache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// GetOrCreate
// =============================================================================

func TestRegistry_GetOrCreate_Defaults(t *testing.T) {
	r, _ := newTestRegistry(t)

	c, err := r.GetOrCreate("default")
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), c.Options())
}

func TestRegistry_GetOrCreate_FirstWriterWins(t *testing.T) {
	r, _ := newTestRegistry(t)

	first, err := r.GetOrCreate("shared", WithMaxSize(10), WithDefaultTTL(time.Minute))
	require.NoError(t, err)

	second, err := r.GetOrCreate("shared", WithMaxSize(99), WithEvictionPolicy(PolicyFIFO))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 10, second.Options().MaxSize)
	assert.Equal(t, time.Minute, second.Options().DefaultTTL)
	assert.Equal(t, PolicyLRU, second.Options().EvictionPolicy)
}

func TestRegistry_GetOrCreate_ExistingIgnoresInvalidOptions(t *testing.T) {
	r, _ := newTestRegistry(t)

	first, err := r.GetOrCreate("shared")
	require.NoError(t, err)

	second, err := r.GetOrCreate("shared", WithMaxSize(-1))
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestRegistry_GetOrCreate_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		cache   string
		opts    []Option
		wantErr error
	}{
		{name: "empty name", cache: "", wantErr: ErrEmptyName},
		{name: "zero max size", cache: "c", opts: []Option{WithMaxSize(0)}, wantErr: ErrInvalidMaxSize},
		{name: "negative max size", cache: "c", opts: []Option{WithMaxSize(-5)}, wantErr: ErrInvalidMaxSize},
		{name: "max size too large", cache: "c", opts: []Option{WithMaxSize(1<<24 + 1)}, wantErr: ErrInvalidMaxSize},
		{name: "zero ttl", cache: "c", opts: []Option{WithDefaultTTL(0)}, wantErr: ErrInvalidTTL},
		{name: "negative ttl", cache: "c", opts: []Option{WithDefaultTTL(-time.Second)}, wantErr: ErrInvalidTTL},
		{name: "unknown policy", cache: "c", opts: []Option{WithEvictionPolicy(Policy(9))}, wantErr: ErrInvalidPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRegistry(t)

			c, err := r.GetOrCreate(tt.cache, tt.opts...)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, r.Names(), "配置错误不应注册缓存")
		})
	}
}

func TestRegistry_GetOrCreate_NilOptionIgnored(t *testing.T) {
	r, _ := newTestRegistry(t)

	c, err := r.GetOrCreate("nil-opt", nil, WithMaxSize(3))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Options().MaxSize)
}

func TestRegistry_GetOrCreate_Concurrent(t *testing.T) {
	r, _ := newTestRegistry(t)

	const n = 32
	results := make([]*Cache, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := r.GetOrCreate("race", WithMaxSize(i+1))
			assert.NoError(t, err)
			results[i] = c
		}()
	}
	wg.Wait()

	for _, c := range results {
		assert.Same(t, results[0], c)
	}
	assert.Equal(t, []string{"race"}, r.Names())
}

// =============================================================================
// 路由
// =============================================================================

func TestRegistry_UnknownCache(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, _, err := r.Get("nope", "k")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCache)
	assert.NotErrorIs(t, err, ErrInvalidConfig)

	var unknown *UnknownCacheError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "nope", unknown.Name)
	assert.Contains(t, err.Error(), `"nope"`)

	assert.ErrorIs(t, r.Set("nope", "k", 1), ErrUnknownCache)
	assert.ErrorIs(t, r.SetWithTTL("nope", "k", 1, time.Second), ErrUnknownCache)
	_, err = r.Delete("nope", "k")
	assert.ErrorIs(t, err, ErrUnknownCache)
	assert.ErrorIs(t, r.Clear("nope"), ErrUnknownCache)
	_, err = r.Stats("nope")
	assert.ErrorIs(t, err, ErrUnknownCache)
	_, err = r.Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownCache)

	assert.Empty(t, r.Names(), "访问未知缓存不会隐式创建")
}

func TestRegistry_Routing(t *testing.T) {
	r, clock := newTestRegistry(t)
	_, err := r.GetOrCreate("a")
	require.NoError(t, err)
	_, err = r.GetOrCreate("b")
	require.NoError(t, err)

	require.NoError(t, r.Set("a", "k", "va"))
	require.NoError(t, r.SetWithTTL("b", "k", "vb", time.Second))

	v, ok, err := r.Get("a", "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "va", v)

	clock.Advance(time.Second)
	_, ok, err = r.Get("b", "k")
	require.NoError(t, err)
	assert.False(t, ok, "缓存之间相互独立，b 中的条目已过期")

	deleted, err := r.Delete("a", "k")
	require.NoError(t, err)
	assert.True(t, deleted)

	stats, err := r.Stats("a")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, 0, stats.Size)
}

func TestRegistry_ClearAndClearAll(t *testing.T) {
	r, _ := newTestRegistry(t)
	for _, name := range []string{"x", "y"} {
		_, err := r.GetOrCreate(name)
		require.NoError(t, err)
		require.NoError(t, r.Set(name, "k", 1))
	}

	require.NoError(t, r.Clear("x"))
	x, _ := r.Stats("x")
	y, _ := r.Stats("y")
	assert.Equal(t, 0, x.Size)
	assert.Equal(t, 1, y.Size)

	r.ClearAll()
	assert.Equal(t, 0, r.GlobalStats().Size)
	assert.Equal(t, []string{"x", "y"}, r.Names(), "Clear 不移除缓存本身")
}

func TestRegistry_NamesSorted(t *testing.T) {
	r, _ := newTestRegistry(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := r.GetOrCreate(name)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Names())
}

// =============================================================================
// 统计
// =============================================================================

func TestRegistry_GlobalStats(t *testing.T) {
	r, _ := newTestRegistry(t)
	a, err := r.GetOrCreate("a", WithMaxSize(1))
	require.NoError(t, err)
	b, err := r.GetOrCreate("b")
	require.NoError(t, err)

	a.Set("1", 1)
	a.Set("2", 2) // 淘汰 1
	a.Get("2")
	a.Get("1")
	b.Set("x", 1)
	b.Get("x")
	b.Get("x")

	all := r.AllStats()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "b", all[1].Name)

	g := r.GlobalStats()
	assert.Equal(t, 2, g.Caches)
	assert.Equal(t, 2, g.Size)
	assert.Equal(t, uint64(3), g.Hits)
	assert.Equal(t, uint64(1), g.Misses)
	assert.Equal(t, uint64(1), g.Evictions)
	assert.InDelta(t, 0.75, g.HitRate, 1e-9)
}

func TestRegistry_GlobalStats_Empty(t *testing.T) {
	r, _ := newTestRegistry(t)

	g := r.GlobalStats()
	assert.Zero(t, g.Caches)
	assert.Zero(t, g.HitRate)
}

func TestRegistry_Snapshots(t *testing.T) {
	r, _ := newTestRegistry(t)
	c, err := r.GetOrCreate("snap")
	require.NoError(t, err)
	c.Set("k", 1)
	c.Get("k")
	c.Get("missing")

	snaps := r.Snapshots()
	require.Len(t, snaps, 1)
	assert.Equal(t, "snap", snaps[0].Name)
	assert.Equal(t, int64(1), snaps[0].Size)
	assert.Equal(t, uint64(1), snaps[0].Hits)
	assert.Equal(t, uint64(1), snaps[0].Misses)
	assert.Zero(t, snaps[0].Evictions)
}

func TestRegistry_IDUnique(t *testing.T) {
	r1, _ := newTestRegistry(t)
	r2, _ := newTestRegistry(t)

	assert.NotEmpty(t, r1.ID())
	assert.NotEqual(t, r1.ID(), r2.ID())
}

func TestRegistryOptions_IgnoreInvalid(t *testing.T) {
	r := NewRegistry(
		WithClock(nil),
		WithLogger(nil),
		WithObserver(nil),
		WithSweepInterval(0),
		WithReportInterval(-time.Second),
		nil,
	)

	assert.NotNil(t, r.opts.clock)
	assert.NotNil(t, r.opts.observer)
	assert.NotNil(t, r.logger)
	assert.Equal(t, DefaultSweepInterval, r.opts.sweepInterval)
	assert.Equal(t, DefaultReportInterval, r.opts.reportInterval)
}
