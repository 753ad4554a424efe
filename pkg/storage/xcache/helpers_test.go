package xcache

import (
	"bytes"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xcachekit/pkg/observability/xlog"
)

// testEpoch 固定的测试起始时间，避免依赖真实时钟。
var testEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// newTestRegistry 创建使用假时钟、丢弃日志的注册表。
func newTestRegistry(t *testing.T, opts ...RegistryOption) (*Registry, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(testEpoch)
	logger := newTestLogger(t, io.Discard)
	all := append([]RegistryOption{WithClock(clock), WithLogger(logger)}, opts...)
	return NewRegistry(all...), clock
}

// newTestCache 在新注册表中创建名为 name 的缓存。
func newTestCache(t *testing.T, name string, opts ...Option) (*Cache, *clockwork.FakeClock) {
	t.Helper()
	r, clock := newTestRegistry(t)
	c, err := r.GetOrCreate(name, opts...)
	require.NoError(t, err)
	return c, clock
}

func newTestLogger(t *testing.T, w io.Writer) xlog.Logger {
	t.Helper()
	logger, cleanup, err := xlog.New().
		SetOutput(w).
		SetLevel(xlog.LevelDebug).
		SetFormat("json").
		Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })
	return logger
}

// syncBuffer 并发安全的 bytes.Buffer，用于在维护任务运行时读取日志。
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
