package xrun

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/omeyang/xcachekit/pkg/observability/xlog"
)

func withTestSigChan(ctx context.Context, c <-chan os.Signal) context.Context {
	return context.WithValue(ctx, testSigChanKey{}, c)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func quietLogger(t *testing.T) (xlog.Logger, *lockedBuffer) {
	t.Helper()
	buf := &lockedBuffer{}
	logger, _, err := xlog.New().SetOutput(buf).SetLevel(xlog.LevelDebug).Build()
	if err != nil {
		t.Fatal(err)
	}
	return logger, buf
}

func TestGroup_Empty(t *testing.T) {
	g, _ := NewGroup(context.Background())
	if err := g.Wait(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestGroup_NilContext(t *testing.T) {
	//nolint:staticcheck // nil ctx 被归一化
	g, ctx := NewGroup(nil, nil)
	if ctx == nil {
		t.Fatal("expected non-nil ctx")
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestGroup_ServiceErrorCancelsOthers(t *testing.T) {
	want := errors.New("boom")
	var stopped atomic.Bool

	g, _ := NewGroup(context.Background())
	g.Go(func(ctx context.Context) error {
		<-ctx.Done()
		stopped.Store(true)
		return ctx.Err()
	})
	g.Go(func(context.Context) error { return want })

	if err := g.Wait(); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
	if !stopped.Load() {
		t.Fatal("sibling service was not cancelled")
	}
}

func TestGroup_CancelWithCause(t *testing.T) {
	cause := errors.New("shutdown requested")

	g, _ := NewGroup(context.Background())
	g.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	g.Cancel(cause)

	if err := g.Wait(); !errors.Is(err, cause) {
		t.Fatalf("expected cause, got %v", err)
	}
}

func TestGroup_CancelWithCauseServiceReturnsNil(t *testing.T) {
	cause := errors.New("stop")

	g, _ := NewGroup(context.Background())
	g.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	g.Cancel(cause)

	if err := g.Wait(); !errors.Is(err, cause) {
		t.Fatalf("expected cause, got %v", err)
	}
}

func TestGroup_ParentCancelIsClean(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	g, _ := NewGroup(parent)
	g.Go(WaitForDone())
	cancel()

	if err := g.Wait(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestGroup_InternalCanceledNotFiltered(t *testing.T) {
	g, _ := NewGroup(context.Background())
	g.Go(func(context.Context) error { return context.Canceled })

	if err := g.Wait(); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGroup_NilFunc(t *testing.T) {
	g, _ := NewGroup(context.Background())
	g.Go(nil)
	if err := g.Wait(); !errors.Is(err, ErrNilFunc) {
		t.Fatalf("expected ErrNilFunc, got %v", err)
	}

	g, _ = NewGroup(context.Background())
	g.GoWithName("nil", nil)
	if err := g.Wait(); !errors.Is(err, ErrNilFunc) {
		t.Fatalf("expected ErrNilFunc, got %v", err)
	}
}

func TestGroup_GoWithNameLogs(t *testing.T) {
	logger, buf := quietLogger(t)
	want := errors.New("worker failed")

	g, _ := NewGroup(context.Background(), WithLogger(logger), WithName("test-group"))
	g.GoWithName("worker", func(context.Context) error { return want })
	if err := g.Wait(); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}

	out := buf.String()
	for _, s := range []string{"group=test-group", "service=worker", "service exited with error", "worker failed"} {
		if !strings.Contains(out, s) {
			t.Errorf("log output missing %q:\n%s", s, out)
		}
	}
}

func TestRunWithOptions_Signal(t *testing.T) {
	logger, buf := quietLogger(t)
	sigc := make(chan os.Signal, 1)
	ctx := withTestSigChan(context.Background(), sigc)

	var stopped atomic.Bool
	done := make(chan error, 1)
	go func() {
		done <- RunWithOptions(ctx, []Option{WithLogger(logger)}, func(ctx context.Context) error {
			<-ctx.Done()
			stopped.Store(true)
			return ctx.Err()
		})
	}()

	sigc <- syscall.SIGTERM

	select {
	case err := <-done:
		if !errors.Is(err, ErrSignal) {
			t.Fatalf("expected ErrSignal, got %v", err)
		}
		var sigErr *SignalError
		if !errors.As(err, &sigErr) || sigErr.Signal != syscall.SIGTERM {
			t.Fatalf("expected SIGTERM SignalError, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after signal")
	}

	if !stopped.Load() {
		t.Fatal("service was not cancelled")
	}
	if !strings.Contains(buf.String(), "received signal") {
		t.Fatalf("missing signal log:\n%s", buf.String())
	}
}

func TestRun_ServiceError(t *testing.T) {
	want := errors.New("fatal")
	err := Run(context.Background(), func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestRunServicesWithOptions_WithoutSignalHandler(t *testing.T) {
	var ran atomic.Int32
	svc := ServiceFunc(func(context.Context) error {
		ran.Add(1)
		return nil
	})

	err := RunServicesWithOptions(context.Background(),
		[]Option{WithoutSignalHandler(), WithSignals(nil)},
		svc, svc,
	)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if ran.Load() != 2 {
		t.Fatalf("expected 2 runs, got %d", ran.Load())
	}
}

func TestRunServices_NilService(t *testing.T) {
	err := RunServices(context.Background(), nil)
	if !errors.Is(err, ErrNilService) {
		t.Fatalf("expected ErrNilService, got %v", err)
	}
}

func TestSignalError(t *testing.T) {
	err := &SignalError{Signal: syscall.SIGINT}
	if !errors.Is(err, ErrSignal) {
		t.Fatal("expected Is(ErrSignal)")
	}
	if !strings.Contains(err.Error(), "interrupt") {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if got := (&SignalError{}).Error(); !strings.Contains(got, "<nil>") {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestDefaultSignals_ReturnsCopy(t *testing.T) {
	a := DefaultSignals()
	a[0] = nil
	if DefaultSignals()[0] == nil {
		t.Fatal("DefaultSignals must return a fresh slice")
	}
}
