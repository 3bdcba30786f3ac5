package worker

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestGo_DeliversValue(t *testing.T) {
	res := <-Go(context.Background(), func(ctx context.Context) (string, error) {
		return "done", nil
	})
	if res.Err != nil || res.Value != "done" {
		t.Errorf("Go() = %+v", res)
	}
}

func TestGo_DeliversError(t *testing.T) {
	want := errors.New("boom")
	res := <-Go(context.Background(), func(ctx context.Context) (int, error) {
		return 0, want
	})
	if !errors.Is(res.Err, want) {
		t.Errorf("Err = %v, want %v", res.Err, want)
	}
}

func TestGo_RecoversPanic(t *testing.T) {
	ch := Go(context.Background(), func(ctx context.Context) (int, error) {
		panic("nil map")
	})
	res := <-ch
	if res.Err == nil || !strings.Contains(res.Err.Error(), "nil map") {
		t.Errorf("Err = %v", res.Err)
	}
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after the result")
	}
}

func TestGo_PassesContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := <-Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, ctx.Err()
	})
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("Err = %v", res.Err)
	}
}

func TestRunner_RunAndWait(t *testing.T) {
	var r Runner
	var completed atomic.Int32
	release := make(chan struct{})

	for i := 0; i < 3; i++ {
		r.Run(context.Background(), func(ctx context.Context) error {
			<-release
			return nil
		}, func(err error) {
			if err != nil {
				t.Errorf("done(%v)", err)
			}
			completed.Add(1)
		})
	}

	if !r.Busy() {
		t.Error("Busy() should be true while tasks block")
	}
	close(release)
	r.Wait()

	if completed.Load() != 3 {
		t.Errorf("completed = %d, want 3", completed.Load())
	}
	if r.Busy() {
		t.Error("Busy() should be false after Wait")
	}
}

func TestRunner_ReportsFailure(t *testing.T) {
	var r Runner
	errCh := make(chan error, 1)
	r.Run(context.Background(), func(ctx context.Context) error {
		return errors.New("upload failed")
	}, func(err error) { errCh <- err })

	select {
	case err := <-errCh:
		if err == nil || err.Error() != "upload failed" {
			t.Errorf("err = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("done callback never called")
	}
}
