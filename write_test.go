package swv_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kalli8/StakeWeightedVoting"

	"github.com/brickingsoft/rxp"
	"github.com/brickingsoft/rxp/async"
)

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met")
}

func TestWriteOrdering(t *testing.T) {
	exec := rxp.New()
	defer exec.Close()
	cs := newChunkStream()
	s, err := swv.Wrap(context.Background(), cs, swv.WithExecutors(exec))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	payloads := [][]byte{[]byte("alpha"), []byte("beta"), []byte("gamma")}
	wg := new(sync.WaitGroup)
	wg.Add(len(payloads))
	for _, p := range payloads {
		s.Write(p).OnComplete(func(ctx context.Context, _ async.Void, cause error) {
			if cause != nil {
				t.Error(cause)
			}
			wg.Done()
		})
	}
	wg.Wait()

	wrote := cs.Wrote()
	if len(wrote) != len(payloads) {
		t.Fatalf("wrote %d payloads, want %d", len(wrote), len(payloads))
	}
	for i, p := range payloads {
		if !bytes.Equal(wrote[i], p) {
			t.Errorf("payload %d: got %q, want %q", i, wrote[i], p)
		}
	}
}

func TestWriteVector(t *testing.T) {
	exec := rxp.New()
	defer exec.Close()
	cs := newChunkStream()
	s, err := swv.Wrap(context.Background(), cs, swv.WithExecutors(exec))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	wg := new(sync.WaitGroup)
	wg.Add(1)
	s.WriteVector([][]byte{[]byte("one"), []byte("two"), []byte("three")}).OnComplete(func(ctx context.Context, _ async.Void, cause error) {
		if cause != nil {
			t.Error(cause)
		}
		wg.Done()
	})
	wg.Wait()

	wrote := cs.Wrote()
	want := []string{"one", "two", "three"}
	if len(wrote) != len(want) {
		t.Fatalf("wrote %d payloads, want %d", len(wrote), len(want))
	}
	for i, w := range want {
		if string(wrote[i]) != w {
			t.Errorf("payload %d: got %q, want %q", i, wrote[i], w)
		}
	}
}

func TestWriteVectorEmpty(t *testing.T) {
	exec := rxp.New()
	defer exec.Close()
	s, err := swv.Wrap(context.Background(), newChunkStream(), swv.WithExecutors(exec))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	wg := new(sync.WaitGroup)
	wg.Add(1)
	s.WriteVector(nil).OnComplete(func(ctx context.Context, _ async.Void, cause error) {
		if cause != nil {
			t.Error(cause)
		}
		wg.Done()
	})
	wg.Wait()
}

func TestShutdownWrite(t *testing.T) {
	exec := rxp.New()
	defer exec.Close()
	cs := newChunkStream()
	s, err := swv.Wrap(context.Background(), cs, swv.WithExecutors(exec))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	wg := new(sync.WaitGroup)
	wg.Add(2)
	s.Write([]byte("first")).OnComplete(func(ctx context.Context, _ async.Void, cause error) {
		if cause != nil {
			t.Error(cause)
		}
		wg.Done()
	})
	s.Write([]byte("second")).OnComplete(func(ctx context.Context, _ async.Void, cause error) {
		if cause != nil {
			t.Error(cause)
		}
		wg.Done()
	})
	s.ShutdownWrite()

	wg.Add(1)
	var lateErr error
	s.Write([]byte("late")).OnComplete(func(ctx context.Context, _ async.Void, cause error) {
		lateErr = cause
		wg.Done()
	})
	wg.Wait()

	if !swv.IsShutdown(lateErr) {
		t.Errorf("late write: want shutdown, got %v", lateErr)
	}
	waitUntil(t, func() bool { return cs.Flushed() == 1 })

	wrote := cs.Wrote()
	if len(wrote) != 2 {
		t.Fatalf("wrote %d payloads, want 2", len(wrote))
	}
	if string(wrote[0]) != "first" || string(wrote[1]) != "second" {
		t.Errorf("payloads out of order: %q %q", wrote[0], wrote[1])
	}

	// Flush happens exactly once even when shutdown is signaled again.
	s.ShutdownWrite()
	time.Sleep(50 * time.Millisecond)
	if n := cs.Flushed(); n != 1 {
		t.Errorf("flushed %d times, want 1", n)
	}
}

func TestWriteFailureRejectsQueued(t *testing.T) {
	exec := rxp.New()
	defer exec.Close()
	cs := newChunkStream()
	cs.writeErr = errors.New("pipe broken")
	cs.entered = make(chan struct{}, 1)
	cs.gate = make(chan struct{})
	s, err := swv.Wrap(context.Background(), cs, swv.WithExecutors(exec))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	wg := new(sync.WaitGroup)
	wg.Add(3)
	causes := make([]error, 3)
	for i := 0; i < 3; i++ {
		i := i
		s.Write([]byte("doomed")).OnComplete(func(ctx context.Context, _ async.Void, cause error) {
			causes[i] = cause
			wg.Done()
		})
		if i == 0 {
			<-cs.entered
		}
	}
	close(cs.gate)
	wg.Wait()

	for i, cause := range causes {
		if !swv.IsWrite(cause) {
			t.Errorf("write %d: want write error, got %v", i, cause)
		}
		if !errors.Is(cause, cs.writeErr) {
			t.Errorf("write %d: cause not preserved: %v", i, cause)
		}
	}
	if len(cs.Wrote()) != 0 {
		t.Error("failed writes must not be recorded")
	}
}
