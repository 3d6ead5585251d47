package swv

import (
	"context"
	"sync"

	"github.com/brickingsoft/errors"
	"github.com/brickingsoft/rxp/async"
)

func (s *stream) Write(b []byte) (future async.Future[async.Void]) {
	ctx := s.ctx
	s.locker.Lock()
	if s.closed {
		s.locker.Unlock()
		future = async.FailedImmediately[async.Void](ctx, ErrClosed)
		return
	}
	if s.writeShutdown {
		s.locker.Unlock()
		future = async.FailedImmediately[async.Void](ctx, ErrShutdown)
		return
	}
	promise, promiseErr := async.Make[async.Void](ctx, async.WithWait())
	if promiseErr != nil {
		s.locker.Unlock()
		future = async.FailedImmediately[async.Void](ctx, promiseErr)
		return
	}
	s.pendingWrites = append(s.pendingWrites, &writeRequest{b: b, promise: promise})
	if kickErr := s.kickWrites(); kickErr != nil {
		s.pendingWrites = s.pendingWrites[:len(s.pendingWrites)-1]
		s.locker.Unlock()
		promise.Fail(kickErr)
		future = promise.Future()
		return
	}
	s.locker.Unlock()
	future = promise.Future()
	return
}

func (s *stream) WriteVector(bs [][]byte) (future async.Future[async.Void]) {
	ctx := s.ctx
	if len(bs) == 0 {
		future = async.SucceedImmediately[async.Void](ctx, async.Void{})
		return
	}
	promise, promiseErr := async.Make[async.Void](ctx, async.WithWait())
	if promiseErr != nil {
		future = async.FailedImmediately[async.Void](ctx, promiseErr)
		return
	}
	future = promise.Future()
	// Each member write is ordered by the shared queue, so the join only has
	// to wait for the last completion. First cause wins.
	join := &writeJoin{
		remains: len(bs),
		promise: promise,
	}
	for _, b := range bs {
		s.Write(b).OnComplete(join.complete)
	}
	return
}

func (s *stream) ShutdownWrite() {
	s.locker.Lock()
	s.writeShutdown = true
	_ = s.kickWrites()
	s.locker.Unlock()
	return
}

// kickWrites schedules a drain pass unless one is outstanding.
// s.locker must be held.
func (s *stream) kickWrites() (err error) {
	if s.writesDraining {
		return
	}
	if ok := s.executors.TryExecute(s.ctx, s.processWrites); !ok {
		err = ErrBusy
		return
	}
	s.writesDraining = true
	return
}

func (s *stream) processWrites() {
	for {
		s.locker.Lock()
		if len(s.pendingWrites) == 0 {
			if s.writeShutdown && !s.flushed && !s.closed {
				s.flushed = true
				s.locker.Unlock()
				_ = s.inner.FlushBlocking()
				continue
			}
			s.writesDraining = false
			s.locker.Unlock()
			return
		}
		head := s.pendingWrites[0]
		s.pendingWrites = s.pendingWrites[1:]
		s.locker.Unlock()
		if writeErr := s.inner.WriteBlocking(head.b); writeErr != nil {
			cause := errors.From(
				ErrWrite,
				errors.WithWrap(writeErr),
				errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
				errors.WithMeta(errMetaOpKey, errMetaOpWrite),
			)
			head.promise.Fail(cause)
			s.failPendingWrites(cause)
			return
		}
		head.promise.Succeed(async.Void{})
	}
}

// failPendingWrites ends the drain pass after a stream failure. The queued
// writes behind the failed one are rejected with the same cause instead of
// being left pending forever.
func (s *stream) failPendingWrites(cause error) {
	s.locker.Lock()
	writes := s.pendingWrites
	s.pendingWrites = nil
	s.writesDraining = false
	s.locker.Unlock()
	for _, w := range writes {
		w.promise.Fail(cause)
	}
	return
}

type writeJoin struct {
	locker  sync.Mutex
	remains int
	cause   error
	promise async.Promise[async.Void]
}

func (join *writeJoin) complete(_ context.Context, _ async.Void, cause error) {
	join.locker.Lock()
	if cause != nil && join.cause == nil {
		join.cause = cause
	}
	join.remains--
	last := join.remains == 0
	cause = join.cause
	join.locker.Unlock()
	if !last {
		return
	}
	if cause != nil {
		join.promise.Fail(cause)
		return
	}
	join.promise.Succeed(async.Void{})
	return
}
