package swv

import (
	"io"
	"strconv"

	"github.com/brickingsoft/errors"
	"github.com/brickingsoft/rxp/async"
)

func (s *stream) Read(b []byte, minBytes int, maxBytes int) (future async.Future[int]) {
	future = s.enqueueRead(b, minBytes, maxBytes, false)
	return
}

func (s *stream) TryRead(b []byte, minBytes int, maxBytes int) (future async.Future[int]) {
	future = s.enqueueRead(b, minBytes, maxBytes, true)
	return
}

func (s *stream) enqueueRead(b []byte, minBytes int, maxBytes int, truncateForEOF bool) (future async.Future[int]) {
	ctx := s.ctx
	if minBytes < 0 || maxBytes < minBytes || len(b) < maxBytes {
		future = async.FailedImmediately[int](ctx, errors.From(
			ErrInvalidReadRange,
			errors.WithMeta("min", strconv.Itoa(minBytes)),
			errors.WithMeta("max", strconv.Itoa(maxBytes)),
			errors.WithMeta("cap", strconv.Itoa(len(b))),
		))
		return
	}
	s.locker.Lock()
	if s.closed {
		s.locker.Unlock()
		future = async.FailedImmediately[int](ctx, ErrClosed)
		return
	}
	if s.eof {
		s.locker.Unlock()
		if truncateForEOF {
			future = async.SucceedImmediately[int](ctx, 0)
		} else {
			future = async.FailedImmediately[int](ctx, ErrEOF)
		}
		return
	}
	promise, promiseErr := async.Make[int](ctx, async.WithWait())
	if promiseErr != nil {
		s.locker.Unlock()
		future = async.FailedImmediately[int](ctx, promiseErr)
		return
	}
	s.pendingReads = append(s.pendingReads, &readRequest{
		b:              b,
		minBytes:       minBytes,
		maxBytes:       maxBytes,
		truncateForEOF: truncateForEOF,
		promise:        promise,
	})
	if kickErr := s.kickReads(); kickErr != nil {
		s.pendingReads = s.pendingReads[:len(s.pendingReads)-1]
		s.locker.Unlock()
		promise.Fail(kickErr)
		future = promise.Future()
		return
	}
	s.locker.Unlock()
	future = promise.Future()
	return
}

// kickReads schedules a drain pass unless one is outstanding.
// s.locker must be held.
func (s *stream) kickReads() (err error) {
	if s.readsDraining {
		return
	}
	if ok := s.executors.TryExecute(s.ctx, s.processReads); !ok {
		err = ErrBusy
		return
	}
	s.readsDraining = true
	return
}

func (s *stream) processReads() {
	for {
		s.locker.Lock()
		if len(s.pendingReads) == 0 {
			s.readsDraining = false
			s.locker.Unlock()
			return
		}
		head := s.pendingReads[0]
		s.pendingReads = s.pendingReads[1:]
		s.locker.Unlock()

		// Accumulate best-effort sub reads until minBytes is reached or the
		// stream ends. Each sub read may return fewer bytes than asked.
		total := 0
		var cause error
		for total < head.minBytes {
			n, readErr := s.inner.ReadSome(head.b[total:head.maxBytes])
			total += n
			if readErr != nil {
				cause = readErr
				break
			}
		}
		if cause == nil {
			head.promise.Succeed(total)
			continue
		}
		if errors.Is(cause, io.EOF) {
			if head.truncateForEOF {
				head.promise.Succeed(total)
				continue
			}
			head.promise.Fail(&EOFError{Bytes: total, Min: head.minBytes})
			continue
		}
		head.promise.Fail(errors.From(
			ErrRead,
			errors.WithWrap(cause),
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, errMetaOpRead),
		))
	}
}
