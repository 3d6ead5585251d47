package codec_test

import (
	"context"
	"io"

	"github.com/brickingsoft/rxp/async"
)

func newFakeReader(ctx context.Context, p []byte) *FakeReader {
	return &FakeReader{
		ctx: ctx,
		p:   p,
	}
}

type FakeReader struct {
	ctx context.Context
	p   []byte
}

func (r *FakeReader) Read(b []byte, minBytes int, maxBytes int) (future async.Future[int]) {
	if len(r.p) < minBytes {
		future = async.FailedImmediately[int](r.ctx, io.ErrUnexpectedEOF)
		return
	}
	n := maxBytes
	if len(r.p) < n {
		n = len(r.p)
	}
	copy(b, r.p[:n])
	r.p = r.p[n:]
	future = async.SucceedImmediately[int](r.ctx, n)
	return
}

func (r *FakeReader) TryRead(b []byte, minBytes int, maxBytes int) (future async.Future[int]) {
	n := maxBytes
	if len(r.p) < n {
		n = len(r.p)
	}
	copy(b, r.p[:n])
	r.p = r.p[n:]
	future = async.SucceedImmediately[int](r.ctx, n)
	return
}
