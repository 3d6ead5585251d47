package codec_test

import (
	"bytes"
	"context"

	"github.com/brickingsoft/rxp/async"
)

func newFakeWriter(ctx context.Context) *FakeWriter {
	return &FakeWriter{
		ctx: ctx,
	}
}

type FakeWriter struct {
	ctx context.Context
	p   []byte
}

func (w *FakeWriter) Write(p []byte) (future async.Future[async.Void]) {
	w.p = append(w.p, p...)
	future = async.SucceedImmediately[async.Void](w.ctx, async.Void{})
	return
}

func (w *FakeWriter) WriteVector(bs [][]byte) (future async.Future[async.Void]) {
	for _, b := range bs {
		w.p = append(w.p, b...)
	}
	future = async.SucceedImmediately[async.Void](w.ctx, async.Void{})
	return
}

func (w *FakeWriter) Equals(b []byte) bool {
	return bytes.Equal(w.p, b)
}
