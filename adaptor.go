package swv

import (
	"context"
	"io"

	"github.com/brickingsoft/rxp/async"
)

// AdaptToReadWriter
// 把一个异步流适配回同步的 io.ReadWriteCloser。
//
// Read 使用截断读，一次交付 1 到 len(b) 个字节，输入终点映射为 io.EOF。
// 调用方负责堵塞等待，未来在内部被同步化。
func AdaptToReadWriter(s Stream) io.ReadWriteCloser {
	return &readWriter{
		s:   s,
		rch: make(chan rwResult, 1),
		wch: make(chan rwResult, 1),
	}
}

type rwResult struct {
	n   int
	err error
}

type readWriter struct {
	s   Stream
	rch chan rwResult
	wch chan rwResult
}

func (rw *readWriter) Read(b []byte) (n int, err error) {
	if bLen := len(b); bLen == 0 {
		return
	}
	rw.s.TryRead(b, 1, len(b)).OnComplete(func(ctx context.Context, read int, err error) {
		rw.rch <- rwResult{n: read, err: err}
	})
	r := <-rw.rch
	n, err = r.n, r.err
	if n == 0 && err == nil {
		err = io.EOF
	}
	return
}

func (rw *readWriter) Write(b []byte) (n int, err error) {
	if bLen := len(b); bLen == 0 {
		return
	}
	rw.s.Write(b).OnComplete(func(ctx context.Context, _ async.Void, err error) {
		rw.wch <- rwResult{err: err}
	})
	r := <-rw.wch
	if err = r.err; err == nil {
		n = len(b)
	}
	return
}

func (rw *readWriter) Close() error {
	return rw.s.Close()
}
