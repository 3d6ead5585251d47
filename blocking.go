package swv

import (
	"io"
)

// BlockingReadWriter
// 把一个 io.ReadWriter 适配为堵塞流。
//
// 当 rw 提供 Flush() error 时冲洗会被转发，否则冲洗为空操作。
// Read 返回的 (n > 0, io.EOF) 会被拆开：先交付字节，下一次读才报终点。
func BlockingReadWriter(rw io.ReadWriter) BlockingStream {
	return &blockingReadWriter{rw: rw}
}

type blockingReadWriter struct {
	rw  io.ReadWriter
	eof bool
}

func (b *blockingReadWriter) WriteBlocking(p []byte) (err error) {
	// Writers may report partial progress, keep going until all of p landed.
	for len(p) > 0 {
		n, wErr := b.rw.Write(p)
		if wErr != nil {
			err = wErr
			return
		}
		if n == 0 {
			err = io.ErrShortWrite
			return
		}
		p = p[n:]
	}
	return
}

func (b *blockingReadWriter) FlushBlocking() (err error) {
	if flusher, ok := b.rw.(interface{ Flush() error }); ok {
		err = flusher.Flush()
	}
	return
}

func (b *blockingReadWriter) ReadSome(p []byte) (n int, err error) {
	if b.eof {
		err = io.EOF
		return
	}
	if len(p) == 0 {
		return
	}
	n, err = b.rw.Read(p)
	if err == io.EOF {
		b.eof = true
		if n > 0 {
			err = nil
		}
	}
	return
}
