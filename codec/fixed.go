package codec

import (
	"context"

	"github.com/brickingsoft/rxp/async"
)

func FixedEncode(ctx context.Context, writer FutureWriter, b []byte, fixed int) (future async.Future[async.Void]) {
	encoder := NewFixedEncoder(fixed)
	encoded, encodeErr := encoder.Encode(b)
	if encodeErr != nil {
		future = async.FailedImmediately[async.Void](ctx, encodeErr)
		return
	}
	future = writer.Write(encoded)
	return
}

func FixedDecode(ctx context.Context, reader FutureReader, fixed int) (future async.Future[[]byte]) {
	promise, promiseErr := async.Make[[]byte](ctx, async.WithWait())
	if promiseErr != nil {
		future = async.FailedImmediately[[]byte](ctx, promiseErr)
		return
	}
	p := make([]byte, fixed)
	reader.Read(p, fixed, fixed).OnComplete(func(ctx context.Context, _ int, cause error) {
		if cause != nil {
			promise.Fail(cause)
			return
		}
		promise.Succeed(p)
		return
	})
	future = promise.Future()
	return
}

func NewFixedEncoder(fixed int) *FixedEncoder {
	if fixed < 1 {
		panic("codec.FixedEncoder: fixed must be > 0")
	}
	return &FixedEncoder{
		n: fixed,
	}
}

// FixedEncoder
// 定长编码器。短于定长的输入补零，长于定长的输入截断。
type FixedEncoder struct {
	n int
}

func (encoder *FixedEncoder) Encode(param []byte) (b []byte, err error) {
	pLen := len(param)
	n := encoder.n
	if pLen < encoder.n {
		n = pLen
	}
	b = make([]byte, encoder.n)
	copy(b, param[0:n])
	return
}
