package codec

import (
	"context"

	"github.com/brickingsoft/rxp/async"
)

type FutureReader interface {
	Read(b []byte, minBytes int, maxBytes int) (future async.Future[int])
	TryRead(b []byte, minBytes int, maxBytes int) (future async.Future[int])
}

// Decoder
// 解析器。
// 泛型 T 是解析的结果。Decode 收到的是一个完整的包体，错误会使解析的未来失败。
type Decoder[T any] interface {
	Decode(p []byte) (message T, err error)
}

// Decode
// 读取一个长度字段包并解析为 T。
func Decode[T any](ctx context.Context, reader FutureReader, decoder Decoder[T]) (future async.Future[T]) {
	promise, promiseErr := async.Make[T](ctx, async.WithWait())
	if promiseErr != nil {
		future = async.FailedImmediately[T](ctx, promiseErr)
		return
	}
	LengthFieldDecode(ctx, reader).OnComplete(func(ctx context.Context, p []byte, cause error) {
		if cause != nil {
			promise.Fail(cause)
			return
		}
		message, decodeErr := decoder.Decode(p)
		if decodeErr != nil {
			promise.Fail(decodeErr)
			return
		}
		promise.Succeed(message)
		return
	})
	future = promise.Future()
	return
}
