package codec

import (
	"context"

	"github.com/brickingsoft/rxp/async"
)

type FutureWriter interface {
	Write(b []byte) (future async.Future[async.Void])
	WriteVector(bs [][]byte) (future async.Future[async.Void])
}

type Encoder[T any] interface {
	Encode(param T) (p []byte, err error)
}

// Encode
// 编码并写入。
// 先用 encoder 把 data 编码为字节，再以长度字段包的形式写入 writer。
func Encode[T any](ctx context.Context, encoder Encoder[T], writer FutureWriter, data T) (future async.Future[async.Void]) {
	p, encodeErr := encoder.Encode(data)
	if encodeErr != nil {
		future = async.FailedImmediately[async.Void](ctx, encodeErr)
		return
	}
	future = LengthFieldEncode(ctx, writer, p)
	return
}
