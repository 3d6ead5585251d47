package codec

import (
	"context"
	"encoding/binary"

	"github.com/brickingsoft/errors"
	"github.com/brickingsoft/rxp/async"
)

const (
	lengthFieldSize = 8
)

var (
	ErrEmptyPacket = errors.Define("codec: empty packet")
)

// LengthFieldEncode
// 写入一个长度字段包：8 字节大端长度头，随后是包体。
// 头和包体作为一次批量写提交，中间不会插入其他写请求。
func LengthFieldEncode(ctx context.Context, writer FutureWriter, p []byte) (future async.Future[async.Void]) {
	pLen := len(p)
	if pLen == 0 {
		future = async.FailedImmediately[async.Void](ctx, ErrEmptyPacket)
		return
	}
	header := make([]byte, lengthFieldSize)
	binary.BigEndian.PutUint64(header, uint64(pLen))
	future = writer.WriteVector([][]byte{header, p})
	return
}

// LengthFieldDecode
// 读取一个长度字段包并返回包体。
// 头和包体都是严格读，包未读全即遇到输入终点会失败。
func LengthFieldDecode(ctx context.Context, reader FutureReader) (future async.Future[[]byte]) {
	promise, promiseErr := async.Make[[]byte](ctx, async.WithWait())
	if promiseErr != nil {
		future = async.FailedImmediately[[]byte](ctx, promiseErr)
		return
	}
	header := make([]byte, lengthFieldSize)
	reader.Read(header, lengthFieldSize, lengthFieldSize).OnComplete(func(ctx context.Context, _ int, cause error) {
		if cause != nil {
			promise.Fail(cause)
			return
		}
		size := int(binary.BigEndian.Uint64(header))
		if size == 0 {
			promise.Succeed([]byte{})
			return
		}
		p := make([]byte, size)
		reader.Read(p, size, size).OnComplete(func(ctx context.Context, _ int, cause error) {
			if cause != nil {
				promise.Fail(cause)
				return
			}
			promise.Succeed(p)
			return
		})
		return
	})
	future = promise.Future()
	return
}
