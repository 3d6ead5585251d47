package swv

import (
	"context"
	"sync"

	"github.com/brickingsoft/errors"
	"github.com/brickingsoft/rxp"
	"github.com/brickingsoft/rxp/async"
)

// BlockingStream
// 堵塞流。
//
// WriteBlocking 写入全部字节，堵塞至完成或出错。
// FlushBlocking 堵塞至全部缓冲输出落地。
// ReadSome 堵塞的部分读取，可以读到少于 len(b) 的字节，
// 只在真正的输入终点返回 io.EOF。
type BlockingStream interface {
	WriteBlocking(b []byte) (err error)
	FlushBlocking() (err error)
	ReadSome(b []byte) (n int, err error)
}

// Stream
// 异步流。
//
// 把一个堵塞流转换为许诺/未来模式的非堵塞流。
// 同一方向的请求严格按入队顺序完成，读写两个方向互不影响。
// 缓冲以借用方式传入：在对应的未来完成之前，调用方必须保证其有效。
type Stream interface {
	// Context
	// 获取流的上下文。
	Context() (ctx context.Context)
	// Write
	// 异步写入。未来在全部字节写入底层流后完成。
	// 在 ShutdownWrite 之后写入会立刻失败且不会入队。
	Write(b []byte) (future async.Future[async.Void])
	// WriteVector
	// 批量异步写入。按序为每个分片发起一次 Write，全部完成后未来才完成。
	WriteVector(bs [][]byte) (future async.Future[async.Void])
	// Read
	// 严格读。读满 minBytes 前遇到输入终点则失败，错误为 EOFError。
	// 要求 0 <= minBytes <= maxBytes <= len(b)。
	Read(b []byte, minBytes int, maxBytes int) (future async.Future[int])
	// TryRead
	// 截断读。读满 minBytes 前遇到输入终点则以实际读到的字节数完成，可以为 0。
	TryRead(b []byte, minBytes int, maxBytes int) (future async.Future[int])
	// ShutdownWrite
	// 关停写方向。已入队的写会先完成，底层流随后被冲洗一次，之后的写一律失败。
	ShutdownWrite()
	// MarkEOF
	// 标记底层流已到输入终点。此后 Read 立刻失败，TryRead 立刻以 0 完成。
	// 流自身不会主动标记，何时标记由集成方决定。
	MarkEOF()
	// Close
	// 关闭流。尚未开始的请求以 ErrClosed 失败，之后发起的请求同样以
	// ErrClosed 失败，底层流不会被关闭。
	Close() (err error)
}

// Wrap
// 包装一个已打开的堵塞流。
//
// 默认使用全局执行器。通过 WithExecutors 注入共享执行器，
// 或通过 rxp 相关选项让流创建并持有自己的执行器。
func Wrap(ctx context.Context, inner BlockingStream, options ...Option) (s Stream, err error) {
	if inner == nil {
		err = errors.New("swv: wrap failed", errors.WithMeta(errMetaPkgKey, errMetaPkgVal))
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	opt := Options{}
	for _, option := range options {
		if err = option(&opt); err != nil {
			return
		}
	}
	exec := opt.Executors
	ownsExecutors := false
	if exec == nil {
		if rxpOptions := opt.AsRxpOptions(); len(rxpOptions) > 0 {
			exec = rxp.New(rxpOptions...)
			ownsExecutors = true
		} else {
			exec = Executors()
		}
	}
	ctx = rxp.With(ctx, exec)
	sCtx, sCancel := context.WithCancel(ctx)
	s = &stream{
		ctx:           sCtx,
		cancel:        sCancel,
		executors:     exec,
		ownsExecutors: ownsExecutors,
		inner:         inner,
	}
	return
}

type stream struct {
	ctx           context.Context
	cancel        context.CancelFunc
	executors     rxp.Executors
	ownsExecutors bool
	inner         BlockingStream

	locker         sync.Mutex
	pendingWrites  []*writeRequest
	pendingReads   []*readRequest
	writesDraining bool
	readsDraining  bool
	writeShutdown  bool
	flushed        bool
	eof            bool
	closed         bool
}

func (s *stream) Context() (ctx context.Context) {
	ctx = s.ctx
	return
}

func (s *stream) MarkEOF() {
	s.locker.Lock()
	s.eof = true
	s.locker.Unlock()
	return
}

func (s *stream) Close() (err error) {
	s.locker.Lock()
	if s.closed {
		s.locker.Unlock()
		return
	}
	s.closed = true
	s.writeShutdown = true
	s.eof = true
	writes := s.pendingWrites
	reads := s.pendingReads
	s.pendingWrites = nil
	s.pendingReads = nil
	s.locker.Unlock()
	for _, w := range writes {
		w.promise.Fail(ErrClosed)
	}
	for _, r := range reads {
		r.promise.Fail(ErrClosed)
	}
	s.cancel()
	if s.ownsExecutors {
		err = s.executors.CloseGracefully()
	}
	return
}
