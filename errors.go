package swv

import (
	"fmt"

	"github.com/brickingsoft/errors"
)

var (
	ErrClosed           = errors.Define("swv: stream was closed")
	ErrBusy             = errors.Define("swv: executors busy")
	ErrShutdown         = errors.Define("swv: write after shutdown")
	ErrEOF              = errors.Define("swv: read after eof")
	ErrUnexpectedEOF    = errors.Define("swv: unexpected eof")
	ErrInvalidReadRange = errors.Define("swv: invalid read range")
	ErrWrite            = errors.Define("swv: write failed")
	ErrRead             = errors.Define("swv: read failed")
)

func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}

func IsShutdown(err error) bool {
	return errors.Is(err, ErrShutdown)
}

func IsEOF(err error) bool {
	return errors.Is(err, ErrEOF)
}

func IsUnexpectedEOF(err error) bool {
	return errors.Is(err, ErrUnexpectedEOF)
}

func IsInvalidReadRange(err error) bool {
	return errors.Is(err, ErrInvalidReadRange)
}

func IsWrite(err error) bool {
	return errors.Is(err, ErrWrite)
}

func IsRead(err error) bool {
	return errors.Is(err, ErrRead)
}

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "swv"
)

const (
	errMetaOpKey   = "op"
	errMetaOpRead  = "read"
	errMetaOpWrite = "write"
)

// EOFError
// 严格读在凑满 minBytes 之前遇到输入终点。
// Bytes 为实际读到的字节数，Min 为要求的下限。
type EOFError struct {
	Bytes int
	Min   int
}

func (e *EOFError) Error() string {
	return fmt.Sprintf("swv: unexpected eof: read %d bytes, wanted %d", e.Bytes, e.Min)
}

func (e *EOFError) Unwrap() error {
	return ErrUnexpectedEOF
}
