package swv

import (
	"github.com/brickingsoft/rxp/async"
)

// The request does not own its buffer, the issuer keeps it valid until the
// promise resolves. Entries leave the queue only when a drain pass pops them
// or Close fails them.

type writeRequest struct {
	b       []byte
	promise async.Promise[async.Void]
}

type readRequest struct {
	b              []byte
	minBytes       int
	maxBytes       int
	truncateForEOF bool
	promise        async.Promise[int]
}
