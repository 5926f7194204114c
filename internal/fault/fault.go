// Package fault is the unrecoverable error channel.
//
// Ordinary failures are returned as errors. A fault is different: it means
// the process no longer has a trustworthy view of an OS resource (a mapping
// that would not unmap, a frame the compositor did not accept) and nothing
// the caller does can repair that, so Abort never returns.
package fault

import (
	"fmt"
	"sync"

	"github.com/bnema/softbuf/internal/logger"
)

// Kind tags the resource whose state became untrustworthy.
type Kind int

const (
	UnmapFailure Kind = iota + 1
	SyncFailure
)

func (k Kind) String() string {
	switch k {
	case UnmapFailure:
		return "unmap failure"
	case SyncFailure:
		return "sync failure"
	default:
		return fmt.Sprintf("fault(%d)", int(k))
	}
}

// Fault describes an unrecoverable condition.
type Fault struct {
	Kind Kind
	Err  error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("fatal %s: %v", f.Kind, f.Err)
	}
	return "fatal " + f.Kind.String()
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Handler receives a fault before the process goes down.
type Handler func(*Fault)

var (
	mu      sync.Mutex
	handler Handler = exit
)

func exit(f *Fault) {
	logger.Fatal("unrecoverable fault, aborting", "kind", f.Kind, "err", f.Err)
}

// SetHandler installs h and returns a function restoring the previous one.
// A nil h restores the default, which exits the process.
func SetHandler(h Handler) (restore func()) {
	if h == nil {
		h = exit
	}

	mu.Lock()
	prev := handler
	handler = h
	mu.Unlock()

	return func() {
		mu.Lock()
		handler = prev
		mu.Unlock()
	}
}

// Abort reports an unrecoverable fault. If the installed handler returns,
// Abort panics with the *Fault.
func Abort(kind Kind, err error) {
	f := &Fault{Kind: kind, Err: err}
	logger.Error("fault", "kind", kind, "err", err)

	mu.Lock()
	h := handler
	mu.Unlock()

	h(f)
	panic(f)
}
