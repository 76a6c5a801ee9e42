package reactive

import "sync/atomic"

// DefaultMaxUpdateDepth is the nesting limit for write cascades.
const DefaultMaxUpdateDepth = 100

var maxUpdateDepth atomic.Int64

func init() {
	maxUpdateDepth.Store(DefaultMaxUpdateDepth)
}

// MaxUpdateDepth returns the current cascade nesting limit.
func MaxUpdateDepth() int {
	return int(maxUpdateDepth.Load())
}

// SetMaxUpdateDepth sets how many nested write cascades may run before a
// write panics with a *CycleError. Values below 1 restore the default.
//
// Set this at application startup:
//
//	func main() {
//	    reactive.SetMaxUpdateDepth(cfg.Reactive.MaxUpdateDepth)
//	    // ...
//	}
func SetMaxUpdateDepth(n int) {
	if n < 1 {
		n = DefaultMaxUpdateDepth
	}
	maxUpdateDepth.Store(int64(n))
}
