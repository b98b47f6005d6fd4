package metrics

import "time"

// Recorder receives per-operation counters and latencies. labels carries at
// least "outcome": "ok" or the failing error code.
type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}
