package engine

import (
	"time"
)

// System is a per-frame participant of the shell
// Update is called once per tick, in ascending Priority order, on the tick goroutine
type System interface {
	Name() string
	Priority() int
	Update(dt time.Duration)
}
