// Package logger collapses identical consecutive log lines into a single
// line with a repeat count.
package logger

import (
	"fmt"
	"log"
	"sync"
	"time"
)

var std = New(log.Default(), 2*time.Second)

// Deduper buffers the last message and writes it once no identical message
// has arrived for flushDelay.
type Deduper struct {
	mu         sync.Mutex
	out        *log.Logger
	flushDelay time.Duration
	lastMsg    string
	count      int
	timer      *time.Timer
}

func New(out *log.Logger, flushDelay time.Duration) *Deduper {
	return &Deduper{out: out, flushDelay: flushDelay}
}

// Dedup logs through the package default Deduper.
func Dedup(format string, args ...any) {
	std.Printf(format, args...)
}

// Flush writes the pending message of the package default Deduper.
func Flush() {
	std.Flush()
}

func (d *Deduper) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	d.mu.Lock()
	defer d.mu.Unlock()

	if msg != d.lastMsg {
		d.flushLocked()
		d.lastMsg = msg
	}
	d.count++

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.flushDelay, d.Flush)
}

func (d *Deduper) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flushLocked()
}

func (d *Deduper) flushLocked() {
	if d.count == 0 {
		return
	}
	if d.count == 1 {
		d.out.Print(d.lastMsg)
	} else {
		d.out.Printf("%s (%d)", d.lastMsg, d.count)
	}
	d.count = 0
	d.lastMsg = ""
}
