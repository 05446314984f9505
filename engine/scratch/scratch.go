// Package scratch is a frame-scoped byte buffer for building the status
// strings the demo draws every frame without allocating them.
//
// The buffer is package-level and single-threaded: call Reset once per
// frame on the render thread, before any builder runs.
package scratch

import (
	"strconv"
	"unsafe"
)

var buf []byte

// Init sets up the global scratch buffer. Call once at startup.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1024
	}
	buf = make([]byte, 0, capacity)
}

// Reset clears the buffer length without freeing memory. Strings viewed
// before the reset are invalid afterwards.
func Reset() { buf = buf[:0] }

// Cap returns the current capacity. Useful for tuning.
func Cap() int { return cap(buf) }

// Len returns the current length.
func Len() int { return len(buf) }

// ----- Chainable builder over the global buffer -----

// Builder appends to the global buffer from the point it was started.
type Builder struct{ mark int }

// F starts a builder at the current end of the buffer.
func F() Builder { return Builder{mark: len(buf)} }

func (b Builder) S(s string) Builder {
	buf = append(buf, s...)
	return b
}

// I appends a base-10 integer.
func (b Builder) I(v int) Builder {
	buf = strconv.AppendInt(buf, int64(v), 10)
	return b
}

// U appends an unsigned base-10 integer.
func (b Builder) U(v uint64) Builder {
	buf = strconv.AppendUint(buf, v, 10)
	return b
}

// F64 appends a float with prec digits after the decimal point.
func (b Builder) F64(v float64, prec int) Builder {
	buf = strconv.AppendFloat(buf, v, 'f', prec, 64)
	return b
}

// View is a zero-copy string of what the builder appended. It is valid
// until the next Reset.
func (b Builder) View() string {
	s := buf[b.mark:]
	if len(s) == 0 {
		return ""
	}
	return unsafe.String(&s[0], len(s))
}

// String copies what the builder appended.
func (b Builder) String() string { return string(buf[b.mark:]) }
