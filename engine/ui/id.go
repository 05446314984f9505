package ui

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
)

// ID identifies a widget or a piece of persistent state across frames.
// Child ids are derived from their parent and a salt, so the same salt path
// yields the same id every frame.
type ID uint64

// RootID is the id every Ctx starts a frame with.
const RootID ID = 0x9e3779b97f4a7c15

// With derives a child id from id and salt.
func (id ID) With(salt any) ID {
	h := fnv.New64a()
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(id))
	h.Write(b[:])
	switch s := salt.(type) {
	case string:
		h.Write([]byte{'s'})
		h.Write([]byte(s))
	case int:
		binary.LittleEndian.PutUint64(b[:], uint64(s))
		h.Write([]byte{'i'})
		h.Write(b[:])
	case uint64:
		binary.LittleEndian.PutUint64(b[:], s)
		h.Write([]byte{'u'})
		h.Write(b[:])
	case ID:
		binary.LittleEndian.PutUint64(b[:], uint64(s))
		h.Write([]byte{'d'})
		h.Write(b[:])
	case float64:
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(s))
		h.Write([]byte{'f'})
		h.Write(b[:])
	default:
		h.Write([]byte{'v'})
		h.Write([]byte(fmt.Sprint(s)))
	}
	return ID(h.Sum64())
}

func (id ID) String() string { return fmt.Sprintf("%016x", uint64(id)) }
