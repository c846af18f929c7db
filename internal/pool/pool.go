// Package pool provides sync.Pool backed scratch buffers for the output path.
// Row segments are assembled on every paint, so the builders and rune slices
// are recycled instead of allocated per call.
package pool

import (
	"strings"
	"sync"
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// GetStringBuilder returns an empty builder from the pool.
func GetStringBuilder() *strings.Builder {
	return stringBuilderPool.Get().(*strings.Builder)
}

// PutStringBuilder resets sb and returns it to the pool.
func PutStringBuilder(sb *strings.Builder) {
	if sb == nil {
		return
	}
	// Oversized builders are dropped rather than pinned in the pool.
	if sb.Cap() > 64*1024 {
		return
	}
	sb.Reset()
	stringBuilderPool.Put(sb)
}

var runeSlicePool = sync.Pool{
	New: func() any {
		s := make([]rune, 0, 256)
		return &s
	},
}

// GetRuneSlice returns an empty rune slice with spare capacity.
func GetRuneSlice() *[]rune {
	s := runeSlicePool.Get().(*[]rune)
	*s = (*s)[:0]
	return s
}

// PutRuneSlice returns s to the pool.
func PutRuneSlice(s *[]rune) {
	if s == nil || cap(*s) > 64*1024 {
		return
	}
	runeSlicePool.Put(s)
}
