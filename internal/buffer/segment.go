// Package buffer implements the zero-copy segmented buffer the connection
// runtime reads into and the wire codec decodes out of. Memory is handed out
// in page-aligned Segments drawn from two pooled tiers, and a Buffer strings
// Segments together to present a contiguous-like read/write interface over
// what is actually a chain of independently allocated slabs.
package buffer

import (
	"os"
	"sync"
)

// pageSize is resolved once at package init, mirroring the original's
// SystemUtil::GetPageSize() call at segment construction time.
var pageSize = os.Getpagesize()

// Tier selects which pool a Segment was drawn from. Small segments back the
// common case of short command replies and single-frame reads; large
// segments absorb bulk strings and multi-command pipelines without forcing
// many small segments to be chained together.
type Tier int

const (
	// TierSmall segments are exactly one page.
	TierSmall Tier = iota
	// TierLarge segments are eight pages.
	TierLarge
)

// Segment is a page-aligned slab of memory with independent read and write
// cursors, so a reader can consume from the front while a writer still has
// room at the back.
type Segment struct {
	buf  []byte
	rpos int32
	wpos int32
	tier Tier
}

func newSegment(tier Tier) *Segment {
	size := pageSize
	if tier == TierLarge {
		size = pageSize * 8
	}
	return &Segment{buf: make([]byte, size), tier: tier}
}

// reset rewinds both cursors so a pooled segment can be reused without
// reallocating its backing array.
func (s *Segment) reset() {
	s.rpos = 0
	s.wpos = 0
}

// Writable returns how many bytes can still be written before the segment
// is full.
func (s *Segment) Writable() int {
	return len(s.buf) - int(s.wpos)
}

// Readable returns how many unconsumed bytes are available to read.
func (s *Segment) Readable() int {
	return int(s.wpos - s.rpos)
}

// WritePtr returns the slice of unwritten capacity at the write cursor. The
// caller may write directly into it (e.g. a non-blocking socket read) and
// then call Commit with however many bytes it actually wrote.
func (s *Segment) WritePtr() []byte {
	return s.buf[s.wpos:]
}

// ReadPtr returns the slice of unconsumed bytes at the read cursor.
func (s *Segment) ReadPtr() []byte {
	return s.buf[s.rpos:s.wpos]
}

// Commit advances the write cursor by n bytes, clamped to capacity.
func (s *Segment) Commit(n int) {
	if int(s.wpos)+n > len(s.buf) {
		n = len(s.buf) - int(s.wpos)
	}
	s.wpos += int32(n)
}

// Consume advances the read cursor by n bytes, clamped to what has been
// written.
func (s *Segment) Consume(n int) {
	if int(s.rpos)+n > int(s.wpos) {
		n = int(s.wpos) - int(s.rpos)
	}
	s.rpos += int32(n)
}

// IsFull reports whether the segment has no writable capacity left.
func (s *Segment) IsFull() bool {
	return int(s.wpos) == len(s.buf)
}

// IsEmpty reports whether the segment has no unconsumed bytes left.
func (s *Segment) IsEmpty() bool {
	return s.rpos == s.wpos
}

// pools holds the two tier pools as package state. A sync.Pool is the
// idiomatic Go equivalent of the original's mutex-guarded free-list
// singleton: it already does per-P local caching, so a hand-rolled
// mutex-guarded slice would only add contention the stdlib already avoids.
var pools = [2]sync.Pool{
	{New: func() any { return newSegment(TierSmall) }},
	{New: func() any { return newSegment(TierLarge) }},
}

// acquireSegment draws a Segment from the small tier pool when minSize fits
// in one page and from the large (eight-page) tier pool otherwise, resetting
// its cursors before handing it back. A minSize above eight pages still gets
// an eight-page segment.
func acquireSegment(minSize int) *Segment {
	tier := TierSmall
	if minSize > pageSize {
		tier = TierLarge
	}
	seg := pools[tier].Get().(*Segment)
	seg.reset()
	return seg
}

// releaseSegment returns a Segment to its tier's pool.
func releaseSegment(seg *Segment) {
	pools[seg.tier].Put(seg)
}
