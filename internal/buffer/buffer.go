package buffer

import "container/list"

// segmentHandle pairs a Segment with the Anchor that owns it, so the Buffer
// can hand out a View over a segment still sitting in its queue while also
// eventually releasing its own hold on that segment when consumed.
type segmentHandle struct {
	anchor *Anchor
}

// Buffer manages a sequence of Segments, presenting a contiguous-like
// read/write interface over what is actually a chain of independently
// allocated slabs. It is the type a connection reads socket bytes into and
// the wire codec decodes RESP values out of.
//
// Buffer is not safe for concurrent use; each connection owns exactly one
// inbound and one outbound Buffer, both driven from the single event loop
// goroutine.
type Buffer struct {
	segments  *list.List // of *segmentHandle
	totalSize int
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{segments: list.New()}
}

// Append copies data into the buffer, allocating new segments as needed.
// Used for small writes such as encoded command replies, where a direct
// zero-copy write path isn't worth the bookkeeping.
func (b *Buffer) Append(data []byte) {
	written := 0
	for written < len(data) {
		back := b.backSegment()
		if back == nil || back.Writable() == 0 {
			back = b.pushNewSegment(len(data) - written)
		}

		n := copy(back.WritePtr(), data[written:])
		back.Commit(n)
		written += n
		b.totalSize += n
	}
}

// GetWritePtr returns a slice of writable capacity in the current (or a
// newly allocated) back segment. When a fresh segment must be allocated,
// hint picks its tier: a one-page segment for a hint of at most one page,
// an eight-page segment otherwise, so a hint above eight pages still gets
// eight pages. The caller writes into the returned slice
// directly — typically a non-blocking socket read — then calls CommitWrite
// with the number of bytes actually written.
func (b *Buffer) GetWritePtr(hint int) []byte {
	back := b.backSegment()
	if back == nil || back.Writable() == 0 {
		back = b.pushNewSegment(hint)
	}
	return back.WritePtr()
}

// CommitWrite advances the back segment's write cursor by n bytes after a
// direct write through the slice returned by GetWritePtr.
func (b *Buffer) CommitWrite(n int) {
	if back := b.backSegment(); back != nil {
		back.Commit(n)
		b.totalSize += n
	}
}

// Peek returns the unconsumed bytes of the front segment only; it does not
// span segments. Callers that need more than one segment's worth of
// contiguous bytes should use PeekContiguous.
func (b *Buffer) Peek() []byte {
	front := b.frontSegment()
	if front == nil {
		return nil
	}
	return front.ReadPtr()
}

// PeekContiguous returns n contiguous bytes starting at the read cursor. If
// they fit within the front segment, the returned slice aliases it directly
// (no copy). If they span multiple segments, the bytes are copied into the
// supplied scratch slice, which must have length >= n; this mirrors the
// original's thread-local overflow buffer without the global state. Returns
// false if fewer than n bytes are currently buffered.
func (b *Buffer) PeekContiguous(n int, scratch []byte) ([]byte, bool) {
	if b.totalSize < n {
		return nil, false
	}

	front := b.frontSegment()
	if front != nil && front.Readable() >= n {
		return front.ReadPtr()[:n], true
	}

	collected := 0
	for e := b.segments.Front(); e != nil && collected < n; e = e.Next() {
		seg := e.Value.(*segmentHandle).anchor.segment
		toCollect := seg.Readable()
		if toCollect > n-collected {
			toCollect = n - collected
		}
		copy(scratch[collected:], seg.ReadPtr()[:toCollect])
		collected += toCollect
	}
	return scratch[:n], true
}

// Consume advances the read cursor by n bytes in O(1) amortized time,
// dropping and releasing any segment that becomes fully read.
func (b *Buffer) Consume(n int) {
	if n > b.totalSize {
		n = b.totalSize
	}
	b.totalSize -= n

	for n > 0 {
		e := b.segments.Front()
		if e == nil {
			break
		}
		handle := e.Value.(*segmentHandle)
		seg := handle.anchor.segment

		canConsume := seg.Readable()
		if canConsume > n {
			canConsume = n
		}
		seg.Consume(canConsume)
		n -= canConsume

		if seg.Readable() == 0 {
			b.segments.Remove(e)
			handle.anchor.Release()
		}
	}
}

// Size returns the total number of unconsumed bytes across every segment.
func (b *Buffer) Size() int {
	return b.totalSize
}

// Empty reports whether the buffer holds no unconsumed bytes.
func (b *Buffer) Empty() bool {
	return b.totalSize == 0
}

// GetFrontAnchor returns a retained Anchor over the front segment, for a
// decoded resp.Value to keep that segment's memory alive as a zero-copy
// View after the Buffer itself has consumed past it.
func (b *Buffer) GetFrontAnchor() *Anchor {
	e := b.segments.Front()
	if e == nil {
		return nil
	}
	return e.Value.(*segmentHandle).anchor.Retain()
}

func (b *Buffer) frontSegment() *Segment {
	e := b.segments.Front()
	if e == nil {
		return nil
	}
	return e.Value.(*segmentHandle).anchor.segment
}

func (b *Buffer) backSegment() *Segment {
	e := b.segments.Back()
	if e == nil {
		return nil
	}
	return e.Value.(*segmentHandle).anchor.segment
}

func (b *Buffer) pushNewSegment(minSize int) *Segment {
	seg := acquireSegment(minSize)
	b.segments.PushBack(&segmentHandle{anchor: newAnchor(seg)})
	return seg
}
