package buffer

import "sync/atomic"

// Anchor is a refcounted handle on a Segment. A zero-copy View into wire
// protocol data holds an Anchor so the underlying Segment is not returned to
// its pool and reused for new data while a caller still references bytes
// inside it. This is the Go replacement for the original's
// std::shared_ptr<BufferSegment>: instead of relying on shared_ptr's atomic
// refcount and custom deleter, the refcount is kept explicit on Anchor and
// Release does the pool handoff itself.
type Anchor struct {
	segment *Segment
	refs    atomic.Int32
}

func newAnchor(seg *Segment) *Anchor {
	a := &Anchor{segment: seg}
	a.refs.Store(1)
	return a
}

// Retain increments the reference count and returns the same Anchor, so a
// caller handing out multiple Views over the same Segment can write:
//
//	view := buffer.View{Anchor: anchor.Retain(), Off: off, Len: n}
func (a *Anchor) Retain() *Anchor {
	a.refs.Add(1)
	return a
}

// Release decrements the reference count. When it reaches zero the
// underlying Segment is returned to its tier's pool.
func (a *Anchor) Release() {
	if a.refs.Add(-1) == 0 {
		releaseSegment(a.segment)
	}
}

// Bytes returns the full backing slice of the anchored segment. Callers
// building a View should slice this down to the bytes they actually mean to
// reference.
func (a *Anchor) Bytes() []byte {
	return a.segment.buf
}

// View is a zero-copy reference into an Anchor's backing segment. It keeps
// the Anchor alive for as long as the View itself is reachable, covering
// the case where a resp.Value::BulkString needs to outlive the Buffer
// position it was decoded from.
type View struct {
	Anchor *Anchor
	Off    int
	Len    int
}

// Bytes returns the slice of segment memory this View refers to.
func (v View) Bytes() []byte {
	return v.Anchor.Bytes()[v.Off : v.Off+v.Len]
}

// Release drops this View's hold on its Anchor. Call it once the caller no
// longer needs the referenced bytes.
func (v View) Release() {
	v.Anchor.Release()
}
