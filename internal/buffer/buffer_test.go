package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_AppendAndConsume(t *testing.T) {
	b := New()
	b.Append([]byte("hello"))
	b.Append([]byte(" world"))

	assert.Equal(t, 11, b.Size())
	assert.False(t, b.Empty())

	scratch := make([]byte, 11)
	view, ok := b.PeekContiguous(11, scratch)
	require.True(t, ok)
	assert.Equal(t, "hello world", string(view))

	b.Consume(11)
	assert.True(t, b.Empty())
	assert.Equal(t, 0, b.Size())
}

func TestBuffer_SpansMultipleSegments(t *testing.T) {
	b := New()
	large := make([]byte, 8*pageSize+10)
	for i := range large {
		large[i] = byte('a' + i%26)
	}
	b.Append(large)

	assert.Equal(t, len(large), b.Size())

	scratch := make([]byte, len(large))
	view, ok := b.PeekContiguous(len(large), scratch)
	require.True(t, ok)
	assert.Equal(t, large, view)

	b.Consume(len(large))
	assert.True(t, b.Empty())
}

func TestBuffer_GetWritePtrCommitWrite(t *testing.T) {
	b := New()
	ptr := b.GetWritePtr(64)
	n := copy(ptr, []byte("zero-copy"))
	b.CommitWrite(n)

	assert.Equal(t, n, b.Size())
	assert.Equal(t, "zero-copy", string(b.Peek()))
}

func TestBuffer_FrontAnchorOutlivesConsume(t *testing.T) {
	b := New()
	b.Append([]byte("payload"))

	anchor := b.GetFrontAnchor()
	require.NotNil(t, anchor)

	view := View{Anchor: anchor, Off: 0, Len: 7}
	b.Consume(7)

	// The anchor keeps the segment's bytes valid even though the buffer has
	// already consumed and dropped the segment.
	assert.Equal(t, "payload", string(view.Bytes()))
	view.Release()
}

func TestSegment_WritableReadableRoundTrip(t *testing.T) {
	seg := acquireSegment(0)
	defer releaseSegment(seg)

	assert.Equal(t, pageSize, seg.Writable())
	n := copy(seg.WritePtr(), []byte("abc"))
	seg.Commit(n)

	assert.Equal(t, 3, seg.Readable())
	assert.Equal(t, "abc", string(seg.ReadPtr()))

	seg.Consume(3)
	assert.True(t, seg.IsEmpty())
}
