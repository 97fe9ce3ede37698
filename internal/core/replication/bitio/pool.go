package bitio

import "github.com/replicon-net/replicon/pkg/generic"

// WriterPool recycles Writer buffers across messages to cut allocations on
// the hot dispatch path, the same object-pooling idiom the teacher's
// protocol.MessagePool applies to its own wire buffers. A *Writer taken
// from Get is already Reset; Put returns it after the caller has drained
// Bytes().
type WriterPool struct {
	pool *generic.Pool[*Writer]
}

// NewWriterPool returns a pool that pre-sizes each Writer's buffer to hint
// bytes.
func NewWriterPool(hint int) *WriterPool {
	return &WriterPool{
		pool: generic.NewPool(func() *Writer { return NewWriter(hint) }),
	}
}

// Get returns a ready-to-use Writer.
func (p *WriterPool) Get() *Writer {
	return p.pool.Get()
}

// Put resets w and returns it to the pool.
func (p *WriterPool) Put(w *Writer) {
	w.Reset()
	p.pool.Put(w)
}
