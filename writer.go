package ncdt

import "io"

// writer encodes box fields to an io.Writer.
// The first error is kept and turns every later put into a no-op.
type writer struct {
	w       io.Writer
	n       int64
	err     error
	scratch [8]byte
}

func newWriter(w io.Writer) *writer {
	return &writer{w: w}
}

// Write appends raw bytes. Implements io.Writer.
func (w *writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	w.n += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	w.err = err
	return n, err
}

// putUint8 appends a single byte.
func (w *writer) putUint8(v byte) {
	w.scratch[0] = v
	w.Write(w.scratch[:1])
}

// putUint16 appends a big-endian uint16.
func (w *writer) putUint16(v uint16) {
	be.PutUint16(w.scratch[:], v)
	w.Write(w.scratch[:2])
}

// putUint32 appends a big-endian uint32.
func (w *writer) putUint32(v uint32) {
	be.PutUint32(w.scratch[:], v)
	w.Write(w.scratch[:4])
}

// putBytes appends raw bytes.
func (w *writer) putBytes(p []byte) {
	w.Write(p)
}

// putCString writes s followed by a null terminator.
func (w *writer) putCString(s string) {
	w.putBytes([]byte(s))
	w.putUint8(0)
}

// putHeader writes a compact box header. The size must already be final;
// nothing is backpatched.
func (w *writer) putHeader(t BoxType, size uint64) {
	if w.err != nil {
		return
	}
	n, err := BoxHeader{Type: t, Size: size}.WriteTo(w.w)
	w.n += n
	w.err = err
}

// putBox writes a nested box.
func (w *writer) putBox(b Box) {
	if w.err != nil {
		return
	}
	n, err := b.WriteTo(w.w)
	w.n += n
	w.err = err
}

// result returns the number of bytes written and the first error.
func (w *writer) result() (int64, error) {
	return w.n, w.err
}
