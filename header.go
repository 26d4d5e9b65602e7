package ncdt

import (
	"encoding/binary"
	"io"
	"math"
)

var be = binary.BigEndian

const (
	// HeaderSize is the size of a compact box header: 32-bit size and type.
	HeaderSize = 8
	// LargeHeaderSize is the size of a box header using the 64-bit extended size.
	LargeHeaderSize = 16
)

// BoxHeader is the leading size and type of a box.
type BoxHeader struct {
	Type      BoxType
	Size      uint64 // total box size including header; 0 means to the end of the enclosing range
	HeaderLen int    // 8 or 16 bytes
}

// DataSize returns the size of the box data (excluding the header).
func (h BoxHeader) DataSize() uint64 {
	return h.Size - uint64(h.HeaderLen)
}

// ReadBoxHeader reads a box header from r.
// A size of 1 selects the extended 64-bit size that follows the type.
// A size of 0 is returned as is; the caller resolves it against its own range.
func ReadBoxHeader(r io.Reader) (BoxHeader, error) {
	var hdr [LargeHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:HeaderSize]); err != nil {
		return BoxHeader{}, err
	}
	h := BoxHeader{
		Size:      uint64(be.Uint32(hdr[:4])),
		HeaderLen: HeaderSize,
	}
	copy(h.Type[:], hdr[4:8])

	if h.Size == 1 {
		if _, err := io.ReadFull(r, hdr[8:16]); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return BoxHeader{}, err
		}
		h.Size = be.Uint64(hdr[8:16])
		h.HeaderLen = LargeHeaderSize
	}
	return h, nil
}

// WriteTo writes the compact 8-byte form of the header.
func (h BoxHeader) WriteTo(w io.Writer) (int64, error) {
	if h.Size > math.MaxUint32 {
		return 0, ErrBoxTooLarge
	}
	var hdr [HeaderSize]byte
	be.PutUint32(hdr[:4], uint32(h.Size))
	copy(hdr[4:], h.Type[:])
	n, err := w.Write(hdr[:])
	if err == nil && n < len(hdr) {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

// position returns the current offset of s.
func position(s io.Seeker) (int64, error) {
	return s.Seek(0, io.SeekCurrent)
}

// skipBytes advances s by n bytes without reading them.
func skipBytes(s io.Seeker, n int64) error {
	_, err := s.Seek(n, io.SeekCurrent)
	return err
}

// skipBytesTo moves s to the absolute offset pos.
func skipBytesTo(s io.Seeker, pos int64) error {
	_, err := s.Seek(pos, io.SeekStart)
	return err
}
