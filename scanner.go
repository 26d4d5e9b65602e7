package ncdt

import (
	"errors"
	"fmt"
	"io"
)

// ScanEntry represents a top-level box discovered by the Scanner.
type ScanEntry struct {
	Type       BoxType
	Size       int64 // total box size including header
	Offset     int64 // byte offset from start of stream
	HeaderSize int   // header size (8 or 16 bytes)
}

// DataSize returns the size of the box data (excluding the header).
func (e ScanEntry) DataSize() int64 {
	return e.Size - int64(e.HeaderSize)
}

// Scanner reads top-level box headers from an io.ReadSeeker without
// loading box contents into memory.
//
// Typical usage:
//
//	f, _ := os.Open("DSC_0001.MOV")
//	sc := ncdt.NewScanner(f)
//	for sc.Next() {
//	    e := sc.Entry()
//	    fmt.Println(e.Type, e.Size)
//	}
//	if err := sc.Err(); err != nil { ... }
type Scanner struct {
	rs    io.ReadSeeker
	entry ScanEntry
	err   error
	pos   int64 // current position in stream
}

// NewScanner creates a Scanner that reads box headers from rs,
// starting at its current position.
func NewScanner(rs io.ReadSeeker) Scanner {
	pos, err := position(rs)
	return Scanner{rs: rs, pos: pos, err: err}
}

// Next advances to the next top-level box. Returns false when there
// are no more boxes or an error occurs. Check Err() after the loop.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}
	if err := skipBytesTo(s.rs, s.pos); err != nil {
		s.err = err
		return false
	}

	h, err := ReadBoxHeader(s.rs)
	if err != nil {
		if err != io.EOF && err != io.ErrUnexpectedEOF {
			s.err = err
		}
		return false
	}

	boxStart := s.pos
	size := int64(h.Size)
	if h.Size == 0 {
		// Box extends to end of file
		end, err := s.rs.Seek(0, io.SeekEnd)
		if err != nil {
			s.err = err
			return false
		}
		size = end - boxStart
	}
	if size < int64(h.HeaderLen) {
		s.err = fmt.Errorf("%w: %s at offset %d declares %d bytes", ErrInvalidBoxSize, h.Type, boxStart, size)
		return false
	}

	s.entry = ScanEntry{
		Type:       h.Type,
		Size:       size,
		Offset:     boxStart,
		HeaderSize: h.HeaderLen,
	}
	s.pos = boxStart + size
	return true
}

// Entry returns the current box entry. Only valid after Next returns true.
func (s *Scanner) Entry() ScanEntry {
	return s.entry
}

// Err returns the first non-EOF error encountered by the Scanner.
func (s *Scanner) Err() error {
	return s.err
}

// FindNcdt scans rs from its current position for the first NCDT box,
// descending through moov, trak and udta, and decodes it.
// It returns ErrNotFound when the stream holds no NCDT box.
func FindNcdt(rs io.ReadSeeker, opts ...Option) (*NcdtBox, error) {
	d := NewDecoder(rs, opts...)
	sc := NewScanner(rs)
	for sc.Next() {
		e := sc.Entry()
		if e.Type != TypeNcdt && !IsContainerBox(e.Type) {
			continue
		}
		if err := skipBytesTo(rs, e.Offset+int64(e.HeaderSize)); err != nil {
			return nil, err
		}
		h := BoxHeader{Type: e.Type, Size: uint64(e.Size), HeaderLen: e.HeaderSize}
		b, err := d.search(h)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return b, err
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNotFound
}

// search decodes h if it is an NCDT box, or looks for one among its children.
// The stream must be positioned right after h.
func (d *Decoder) search(h BoxHeader) (*NcdtBox, error) {
	if h.Type == TypeNcdt {
		return d.readNcdt(h.HeaderLen, h.Size)
	}

	if err := d.enter(h.Type); err != nil {
		return nil, err
	}
	defer d.exit()

	_, end, err := d.bodyRange(h.HeaderLen, h.Size)
	if err != nil {
		return nil, err
	}
	for {
		pos, err := position(d.rs)
		if err != nil {
			return nil, err
		}
		if pos >= end {
			return nil, ErrNotFound
		}
		child, childStart, err := d.childHeader(h.Type, end)
		if err != nil {
			return nil, err
		}
		if child.Type != TypeNcdt && !IsContainerBox(child.Type) {
			if err := skipBytesTo(d.rs, childStart+int64(child.Size)); err != nil {
				return nil, err
			}
			continue
		}
		b, err := d.search(child)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return b, err
	}
}
