package ncdt

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// NctgBox holds the Nikon tags this package understands.
// Each field is nil when the tag is absent.
type NctgBox struct {
	DateTimeOriginal *string
	TimeZone         *string
}

// Type returns TypeNctg.
func (b *NctgBox) Type() BoxType { return TypeNctg }

// Size returns the encoded size of the box including its header.
func (b *NctgBox) Size() uint64 {
	size := uint64(HeaderSize)
	for _, f := range b.fields() {
		size += tlvStringSize(f.value)
	}
	return size
}

type nctgField struct {
	tag   uint32
	value string
}

// fields returns the present fields in encoding order.
func (b *NctgBox) fields() []nctgField {
	var fs []nctgField
	if b.DateTimeOriginal != nil {
		fs = append(fs, nctgField{TagDateTimeOriginal, *b.DateTimeOriginal})
	}
	if b.TimeZone != nil {
		fs = append(fs, nctgField{TagTimeZone, *b.TimeZone})
	}
	return fs
}

// WriteTo writes the box. Every present field is a string record
// terminated by a null byte.
func (b *NctgBox) WriteTo(w io.Writer) (int64, error) {
	fs := b.fields()
	for _, f := range fs {
		if len(f.value)+1 > 0xffff {
			return 0, fmt.Errorf("%w: tag 0x%04x has %d bytes", ErrValueTooLong, f.tag, len(f.value))
		}
	}
	bw := newWriter(w)
	bw.putHeader(TypeNctg, b.Size())
	for _, f := range fs {
		bw.putTLVString(f.tag, f.value)
	}
	return bw.result()
}

func (b *NctgBox) String() string {
	var sb strings.Builder
	sb.WriteString("[NCTG]")
	if b.DateTimeOriginal != nil {
		fmt.Fprintf(&sb, " date_time_original=%q", *b.DateTimeOriginal)
	}
	if b.TimeZone != nil {
		fmt.Fprintf(&sb, " time_zone=%q", *b.TimeZone)
	}
	return sb.String()
}

// ReadNctgBox decodes an NCTG box. rs must be positioned right after the
// box's 8-byte header and size is the total box size.
func ReadNctgBox(rs io.ReadSeeker, size uint64) (*NctgBox, error) {
	return NewDecoder(rs).ReadNctg(size)
}

// ReadNctg decodes an NCTG box whose 8-byte header has just been read.
func (d *Decoder) ReadNctg(size uint64) (*NctgBox, error) {
	if size < HeaderSize {
		return nil, fmt.Errorf("%w: NCTG declares %d bytes", ErrInvalidBoxSize, size)
	}
	return d.readNctg(HeaderSize, size)
}

func (d *Decoder) readNctg(headerLen int, size uint64) (*NctgBox, error) {
	start, end, err := d.bodyRange(headerLen, size)
	if err != nil {
		return nil, err
	}

	var b NctgBox
	var hdr [tlvHeaderSize]byte
	for {
		pos, err := position(d.rs)
		if err != nil {
			return nil, err
		}
		if pos >= end {
			break
		}
		if end-pos < tlvHeaderSize {
			return nil, fmt.Errorf("%w: %d header bytes left at offset %d: %w", ErrTruncatedRecord, end-pos, pos, io.ErrUnexpectedEOF)
		}
		if _, err := io.ReadFull(d.rs, hdr[:]); err != nil {
			return nil, err
		}
		rec := parseTLVHeader(hdr[:])

		kind, ok := tlvKinds[rec.Type]
		if !ok {
			if !d.skipUnknownTLV {
				return nil, fmt.Errorf("%w: %s for tag 0x%04x at offset %d", ErrUnsupportedTLVType, rec.Type, rec.Tag, pos)
			}
			d.log.Debug().
				Str("type", rec.Type.String()).
				Uint32("tag", rec.Tag).
				Int64("offset", pos).
				Msg("unknown tlv type, dropping rest of NCTG")
			break
		}

		n := int64(rec.Count) * kind.width
		if n > end-pos-tlvHeaderSize {
			return nil, fmt.Errorf("%w: tag 0x%04x needs %d bytes at offset %d: %w", ErrTruncatedRecord, rec.Tag, n, pos, io.ErrUnexpectedEOF)
		}
		if !kind.text {
			if err := skipBytes(d.rs, n); err != nil {
				return nil, err
			}
			continue
		}

		buf := make([]byte, n)
		if _, err := io.ReadFull(d.rs, buf); err != nil {
			return nil, err
		}
		if len(buf) > 0 {
			buf = buf[:len(buf)-1] // terminator
		}
		if !utf8.Valid(buf) {
			return nil, fmt.Errorf("%w: tag 0x%04x at offset %d", ErrInvalidText, rec.Tag, pos)
		}
		s := string(buf)
		switch rec.Tag {
		case TagDateTimeOriginal:
			b.DateTimeOriginal = &s
		case TagTimeZone:
			b.TimeZone = &s
		}
	}

	if err := skipBytesTo(d.rs, start+int64(size)); err != nil {
		return nil, err
	}
	return &b, nil
}
