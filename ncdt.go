package ncdt

import (
	"fmt"
	"io"
)

// NcdtBox is the Nikon camera data container. It holds at most one NCTG box;
// every other child is skipped on read and not retained.
type NcdtBox struct {
	Nctg *NctgBox
}

// Type returns TypeNcdt.
func (b *NcdtBox) Type() BoxType { return TypeNcdt }

// Size returns the encoded size of the box including its header.
func (b *NcdtBox) Size() uint64 {
	size := uint64(HeaderSize)
	if b.Nctg != nil {
		size += b.Nctg.Size()
	}
	return size
}

// WriteTo writes the box header followed by the present children.
func (b *NcdtBox) WriteTo(w io.Writer) (int64, error) {
	bw := newWriter(w)
	bw.putHeader(TypeNcdt, b.Size())
	if b.Nctg != nil {
		bw.putBox(b.Nctg)
	}
	return bw.result()
}

func (b *NcdtBox) String() string {
	if b.Nctg == nil {
		return fmt.Sprintf("[NCDT] size=%d", b.Size())
	}
	return fmt.Sprintf("[NCDT] size=%d %s", b.Size(), b.Nctg)
}

// childReader decodes one recognized child of a container into dst.
type childReader func(d *Decoder, dst *NcdtBox, h BoxHeader) error

// ncdtChildren maps the child types NCDT understands to their readers.
// Any type not listed is skipped.
var ncdtChildren = map[BoxType]childReader{
	TypeNctg: func(d *Decoder, dst *NcdtBox, h BoxHeader) error {
		nctg, err := d.readNctg(h.HeaderLen, h.Size)
		if err != nil {
			return err
		}
		if dst.Nctg != nil {
			d.log.Debug().Msg("repeated NCTG box, keeping the last one")
		}
		dst.Nctg = nctg
		return nil
	},
}

// ReadNcdtBox decodes an NCDT box. rs must be positioned right after the
// box's 8-byte header and size is the total box size.
func ReadNcdtBox(rs io.ReadSeeker, size uint64) (*NcdtBox, error) {
	return NewDecoder(rs).ReadNcdt(size)
}

// ReadNcdt decodes an NCDT box whose 8-byte header has just been read.
func (d *Decoder) ReadNcdt(size uint64) (*NcdtBox, error) {
	if size < HeaderSize {
		return nil, fmt.Errorf("%w: NCDT declares %d bytes", ErrInvalidBoxSize, size)
	}
	return d.readNcdt(HeaderSize, size)
}

func (d *Decoder) readNcdt(headerLen int, size uint64) (*NcdtBox, error) {
	if err := d.enter(TypeNcdt); err != nil {
		return nil, err
	}
	defer d.exit()

	start, end, err := d.bodyRange(headerLen, size)
	if err != nil {
		return nil, err
	}

	var b NcdtBox
	for {
		pos, err := position(d.rs)
		if err != nil {
			return nil, err
		}
		if pos >= end {
			break
		}
		h, childStart, err := d.childHeader(TypeNcdt, end)
		if err != nil {
			return nil, err
		}
		read, ok := ncdtChildren[h.Type]
		if !ok {
			if err := d.skipBox(TypeNcdt, h, childStart); err != nil {
				return nil, err
			}
			continue
		}
		if err := read(d, &b, h); err != nil {
			return nil, fmt.Errorf("read %s: %w", h.Type, err)
		}
	}

	if err := skipBytesTo(d.rs, start+int64(size)); err != nil {
		return nil, err
	}
	return &b, nil
}
