package ncdt

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// MaxDepth is the default limit on container nesting.
const MaxDepth = 16

// Decoder reads NCDT and NCTG boxes from a seekable stream.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	rs             io.ReadSeeker
	maxDepth       int
	skipUnknownTLV bool
	log            zerolog.Logger

	depth int
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithMaxDepth sets the container nesting limit. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for skipped and repeated boxes.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Decoder) { d.log = l }
}

// WithUnknownTLVSkipping makes an unknown TLV type end the NCTG record
// instead of failing. Since the width of an unknown type cannot be known,
// the remaining records of that box are not decoded.
func WithUnknownTLVSkipping() Option {
	return func(d *Decoder) { d.skipUnknownTLV = true }
}

// NewDecoder creates a Decoder reading from rs.
func NewDecoder(rs io.ReadSeeker, opts ...Option) *Decoder {
	d := &Decoder{
		rs:       rs,
		maxDepth: MaxDepth,
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Depth returns the current nesting depth (0 at top level).
func (d *Decoder) Depth() int { return d.depth }

// enter descends one container level.
func (d *Decoder) enter(t BoxType) error {
	if d.depth >= d.maxDepth {
		return fmt.Errorf("%w: %s at depth %d", ErrMaxDepth, t, d.depth)
	}
	d.depth++
	return nil
}

// exit returns to the parent level.
func (d *Decoder) exit() {
	d.depth--
}

// bodyRange returns the start and end offsets of the box whose header was just read.
func (d *Decoder) bodyRange(headerLen int, size uint64) (start, end int64, err error) {
	pos, err := position(d.rs)
	if err != nil {
		return 0, 0, err
	}
	start = pos - int64(headerLen)
	return start, start + int64(size), nil
}

// childHeader reads the header of the next child inside [.., end) and validates
// its size against the remaining parent budget. It returns the child's start offset.
func (d *Decoder) childHeader(parent BoxType, end int64) (BoxHeader, int64, error) {
	h, err := ReadBoxHeader(d.rs)
	if err != nil {
		return BoxHeader{}, 0, err
	}
	pos, err := position(d.rs)
	if err != nil {
		return BoxHeader{}, 0, err
	}
	childStart := pos - int64(h.HeaderLen)
	remaining := uint64(end - childStart)
	if h.Size == 0 {
		h.Size = remaining
	}
	if h.Size < uint64(h.HeaderLen) {
		return BoxHeader{}, 0, fmt.Errorf("%w: %s in %s declares %d bytes", ErrInvalidBoxSize, h.Type, parent, h.Size)
	}
	if h.Size > remaining {
		return BoxHeader{}, 0, fmt.Errorf("%w: %s declares %d bytes, %s has %d left", ErrSizeViolation, h.Type, h.Size, parent, remaining)
	}
	return h, childStart, nil
}

// skipBox moves past a child box without interpreting it.
func (d *Decoder) skipBox(parent BoxType, h BoxHeader, childStart int64) error {
	d.log.Debug().
		Str("parent", parent.String()).
		Str("type", h.Type.String()).
		Uint64("size", h.Size).
		Int64("offset", childStart).
		Msg("skipping box")
	return skipBytesTo(d.rs, childStart+int64(h.Size))
}
