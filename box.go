// Package ncdt implements encoding and decoding of the Nikon NCDT container box
// and the NCTG tag box it carries inside ISO Base Media File Format (ISOBMFF) files.
package ncdt

import "io"

// BoxType is a 4-byte box type identifier.
type BoxType [4]byte

func (t BoxType) String() string {
	return string(t[:])
}

// Known box types.
var (
	TypeFtyp = BoxType{'f', 't', 'y', 'p'}
	TypeMoov = BoxType{'m', 'o', 'o', 'v'}
	TypeTrak = BoxType{'t', 'r', 'a', 'k'}
	TypeUdta = BoxType{'u', 'd', 't', 'a'}
	TypeMeta = BoxType{'m', 'e', 't', 'a'}
	// Data boxes
	TypeMdat = BoxType{'m', 'd', 'a', 't'}
	TypeFree = BoxType{'f', 'r', 'e', 'e'}
	TypeSkip = BoxType{'s', 'k', 'i', 'p'}
	// Nikon vendor boxes
	TypeNcdt = BoxType{'N', 'C', 'D', 'T'} // Nikon camera data container
	TypeNctg = BoxType{'N', 'C', 'T', 'G'} // Nikon tags
)

// Box is implemented by every box this package can decode and encode.
type Box interface {
	// Type returns the box type code.
	Type() BoxType
	// Size returns the total serialized size including the header.
	Size() uint64
	// WriteTo writes the complete box, header included.
	WriteTo(w io.Writer) (int64, error)
	// String returns a one-line summary.
	String() string
}

// IsContainerBox returns true if the box type is a plain container searched for NCDT.
// meta is left out since it is a full box and carries a version/flags prefix.
func IsContainerBox(t BoxType) bool {
	switch t {
	case TypeMoov, TypeTrak, TypeUdta:
		return true
	}
	return false
}
