package ncdt

import "fmt"

// TLVType selects the element width and meaning of an NCTG record payload.
type TLVType uint16

const (
	TLVUint8     TLVType = 0x01
	TLVString    TLVType = 0x02 // null terminated
	TLVUint16    TLVType = 0x03
	TLVUint32    TLVType = 0x04
	TLVRational  TLVType = 0x05 // two uint32 per element
	TLVUndefined TLVType = 0x07 // raw byte buffer
)

// Tag identifiers stored by NctgBox.
const (
	TagDateTimeOriginal uint32 = 0x0012
	TagTimeZone         uint32 = 0x0019
)

// tlvHeaderSize is tag(4) + type(2) + count(2).
const tlvHeaderSize = 8

// tlvKind describes how a record of a given type is consumed.
type tlvKind struct {
	name  string
	width int64 // bytes per element
	text  bool  // decoded and stored by tag, otherwise skipped
}

var tlvKinds = map[TLVType]tlvKind{
	TLVUint8:     {name: "uint8", width: 1},
	TLVString:    {name: "string", width: 1, text: true},
	TLVUint16:    {name: "uint16", width: 2},
	TLVUint32:    {name: "uint32", width: 4},
	TLVRational:  {name: "rational", width: 8},
	TLVUndefined: {name: "undefined", width: 1},
}

func (t TLVType) String() string {
	if k, ok := tlvKinds[t]; ok {
		return k.name
	}
	return fmt.Sprintf("0x%02x", uint16(t))
}

// tlvHeader is the fixed part of one NCTG record.
type tlvHeader struct {
	Tag   uint32
	Type  TLVType
	Count uint16
}

func parseTLVHeader(b []byte) tlvHeader {
	return tlvHeader{
		Tag:   be.Uint32(b[0:4]),
		Type:  TLVType(be.Uint16(b[4:6])),
		Count: be.Uint16(b[6:8]),
	}
}

// putTLVString writes a string record: type 0x02, one byte per element,
// count including the null terminator.
func (w *writer) putTLVString(tag uint32, s string) {
	w.putUint32(tag)
	w.putUint16(uint16(TLVString))
	w.putUint16(uint16(len(s) + 1))
	w.putCString(s)
}

// tlvStringSize is the encoded size of a string record holding s.
func tlvStringSize(s string) uint64 {
	return tlvHeaderSize + uint64(len(s)) + 1
}
