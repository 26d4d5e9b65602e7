package ncdt

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// mkBox builds a box with a compact header around the concatenated bodies.
func mkBox(t string, body ...[]byte) []byte {
	data := bytes.Join(body, nil)
	out := make([]byte, 8, 8+len(data))
	binary.BigEndian.PutUint32(out, uint32(8+len(data)))
	copy(out[4:], t)
	return append(out, data...)
}

// mkRecord builds one NCTG record.
func mkRecord(tag uint32, typ TLVType, count uint16, payload []byte) []byte {
	out := make([]byte, 8, 8+len(payload))
	binary.BigEndian.PutUint32(out[0:], tag)
	binary.BigEndian.PutUint16(out[4:], uint16(typ))
	binary.BigEndian.PutUint16(out[6:], count)
	return append(out, payload...)
}

// mkString builds a string record with a null terminator.
func mkString(tag uint32, s string) []byte {
	return mkRecord(tag, TLVString, uint16(len(s)+1), append([]byte(s), 0))
}

func ptr(s string) *string { return &s }

// openBox returns a reader positioned after the header of the box at the
// start of data, and the declared box size.
func openBox(t *testing.T, data []byte) (*bytes.Reader, uint64) {
	t.Helper()
	rs := bytes.NewReader(data)
	h, err := ReadBoxHeader(rs)
	require.NoError(t, err)
	return rs, h.Size
}

func offset(t *testing.T, s io.Seeker) int64 {
	t.Helper()
	pos, err := s.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	return pos
}
