package ncdt

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, in *NcdtBox) *NcdtBox {
	t.Helper()
	var buf bytes.Buffer
	n, err := in.WriteTo(&buf)
	require.NoError(t, err)
	require.EqualValues(t, buf.Len(), n)
	require.EqualValues(t, in.Size(), n)

	rs, size := openBox(t, buf.Bytes())
	require.Equal(t, in.Size(), size)
	out, err := ReadNcdtBox(rs, size)
	require.NoError(t, err)
	require.EqualValues(t, buf.Len(), offset(t, rs))
	return out
}

func TestNcdtRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		box  *NcdtBox
	}{
		{"empty", &NcdtBox{}},
		{"empty nctg", &NcdtBox{Nctg: &NctgBox{}}},
		{"date only", &NcdtBox{Nctg: &NctgBox{DateTimeOriginal: ptr("2024:03:01 12:34:56")}}},
		{"zone only", &NcdtBox{Nctg: &NctgBox{TimeZone: ptr("+09:00")}}},
		{"full", &NcdtBox{Nctg: &NctgBox{DateTimeOriginal: ptr("2024:03:01 12:34:56"), TimeZone: ptr("+01:00")}}},
		{"empty strings", &NcdtBox{Nctg: &NctgBox{DateTimeOriginal: ptr(""), TimeZone: ptr("")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := roundTrip(t, tt.box)
			if diff := cmp.Diff(tt.box, out); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNcdtEmptySize(t *testing.T) {
	b := &NcdtBox{}
	require.EqualValues(t, HeaderSize, b.Size())

	var buf bytes.Buffer
	_, err := b.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 8, 'N', 'C', 'D', 'T'}, buf.Bytes())
}

func TestNcdtSkipsUnknownChild(t *testing.T) {
	nctg := mkBox("NCTG", mkString(TagDateTimeOriginal, "2023:10:18 09:00:00"))
	want := &NctgBox{DateTimeOriginal: ptr("2023:10:18 09:00:00")}

	for _, n := range []int{0, 1, 17, 300} {
		free := mkBox("free", make([]byte, n))
		data := mkBox("NCDT", free, nctg)
		trailer := []byte{0xde, 0xad}

		rs, size := openBox(t, append(data, trailer...))
		got, err := ReadNcdtBox(rs, size)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got.Nctg); diff != "" {
			t.Fatalf("free(%d): nctg mismatch (-want +got):\n%s", n, diff)
		}
		require.EqualValues(t, len(data), offset(t, rs))
	}
}

func TestNcdtOnlyUnknownChildren(t *testing.T) {
	data := mkBox("NCDT", mkBox("NCHD", []byte("abcd")), mkBox("NCVW", make([]byte, 32)))
	rs, size := openBox(t, data)
	got, err := ReadNcdtBox(rs, size)
	require.NoError(t, err)
	require.Nil(t, got.Nctg)
	require.EqualValues(t, len(data), offset(t, rs))
}

func TestNcdtChildLargerThanParent(t *testing.T) {
	child := mkBox("NCTG", mkString(TagTimeZone, "+02:00"))
	data := mkBox("NCDT", child)
	// grow the child's declared size by one byte past the parent's end
	data[8+3]++

	rs, size := openBox(t, data)
	got, err := ReadNcdtBox(rs, size)
	require.ErrorIs(t, err, ErrSizeViolation)
	require.Nil(t, got)
}

func TestNcdtChildLargerThanRemaining(t *testing.T) {
	// The second child fits in the parent as a whole but not in what is left.
	first := mkBox("free", make([]byte, 16))
	second := mkBox("NCTG", mkString(TagTimeZone, "+02:00"))
	data := mkBox("NCDT", first, second)
	data[8+len(first)+3] += 8

	rs, size := openBox(t, data)
	_, err := ReadNcdtBox(rs, size)
	require.ErrorIs(t, err, ErrSizeViolation)
}

func TestNcdtChildSmallerThanHeader(t *testing.T) {
	data := mkBox("NCDT", []byte{0, 0, 0, 4, 'f', 'r', 'e', 'e'})
	rs, size := openBox(t, data)
	_, err := ReadNcdtBox(rs, size)
	require.ErrorIs(t, err, ErrInvalidBoxSize)
}

func TestNcdtChildSizeZeroExtendsToEnd(t *testing.T) {
	nctg := mkBox("NCTG", mkString(TagTimeZone, "-05:00"))
	nctg[0], nctg[1], nctg[2], nctg[3] = 0, 0, 0, 0
	data := mkBox("NCDT", mkBox("free", []byte{1, 2, 3}), nctg)

	rs, size := openBox(t, data)
	got, err := ReadNcdtBox(rs, size)
	require.NoError(t, err)
	require.NotNil(t, got.Nctg)
	require.Equal(t, "-05:00", *got.Nctg.TimeZone)
}

func TestNcdtRepeatedNctgLastWins(t *testing.T) {
	data := mkBox("NCDT",
		mkBox("NCTG", mkString(TagDateTimeOriginal, "first"), mkString(TagTimeZone, "+01:00")),
		mkBox("NCTG", mkString(TagDateTimeOriginal, "second")),
	)
	rs, size := openBox(t, data)
	got, err := ReadNcdtBox(rs, size)
	require.NoError(t, err)
	want := &NctgBox{DateTimeOriginal: ptr("second")}
	if diff := cmp.Diff(want, got.Nctg); diff != "" {
		t.Fatalf("nctg mismatch (-want +got):\n%s", diff)
	}
}

func TestNcdtLeafErrorAbortsContainer(t *testing.T) {
	data := mkBox("NCDT", mkBox("NCTG", mkRecord(0x0001, 0x06, 1, []byte{0})))
	rs, size := openBox(t, data)
	got, err := ReadNcdtBox(rs, size)
	require.ErrorIs(t, err, ErrUnsupportedTLVType)
	require.Nil(t, got)
}

func TestNcdtTruncatedStream(t *testing.T) {
	data := mkBox("NCDT", mkBox("NCTG", mkString(TagTimeZone, "+02:00")))
	rs, size := openBox(t, data[:12])
	_, err := ReadNcdtBox(rs, size)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestNcdtDeclaredSizeTooSmall(t *testing.T) {
	_, err := ReadNcdtBox(bytes.NewReader(nil), 4)
	require.ErrorIs(t, err, ErrInvalidBoxSize)
}

func TestNcdtMaxDepth(t *testing.T) {
	data := mkBox("NCDT")
	rs, size := openBox(t, data)
	d := NewDecoder(rs, WithMaxDepth(1))
	_, err := d.ReadNcdt(size)
	require.NoError(t, err)
	require.Equal(t, 0, d.Depth())

	d.depth = 1
	_, err = d.ReadNcdt(size)
	require.ErrorIs(t, err, ErrMaxDepth)
}

func TestNcdtWriteError(t *testing.T) {
	b := &NcdtBox{Nctg: &NctgBox{TimeZone: ptr("+09:00")}}
	_, err := b.WriteTo(&limitedWriter{n: 10})
	require.ErrorIs(t, err, io.ErrShortWrite)
}

func TestNcdtString(t *testing.T) {
	require.Equal(t, "[NCDT] size=8", (&NcdtBox{}).String())
	b := &NcdtBox{Nctg: &NctgBox{TimeZone: ptr("+09:00")}}
	require.Equal(t, `[NCDT] size=31 [NCTG] time_zone="+09:00"`, b.String())
}

// limitedWriter accepts n bytes and then stops short.
type limitedWriter struct {
	n int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if len(p) <= w.n {
		w.n -= len(p)
		return len(p), nil
	}
	k := w.n
	w.n = 0
	return k, nil
}
