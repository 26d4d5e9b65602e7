package ncdt

import "errors"

var (
	ErrSizeViolation      = errors.New("ncdt: child box larger than parent's remaining size")
	ErrInvalidBoxSize     = errors.New("ncdt: box size smaller than its header")
	ErrInvalidText        = errors.New("ncdt: string value is not valid UTF-8")
	ErrUnsupportedTLVType = errors.New("ncdt: unsupported tlv type")
	ErrTruncatedRecord    = errors.New("ncdt: tlv record crosses box end")
	ErrMaxDepth           = errors.New("ncdt: box nesting too deep")
	ErrValueTooLong       = errors.New("ncdt: string value too long")
	ErrBoxTooLarge        = errors.New("ncdt: box too large for compact header")
	ErrNotFound           = errors.New("ncdt: no NCDT box found")
)
