package selectionstore

import "errors"

var (
	ErrEncodePayload = errors.New("selectionstore: failed to encode payload")
	ErrDecodePayload = errors.New("selectionstore: failed to decode payload")
	ErrWriteTier     = errors.New("selectionstore: failed to write storage tier")
	ErrReadTier      = errors.New("selectionstore: failed to read storage tier")
	ErrClear         = errors.New("selectionstore: failed to clear selection")
)
