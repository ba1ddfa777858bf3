package daemon

import "errors"

var (
	// ErrInvalidConfig is returned when the environment holds unparsable values.
	ErrInvalidConfig = errors.New("invalid daemon config")

	// ErrInvalidAddress is returned when Address has no usable UDP endpoint.
	ErrInvalidAddress = errors.New("invalid daemon address")

	// ErrConnectionFailed is returned when the UDP socket cannot be set up.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrNilSegment is returned by SubmitSegment for a nil segment.
	ErrNilSegment = errors.New("nil segment")

	// ErrEncodeFailed is returned when a segment cannot be serialized.
	ErrEncodeFailed = errors.New("segment encoding failed")

	// ErrPacketTooLarge is returned when a segment without subsegments still
	// exceeds MaxPacketSize and cannot be split further.
	ErrPacketTooLarge = errors.New("segment exceeds max packet size")

	// ErrWriteFailed is returned when a datagram cannot be written.
	ErrWriteFailed = errors.New("datagram write failed")

	// ErrClientClosed is returned by SubmitSegment after Close.
	ErrClientClosed = errors.New("daemon client closed")
)
