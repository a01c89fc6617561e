package stun

import "errors"

var (
	// ErrNoBufferSpace is returned when an attribute would push the
	// message past its declared maximum size.
	ErrNoBufferSpace = errors.New("STUN message buffer out of space")

	// ErrUnsupportedFamily is returned for addresses that are neither
	// IPv4 nor IPv6.
	ErrUnsupportedFamily = errors.New("address family is not IPv4 or IPv6")

	// ErrInvalidArgument is returned for values an attribute cannot
	// encode, such as an out-of-range error code.
	ErrInvalidArgument = errors.New("invalid value for STUN attribute")

	// ErrMalformedAttrs is returned when the attribute section of a
	// message cannot be walked.
	ErrMalformedAttrs = errors.New("STUN message has malformed attributes")
)
