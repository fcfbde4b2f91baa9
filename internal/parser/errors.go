package parser

import "errors"

// Failure kinds, matched with errors.Is. Every parse failure wraps exactly
// one of these; callers never receive partial pages alongside an error.
var (
	// ErrIO means the byte source could not be read.
	ErrIO = errors.New("document source unreadable")

	// ErrFormatParse means the container is malformed or yielded no usable
	// text. Zero extracted text is a failure, never an empty success.
	ErrFormatParse = errors.New("document parse failed")

	// ErrUnsupportedFormat means no registered parser matches the
	// extension or MIME type.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrRemoteProtocol means a remote analysis backend returned a
	// non-success status or a malformed response.
	ErrRemoteProtocol = errors.New("remote analysis failed")

	// ErrRemoteTimeout means the remote analysis poll budget was exhausted
	// before the backend reported completion.
	ErrRemoteTimeout = errors.New("remote analysis timed out")
)
