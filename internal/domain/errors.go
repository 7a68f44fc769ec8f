package domain

import "errors"

// ErrNoContent signals that a paper carries neither body text nor an
// abstract, so no summary of any kind can be produced. This is the only
// condition the core surfaces to callers as a failure.
var ErrNoContent = errors.New("document has no text and no abstract")
