package domain

import "errors"

// ErrEmptyQuery indicates the caller supplied no query text. A client error,
// never retried.
var ErrEmptyQuery = errors.New("query text is empty")

// ErrUnencodable indicates the query text produced no usable feature vector
// (all whitespace, no tokenizable words). Treated as a client error.
var ErrUnencodable = errors.New("text yields no usable features")

// ErrNoCandidates indicates the scoring pool was empty. Defensive: the
// fallback-to-full-catalog policy should make this unreachable on a loaded
// catalog.
var ErrNoCandidates = errors.New("no candidates to score")
