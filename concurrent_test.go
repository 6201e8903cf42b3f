package concurrent

import "errors"

// errBoom is a shared sentinel used across tests that don't care about the
// specific error value, only that one occurred.
var errBoom = errors.New("boom")

// errAnother is a second sentinel, distinct from errBoom, for tests that
// need to prove one error replaced another rather than merely wrapping it.
var errAnother = errors.New("another")
