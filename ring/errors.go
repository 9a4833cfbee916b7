package ring

import "errors"

// ErrClaimFailed is returned by Buffer.TryAcquireWriter when another
// writer currently holds the claim. The caller may retry or give up; the
// buffer itself never waits.
var ErrClaimFailed = errors.New("ring: writer claim already held")
