package core

// fatalError marks conditions spec.md classifies as unrecoverable: the
// caller must not attempt to continue using the map after one of these
// propagates. They are ordinary Go panics rather than a true process
// abort() because Go offers no portable, non-cgo equivalent, but callers
// must not recover them - doing so leaves invariant I5 violated.
type fatalError string

func (e fatalError) Error() string { return string(e) }

const (
	errRefcountOverflow = fatalError("flashmap: reference count overflow on a reader handle - too many concurrent guards")
	errDoubleWriter     = fatalError("flashmap: a second writer was constructed against a core that already has one")
	errLiveGuardOnClose = fatalError("flashmap: read handle closed while one of its guards is still open")
)
