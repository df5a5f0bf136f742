package flashmap

// usageError marks a caller protocol violation - calling a method in a
// sequence spec.md documents as undefined, such as opening a second write
// guard before the first is closed. Like internal/core's fatal errors,
// these are ordinary panics: there is no way to continue safely once one
// fires, and recovering from one leaves the map in a state this package
// makes no further guarantees about.
type usageError string

func (e usageError) Error() string { return string(e) }

const errWriteGuardAlreadyOpen = usageError("flashmap: a write guard is already open on this handle")
