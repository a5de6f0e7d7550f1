package engine

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrUnknownFormat is returned by ParseOutputFormat for unsupported names.
const ErrUnknownFormat = constError("unknown output format")
