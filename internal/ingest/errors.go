package ingest

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Ingestion errors.
const (
	// ErrNoUsableRecords is the single user-facing ingestion failure: every row
	// of the batch was dropped.
	ErrNoUsableRecords = constError("ingestion produced no usable records")

	// ErrAmbiguousSynonym means two fields claim the same header synonym.
	ErrAmbiguousSynonym = constError("synonym claimed by more than one field")

	// ErrUnknownField names a field that does not exist.
	ErrUnknownField = constError("unknown field")

	// ErrUnknownPartner names a logistics partner that does not exist.
	ErrUnknownPartner = constError("unknown partner")

	// ErrInvalidEntry means a manual entry failed validation.
	ErrInvalidEntry = constError("invalid manual entry")

	// ErrNilTable is returned when no parsed table was supplied.
	ErrNilTable = constError("no table to ingest")
)
