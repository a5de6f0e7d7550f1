package greenops

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for factor table loading and equivalency calculations.
var (
	// ErrInvalidFactor indicates a negative, NaN or infinite factor in a factor file.
	ErrInvalidFactor = constError("emission factor must be a finite non-negative number")

	// ErrInvalidVersion indicates the factor file version is not a semantic version.
	ErrInvalidVersion = constError("invalid factor table version")

	// ErrUnsupportedVersion indicates a factor file schema this build cannot read.
	ErrUnsupportedVersion = constError("unsupported factor table version")

	// ErrNegativeValue indicates a negative carbon value passed to Calculate.
	ErrNegativeValue = constError("negative carbon value")

	// ErrCalculationOverflow indicates a value too large to calculate safely.
	ErrCalculationOverflow = constError("calculation overflow")
)
