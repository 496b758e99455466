package errs

// Kind is the failure category reported to callers of the booking core.
type Kind string

const (
	KindNotFound            Kind = "NOT_FOUND"
	KindForbidden           Kind = "FORBIDDEN"
	KindUnauthenticated     Kind = "UNAUTHENTICATED"
	KindValidation          Kind = "VALIDATION"
	KindInvalidInterval     Kind = "INVALID_INTERVAL"
	KindResourceUnavailable Kind = "RESOURCE_UNAVAILABLE"
	KindSlotConflict        Kind = "SLOT_CONFLICT"
	KindAlreadyTerminal     Kind = "ALREADY_TERMINAL"
	KindConflict            Kind = "CONFLICT"
	KindStoreUnavailable    Kind = "STORE_UNAVAILABLE"
	KindInternal            Kind = "INTERNAL"
)

// Marks attached by the use case layer. Messages must stay distinct:
// mark identity is derived from the message text.
var (
	ErrNotFound            = New("kind: not found")
	ErrForbidden           = New("kind: forbidden")
	ErrUnauthenticated     = New("kind: unauthenticated")
	ErrValidation          = New("kind: validation failed")
	ErrInvalidInterval     = New("kind: invalid interval")
	ErrResourceUnavailable = New("kind: resource unavailable")
	ErrSlotConflict        = New("kind: slot conflict")
	ErrAlreadyTerminal     = New("kind: already terminal")
	ErrConflict            = New("kind: conflict")
	ErrStoreUnavailable    = New("kind: store unavailable")
)

var kindMarks = []struct {
	mark error
	kind Kind
}{
	{ErrNotFound, KindNotFound},
	{ErrForbidden, KindForbidden},
	{ErrUnauthenticated, KindUnauthenticated},
	{ErrValidation, KindValidation},
	{ErrInvalidInterval, KindInvalidInterval},
	{ErrResourceUnavailable, KindResourceUnavailable},
	{ErrSlotConflict, KindSlotConflict},
	{ErrAlreadyTerminal, KindAlreadyTerminal},
	{ErrConflict, KindConflict},
	{ErrStoreUnavailable, KindStoreUnavailable},
}

// KindOf returns the first kind marked on err, or KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, km := range kindMarks {
		if Is(err, km.mark) {
			return km.kind
		}
	}
	return KindInternal
}

// WithKind marks err with the sentinel for kind. Unknown kinds leave err untouched.
func WithKind(err error, kind Kind) error {
	for _, km := range kindMarks {
		if km.kind == kind {
			return Mark(err, km.mark)
		}
	}
	return err
}
