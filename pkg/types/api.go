package types

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindConfig  ErrKind = iota // target type unset or not registered
	ErrKindAddress                // null or unmapped address
	ErrKindQuery                  // out-of-range index or unknown field name
	ErrKindFormat                 // malformed layout description or value bytes
	ErrKindType                   // operation not valid for the value's type
)

// String implements the Stringer interface for ErrKind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindConfig:
		return "config"
	case ErrKindAddress:
		return "address"
	case ErrKindQuery:
		return "query"
	case ErrKindFormat:
		return "format"
	case ErrKindType:
		return "type"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind and message, so sentinels below
// keep working after being wrapped with extra context.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

// Sentinels commonly returned by implementations.
var (
	// ErrTargetUnset indicates no target node type was configured.
	ErrTargetUnset = &Error{Kind: ErrKindConfig, Msg: "target node type not configured"}
	// ErrUnknownType indicates the configured type name is not registered.
	ErrUnknownType = &Error{Kind: ErrKindConfig, Msg: "target node type not found"}
	// ErrNullReference indicates the decoded address is zero.
	ErrNullReference = &Error{Kind: ErrKindAddress, Msg: "null reference"}
	// ErrInaccessible indicates the node's bytes are not readable.
	ErrInaccessible = &Error{Kind: ErrKindAddress, Msg: "memory not accessible"}
	// ErrNoSuchField indicates a field name or index that the node lacks.
	ErrNoSuchField = &Error{Kind: ErrKindQuery, Msg: "no such field"}
	// ErrTypeMismatch indicates an operation that the value's type does not support.
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: "operation not supported by type"}
)

// Wrap returns a copy of sentinel carrying cause.
//
// Example:
//
//	return types.Wrap(types.ErrInaccessible, err)
func Wrap(sentinel *Error, cause error) *Error {
	return &Error{Kind: sentinel.Kind, Msg: sentinel.Msg, Err: cause}
}

// IsKind reports whether err is a *Error of the given kind anywhere in its chain.
func IsKind(err error, kind ErrKind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// -----------------------------------------------------------------------------
// Core Identifiers & Interfaces
// -----------------------------------------------------------------------------

// RawReference is a markable reference exactly as stored in target memory.
// Bit 0 carries the mark; the remaining bits are the node address.
type RawReference = uint64

// Memory is read-only access to the inspected process's address space.
//
// ReadAt returns exactly n bytes starting at addr, or an error when any byte
// of the range is unmapped. Implementations must not hand out slices that the
// caller can use to mutate target memory through a live mapping.
type Memory interface {
	ReadAt(addr uint64, n int) ([]byte, error)
}

// Value is the inspection host's native value representation.
type Value interface {
	// Name is the label the value is displayed under (variable or field name).
	Name() string
	// TypeName is the registered type tag, e.g. "markable_ptr_t".
	TypeName() string
	// Location returns the value's address in target memory, if it has one.
	Location() (uint64, bool)
	// Unsigned reads a scalar value as an unsigned integer.
	Unsigned() (uint64, error)
}

// FieldSet is the structural capability a resolved node exposes. The child
// enumerator relies on this alone and never on a concrete node layout.
type FieldSet interface {
	NumFields() int
	FieldName(i int) (string, bool)
	FieldValue(i int) (Value, bool)
}
