package meadowlark

// An Enumerable is restricted to a fixed set of constant values, as Role and Environment are.
// Valid returns ErrNotValid, or an error wrapping it, for any other value.
//
// Values stored in the database must be added there, too.
type Enumerable interface {
	String() string
	Valid() error
}
