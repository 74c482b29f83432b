package config

// Error is a local configuration or precondition failure, it's returned
// before any request is made to the node.
type Error struct {
	Field string
	Msg   string
}

// ErrMalformedParaName is returned for parallel chain names that don't look
// like "user.p.<name>.".
var ErrMalformedParaName = &Error{Field: "ParaName", Msg: "parallel chain name is malformed"}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}
