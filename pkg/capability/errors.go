package capability

import "fmt"

// UnknownCapabilityError reports a call to a capability that the catalog
// does not contain.
type UnknownCapabilityError struct {
	Name string
}

func (e *UnknownCapabilityError) Error() string {
	return fmt.Sprintf("unknown capability: %s", e.Name)
}

// MissingArgumentError reports that the raw argument tokens ran out before
// the declared schema was satisfied.
type MissingArgumentError struct {
	Capability string
	Parameter  string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("not enough arguments for %s: missing %q", e.Capability, e.Parameter)
}

// CoercionError reports a raw token that could not be converted to its
// parameter's declared kind.
type CoercionError struct {
	Capability string
	Parameter  string
	Kind       ParamKind
	Token      string
	Err        error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot convert argument %q for %s.%s to %s: %v",
		e.Token, e.Capability, e.Parameter, e.Kind, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}
