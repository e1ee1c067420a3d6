package capability

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ParamKind is the closed set of parameter types a capability may declare.
type ParamKind string

const (
	KindString      ParamKind = "string"
	KindInteger     ParamKind = "integer"
	KindNumber      ParamKind = "number"
	KindIntegerList ParamKind = "array"
)

// Param is a single declared parameter of a capability.
type Param struct {
	Name string
	Kind ParamKind
}

// Descriptor describes a capability exposed by the remote server:
// a unique name, free-text description, and an ordered parameter schema.
// Descriptors are immutable once built; the catalog provider supplies
// them once per run.
type Descriptor struct {
	Name        string
	Description string
	Params      []Param

	// SchemaErr records a schema that could not be parsed. The catalog
	// renders such an entry as an error line instead of dropping it.
	SchemaErr error
}

// kindFromType maps a declared JSON Schema type to a ParamKind.
// Unknown types fall back to string, matching the server's loose typing.
func kindFromType(t string) ParamKind {
	switch t {
	case "integer":
		return KindInteger
	case "number":
		return KindNumber
	case "array":
		return KindIntegerList
	default:
		return KindString
	}
}

// ParseSchema extracts the ordered parameter list from a raw JSON Schema
// object. Declaration order of the "properties" keys is preserved, which
// is what positional argument pairing relies on; decoding into a map
// would lose it, so the schema is walked with a token decoder instead.
func ParseSchema(raw json.RawMessage) ([]Param, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("schema is not a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read schema key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.New("schema key is not a string")
		}
		if key != "properties" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("skip schema field %q: %w", key, err)
			}
			continue
		}
		return parseProperties(dec)
	}

	// No properties field: the capability takes no parameters.
	return nil, nil
}

// parseProperties reads the properties object, keeping key order.
func parseProperties(dec *json.Decoder) ([]Param, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read properties: %w", err)
	}
	if tok == nil {
		return nil, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("properties is not a JSON object")
	}

	var params []Param
	for dec.More() {
		nameTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read property name: %w", err)
		}
		name, ok := nameTok.(string)
		if !ok {
			return nil, errors.New("property name is not a string")
		}

		var prop struct {
			Type string `json:"type"`
		}
		if err := dec.Decode(&prop); err != nil {
			return nil, fmt.Errorf("decode property %q: %w", name, err)
		}

		params = append(params, Param{Name: name, Kind: kindFromType(prop.Type)})
	}
	return params, nil
}
