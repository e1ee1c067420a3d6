package capability

import (
	"log"
	"strconv"
	"strings"
)

// Coerce pairs raw positional tokens with the descriptor's declared
// parameters and converts each token to its parameter's kind. Pairing is
// positional: the first unused token fills the next declared parameter.
// Every parameter is required; the first structural mismatch aborts with
// a typed error. Leftover tokens beyond the schema are discarded.
func Coerce(desc Descriptor, tokens []string) (map[string]any, error) {
	args := make(map[string]any, len(desc.Params))
	next := 0

	for _, p := range desc.Params {
		if next >= len(tokens) {
			return nil, &MissingArgumentError{Capability: desc.Name, Parameter: p.Name}
		}
		token := tokens[next]
		next++

		value, err := coerceToken(token, p.Kind)
		if err != nil {
			return nil, &CoercionError{
				Capability: desc.Name,
				Parameter:  p.Name,
				Kind:       p.Kind,
				Token:      token,
				Err:        err,
			}
		}
		args[p.Name] = value
	}

	if next < len(tokens) {
		log.Printf("[capability] %s: ignoring %d extra argument token(s)", desc.Name, len(tokens)-next)
	}
	return args, nil
}

// coerceToken converts one raw token to the given kind.
func coerceToken(token string, kind ParamKind) (any, error) {
	switch kind {
	case KindInteger:
		n, err := strconv.Atoi(token)
		if err != nil {
			return nil, err
		}
		return n, nil
	case KindNumber:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	case KindIntegerList:
		// Only a bracketed token is treated as a list; anything else
		// passes through as a string.
		if !strings.HasPrefix(token, "[") || !strings.HasSuffix(token, "]") {
			return token, nil
		}
		inner := strings.TrimSuffix(strings.TrimPrefix(token, "["), "]")
		elems := strings.Split(inner, ",")
		list := make([]int, len(elems))
		for i, elem := range elems {
			n, err := strconv.Atoi(strings.TrimSpace(elem))
			if err != nil {
				return nil, err
			}
			list[i] = n
		}
		return list, nil
	default:
		return token, nil
	}
}
