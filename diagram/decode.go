package diagram

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Decode copies raw into dst, a pointer to a wire struct with json tags.
// Unknown keys and type mismatches are reported as *ValidationError.
func Decode(raw RawParams, dst any) error {
	if raw == nil {
		raw = RawParams{}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return Invalid("", "parameters are not a plain data object: %v", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	return nil
}

func decodeError(err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return Invalid(te.Field, "expected %s, got %s", typeName(te.Type.String()), te.Value)
	}
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, "json: unknown field "); ok {
		return Invalid(strings.Trim(rest, `"`), "unknown parameter")
	}
	return Invalid("", "%s", strings.TrimPrefix(msg, "json: "))
}

func typeName(goType string) string {
	switch {
	case goType == "string":
		return "string"
	case goType == "bool":
		return "boolean"
	case strings.HasPrefix(goType, "float"), strings.HasPrefix(goType, "int"):
		return "number"
	case strings.HasPrefix(goType, "[]"):
		return "array"
	case strings.HasPrefix(goType, "map"), strings.Contains(goType, "."):
		return "object"
	default:
		return goType
	}
}
