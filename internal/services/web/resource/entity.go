package resource

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DefaultIDField is the identifier field used when a schema does not name one.
const DefaultIDField = "id"

// ID is a normalized entity identifier.
type ID string

// String returns the identifier text.
func (id ID) String() string { return string(id) }

// Entity is one record of a remote collection.
//
// Values keep whatever shape the remote API returned; numbers stay
// json.Number so identifiers and numeric fields round-trip unchanged.
type Entity map[string]any

// Clone returns a shallow copy of e.
func (e Entity) Clone() Entity {
	if e == nil {
		return nil
	}
	out := make(Entity, len(e))
	for key, value := range e {
		out[key] = value
	}
	return out
}

// IDOf reads the identifier stored under field.
func (e Entity) IDOf(field string) (ID, bool) {
	if e == nil {
		return "", false
	}
	if strings.TrimSpace(field) == "" {
		field = DefaultIDField
	}
	value, ok := e[field]
	if !ok {
		return "", false
	}
	return NormalizeID(value)
}

// NormalizeID converts a decoded identifier value to an ID.
func NormalizeID(value any) (ID, bool) {
	var text string
	switch v := value.(type) {
	case nil:
		return "", false
	case ID:
		text = string(v)
	case string:
		text = v
	case json.Number:
		text = v.String()
	case int:
		text = strconv.Itoa(v)
	case int64:
		text = strconv.FormatInt(v, 10)
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		text = fmt.Sprint(v)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return ID(text), true
}

// FieldText renders a field value as display text. Nested values are shown
// as compact JSON.
func FieldText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}

// NormalizeCollection unwraps a decoded list payload.
//
// An object exposing a "results" field yields that field; a bare array is
// used as-is. Anything else is rejected with ErrUnexpectedPayload.
func NormalizeCollection(payload any) ([]Entity, error) {
	if envelope, ok := payload.(map[string]any); ok {
		results, found := envelope["results"]
		if !found {
			return nil, fmt.Errorf("%w: object without results", ErrUnexpectedPayload)
		}
		payload = results
	}
	switch items := payload.(type) {
	case nil:
		return []Entity{}, nil
	case []Entity:
		return items, nil
	case []map[string]any:
		out := make([]Entity, 0, len(items))
		for _, item := range items {
			out = append(out, Entity(item))
		}
		return out, nil
	case []any:
		out := make([]Entity, 0, len(items))
		for idx, item := range items {
			switch record := item.(type) {
			case map[string]any:
				out = append(out, Entity(record))
			case Entity:
				out = append(out, record)
			default:
				return nil, fmt.Errorf("%w: item %d is %T", ErrUnexpectedPayload, idx, item)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedPayload, payload)
	}
}
