package fields

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
)

// ValueKind enumerates the JSON value shapes seen by the classifier.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueNumber
	ValueString
	ValueObject
	ValueArray
)

// Value is a decoded JSON value that keeps object members in source order.
type Value struct {
	Kind     ValueKind
	Str      string
	Members  []Member
	Elements []Value
}

// Member is a single object member.
type Member struct {
	Name  string
	Value Value
}

// Get returns the member called name. Arrays and scalars have no members.
func (v Value) Get(name string) (Value, bool) {
	if v.Kind != ValueObject {
		return Value{}, false
	}
	for _, member := range v.Members {
		if member.Name == name {
			return member.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether the object carries a member called name.
func (v Value) Has(name string) bool {
	_, ok := v.Get(name)
	return ok
}

// set replaces an existing member in place or appends a new one, matching the
// way repeated keys collapse when JSON is read into an ordered map.
func (v *Value) set(name string, value Value) {
	for idx := range v.Members {
		if v.Members[idx].Name == name {
			v.Members[idx].Value = value
			return
		}
	}
	v.Members = append(v.Members, Member{Name: name, Value: value})
}

var errNotObject = errors.New("fields: top-level JSON value is not an object")

// DecodeObject decodes raw as a single JSON object. Invalid UTF-8, trailing
// data and non-object documents are reported as errors.
func DecodeObject(raw string) (Value, error) {
	dec := jsontext.NewDecoder(strings.NewReader(raw), jsontext.AllowDuplicateNames(true))

	value, err := readValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("fields: decode json: %w", err)
	}
	if value.Kind != ValueObject {
		return Value{}, errNotObject
	}
	if _, err := dec.ReadToken(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return Value{}, fmt.Errorf("fields: decode json: %w", err)
	}
	return value, nil
}

func readValue(dec *jsontext.Decoder) (Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return Value{}, err
	}

	switch tok.Kind() {
	case 'n':
		return Value{Kind: ValueNull}, nil
	case 't', 'f':
		return Value{Kind: ValueBool}, nil
	case '0':
		return Value{Kind: ValueNumber, Str: tok.String()}, nil
	case '"':
		return Value{Kind: ValueString, Str: tok.String()}, nil
	case '{':
		obj := Value{Kind: ValueObject}
		for dec.PeekKind() != '}' {
			name, err := dec.ReadToken()
			if err != nil {
				return Value{}, err
			}
			// The name token is voided by the next decoder call.
			key := name.String()
			member, err := readValue(dec)
			if err != nil {
				return Value{}, err
			}
			obj.set(key, member)
		}
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, err
		}
		return obj, nil
	case '[':
		arr := Value{Kind: ValueArray}
		for dec.PeekKind() != ']' {
			elem, err := readValue(dec)
			if err != nil {
				return Value{}, err
			}
			arr.Elements = append(arr.Elements, elem)
		}
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, err
		}
		return arr, nil
	default:
		return Value{}, fmt.Errorf("unexpected token kind %v", tok.Kind())
	}
}
