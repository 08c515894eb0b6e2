package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an opaque product or order identifier. The collaborators issue
// numeric ids or string ids; ID keeps the wire form so it is echoed back
// unchanged when the id is sent out again.
type ID struct {
	value   string
	numeric bool
}

func NumericID(n int64) ID {
	return ID{value: strconv.FormatInt(n, 10), numeric: true}
}

func StringID(s string) ID {
	return ID{value: s}
}

// ParseID interprets user input (URL params, shell arguments). Input that is
// a JSON number becomes a numeric id, anything else a string id.
func ParseID(s string) ID {
	if s != "" && json.Valid([]byte(s)) {
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return ID{value: s, numeric: true}
		}
	}
	return StringID(s)
}

func (id ID) String() string { return id.value }

// Equal reports whether id and other name the same entity. The wire form is
// ignored: a path segment "10" matches a product served as {"id":"10"} or
// {"id":10}.
func (id ID) Equal(other ID) bool { return id.value == other.value }

func (id ID) IsZero() bool { return id.value == "" }

func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = StringID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID{value: n.String(), numeric: true}
	return nil
}
