// Package dbtype provides column types that persist Go values as JSON text.
package dbtype

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// List is an ordered list stored as a JSON array.
// A nil list is written as [] and an empty or NULL column is read back as an empty, non-nil list.
type List[T any] []T

// StringList is the most common List, used for knowledge points and error lists.
type StringList = List[string]

// Value implements driver.Valuer.
func (l List[T]) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]T(l))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(List) > %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *List[T]) Scan(src any) error {
	list := []T{}
	if err := scanJSON(src, &list); err != nil {
		return fmt.Errorf("scan List > %w", err)
	}
	if list == nil {
		list = []T{}
	}
	*l = list
	return nil
}

// MarshalJSON keeps an unset list rendered as [] in API payloads.
func (l List[T]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(l))
}

// UnmarshalJSON reads a JSON array, or a single value as a one-element list.
// AI models sometimes answer with a bare string where a list was asked for.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = List[T]{}
		return nil
	}
	if trimmed[0] == '[' {
		list := []T{}
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		if list == nil {
			list = []T{}
		}
		*l = list
		return nil
	}
	var single T
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return err
	}
	*l = List[T]{single}
	return nil
}

// Counts maps a label to a number of occurrences and is stored as a JSON object.
type Counts map[string]int

// Value implements driver.Valuer.
func (c Counts) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]int(c))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(Counts) > %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (c *Counts) Scan(src any) error {
	counts := map[string]int{}
	if err := scanJSON(src, &counts); err != nil {
		return fmt.Errorf("scan Counts > %w", err)
	}
	if counts == nil {
		counts = map[string]int{}
	}
	*c = counts
	return nil
}

// MarshalJSON keeps an unset map rendered as {} in API payloads.
func (c Counts) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]int(c))
}

func scanJSON(src any, dest any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported source type %T", src)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}
