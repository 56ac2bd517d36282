package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// OptionalID is a JSON field that tells apart "absent", "explicitly cleared"
// and "set to a value". Both null and "" clear; numbers and numeric strings set.
type OptionalID struct {
	Set   bool // the field was present in the body
	Valid bool // the field carries an id, false means clear
	Value uint
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Valid = false
	o.Value = 0

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil
		}
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", v)
		}
		o.Value = uint(n)
	case float64:
		if v < 0 || v != float64(uint64(v)) {
			return fmt.Errorf("invalid id %v", v)
		}
		o.Value = uint(v)
	default:
		return fmt.Errorf("invalid id %s", string(data))
	}
	o.Valid = true
	return nil
}

// Ptr returns nil for a cleared field, else a pointer to the id
func (o OptionalID) Ptr() *uint {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
