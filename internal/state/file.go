package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Decode parses a JSON table state. Unknown fields are rejected so typos in
// hand-written fixtures surface early.
func Decode(data []byte) (TableState, error) {
	var st TableState
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&st); err != nil {
		return TableState{}, fmt.Errorf("decode table state: %w", err)
	}
	return st, nil
}

// LoadFile reads a JSON table state from path.
func LoadFile(path string) (TableState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TableState{}, fmt.Errorf("read table state %s: %w", path, err)
	}
	return Decode(data)
}
