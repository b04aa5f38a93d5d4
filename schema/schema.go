package schema

import "encoding/json"

// Schema is the contract for typed agent inputs and outputs.
type Schema interface {
	String() string
}

// Stringify serializes a schema for inclusion in a chat message.
func Stringify(s Schema) string {
	if v, ok := s.(String); ok {
		return string(v)
	}
	bs, _ := json.Marshal(s)
	return string(bs)
}

// ToBytes serializes a schema to raw bytes.
func ToBytes(s Schema) []byte {
	if v, ok := s.(String); ok {
		return []byte(v)
	}
	bs, _ := json.Marshal(s)
	return bs
}
