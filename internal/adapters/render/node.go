package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Node is one value in the tree handed to the encoders: *Object, Array,
// or a scalar (string, json.Number, bool, nil). The tree is built from
// JSON bytes with a token-level parse so object key order survives,
// unlike a round trip through map[string]any.
type Node any

type Field struct {
	Key   string
	Value Node
}

// Object is a mapping with key order preserved as encountered.
type Object struct {
	Fields []Field
}

type Array []Node

// Parse builds a Node tree from a single JSON document.
func Parse(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON value")
	}

	return node, nil
}

func parseValue(dec *json.Decoder) (Node, error) {
	token, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}

	switch t := token.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	default:
		// string, json.Number, bool or nil.
		return t, nil
	}
}

func parseObject(dec *json.Decoder) (*Object, error) {
	object := &Object{}

	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read object key: %w", err)
		}
		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", token)
		}

		value, err := parseValue(dec)
		if err != nil {
			return nil, err
		}

		object.Fields = append(object.Fields, Field{Key: key, Value: value})
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read object end: %w", err)
	}

	return object, nil
}

func parseArray(dec *json.Decoder) (Array, error) {
	array := Array{}

	for dec.More() {
		value, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		array = append(array, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read array end: %w", err)
	}

	return array, nil
}

func isScalar(node Node) bool {
	switch node.(type) {
	case *Object, Array:
		return false
	default:
		return true
	}
}

func scalarLiteral(node Node) string {
	switch v := node.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
