// Package json centralizes the JSON codec used across the project.
// It pins jsoniter in std-compatible mode so callers never import
// encoding/json or jsoniter directly
package json

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	Marshal       = json.Marshal
	MarshalIndent = json.MarshalIndent
	Unmarshal     = json.Unmarshal
	NewDecoder    = json.NewDecoder
	NewEncoder    = json.NewEncoder
	Valid         = json.Valid
)

// RawMessage delays decoding of a JSON fragment
type RawMessage = jsoniter.RawMessage

// Decoder reads JSON values from a stream
type Decoder = jsoniter.Decoder

// Encoder writes JSON values to a stream
type Encoder = jsoniter.Encoder
