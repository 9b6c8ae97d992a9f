package lang

import "encoding/json"

// MarshalJSON implements json.Marshaler using the [ToNative] representation.
func (f *Frame) MarshalJSON() ([]byte, error) { return json.Marshal(ToNative(f)) }

// MarshalJSON implements json.Marshaler using the [ToNative] representation.
func (b *Block) MarshalJSON() ([]byte, error) { return json.Marshal(ToNative(b)) }

// MarshalJSON implements json.Marshaler using the [ToNative] representation.
func (v *Variable) MarshalJSON() ([]byte, error) { return json.Marshal(ToNative(v)) }

// MarshalJSON implements json.Marshaler using the [ToNative] representation.
func (s *Slice) MarshalJSON() ([]byte, error) { return json.Marshal(ToNative(s)) }

// MarshalYAML implements the go-yaml InterfaceMarshaler.
func (f *Frame) MarshalYAML() (any, error) { return ToNative(f), nil }

// MarshalYAML implements the go-yaml InterfaceMarshaler.
func (b *Block) MarshalYAML() (any, error) { return ToNative(b), nil }

// MarshalYAML implements the go-yaml InterfaceMarshaler.
func (v *Variable) MarshalYAML() (any, error) { return ToNative(v), nil }

// MarshalYAML implements the go-yaml InterfaceMarshaler.
func (s *Slice) MarshalYAML() (any, error) { return ToNative(s), nil }
