package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is a single constraint as it appears on the wire:
//
//	{"field": "price", "is": "greaterThan", "value": 10}
//	{"field": "created", "is": "before", "value": {"date": "2020-01-01T00:00:00.000Z"}}
//	{"field": "colour", "is": "inSet", "values": ["red", "green"]}
//	{"not": {"field": "colour", "is": "null"}}
type Record struct {
	Field  string  `json:"field,omitempty" yaml:"field,omitempty"`
	Is     string  `json:"is,omitempty" yaml:"is,omitempty"`
	Value  any     `json:"value,omitempty" yaml:"value,omitempty"`
	Values []any   `json:"values,omitempty" yaml:"values,omitempty"`
	Not    *Record `json:"not,omitempty" yaml:"not,omitempty"`
}

// RuleDecl groups the constraints declared under one rule.
type RuleDecl struct {
	Rule        string   `json:"rule" yaml:"rule"`
	Constraints []Record `json:"constraints" yaml:"constraints"`
}

// Profile is the decoded profile document.
type Profile struct {
	SchemaVersion string     `json:"schemaVersion,omitempty" yaml:"schemaVersion,omitempty"`
	Fields        []Field    `json:"fields" yaml:"fields"`
	Rules         []RuleDecl `json:"rules" yaml:"rules"`
}

// FieldSet indexes the declared fields.
func (p Profile) FieldSet() (Fields, error) {
	return NewFields(p.Fields...)
}

// Format identifies the encoding of a profile document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a profile document. JSON numbers decode to json.Number.
func Decode(data []byte, format Format) (Profile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Profile{}, errors.New("profile: document is empty")
	}

	var out Profile
	switch format {
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		dec.DisallowUnknownFields()
		if err := dec.Decode(&out); err != nil {
			return Profile{}, fmt.Errorf("profile: decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &out); err != nil {
			return Profile{}, fmt.Errorf("profile: decode yaml: %w", err)
		}
	default:
		return Profile{}, fmt.Errorf("profile: unsupported format %q", format)
	}
	return out, nil
}

// Encode renders the profile in the requested format.
func Encode(p Profile, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("profile: encode json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("profile: encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("profile: unsupported format %q", format)
	}
}
