// Package options turns a schematic's JSON option schema into resolved
// option values: defaults first, then x-prompt questions for what is still
// missing, then schema validation.
package options

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/dosanma1/forge-native/internal/errors"
)

// Property types understood by the CLI.
const (
	TypeString  = "string"
	TypeBoolean = "boolean"
)

// Property is one option of a schematic.
type Property struct {
	Name        string
	Type        string
	Description string
	Default     any
	Enum        []string
	Alias       string
	Prompt      string
	Required    bool

	// Positional is the argv index the value may come from, or -1.
	Positional int
}

// Schema is a parsed option schema.
type Schema struct {
	Title       string
	Description string
	Properties  []Property

	raw []byte
}

// Prompter asks the user for values. ui.Prompter implements it.
type Prompter interface {
	Text(message, placeholder string) (string, error)
	Confirm(message string, defaultYes bool) (bool, error)
	Select(message string, choices []string) (string, error)
}

type rawSchema struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Properties  map[string]rawProperty `json:"properties"`
	Required    []string               `json:"required"`
}

type rawProperty struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Default     any             `json:"default"`
	Enum        []string        `json:"enum"`
	Alias       string          `json:"alias"`
	Prompt      json.RawMessage `json:"x-prompt"`
	Source      *struct {
		Source string `json:"$source"`
		Index  int    `json:"index"`
	} `json:"$default"`
}

// Parse reads a JSON option schema. Positional properties come first, the
// rest are sorted by name.
func Parse(raw []byte) (*Schema, error) {
	var rs rawSchema
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, errors.Wrap(err, "failed to parse option schema")
	}

	required := make(map[string]bool, len(rs.Required))
	for _, name := range rs.Required {
		required[name] = true
	}

	s := &Schema{Title: rs.Title, Description: rs.Description, raw: raw}
	for name, rp := range rs.Properties {
		p := Property{
			Name:        name,
			Type:        rp.Type,
			Description: rp.Description,
			Default:     rp.Default,
			Enum:        rp.Enum,
			Alias:       rp.Alias,
			Required:    required[name],
			Positional:  -1,
		}
		if p.Type == "" {
			p.Type = TypeString
		}
		if p.Type != TypeString && p.Type != TypeBoolean {
			return nil, errors.Newf("option %s: unsupported type %q", name, p.Type)
		}
		if rp.Source != nil && rp.Source.Source == "argv" {
			p.Positional = rp.Source.Index
		}
		prompt, err := promptMessage(rp.Prompt)
		if err != nil {
			return nil, errors.Wrapf(err, "option %s", name)
		}
		p.Prompt = prompt
		s.Properties = append(s.Properties, p)
	}

	sort.Slice(s.Properties, func(i, j int) bool {
		a, b := s.Properties[i], s.Properties[j]
		if (a.Positional >= 0) != (b.Positional >= 0) {
			return a.Positional >= 0
		}
		if a.Positional != b.Positional {
			return a.Positional < b.Positional
		}
		return a.Name < b.Name
	})
	return s, nil
}

// promptMessage accepts both "x-prompt": "text" and
// "x-prompt": {"message": "text"}.
func promptMessage(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", errors.Wrap(err, "x-prompt must be a string or an object with a message")
	}
	return obj.Message, nil
}

// Property returns the named property.
func (s *Schema) Property(name string) (Property, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Resolve fills in values. Defaults apply first. With a prompter, every
// property that is still unset and carries an x-prompt is asked for. The
// result is validated against the schema; failures wrap
// errors.ErrInvalidOption. values is not modified.
func (s *Schema) Resolve(values map[string]any, prompter Prompter) (map[string]any, error) {
	out := make(map[string]any, len(s.Properties))
	for k, v := range values {
		out[k] = v
	}

	for _, p := range s.Properties {
		if _, ok := out[p.Name]; ok {
			continue
		}
		if p.Default != nil {
			out[p.Name] = p.Default
			continue
		}
		if prompter == nil || p.Prompt == "" {
			continue
		}
		v, err := ask(prompter, p)
		if err != nil {
			return nil, errors.Wrapf(err, "prompt for %s", p.Name)
		}
		if v != nil {
			out[p.Name] = v
		}
	}

	if err := s.Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

func ask(prompter Prompter, p Property) (any, error) {
	switch {
	case p.Type == TypeBoolean:
		return prompter.Confirm(p.Prompt, false)
	case len(p.Enum) > 0:
		return prompter.Select(p.Prompt, p.Enum)
	default:
		v, err := prompter.Text(p.Prompt, p.Description)
		if err != nil || v == "" {
			return nil, err
		}
		return v, nil
	}
}

// Validate checks values against the schema.
func (s *Schema) Validate(values map[string]any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(s.raw),
		gojsonschema.NewGoLoader(values),
	)
	if err != nil {
		return errors.Wrap(err, "validation error")
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return errors.InvalidOptionf("%s", strings.Join(msgs, "; "))
}

// String returns the named string value, or "".
func String(values map[string]any, name string) string {
	s, _ := values[name].(string)
	return s
}

// Bool returns the named boolean value, or false.
func Bool(values map[string]any, name string) bool {
	b, _ := values[name].(bool)
	return b
}
