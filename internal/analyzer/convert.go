package analyzer

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Converter encodes property values as literal text and parses them back.
type Converter interface {
	Encode(value any) (string, error)
	Decode(text string) (any, error)
}

// Converters maps value types to their converters.
type Converters struct {
	byType map[ValueType]Converter
}

// NewConverters returns a registry holding the built-in converters.
func NewConverters() *Converters {
	return &Converters{byType: map[ValueType]Converter{
		TypeAny:        literalConverter{},
		TypeString:     stringConverter{},
		TypeInt:        intConverter{},
		TypeFloat:      floatConverter{},
		TypeBool:       boolConverter{},
		TypeColor:      colorConverter{},
		TypeStringList: listConverter{},
		TypeFile:       fileConverter{},
	}}
}

// Register installs c for t, replacing any previous converter.
func (c *Converters) Register(t ValueType, conv Converter) {
	c.byType[t] = conv
}

// Lookup returns the converter for t.
func (c *Converters) Lookup(t ValueType) (Converter, error) {
	conv, ok := c.byType[t]
	if !ok {
		return nil, fmt.Errorf("no converter for %s values", t)
	}
	return conv, nil
}

// Encode converts value to text using the converter for t.
func (c *Converters) Encode(t ValueType, value any) (string, error) {
	conv, err := c.Lookup(t)
	if err != nil {
		return "", err
	}
	return conv.Encode(value)
}

// Decode parses text using the converter for t.
func (c *Converters) Decode(t ValueType, text string) (any, error) {
	conv, err := c.Lookup(t)
	if err != nil {
		return nil, err
	}
	return conv.Decode(text)
}

type stringConverter struct{}

func (stringConverter) Encode(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("encode string: got %T", v)
	}
	return s, nil
}

func (stringConverter) Decode(text string) (any, error) { return text, nil }

type intConverter struct{}

func (intConverter) Encode(v any) (string, error) {
	n, ok := v.(int)
	if !ok {
		return "", fmt.Errorf("encode int: got %T", v)
	}
	return strconv.Itoa(n), nil
}

func (intConverter) Decode(text string) (any, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("decode int: %w", err)
	}
	return n, nil
}

type floatConverter struct{}

func (floatConverter) Encode(v any) (string, error) {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64), nil
	case int:
		return strconv.Itoa(n), nil
	}
	return "", fmt.Errorf("encode float: got %T", v)
}

func (floatConverter) Decode(text string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return nil, fmt.Errorf("decode float: %w", err)
	}
	return f, nil
}

type boolConverter struct{}

func (boolConverter) Encode(v any) (string, error) {
	b, ok := v.(bool)
	if !ok {
		return "", fmt.Errorf("encode bool: got %T", v)
	}
	return strconv.FormatBool(b), nil
}

func (boolConverter) Decode(text string) (any, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("decode bool: %w", err)
	}
	return b, nil
}

type colorConverter struct{}

func (colorConverter) Encode(v any) (string, error) {
	c, ok := v.(Color)
	if !ok {
		return "", fmt.Errorf("encode color: got %T", v)
	}
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B), nil
}

func (colorConverter) Decode(text string) (any, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("decode color: want r,g,b, got %q", text)
	}
	var rgb [3]uint8
	for i, part := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("decode color: component %d: %w", i, err)
		}
		rgb[i] = uint8(n)
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

type listConverter struct{}

func (listConverter) Encode(v any) (string, error) {
	list, ok := v.([]string)
	if !ok {
		return "", fmt.Errorf("encode list: got %T", v)
	}
	return strings.Join(list, ","), nil
}

func (listConverter) Decode(text string) (any, error) {
	if text == "" {
		return []string{}, nil
	}
	return strings.Split(text, ","), nil
}

// fileConverter stores files by path. Decode checks that the file can be
// opened but keeps no handle.
type fileConverter struct{}

func (fileConverter) Encode(v any) (string, error) {
	switch f := v.(type) {
	case nil:
		return "", nil
	case File:
		return f.Path, nil
	case *os.File:
		if f == nil {
			return "", nil
		}
		return f.Name(), nil
	case string:
		return f, nil
	}
	return "", fmt.Errorf("encode file: got %T", v)
}

func (fileConverter) Decode(text string) (any, error) {
	path := strings.TrimSpace(text)
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("decode file: %w", err)
	}
	return File{Path: path}, nil
}

// literalConverter handles untyped values. Text is parsed with the TOML value
// grammar, so only literals are accepted; anything else stays a raw string.
type literalConverter struct{}

func (literalConverter) Encode(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	doc, err := toml.Marshal(map[string]any{"v": v})
	if err != nil {
		return "", fmt.Errorf("encode literal: %w", err)
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(string(doc)), "v =")), nil
}

func (literalConverter) Decode(text string) (any, error) {
	return ParseLiteral(text), nil
}

// ParseLiteral parses text as a single literal value: integer, float, bool,
// quoted string or array of literals. Text that is not a literal is returned
// unchanged as a string.
func ParseLiteral(text string) any {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text
	}
	var doc struct {
		V any `toml:"v"`
	}
	if err := toml.Unmarshal([]byte("v = "+trimmed), &doc); err != nil {
		return text
	}
	switch v := doc.V.(type) {
	case int64:
		return int(v)
	case map[string]any:
		return text
	default:
		return v
	}
}
