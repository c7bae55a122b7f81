package analyzer

import (
	"fmt"
	"os"
	"reflect"
	"slices"
)

// ValueType is the declared type of a property.
type ValueType int

const (
	TypeAny ValueType = iota
	TypeString
	TypeInt
	TypeFloat
	TypeBool
	TypeColor
	TypeStringList
	TypeFile
)

func (t ValueType) String() string {
	switch t {
	case TypeAny:
		return "any"
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeColor:
		return "color"
	case TypeStringList:
		return "list"
	case TypeFile:
		return "file"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// File is the value of a file property. Only the path is held; analyzers open
// the file when they need its contents and close it themselves.
type File struct {
	Path string
}

// Open opens the file for reading.
func (f File) Open() (*os.File, error) {
	return os.Open(f.Path)
}

// Check validates that v can be stored in a property of type t. Int values
// are accepted for float properties and returned converted.
func (t ValueType) Check(v any) (any, error) {
	if v == nil {
		if t == TypeFile || t == TypeAny {
			return nil, nil
		}
		return nil, fmt.Errorf("nil is not a valid %s value", t)
	}
	ok := false
	switch t {
	case TypeAny:
		ok = true
	case TypeString:
		_, ok = v.(string)
	case TypeInt:
		_, ok = v.(int)
	case TypeFloat:
		switch n := v.(type) {
		case float64:
			ok = true
		case int:
			return float64(n), nil
		}
	case TypeBool:
		_, ok = v.(bool)
	case TypeColor:
		_, ok = v.(Color)
	case TypeStringList:
		var list []string
		if list, ok = v.([]string); ok {
			return slices.Clone(list), nil
		}
	case TypeFile:
		switch f := v.(type) {
		case File:
			ok = true
		case *os.File:
			// The caller keeps ownership of the handle.
			if f == nil {
				return nil, nil
			}
			return File{Path: f.Name()}, nil
		}
	}
	if !ok {
		return nil, fmt.Errorf("%T is not a valid %s value", v, t)
	}
	return v, nil
}

// Equal compares two property values by deep equality.
func Equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
