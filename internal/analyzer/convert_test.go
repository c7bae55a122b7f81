package analyzer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConverters_EncodeDecode(t *testing.T) {
	c := NewConverters()
	tests := []struct {
		name  string
		typ   ValueType
		value any
		text  string
	}{
		{"string", TypeString, "hello world", "hello world"},
		{"int", TypeInt, -42, "-42"},
		{"float", TypeFloat, 0.25, "0.25"},
		{"bool", TypeBool, true, "true"},
		{"color", TypeColor, Color{R: 255, G: 128, B: 0}, "255,128,0"},
		{"list", TypeStringList, []string{"a", "b"}, "a,b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := c.Encode(tt.typ, tt.value)
			if err != nil {
				t.Fatalf("Encode returned error: %v", err)
			}
			if text != tt.text {
				t.Fatalf("Encode = %q, want %q", text, tt.text)
			}
			got, err := c.Decode(tt.typ, text)
			if err != nil {
				t.Fatalf("Decode returned error: %v", err)
			}
			if !Equal(got, tt.value) {
				t.Fatalf("Decode = %#v, want %#v", got, tt.value)
			}
		})
	}
}

func TestConverters_DecodeErrors(t *testing.T) {
	c := NewConverters()
	tests := []struct {
		typ  ValueType
		text string
	}{
		{TypeInt, "five"},
		{TypeFloat, "1.2.3"},
		{TypeBool, "maybe"},
		{TypeColor, "1,2"},
		{TypeColor, "1,2,300"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String()+"/"+tt.text, func(t *testing.T) {
			if _, err := c.Decode(tt.typ, tt.text); err == nil {
				t.Fatalf("Decode(%q) returned nil error", tt.text)
			}
		})
	}
}

func TestConverters_File(t *testing.T) {
	c := NewConverters()
	path := filepath.Join(t.TempDir(), "mask.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	v, err := c.Decode(TypeFile, path)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	f, ok := v.(File)
	if !ok || f.Path != path {
		t.Fatalf("Decode = %#v, want File{%q}", v, path)
	}
	text, err := c.Encode(TypeFile, f)
	if err != nil || text != path {
		t.Fatalf("Encode = %q, %v; want %q", text, err, path)
	}
	handle, err := f.Open()
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer handle.Close()
	if text, err := c.Encode(TypeFile, handle); err != nil || text != path {
		t.Fatalf("Encode(*os.File) = %q, %v; want %q", text, err, path)
	}

	if v, err := c.Decode(TypeFile, ""); err != nil || v != nil {
		t.Fatalf("Decode(\"\") = %v, %v; want nil, nil", v, err)
	}
	if _, err := c.Decode(TypeFile, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("Decode of missing file returned nil error")
	}
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		text string
		want any
	}{
		{"42", 42},
		{"1.5", 1.5},
		{"true", true},
		{`"quoted"`, "quoted"},
		{"'single'", "single"},
		{"bare words", "bare words"},
		{"{a = 1}", "{a = 1}"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ParseLiteral(tt.text); !Equal(got, tt.want) {
				t.Fatalf("ParseLiteral(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}

	list, ok := ParseLiteral(`["a", "b"]`).([]any)
	if !ok || len(list) != 2 || list[0] != "a" {
		t.Fatalf("ParseLiteral(list) = %#v", list)
	}
}

func TestLiteralConverter_RoundTrip(t *testing.T) {
	c := NewConverters()
	for _, v := range []any{7, 2.5, false, "with space", []any{"a", "b"}} {
		text, err := c.Encode(TypeAny, v)
		if err != nil {
			t.Fatalf("Encode(%#v) returned error: %v", v, err)
		}
		got, _ := c.Decode(TypeAny, text)
		if !Equal(got, v) {
			t.Fatalf("round trip of %#v via %q = %#v", v, text, got)
		}
	}
}
