package table

import (
	"reflect"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"#", "lines", "file"},
		{"0", "12/100", "app.log"},
		{"1", "100/100", "/var/log/nginx/access.log"},
	}
	got := Format(rows, []Alignment{AlignRight, AlignRight, AlignLeft})
	want := []string{
		"#    lines  file",
		"0   12/100  app.log",
		"1  100/100  /var/log/nginx/access.log",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatMeasuresDisplayWidth(t *testing.T) {
	rows := [][]string{
		{"\x1b[1mbold\x1b[0m", "x"},
		{"日本", "y"},
		{"ab", "z"},
	}
	got := Format(rows, nil)
	want := []string{
		"\x1b[1mbold\x1b[0m  x",
		"日本  y",
		"ab    z",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatRaggedRows(t *testing.T) {
	got := Format([][]string{{"a"}, {"bb", "c"}}, nil)
	want := []string{"a", "bb  c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil, got %q", got)
	}
}
