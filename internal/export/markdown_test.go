package export

import (
	"errors"
	"testing"

	"github.com/oakwood-commons/tabx/internal/tabular"
	"github.com/oakwood-commons/tabx/pkg/record"
)

func TestMarkdownAlignsColumns(t *testing.T) {
	out, err := Markdown(animalRecords(), []string{"name", "speed"}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "| name     | speed |\n" +
		"| -------- | ----- |\n" +
		"| cat      | 30    |\n" +
		"| mongoose | 32    |\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestMarkdownEscapesPipes(t *testing.T) {
	records := []record.Record{
		{"v": record.Text("a|b")},
	}
	out, err := Markdown(records, []string{"v"}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "| v    |\n| ---- |\n| a\\|b |\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestMarkdownMinimumDelimiterWidth(t *testing.T) {
	records := []record.Record{
		{"a": record.Text("x")},
	}
	out, err := Markdown(records, []string{"a"}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "| a   |\n| --- |\n| x   |\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestMarkdownFlattensLineBreaks(t *testing.T) {
	records := []record.Record{
		{"note": record.Text("two\nlines")},
	}
	out, err := Markdown(records, []string{"note"}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "| note      |\n| --------- |\n| two lines |\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestMarkdownPlaceholderForMissing(t *testing.T) {
	records := []record.Record{
		{"name": record.Text("cat")},
	}
	out, err := Markdown(records, []string{"name", "speed"}, Options{Placeholder: "?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "| name | speed |\n| ---- | ----- |\n| cat  | ?     |\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestMarkdownEmptyHeaders(t *testing.T) {
	_, err := Markdown(animalRecords(), nil, Options{})
	if !errors.Is(err, tabular.ErrNoHeaders) {
		t.Fatalf("expected ErrNoHeaders, got %v", err)
	}
}
