package export

import (
	"errors"
	"testing"

	"github.com/oakwood-commons/tabx/internal/tabular"
	"github.com/oakwood-commons/tabx/pkg/record"
)

func TestJSONProjectsHeaders(t *testing.T) {
	records := []record.Record{
		{"name": record.Text("cat"), "speed": record.Integer(30), "habitat": record.Text("forest")},
	}
	out, err := JSON(records, []string{"name", "speed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "[\n  {\n    \"name\": \"cat\",\n    \"speed\": 30\n  }\n]\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestJSONMissingValueBecomesNull(t *testing.T) {
	records := []record.Record{
		{"name": record.Text("cat"), "speed": record.Missing{}},
		{"name": record.Text("elk")},
	}
	out, err := JSON(records, []string{"name", "speed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "[\n  {\n    \"name\": \"cat\",\n    \"speed\": null\n  },\n  {\n    \"name\": \"elk\"\n  }\n]\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestYAMLKeepsHeaderOrder(t *testing.T) {
	out, err := YAML(animalRecords()[:1], []string{"speed", "name"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "- speed: 30\n  name: cat\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestYAMLNullForMissingValue(t *testing.T) {
	records := []record.Record{
		{"name": record.Text("cat"), "speed": record.Missing{}},
	}
	out, err := YAML(records, []string{"name", "speed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "- name: cat\n  speed: null\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestYAMLOmitsAbsentFields(t *testing.T) {
	records := []record.Record{
		{"name": record.Text("cat")},
	}
	out, err := YAML(records, []string{"name", "speed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "- name: cat\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestEncodeEmptyHeaders(t *testing.T) {
	if _, err := JSON(animalRecords(), nil); !errors.Is(err, tabular.ErrNoHeaders) {
		t.Fatalf("expected ErrNoHeaders from JSON, got %v", err)
	}
	if _, err := YAML(animalRecords(), nil); !errors.Is(err, tabular.ErrNoHeaders) {
		t.Fatalf("expected ErrNoHeaders from YAML, got %v", err)
	}
}
