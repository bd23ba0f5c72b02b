package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/spf13/pflag"
)

// captureOutput runs fn while capturing stdout into a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	// Save original stdout
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	// Run function
	fn()
	// Restore stdout and close writer
	_ = w.Close()
	os.Stdout = orig
	// Read captured output
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("copy: %v", err)
	}
	_ = r.Close()
	return buf.String()
}

func resetRootCmdState() {
	rootCmd.SetArgs(nil)
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})

	// Set(DefValue) rewrites a string-slice flag to a literal "[]" entry and
	// the on-missing flag rejects its empty default, so the bound variables
	// are reassigned afterwards.
	columnsFlag = nil
	outputFormat = ""
	onMissing = ""
	placeholder = ""
	configFile = ""
	debug = false
	limitRecords = 0
	offsetRecords = 0
	tailRecords = 0
}

func runCLI(t *testing.T, args []string) string {
	t.Helper()
	resetRootCmdState()
	os.Args = args
	return captureOutput(t, func() {
		if err := Execute(); err != nil {
			t.Fatalf("Execute error: %v", err)
		}
	})
}

// runCLIWithStdin feeds input through a pipe standing in for stdin.
func runCLIWithStdin(t *testing.T, input string, args []string) string {
	t.Helper()
	resetRootCmdState()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if _, err := w.WriteString(input); err != nil {
		t.Fatalf("write stdin: %v", err)
	}
	_ = w.Close()
	origStdin := os.Stdin
	origPiped := stdinIsPiped
	os.Stdin = r
	stdinIsPiped = func() bool { return true }
	t.Cleanup(func() {
		os.Stdin = origStdin
		stdinIsPiped = origPiped
		_ = r.Close()
	})
	os.Args = args
	return captureOutput(t, func() {
		if err := Execute(); err != nil {
			t.Fatalf("Execute error: %v", err)
		}
	})
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

const animalsJSON = `[{"name":"cat","speed":30},{"name":"mongoose","speed":32}]`

func TestCLI_TableFromJSONFile(t *testing.T) {
	path := writeFixture(t, "animals.json", animalsJSON)
	out := runCLI(t, []string{"tabx", path})
	expected := "name     | speed\n---------+---\ncat      | 30\nmongoose | 32\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestCLI_ColumnsProjectAndOrder(t *testing.T) {
	path := writeFixture(t, "animals.json", animalsJSON)
	out := runCLI(t, []string{"tabx", "-c", "speed,name", path})
	expected := "speed | name    \n---+---------\n30 | cat     \n32 | mongoose\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestCLI_MarkdownFromNDJSONStdin(t *testing.T) {
	input := "{\"name\":\"cat\",\"speed\":30}\n{\"name\":\"mongoose\",\"speed\":32}\n"
	out := runCLIWithStdin(t, input, []string{"tabx", "--output", "markdown"})
	expected := "| name     | speed |\n" +
		"| -------- | ----- |\n" +
		"| cat      | 30    |\n" +
		"| mongoose | 32    |\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestCLI_CSVFromMarkdownStdin(t *testing.T) {
	input := "| name | speed |\n| --- | --- |\n| cat | 30 |\n| mongoose | 32 |\n"
	out := runCLIWithStdin(t, input, []string{"tabx", "-o", "csv"})
	expected := "name,speed\ncat,30\nmongoose,32\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestCLI_PlaceholderFillsMissingFields(t *testing.T) {
	path := writeFixture(t, "animals.json", `[{"name":"cat","speed":30},{"name":"elk"}]`)
	out := runCLI(t, []string{"tabx", "--placeholder", "n/a", "-c", "name,speed", path})
	expected := "name | speed\n----+----\ncat | 30 \nelk | n/a\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestCLI_ConfigFileDefaults(t *testing.T) {
	path := writeFixture(t, "animals.json", animalsJSON)
	cfgPath := writeFixture(t, "config.yaml", "output: csv\ncolumns: [name]\n")
	out := runCLI(t, []string{"tabx", "--config", cfgPath, path})
	expected := "name\ncat\nmongoose\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestCLI_EnvSelectsOutput(t *testing.T) {
	t.Setenv(envOutput, "csv")
	path := writeFixture(t, "animals.json", animalsJSON)
	out := runCLI(t, []string{"tabx", path})
	expected := "name,speed\ncat,30\nmongoose,32\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestCLI_FlagOverridesEnvOutput(t *testing.T) {
	t.Setenv(envOutput, "csv")
	path := writeFixture(t, "animals.json", animalsJSON)
	out := runCLI(t, []string{"tabx", "-o", "json", path})
	expected := "[\n  {\n    \"name\": \"cat\",\n    \"speed\": 30\n  },\n  {\n    \"name\": \"mongoose\",\n    \"speed\": 32\n  }\n]\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestCLI_LimitAndOffset(t *testing.T) {
	path := writeFixture(t, "numbers.json", `[{"n":1},{"n":2},{"n":3},{"n":4},{"n":5}]`)
	out := runCLI(t, []string{"tabx", "--offset", "1", "--limit", "2", path})
	expected := "n\n-\n2\n3\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestCLI_TailIgnoresOffset(t *testing.T) {
	path := writeFixture(t, "numbers.json", `[{"n":1},{"n":2},{"n":3},{"n":4},{"n":5}]`)
	out := runCLI(t, []string{"tabx", "--tail", "2", "--offset", "1", path})
	expected := "n\n-\n4\n5\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestCLI_TableLinesShareOneWidth(t *testing.T) {
	path := writeFixture(t, "animals.json",
		`[{"name":"mongoose","habitat":"mediterranean scrub"},{"name":"cat","habitat":"domestic interior"}]`)
	out := runCLI(t, []string{"tabx", path})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), out)
	}
	want := runewidth.StringWidth(lines[0])
	for i, line := range lines {
		if w := runewidth.StringWidth(line); w != want {
			t.Fatalf("line %d width %d, want %d: %q", i, w, want, line)
		}
	}
}

func TestCLI_NoInputShowsHelp(t *testing.T) {
	origPiped := stdinIsPiped
	stdinIsPiped = func() bool { return false }
	t.Cleanup(func() { stdinIsPiped = origPiped })

	out := runCLI(t, []string{"tabx"})
	if !strings.Contains(out, "Usage:") || !strings.Contains(out, "tabx [file]") {
		t.Fatalf("expected help output, got %q", out)
	}
	if !strings.Contains(out, "Examples:") {
		t.Fatalf("expected Examples section in help, got %q", out)
	}
	if !strings.Contains(out, "Flags:") {
		t.Fatalf("expected Flags section in help, got %q", out)
	}
}

func TestCLI_VersionFlag(t *testing.T) {
	out := runCLI(t, []string{"tabx", "--version"})
	if !strings.HasPrefix(out, "tabx v0.0.0-nightly (commit unknown") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestCLI_VersionSubcommand(t *testing.T) {
	out := runCLI(t, []string{"tabx", "version"})
	if !strings.Contains(out, "tabx v0.0.0-nightly") || !strings.Contains(out, "go go1.") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestLoadInputDataFile(t *testing.T) {
	path := writeFixture(t, "animals.json", animalsJSON)
	set, fromStdin, err := loadInputData([]string{path}, logr.Discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fromStdin {
		t.Fatal("expected fromStdin to be false for a file argument")
	}
	if len(set.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(set.Records))
	}
}

func TestLoadInputDataMissingFile(t *testing.T) {
	_, _, err := loadInputData([]string{filepath.Join(t.TempDir(), "absent.json")}, logr.Discard())
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !strings.Contains(err.Error(), "failed to load file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadInputDataNoInputSignalsHelp(t *testing.T) {
	origPiped := stdinIsPiped
	stdinIsPiped = func() bool { return false }
	t.Cleanup(func() { stdinIsPiped = origPiped })

	_, _, err := loadInputData(nil, logr.Discard())
	if !errors.Is(err, errShowHelp) {
		t.Fatalf("expected errShowHelp, got %v", err)
	}
}

func TestMissingModeFlagRejectsUnknownValues(t *testing.T) {
	var m missingMode
	if err := m.Set("placeholder"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Set("fail"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Set("shrug"); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}
