package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/justyntemme/sneaky-t/internal/library"
	"github.com/justyntemme/sneaky-t/pkg/models"
)

// execute runs the CLI with args against a home directory
func execute(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	// flag variables keep their values between runs
	outputFormat = "table"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--home", home}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLibraryCommands(t *testing.T) {
	home := t.TempDir()

	book := filepath.Join(t.TempDir(), "Moby.txt")
	if err := os.WriteFile(book, []byte("Call me Ishmael.\nSome years ago..."), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, home, "library", "import", book)
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, `imported "Moby"`) {
		t.Errorf("unexpected import output:\n%s", out)
	}

	out, err = execute(t, home, "library", "list", "-o", "json")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	var books []models.Book
	if err := json.Unmarshal([]byte(out), &books); err != nil {
		t.Fatalf("list output is not JSON: %v\n%s", err, out)
	}
	if len(books) != 2 || books[0].Title != "Moby" || books[1].Title != library.SampleTitle {
		t.Fatalf("expected Moby then the sample book, got %+v", books)
	}

	if out, err := execute(t, home, "library", "open", library.SampleTitle); err != nil {
		t.Fatalf("open failed: %v\n%s", err, out)
	}
	out, err = execute(t, home, "library", "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if strings.Index(out, library.SampleTitle) > strings.Index(out, "Moby") {
		t.Errorf("expected the opened book first:\n%s", out)
	}

	if out, err := execute(t, home, "library", "remove", "Moby"); err != nil {
		t.Fatalf("remove failed: %v\n%s", err, out)
	}
	if _, err := execute(t, home, "library", "open", "Moby"); err == nil {
		t.Error("expected opening a removed book to fail")
	}

	if _, err := os.Stat(filepath.Join(home, "sneaky-t.log")); err != nil {
		t.Errorf("expected a log file in home: %v", err)
	}
}

func TestLibraryImport_PartialFailure(t *testing.T) {
	home := t.TempDir()

	good := filepath.Join(t.TempDir(), "Good.txt")
	if err := os.WriteFile(good, []byte("fine"), 0o600); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(t.TempDir(), "Missing.txt")

	out, err := execute(t, home, "library", "import", good, missing)
	if err == nil {
		t.Fatal("expected an error for the missing file")
	}
	if !strings.Contains(out, "Imported 1/2 files.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "sneaky-t ") {
		t.Errorf("unexpected version output %q", out)
	}
}
