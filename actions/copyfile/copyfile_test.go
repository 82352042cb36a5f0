package copyfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"morph/internal/locking"
	"morph/internal/transform"
)

func TestCopy_PreservesContent(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "lib.jar")
	outDir := filepath.Join(root, "out")
	if err := os.WriteFile(input, []byte("archive-bytes"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	factory, err := transform.ActionFor("copy")
	if err != nil {
		t.Fatalf("ActionFor: %v", err)
	}
	tr, err := transform.New(transform.Config{
		Name:    "copy",
		Action:  "copy",
		Factory: factory,
		Unit:    locking.NewUnit("root").SharedAccess(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tr.IsolateParameters(); err != nil {
		t.Fatalf("IsolateParameters: %v", err)
	}

	outputs, err := tr.Execute(context.Background(), input, outDir, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got, err := os.ReadFile(outputs[0])
	if err != nil || string(got) != "archive-bytes" {
		t.Fatalf("copied content = %q, %v", got, err)
	}
}
