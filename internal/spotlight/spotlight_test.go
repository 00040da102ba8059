// SPDX-License-Identifier: MPL-2.0

package spotlight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple name", input: "Focus Safari", wantErr: false},
		{name: "with underscore", input: "Focus_Safari", wantErr: false},
		{name: "starts with digit", input: "1Password", wantErr: true},
		{name: "path traversal", input: "../../etc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestGenerate_WritesBundleStructure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := Generate(dir, Bundle{Name: "Focus Safari", Args: []string{"focus", "Safari"}}, "/usr/local/bin/cwm")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if filepath.Base(path) != "Focus Safari.app" {
		t.Errorf("Generate() path = %q, want basename 'Focus Safari.app'", path)
	}

	plistPath := filepath.Join(path, "Contents", "Info.plist")
	if _, err := os.ReadFile(plistPath); err != nil {
		t.Errorf("Info.plist not written: %v", err)
	}

	scriptPath := filepath.Join(path, "Contents", "MacOS", "Focus-Safari")
	raw, err := os.ReadFile(scriptPath)
	if err != nil {
		t.Fatalf("wrapper script not written: %v", err)
	}
	content := string(raw)
	if !strings.Contains(content, "/usr/local/bin/cwm") || !strings.Contains(content, "focus") || !strings.Contains(content, "Safari") {
		t.Errorf("wrapper script = %q, want it to invoke cwm with focus Safari", content)
	}
}

func TestGenerate_RejectsInvalidName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := Generate(dir, Bundle{Name: "../escape"}, "/usr/local/bin/cwm"); err == nil {
		t.Fatal("expected an error for an invalid bundle name")
	}
}

func TestListAndRemove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := Generate(dir, Bundle{Name: "Focus Safari", Args: []string{"focus", "Safari"}}, "/usr/local/bin/cwm"); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := Generate(dir, Bundle{Name: "Maximize Mail", Args: []string{"maximize", "Mail"}}, "/usr/local/bin/cwm"); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	names, err := List(dir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("List() returned %d names, want 2: %v", len(names), names)
	}

	if err := Remove(dir, "Focus Safari"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	names, err = List(dir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 1 || names[0] != "Maximize Mail" {
		t.Fatalf("List() after remove = %v, want [Maximize Mail]", names)
	}
}

func TestRemove_UnknownBundle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := Remove(dir, "does not exist"); err == nil {
		t.Fatal("expected an error removing a nonexistent bundle")
	}
}

