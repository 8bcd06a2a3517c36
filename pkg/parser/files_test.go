package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDiscoverLogFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"02 - alchemist.log", "01 - reaper.log", "notes.txt", "service.log"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := DiscoverLogFiles(dir, nil)
	if err != nil {
		t.Fatalf("DiscoverLogFiles() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "01 - reaper.log"),
		filepath.Join(dir, "02 - alchemist.log"),
		filepath.Join(dir, "service.log"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiscoverLogFiles() = %v, want %v (lexicographic, *.log only)", got, want)
	}
}

func TestDiscoverLogFiles_Excludes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"reaper.log", "reaper-debug.log", "service.log"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := DiscoverLogFiles(dir, []string{"*-debug.log"})
	if err != nil {
		t.Fatalf("DiscoverLogFiles() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "reaper.log"),
		filepath.Join(dir, "service.log"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiscoverLogFiles() = %v, want %v", got, want)
	}
}

func TestDiscoverLogFiles_BadExcludePattern(t *testing.T) {
	if _, err := DiscoverLogFiles(t.TempDir(), []string{"[unclosed"}); err == nil {
		t.Error("expected error for malformed exclude pattern")
	}
}

func TestDiscoverLogFiles_EmptyDir(t *testing.T) {
	got, err := DiscoverLogFiles(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("DiscoverLogFiles() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("DiscoverLogFiles() = %v, want empty", got)
	}
}
