package fileutils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"optimized-1234.jpg":      "optimized-1234.jpg",
		"images/my photo (1).jpg": "my_photo__1_.jpg",
		"../../etc/passwd":        "passwd",
		`C:\Users\me\çiçek.png`:   "_i_ek.png",
		"clip_final.mp4":          "clip_final.mp4",
	}
	for in, want := range tests {
		if got := SanitizeName(in); got != want {
			t.Errorf("SanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStripControl(t *testing.T) {
	got := StripControl("bad\r\nrequest\tbody")
	if got != "bad  request body" {
		t.Fatalf("StripControl = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Fatalf("Truncate short = %q", got)
	}
	if got := Truncate("hello", 3); got != "hel" {
		t.Fatalf("Truncate = %q", got)
	}
	// "ç" is two bytes; cutting in the middle drops it.
	if got := Truncate("aç", 2); got != "a" {
		t.Fatalf("Truncate rune = %q", got)
	}
}

func TestRemoveFilesIgnoresMissing(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	if err := os.WriteFile(a, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := RemoveFiles(a, "", filepath.Join(dir, "missing")); err != nil {
		t.Fatalf("RemoveFiles: %v", err)
	}
	if _, err := os.Stat(a); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "nested", "dst.bin")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Fatalf("copied %q", data)
	}
	if _, err := os.Stat(dst + ".part"); !os.IsNotExist(err) {
		t.Fatal("temporary file left behind")
	}
}
