package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_Exists(t *testing.T) {
	osfs := OSFileSystem{}

	if !osfs.Exists("filesystem.go") {
		t.Error("expected filesystem.go to exist")
	}
	if osfs.Exists("nonexistent_file_xyz.go") {
		t.Error("expected nonexistent file to not exist")
	}
}

func TestOSFileSystem_WriteAndRead(t *testing.T) {
	osfs := OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "out", "charts")
	if err := osfs.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	path := filepath.Join(dir, "line.html")
	if err := osfs.WriteFile(path, []byte("<html>"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := osfs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "<html>" {
		t.Errorf("got %q", data)
	}
	info, err := osfs.Stat(path)
	if err != nil || info.Size() != 6 {
		t.Errorf("Stat = %v, %v", info, err)
	}
}

func TestMemoryFileSystem_WriteAndRead(t *testing.T) {
	mfs := NewMemoryFileSystem()

	testData := []byte("hello, world")
	if err := mfs.WriteFile("test.txt", testData, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := mfs.ReadFile("test.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != string(testData) {
		t.Errorf("expected %q, got %q", testData, data)
	}

	// returned slice is a copy
	data[0] = 'X'
	again, _ := mfs.ReadFile("test.txt")
	if again[0] != 'h' {
		t.Error("ReadFile returned shared storage")
	}
}

func TestMemoryFileSystem_RequiresParentDir(t *testing.T) {
	mfs := NewMemoryFileSystem()

	err := mfs.WriteFile("out/index.html", []byte("x"), 0644)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("WriteFile without parent = %v, want ErrNotExist", err)
	}
	if _, err := mfs.Create("out/plots/a.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Create without parent = %v, want ErrNotExist", err)
	}

	if err := mfs.MkdirAll("out/plots", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if !mfs.Exists("out") || !mfs.Exists("out/plots") {
		t.Error("MkdirAll did not record parents")
	}
	if err := mfs.WriteFile("out/index.html", []byte("x"), 0644); err != nil {
		t.Errorf("WriteFile after MkdirAll failed: %v", err)
	}
}

func TestMemoryFileSystem_CreateAndClose(t *testing.T) {
	mfs := NewMemoryFileSystem()

	w, err := mfs.Create("created.txt")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("abc")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := w.Write([]byte("def")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	data, err := mfs.ReadFile("created.txt")
	if err != nil || string(data) != "abcdef" {
		t.Errorf("ReadFile = %q, %v", data, err)
	}
}

func TestMemoryFileSystem_Stat(t *testing.T) {
	mfs := NewMemoryFileSystem()
	_ = mfs.MkdirAll("dir", 0755)
	_ = mfs.WriteFile("dir/file.json", []byte("{}"), 0600)

	info, err := mfs.Stat("dir/file.json")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Name() != "file.json" || info.Size() != 2 || info.IsDir() || info.Mode() != 0600 {
		t.Errorf("unexpected file info %+v", info)
	}

	info, err = mfs.Stat("dir")
	if err != nil || !info.IsDir() {
		t.Errorf("Stat(dir) = %+v, %v", info, err)
	}

	if _, err := mfs.Stat("missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(missing) = %v", err)
	}
}

func TestMemoryFileSystem_MkdirOverFile(t *testing.T) {
	mfs := NewMemoryFileSystem()
	_ = mfs.WriteFile("taken", nil, 0644)
	if err := mfs.MkdirAll("taken", 0755); !errors.Is(err, fs.ErrExist) {
		t.Errorf("MkdirAll over file = %v, want ErrExist", err)
	}
}

func TestMemoryFileSystem_Files(t *testing.T) {
	mfs := NewMemoryFileSystem()
	_ = mfs.MkdirAll("b", 0755)
	_ = mfs.WriteFile("b/z.txt", nil, 0644)
	_ = mfs.WriteFile("a.txt", nil, 0644)
	_ = mfs.WriteFile("b/c.txt", nil, 0644)

	got := mfs.Files()
	want := []string{"a.txt", "b/c.txt", "b/z.txt"}
	if len(got) != len(want) {
		t.Fatalf("Files() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Files()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

var _ FileSystem = OSFileSystem{}
var _ FileSystem = (*MemoryFileSystem)(nil)
