package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/banshee-data/drillsense/internal/fsutil"
	"github.com/banshee-data/drillsense/internal/monitoring"
)

// Provider supplies the current snapshot. Implementations must return a
// value the caller may modify freely.
type Provider interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// StaticProvider always returns a copy of the same snapshot.
type StaticProvider struct {
	snap *Snapshot
}

// NewStaticProvider copies s; later changes to s are not observed.
func NewStaticProvider(s *Snapshot) *StaticProvider {
	return &StaticProvider{snap: s.Clone()}
}

// DemoProvider serves the built-in demonstration snapshot.
func DemoProvider() *StaticProvider {
	return &StaticProvider{snap: Demo()}
}

func (p *StaticProvider) Snapshot(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.snap.Clone(), nil
}

const maxSnapshotFileSize = 1 * 1024 * 1024 // 1MB

// FileProvider reads a JSON snapshot from disk on every call.
type FileProvider struct {
	FS   fsutil.FileSystem
	Path string
}

// NewFileProvider reads path through the OS filesystem.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{FS: fsutil.OSFileSystem{}, Path: path}
}

func (p *FileProvider) Snapshot(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cleanPath := filepath.Clean(p.Path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("snapshot file must have .json extension, got %q", ext)
	}
	info, err := p.FS.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat snapshot file: %w", err)
	}
	if info.Size() > maxSnapshotFileSize {
		return nil, fmt.Errorf("snapshot file too large: %d bytes (max %d)", info.Size(), maxSnapshotFileSize)
	}
	data, err := p.FS.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot JSON: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.AssignEventIDs()
	monitoring.Logf("telemetry: loaded snapshot %s (%d planned, %d actual stations)",
		cleanPath, len(s.Path.Planned), len(s.Path.Actual))
	return &s, nil
}
