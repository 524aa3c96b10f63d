package server

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/fantasy-league-service/internal/archivefs"
	"github.com/preston-bernstein/fantasy-league-service/internal/config"
	"github.com/preston-bernstein/fantasy-league-service/internal/store"
	"github.com/preston-bernstein/fantasy-league-service/internal/store/sqlite"
)

func TestOpenArchiveDefaultsToMemory(t *testing.T) {
	archive, closeFn, err := openArchive(context.Background(), config.ArchiveConfig{}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := archive.(*store.MemoryArchive); !ok {
		t.Fatalf("expected memory archive, got %T", archive)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOpenArchiveSQLiteCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "archive.db")
	archive, closeFn, err := openArchive(context.Background(), config.ArchiveConfig{Backend: config.ArchiveSQLite, SQLitePath: path}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = closeFn() }()
	if _, ok := archive.(*sqlite.Store); !ok {
		t.Fatalf("expected sqlite archive, got %T", archive)
	}
	ids, err := archive.SeasonIDs(context.Background())
	if err != nil || len(ids) != 0 {
		t.Fatalf("expected empty archive, got %v (%v)", ids, err)
	}
}

func TestOpenArchiveFS(t *testing.T) {
	archive, _, err := openArchive(context.Background(), config.ArchiveConfig{Backend: config.ArchiveFS, Dir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := archive.(*archivefs.Store); !ok {
		t.Fatalf("expected fs archive, got %T", archive)
	}
}

func TestOpenArchiveFSRequiresDirectory(t *testing.T) {
	if _, _, err := openArchive(context.Background(), config.ArchiveConfig{Backend: config.ArchiveFS}, nil); err == nil {
		t.Fatalf("expected error for empty archive directory")
	}
}
