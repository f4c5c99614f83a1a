package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"worktime/internal/domain"
	"worktime/internal/repository/memory"
	"worktime/internal/repository/sqlite"
)

func TestCreateRepository(t *testing.T) {
	// Create a temporary directory for testing to avoid home directory issues
	tmpDir := filepath.Join(t.TempDir(), "nested")
	cfg := NewConfig()
	cfg.Database.Dir = tmpDir

	repo, err := CreateRepository(context.Background(), cfg)
	if err != nil {
		t.Fatalf("CreateRepository() error = %v", err)
	}
	defer repo.Close()

	if _, ok := repo.(*sqlite.Store); !ok {
		t.Errorf("CreateRepository() = %T, expected *sqlite.Store", repo)
	}
	if _, err := os.Stat(cfg.GetDatabasePath()); err != nil {
		t.Errorf("database file was not created: %v", err)
	}

	// Test that we can use the repository
	ctx := context.Background()
	project, err := domain.NewProject("Test Project")
	if err != nil {
		t.Fatalf("NewProject() error = %v", err)
	}
	if _, err := repo.Projects().Add(ctx, project); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	projects, err := repo.Projects().FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("FindAll() returned %d projects, expected 1", len(projects))
	}
}

func TestCreateRepository_MemoryEnv(t *testing.T) {
	cfg := NewConfig()
	cfg.Application.Env = EnvMemory

	repo, err := CreateRepository(context.Background(), cfg)
	if err != nil {
		t.Fatalf("CreateRepository() error = %v", err)
	}
	defer repo.Close()

	if _, ok := repo.(*memory.Store); !ok {
		t.Errorf("CreateRepository() = %T, expected *memory.Store", repo)
	}
}

func TestCreateTestRepository(t *testing.T) {
	repo, err := CreateTestRepository(context.Background())
	if err != nil {
		t.Fatalf("CreateTestRepository() error = %v", err)
	}
	defer repo.Close()

	if _, ok := repo.(*sqlite.Store); !ok {
		t.Errorf("CreateTestRepository() = %T, expected *sqlite.Store", repo)
	}
}
