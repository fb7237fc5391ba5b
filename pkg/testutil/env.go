// ABOUTME: Test utilities for loading environment variables from .env files.
// ABOUTME: Used by integration tests to load remote API credentials.

package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/joho/godotenv"
)

var (
	envOnce   sync.Once
	envLoaded bool
)

// LoadEnv loads the nearest .env file, searching the current directory and
// up to 5 parent directories. Variables already set in the environment win.
// Safe to call multiple times - only loads once.
func LoadEnv() {
	envOnce.Do(func() {
		dir, err := os.Getwd()
		if err != nil {
			return
		}

		for range 6 {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				if godotenv.Load(envPath) == nil {
					envLoaded = true
					return
				}
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	})
}

// EnvLoaded returns true if .env file was successfully loaded.
func EnvLoaded() bool {
	return envLoaded
}

// Credentials holds what integration tests need to reach a live base.
type Credentials struct {
	Token   string
	BaseURL string // empty means the default API root
	BaseID  string
	Table   string
}

// RequireCredentials returns live credentials or skips the test.
// GRID_TOKEN, GRID_TEST_BASE and GRID_TEST_TABLE must be set; GRID_BASE_URL
// is optional.
func RequireCredentials(t testing.TB) Credentials {
	t.Helper()
	LoadEnv()

	c := Credentials{
		Token:   os.Getenv("GRID_TOKEN"),
		BaseURL: os.Getenv("GRID_BASE_URL"),
		BaseID:  os.Getenv("GRID_TEST_BASE"),
		Table:   os.Getenv("GRID_TEST_TABLE"),
	}
	if c.Token == "" || c.BaseID == "" || c.Table == "" {
		t.Skip("GRID_TOKEN, GRID_TEST_BASE, GRID_TEST_TABLE required for integration tests (set in .env or environment)")
	}
	return c
}
