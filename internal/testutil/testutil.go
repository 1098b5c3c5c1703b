// Package testutil provides shared test helpers for config files, catalog seeds and stored diaries.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/stickerdiary/internal/card"
	"github.com/at-ishikawa/stickerdiary/internal/diary"
	"github.com/at-ishikawa/stickerdiary/internal/storage"
)

const (
	StoreDirectory  = "store"
	OutputDirectory = "outputs"
	StorePrefix     = "stickerdiary_"
	ShareBaseURL    = "https://diary.example.com"
)

// SampleCards is the catalog written by WithSeedCards when it is given no cards.
var SampleCards = []card.Card{
	{ID: "card_tower", Title: "Tower of God", Author: "SIU", Platform: card.PlatformNaver, Genre: []string{"action", "fantasy"}, Status: card.StatusWatching, Rating: 5},
	{ID: "card_lore", Title: "Lore Olympus", Author: "Rachel Smythe", Platform: card.PlatformOther, Genre: []string{"romance"}, Status: card.StatusCompleted, Rating: 4},
}

// ConfigOption configures optional sections of the generated config file.
type ConfigOption func(*testConfig)

type testConfig struct {
	seedCards []card.Card
	sqlite    bool
}

// WithSeedCards writes a catalog seed file next to the config and points catalog.seed_file at it.
func WithSeedCards(cards ...card.Card) ConfigOption {
	return func(cfg *testConfig) {
		if len(cards) == 0 {
			cards = SampleCards
		}
		cfg.seedCards = cards
	}
}

// WithSQLite stores data in a sqlite3 database under tmpDir instead of the file store.
func WithSQLite() ConfigOption {
	return func(cfg *testConfig) {
		cfg.sqlite = true
	}
}

// SetupTestConfig creates a config file and the directories it refers to.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	var cfg testConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	for _, d := range []string{StoreDirectory, OutputDirectory} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	driver := "file"
	if cfg.sqlite {
		driver = "sql"
	}
	configContent := fmt.Sprintf(`storage:
  driver: %s
  directory: %s
  prefix: %s
outputs:
  directory: %s
share:
  base_url: %s
editor:
  owner_id: user_1
  author: tester
`,
		driver,
		filepath.Join(tmpDir, StoreDirectory),
		StorePrefix,
		filepath.Join(tmpDir, OutputDirectory),
		ShareBaseURL,
	)
	if cfg.sqlite {
		configContent += fmt.Sprintf(`database:
  driver: sqlite3
  path: %s
  connect_attempts: 1
`, filepath.Join(tmpDir, "stickerdiary.db"))
	}
	if cfg.seedCards != nil {
		seedPath := filepath.Join(tmpDir, "catalog.yml")
		require.NoError(t, card.WriteCatalogFile(seedPath, cfg.seedCards))
		configContent += fmt.Sprintf("catalog:\n  seed_file: %s\n", seedPath)
	}

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// OpenStore opens the file store a config from SetupTestConfig points at.
func OpenStore(t *testing.T, tmpDir string) storage.Store {
	t.Helper()

	store, err := storage.NewFileStore(filepath.Join(tmpDir, StoreDirectory))
	require.NoError(t, err)
	return storage.WithPrefix(store, StorePrefix)
}

// CreateDiary stores a diary in the file store under tmpDir and returns it.
func CreateDiary(t *testing.T, tmpDir string, content diary.Content) *diary.Diary {
	t.Helper()

	repo := diary.NewStoreRepository(OpenStore(t, tmpDir))
	d, err := repo.Create(context.Background(), "user_1", content)
	require.NoError(t, err)
	return d
}
