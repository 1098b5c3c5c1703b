package card

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/stickerdiary/internal/config"
)

// CatalogFile is the YAML layout used to seed, import and export the catalog.
type CatalogFile struct {
	Cards []Card `yaml:"cards" validate:"dive"`
}

// LoadCatalogFile reads and validates a catalog YAML file.
func LoadCatalogFile(path string) (*CatalogFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var catalog CatalogFile
	if err := yaml.NewDecoder(file).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("yaml.NewDecoder().Decode(%s) > %w", path, err)
	}

	validate, trans, err := config.NewValidator("yaml")
	if err != nil {
		return nil, fmt.Errorf("config.NewValidator() > %w", err)
	}
	if err := validate.Struct(catalog); err != nil {
		return nil, fmt.Errorf("invalid catalog file %s: %w", path, config.TranslateError(err, trans))
	}
	return &catalog, nil
}

func WriteCatalogFile(path string, cards []Card) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(CatalogFile{Cards: cards}); err != nil {
		return fmt.Errorf("yaml.NewEncoder().Encode(%s) > %w", path, err)
	}
	return encoder.Close()
}

// Import creates the given cards. Cards whose id already exists in the catalog are skipped.
// It returns the number of cards created.
func Import(ctx context.Context, repo Repository, cards []Card) (int, error) {
	created := 0
	for _, c := range cards {
		if c.ID != "" {
			_, err := repo.GetByID(ctx, c.ID)
			if err == nil {
				slog.Default().Debug("skip an existing card", "cardID", c.ID)
				continue
			}
			if !errors.Is(err, ErrNotFound) {
				return created, fmt.Errorf("repo.GetByID(%s) > %w", c.ID, err)
			}
		}
		if _, err := repo.Create(ctx, c); err != nil {
			return created, fmt.Errorf("repo.Create(%s) > %w", c.Title, err)
		}
		created++
	}
	return created, nil
}

// SeedIfEmpty imports the catalog file only when the catalog has no cards yet.
func SeedIfEmpty(ctx context.Context, repo Repository, path string) (int, error) {
	if path == "" {
		return 0, nil
	}
	cards, err := repo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("repo.GetAll() > %w", err)
	}
	if len(cards) > 0 {
		return 0, nil
	}

	catalog, err := LoadCatalogFile(path)
	if err != nil {
		return 0, err
	}
	return Import(ctx, repo, catalog.Cards)
}
