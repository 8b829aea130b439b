package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Victor-armando18/promo-cart/internal/domain"
	seedyaml "github.com/Victor-armando18/promo-cart/internal/infrastructure/yaml"
	"github.com/Victor-armando18/promo-cart/internal/interfaces"
)

// FileSeedLoader reads the seed from a JSON or YAML file, chosen by extension.
type FileSeedLoader struct {
	Path string
}

// NewSeedLoader returns a file loader for path, or the built-in demo seed when path is empty.
func NewSeedLoader(path string) interfaces.SeedLoader {
	if strings.TrimSpace(path) == "" {
		return StaticSeedLoader{Seed: DefaultSeed()}
	}
	return &FileSeedLoader{Path: path}
}

func (l *FileSeedLoader) Load(ctx context.Context) (*domain.Seed, error) {
	switch strings.ToLower(filepath.Ext(l.Path)) {
	case ".yaml", ".yml":
		return seedyaml.LoadSeed(l.Path)
	}

	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", l.Path, err)
	}
	var seed domain.Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed: %w", err)
	}
	return &seed, nil
}

// StaticSeedLoader hands out an in-memory seed. Each Load returns a fresh copy.
type StaticSeedLoader struct {
	Seed *domain.Seed
}

func (l StaticSeedLoader) Load(ctx context.Context) (*domain.Seed, error) {
	if l.Seed == nil {
		return &domain.Seed{}, nil
	}
	out := &domain.Seed{
		Items:      make([]domain.CatalogItem, len(l.Seed.Items)),
		Promotions: make([]domain.Promotion, len(l.Seed.Promotions)),
	}
	copy(out.Items, l.Seed.Items)
	copy(out.Promotions, l.Seed.Promotions)
	return out, nil
}

// PatchedSeedLoader applies an RFC 6902 patch file on top of another loader's seed.
type PatchedSeedLoader struct {
	Base      interfaces.SeedLoader
	PatchPath string
}

func (l PatchedSeedLoader) Load(ctx context.Context) (*domain.Seed, error) {
	seed, err := l.Base.Load(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(l.PatchPath) == "" {
		return seed, nil
	}
	patch, err := os.ReadFile(l.PatchPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed patch %s: %w", l.PatchPath, err)
	}
	return ApplySeedPatch(seed, patch)
}
