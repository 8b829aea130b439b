package yaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Victor-armando18/promo-cart/internal/domain"
)

// LoadSeed reads a YAML seed document from path.
func LoadSeed(path string) (*domain.Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return DecodeSeed(data)
}

func DecodeSeed(data []byte) (*domain.Seed, error) {
	var seed domain.Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed: %w", err)
	}
	return &seed, nil
}
