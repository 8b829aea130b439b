package infrastructure

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/Victor-armando18/promo-cart/internal/domain"
)

// ApplySeedPatch applies an RFC 6902 JSON patch to a seed and returns the patched copy.
// The original seed is left untouched.
func ApplySeedPatch(original *domain.Seed, patchData []byte) (*domain.Seed, error) {
	originalJSON, err := json.Marshal(original)
	if err != nil {
		return nil, fmt.Errorf("failed to encode seed: %w", err)
	}

	patch, err := jsonpatch.DecodePatch(patchData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode patch: %w", err)
	}

	modifiedJSON, err := patch.Apply(originalJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to apply patch: %w", err)
	}

	var patched domain.Seed
	if err := json.Unmarshal(modifiedJSON, &patched); err != nil {
		return nil, fmt.Errorf("failed to decode patched seed: %w", err)
	}
	return &patched, nil
}
