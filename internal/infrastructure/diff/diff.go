package diff

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/Victor-armando18/promo-cart/internal/domain"
)

// Differ reports how a checkout pass changed the cart lines.
type Differ struct{}

// Diff returns an RFC 7386 merge patch keyed by SKU that turns before into
// after, and whether anything changed.
func (d *Differ) Diff(before, after []domain.CartLine) (map[string]interface{}, bool, error) {
	beforeJSON, err := json.Marshal(bySKU(before))
	if err != nil {
		return nil, false, fmt.Errorf("encoding lines: %w", err)
	}
	afterJSON, err := json.Marshal(bySKU(after))
	if err != nil {
		return nil, false, fmt.Errorf("encoding lines: %w", err)
	}

	patch, err := jsonpatch.CreateMergePatch(beforeJSON, afterJSON)
	if err != nil {
		return nil, false, fmt.Errorf("creating merge patch: %w", err)
	}

	delta := map[string]interface{}{}
	if err := json.Unmarshal(patch, &delta); err != nil {
		return nil, false, err
	}
	return delta, len(delta) > 0, nil
}

func bySKU(lines []domain.CartLine) map[string]domain.CartLine {
	m := make(map[string]domain.CartLine, len(lines))
	for _, l := range lines {
		m[l.SKU] = l
	}
	return m
}
