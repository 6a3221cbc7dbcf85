package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// encodeGoods serializes a good-keyed map, dropping zero entries
func encodeGoods(m map[goods.Good]int) (string, error) {
	compact := make(map[goods.Good]int, len(m))
	for g, qty := range m {
		if qty != 0 {
			compact[g] = qty
		}
	}
	if len(compact) == 0 {
		return "", nil
	}
	data, err := json.Marshal(compact)
	if err != nil {
		return "", fmt.Errorf("failed to marshal goods: %w", err)
	}
	return string(data), nil
}

// decodeGoods always returns a non-nil map
func decodeGoods(data string) (map[goods.Good]int, error) {
	m := make(map[goods.Good]int)
	if data == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal goods: %w", err)
	}
	return m, nil
}

func position(region, x, y int) shared.Position {
	return shared.NewPosition(shared.RegionID(region), x, y)
}
