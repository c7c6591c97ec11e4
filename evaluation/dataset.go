//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
)

// DatasetItem is one labeled evaluation case. GroundTruth is a held-out
// reference answer used for display and review; it is never fed into the
// answer pipeline.
type DatasetItem struct {
	Query       string `json:"query"`
	GroundTruth string `json:"ground_truth"`
}

// DefaultDataset returns the embedded reference dataset used by batch
// evaluation when no dataset file is supplied.
func DefaultDataset() []DatasetItem {
	return []DatasetItem{
		{
			Query:       "¿Qué guantes son para principiantes?",
			GroundTruth: "Los guantes Pro Style Elite son la elección perfecta para principiantes.",
		},
		{
			Query:       "Peso 80 kg, ¿qué onzas necesito para sparring?",
			GroundTruth: "Para sparring y un peso superior a 75 kg, se recomienda el guante de 16 oz.",
		},
		{
			Query:       "¿Cuánto tarda el despacho en la RM?",
			GroundTruth: "En la Región Metropolitana, el tiempo de entrega es de 2 a 4 días hábiles.",
		},
	}
}

// LoadDataset reads a dataset from a JSON file containing an array of
// DatasetItem objects.
func LoadDataset(path string) ([]DatasetItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %q: %w", path, err)
	}
	var items []DatasetItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse dataset %q: %w", path, err)
	}
	return items, nil
}
