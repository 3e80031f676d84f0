package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// encodeForest serialises a forest for a TEXT column.
func encodeForest(f *domain.Forest) (string, error) {
	if f == nil {
		f = &domain.Forest{}
	}
	data, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("encoding forest: %w", err)
	}
	return string(data), nil
}

// decodeForest parses a stored forest. Nil project slices come back empty.
func decodeForest(s string) (*domain.Forest, error) {
	var f domain.Forest
	if err := json.Unmarshal([]byte(s), &f); err != nil {
		return nil, fmt.Errorf("decoding forest: %w", err)
	}
	if f.Projects == nil {
		f.Projects = []*domain.Project{}
	}
	return &f, nil
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
