package ports

import (
	"context"

	"growthcast/domain/core"
	"growthcast/domain/forecast"
)

// NamedBaseline is a user-edited baseline dataset stored under a name.
type NamedBaseline struct {
	ID      core.BaselineID          `json:"id"`
	Name    string                   `json:"name"`
	Dataset forecast.BaselineDataset `json:"dataset"`
}

// BaselineRepository persists user-edited baseline datasets. The engine
// itself never touches storage; the API layer resolves a named baseline into
// the request before invoking the engine.
type BaselineRepository interface {
	Save(ctx context.Context, b *NamedBaseline) error
	GetByName(ctx context.Context, name string) (*NamedBaseline, error)
	List(ctx context.Context) ([]NamedBaseline, error)
	Delete(ctx context.Context, name string) error
}

// BaselineReader loads a baseline dataset from an external source such as a
// workbook file.
type BaselineReader interface {
	Read(path string) (*forecast.BaselineDataset, error)
}
