// Package source fetches project datasets from external stores.
//
// The graph engine never writes entities; a [Source] reads the module,
// feature and connection lists once per load. Every source validates the
// records it returns with [project.Validate] and normalizes stakeholder
// lists, so downstream code can assume well-formed input.
//
// Two sources are provided:
//
//   - [FileSource]: a JSON or TOML dataset file
//   - [MongoSource]: the modules, functions and connections collections of
//     a MongoDB database
package source

import (
	"context"

	"github.com/matzehuels/stakemap/pkg/project"
)

// Source loads a dataset.
type Source interface {
	// Load fetches and validates the current dataset.
	Load(ctx context.Context) (project.Dataset, error)
	// Describe returns a stable, credential-free identifier used in logs
	// and cache keys.
	Describe() string
	Close() error
}

// finish validates and normalizes a freshly fetched dataset.
func finish(ds project.Dataset) (project.Dataset, error) {
	ds = ds.Normalize()
	if err := project.Validate(ds); err != nil {
		return project.Dataset{}, err
	}
	return ds, nil
}
