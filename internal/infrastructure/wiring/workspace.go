// Package wiring assembles the repository and application services for
// a workspace root.
package wiring

import (
	"github.com/felixgeelhaar/pulse/pkg/domain/analytics"
	"github.com/felixgeelhaar/pulse/pkg/storage"
)

// Workspace bundles core infrastructure dependencies.
type Workspace struct {
	Repo     *storage.FilesystemRepository
	Variance analytics.VarianceSource
}

func NewWorkspace(root string) *Workspace {
	return &Workspace{
		Repo:     storage.NewFilesystemRepository(root),
		Variance: analytics.NewRandomVariance(),
	}
}
