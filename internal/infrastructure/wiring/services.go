package wiring

import (
	"github.com/felixgeelhaar/pulse/pkg/application"
)

// AppServices exposes the application layer services wired together
// with a workspace.
type AppServices struct {
	Workspace *Workspace
	Insights  *application.InsightsService
	Snapshot  *application.SnapshotService
	Team      *application.TeamService
}

// BuildAppServices constructs the services for a workspace root.
func BuildAppServices(root string) *AppServices {
	workspace := NewWorkspace(root)

	return &AppServices{
		Workspace: workspace,
		Insights:  application.NewInsightsService(workspace.Repo, workspace.Variance, nil),
		Snapshot:  application.NewSnapshotService(workspace.Repo),
		Team:      application.NewTeamService(workspace.Repo),
	}
}
