package deploy

import "context"

// GenerateResult is what the code generation endpoint returns.
type GenerateResult struct {
	ProjectPath string   `json:"projectPath"`
	Files       []string `json:"files"`
}

// DeployResult is what the deploy endpoint returns.
type DeployResult struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Services int    `json:"services,omitempty"`
	Output   string `json:"output,omitempty"`
}

// Backend is the remote platform the pipeline drives.
type Backend interface {
	GenerateCode(ctx context.Context, projectID string) (*GenerateResult, error)
	DeployProject(ctx context.Context, projectID, environment string) (*DeployResult, error)
}

// ArtifactWriter produces the Docker files for a project and returns their paths.
type ArtifactWriter interface {
	WriteDockerArtifacts(ctx context.Context, projectID string) ([]string, error)
}
