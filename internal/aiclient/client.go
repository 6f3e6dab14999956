// Package aiclient talks to the Zurto platform API: code generation, container deployment
// and the stored nodes and relationships of a project.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/zurto/planner/internal/deploy"
	"github.com/zurto/planner/internal/diagram"
)

// DefaultBaseURL is the hosted platform API.
const DefaultBaseURL = "https://api.zurto.app"

// APIError is a non-2xx response from the platform.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// Client is a platform API client. The zero value uses DefaultBaseURL and
// http.DefaultClient.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a client for baseURL. Requests carry no timeout of their own; callers
// bound them through ctx.
func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTPClient: &http.Client{}}
}

// envelope is the platform's response wrapper.
type envelope struct {
	Success *bool           `json:"success,omitempty"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// GenerateCode asks the platform to generate code for every node of the project.
func (c *Client) GenerateCode(ctx context.Context, projectID string) (*deploy.GenerateResult, error) {
	var out deploy.GenerateResult
	body := map[string]string{"projectId": projectID}
	if err := c.do(ctx, http.MethodPost, "/api/ai/generate-code", body, &out); err != nil {
		return nil, errors.Wrap(err, "generate code")
	}
	return &out, nil
}

// DeployProject asks the platform to start the project's containers. The outcome is
// the envelope's success flag, or data.deployed when the envelope carries none.
func (c *Client) DeployProject(ctx context.Context, projectID, environment string) (*deploy.DeployResult, error) {
	body := map[string]string{"projectId": projectID, "environment": environment}
	env, err := c.roundTrip(ctx, http.MethodPost, "/api/ai/deploy-project", body)
	if err != nil {
		return nil, err
	}

	var data struct {
		deploy.DeployResult
		Success  *bool `json:"success"`
		Deployed *bool `json:"deployed"`
	}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, errors.Wrap(err, "decode response data")
		}
	}

	out := data.DeployResult
	switch {
	case env.Success != nil:
		out.Success = *env.Success
	case data.Deployed != nil:
		out.Success = *data.Deployed
	case data.Success != nil:
		out.Success = *data.Success
	}
	out.Error = firstNonEmpty(out.Error, env.Error)
	return &out, nil
}

// Node is a stored project node as the platform returns it.
type Node struct {
	ID          string  `json:"id"`
	ProjectID   string  `json:"project_id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
	ParentID    string  `json:"parent_id,omitempty"`
	PositionX   float64 `json:"position_x"`
	PositionY   float64 `json:"position_y"`
}

// Relationship is a stored connection between two project nodes.
type Relationship struct {
	ID               string `json:"id"`
	SourceNodeID     string `json:"source_node_id"`
	TargetNodeID     string `json:"target_node_id"`
	RelationshipType string `json:"relationship_type"`
}

// ListNodes returns the stored nodes of a project.
func (c *Client) ListNodes(ctx context.Context, projectID string) ([]Node, error) {
	var out []Node
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(projectID)+"/nodes", nil, &out); err != nil {
		return nil, errors.Wrap(err, "list nodes")
	}
	return out, nil
}

// ListRelationships returns the stored relationships of a project.
func (c *Client) ListRelationships(ctx context.Context, projectID string) ([]Relationship, error) {
	var out []Relationship
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(projectID)+"/relationships", nil, &out); err != nil {
		return nil, errors.Wrap(err, "list relationships")
	}
	return out, nil
}

// ProjectDiagram fetches nodes and relationships and assembles them into a diagram.
func (c *Client) ProjectDiagram(ctx context.Context, projectID string) (*diagram.Diagram, error) {
	nodes, err := c.ListNodes(ctx, projectID)
	if err != nil {
		return nil, err
	}
	rels, err := c.ListRelationships(ctx, projectID)
	if err != nil {
		return nil, err
	}

	d := &diagram.Diagram{
		Metadata: diagram.Metadata{ProjectID: projectID},
		Nodes:    make([]diagram.Node, 0, len(nodes)),
		Edges:    make([]diagram.Edge, 0, len(rels)),
	}
	for _, n := range nodes {
		d.Nodes = append(d.Nodes, n.toDiagram())
	}
	for _, r := range rels {
		d.Edges = append(d.Edges, diagram.Edge{
			ID:     r.ID,
			Source: r.SourceNodeID,
			Target: r.TargetNodeID,
			Type:   diagram.ConnectionType(r.RelationshipType),
		})
	}
	return d, nil
}

func (n Node) toDiagram() diagram.Node {
	kind := diagram.Kind(strings.ToLower(n.Type))
	out := diagram.NewNode(n.ID, n.Name, kind).At(n.PositionX, n.PositionY)
	out.ParentID = n.ParentID
	if n.Description != "" {
		out.Properties = map[string]any{"description": n.Description}
	}
	if kind.IsService() && n.Status != "" {
		out, _ = out.WithDetails(diagram.ServerDetails{Status: n.Status})
	}
	return out
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	env, err := c.roundTrip(ctx, method, path, in)
	if err != nil {
		return err
	}
	if env.Success != nil && !*env.Success && env.Error != "" {
		return &APIError{StatusCode: http.StatusOK, Message: env.Error}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrap(err, "decode response data")
	}
	return nil
}

// roundTrip sends one request and decodes the response envelope. Non-2xx statuses
// become *APIError.
func (c *Client) roundTrip(ctx context.Context, method, path string, in any) (*envelope, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, errors.Wrap(err, "encode request")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(base, "/")+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := firstNonEmpty(env.Error, env.Message, strings.TrimSpace(string(raw)), http.StatusText(resp.StatusCode))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, errors.Wrap(decodeErr, "decode response")
	}
	return &env, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
