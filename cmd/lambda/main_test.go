package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "nodes": [
    {"id": "plan", "type": "planning"},
    {"id": "api", "type": "server", "parentId": "plan"},
    {"id": "web", "type": "frontend", "parentId": "plan"}
  ],
  "edges": [{"id": "e1", "source": "plan", "target": "api"}]
}`

type body struct {
	Success  bool   `json:"success"`
	Strategy string `json:"strategy"`
	Nodes    []struct {
		ID       string `json:"id"`
		Position struct {
			X float64 `json:"x"`
			Y float64 `json:"y"`
		} `json:"position"`
	} `json:"nodes"`
	Routes []json.RawMessage `json:"routes"`
	Errors []struct {
		Type string `json:"type"`
	} `json:"errors"`
}

func decode(t *testing.T, resp APIGatewayResponse) body {
	t.Helper()
	var b body
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &b))
	return b
}

func TestHandler_Hierarchical(t *testing.T) {
	resp, err := handler(context.Background(), LambdaEvent{Body: sample, Routes: true})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])

	b := decode(t, resp)
	assert.True(t, b.Success)
	assert.Equal(t, "hierarchical", b.Strategy)
	require.Len(t, b.Nodes, 3)
	assert.Equal(t, "plan", b.Nodes[0].ID)
	assert.Equal(t, 600.0, b.Nodes[0].Position.X)
	assert.Equal(t, 150.0, b.Nodes[0].Position.Y)
	assert.Len(t, b.Routes, 1)
}

func TestHandler_RadialBase64(t *testing.T) {
	resp, err := handler(context.Background(), LambdaEvent{
		Body:     base64.StdEncoding.EncodeToString([]byte(sample)),
		IsBase64: true,
		Strategy: "radial",
		Width:    900,
		Height:   650,
	})
	require.NoError(t, err)

	b := decode(t, resp)
	assert.Equal(t, "radial", b.Strategy)
	assert.Equal(t, 300.0, b.Nodes[0].Position.X)
	assert.Equal(t, 250.0, b.Nodes[0].Position.Y)
	assert.Empty(t, b.Routes)
}

func TestHandler_BadInput(t *testing.T) {
	tests := []struct {
		name  string
		event LambdaEvent
		want  string
	}{
		{"bad base64", LambdaEvent{Body: "%%%", IsBase64: true}, "invalid_input"},
		{"bad json", LambdaEvent{Body: "{"}, "invalid_json"},
		{"bad strategy", LambdaEvent{Body: sample, Strategy: "spiral"}, "invalid_input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := handler(context.Background(), tt.event)
			require.NoError(t, err)
			assert.Equal(t, 400, resp.StatusCode)

			b := decode(t, resp)
			assert.False(t, b.Success)
			require.Len(t, b.Errors, 1)
			assert.Equal(t, tt.want, b.Errors[0].Type)
		})
	}
}
