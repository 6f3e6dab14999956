package main

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/zurto/planner/internal/diagram"
	"github.com/zurto/planner/internal/layout"
	"github.com/zurto/planner/internal/logger"
	"github.com/zurto/planner/internal/result"
)

// LambdaEvent is the invocation payload (e.g. from API Gateway).
type LambdaEvent struct {
	Body     string  `json:"body"` // diagram JSON (raw or base64 if isBase64)
	IsBase64 bool    `json:"isBase64,omitempty"`
	Strategy string  `json:"strategy,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Routes   bool    `json:"routes,omitempty"`
}

// LambdaResponse is returned to the client (API Gateway).
type LambdaResponse struct {
	StatusCode int            `json:"statusCode"`
	Success    bool           `json:"success"`
	Strategy   string         `json:"strategy,omitempty"`
	Nodes      []diagram.Node `json:"nodes,omitempty"`
	Routes     []layout.Route `json:"routes,omitempty"`
	Errors     []result.Error `json:"errors,omitempty"`
}

// APIGatewayResponse is the shape expected by API Gateway proxy integration (body = JSON string).
type APIGatewayResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
}

const (
	defaultWidth  = 1200
	defaultHeight = 800
)

func handler(ctx context.Context, event LambdaEvent) (APIGatewayResponse, error) {
	out := LambdaResponse{StatusCode: 200}

	body := event.Body
	if event.IsBase64 {
		dec, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return wrap(fail(400, "invalid_input", "invalid base64 body: "+err.Error())), nil
		}
		body = string(dec)
	}

	var d diagram.Diagram
	if err := json.Unmarshal([]byte(body), &d); err != nil {
		return wrap(fail(400, "invalid_json", "invalid diagram JSON: "+err.Error())), nil
	}

	strategy, err := layout.ParseStrategy(event.Strategy)
	if err != nil {
		return wrap(fail(400, "invalid_input", err.Error())), nil
	}
	width, height := event.Width, event.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	opts := layout.DefaultOptions()
	opts.Routes = event.Routes
	res := layout.Apply(strategy, d.Nodes, d.Edges, width, height, opts)
	logger.Default.InfoContext(ctx, "layout request",
		"strategy", string(res.Strategy), "nodes", len(res.Nodes), "routes", len(res.Routes))

	out.Success = true
	out.Strategy = string(res.Strategy)
	out.Nodes = res.Nodes
	out.Routes = res.Routes
	return wrap(out), nil
}

func fail(status int, typ, msg string) LambdaResponse {
	return LambdaResponse{
		StatusCode: status,
		Errors:     []result.Error{{Type: typ, Severity: "error", Message: msg}},
	}
}

func wrap(out LambdaResponse) APIGatewayResponse {
	bodyBytes, _ := json.Marshal(out)
	return APIGatewayResponse{
		StatusCode: out.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(bodyBytes),
	}
}

func main() {
	lambda.Start(handler)
}
