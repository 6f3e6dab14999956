package result

// Error represents a validation or generation error.
type Error struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	NodeID     string `json:"node_id,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning represents a best-practice or non-fatal warning.
type Warning struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	NodeID     string `json:"node_id,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Error types.
const (
	TypeValidation   = "validation_error"
	TypeDependency   = "dependency_error"
	TypeGeneration   = "generation_error"
	TypeBestPractice = "best_practice"
)

// ValidationError returns an error-severity validation record for a node.
func ValidationError(nodeID, msg, suggestion string) Error {
	return Error{Type: TypeValidation, Severity: "error", NodeID: nodeID, Message: msg, Suggestion: suggestion}
}

// BestPractice returns a warning-severity record for a node.
func BestPractice(nodeID, msg, suggestion string) Warning {
	return Warning{Type: TypeBestPractice, Severity: "warning", NodeID: nodeID, Message: msg, Suggestion: suggestion}
}

// GenerateResult is the result of turning a diagram into deployment artifacts.
type GenerateResult struct {
	Success  bool              `json:"success"`
	Files    map[string][]byte `json:"-"` // relative path -> content
	Errors   []Error           `json:"errors,omitempty"`
	Warnings []Warning         `json:"warnings,omitempty"`
}
