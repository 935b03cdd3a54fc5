package agent

import "context"

// Tool is one capability the assistant can invoke.
type Tool interface {
	// Name returns the unique tool identifier.
	Name() string

	// Description is shown to the model when choosing tools.
	Description() string

	// Parameters returns the JSON schema of the tool arguments.
	Parameters() map[string]any

	// Execute runs the tool and returns its result as text.
	Execute(ctx context.Context, args map[string]any) (string, error)
}
