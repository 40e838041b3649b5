package services

import "context"

// LLMService is the interface to the generative text backend. The backend
// is opaque to the rest of the engine: one request string in, one raw
// reply string out, with no guarantee the reply honors the output
// contract. Extraction and merge tolerance live downstream.
type LLMService interface {
	// InitModel prepares the model on startup.
	InitModel(ctx context.Context, modelName string) error

	// Generate sends one assembled request and returns the raw reply.
	Generate(ctx context.Context, prompt string) (string, error)

	// IsModelReady checks whether the model can serve requests.
	IsModelReady(ctx context.Context, modelName string) (bool, error)
}
