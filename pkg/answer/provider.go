package answer

import (
	"context"

	"github.com/google/uuid"
)

// ContextDocument is one of the caller's documents offered to the provider as
// background knowledge.
type ContextDocument struct {
	Id       uuid.UUID
	Name     string
	FileType string
	Path     string
}

// Request carries a single question plus the user context the provider may
// consult while generating the reply.
type Request struct {
	Question            string
	UserId              uuid.UUID
	Language            string
	Model               string
	Documents           []ContextDocument
	ExcludedDocumentIds []uuid.UUID
}

// Answer is the provider's reply. DocumentsUsed lists which of the offered
// documents the provider actually drew on.
type Answer struct {
	Message       string
	DocumentsUsed []uuid.UUID
}

// Provider is the answer-generation collaborator. Implementations may be slow
// and may fail; callers attempt exactly one call per request and treat a
// timeout as a failure.
type Provider interface {
	Answer(ctx context.Context, req *Request) (*Answer, error)
}
