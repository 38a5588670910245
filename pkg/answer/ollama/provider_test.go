package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"askn7-backend/pkg/answer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestAnswer_Success(t *testing.T) {
	var captured ollamaChatRequest
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   captured.Model,
			Message: ollamaMessage{Role: "assistant", Content: "Paris."},
			Done:    true,
		})
	})

	provider := NewOllamaProvider(srv.URL, "mistral", time.Second)

	docA := answer.ContextDocument{Id: uuid.New(), Name: "notes.pdf", FileType: "pdf"}
	docB := answer.ContextDocument{Id: uuid.New(), Name: "old.pdf", FileType: "pdf"}

	res, err := provider.Answer(context.Background(), &answer.Request{
		Question:            "What is the capital of France?",
		UserId:              uuid.New(),
		Language:            "English",
		Model:               "Mistral",
		Documents:           []answer.ContextDocument{docA, docB},
		ExcludedDocumentIds: []uuid.UUID{docB.Id},
	})
	require.NoError(t, err)

	assert.Equal(t, "Paris.", res.Message)
	assert.Equal(t, []uuid.UUID{docA.Id}, res.DocumentsUsed)

	// Client-facing model label is lowercased to an ollama tag.
	assert.Equal(t, "mistral", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "Answer in English")
	assert.Contains(t, captured.Messages[0].Content, "notes.pdf")
	assert.NotContains(t, captured.Messages[0].Content, "old.pdf")
	assert.Equal(t, "What is the capital of France?", captured.Messages[1].Content)
}

func TestAnswer_AutoDetectLanguage(t *testing.T) {
	var captured ollamaChatRequest
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(ollamaChatResponse{Message: ollamaMessage{Content: "ok"}, Done: true})
	})

	provider := NewOllamaProvider(srv.URL, "mistral", time.Second)
	_, err := provider.Answer(context.Background(), &answer.Request{Question: "hi", Language: "Auto-detect"})
	require.NoError(t, err)

	assert.Contains(t, captured.Messages[0].Content, "same language as the question")
}

func TestAnswer_ServerError(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	})

	provider := NewOllamaProvider(srv.URL, "mistral", time.Second)
	_, err := provider.Answer(context.Background(), &answer.Request{Question: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestAnswer_EmptyReply(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaChatResponse{Message: ollamaMessage{Content: ""}, Done: true})
	})

	provider := NewOllamaProvider(srv.URL, "mistral", time.Second)
	_, err := provider.Answer(context.Background(), &answer.Request{Question: "hi"})
	require.Error(t, err)
}

func TestAnswer_Timeout(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(ollamaChatResponse{Message: ollamaMessage{Content: "late"}, Done: true})
	})

	provider := NewOllamaProvider(srv.URL, "mistral", 50*time.Millisecond)
	_, err := provider.Answer(context.Background(), &answer.Request{Question: "hi"})
	require.Error(t, err)
}
