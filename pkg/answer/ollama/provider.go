package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"askn7-backend/pkg/answer"

	"github.com/google/uuid"
)

type OllamaProvider struct {
	BaseURL      string
	DefaultModel string
	Client       *http.Client
}

// Ensure OllamaProvider implements answer.Provider
var _ answer.Provider = &OllamaProvider{}

func NewOllamaProvider(baseURL, defaultModel string, timeout time.Duration) *OllamaProvider {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OllamaProvider{
		BaseURL:      baseURL,
		DefaultModel: defaultModel,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

// --- Interface Implementation ---

func (o *OllamaProvider) Answer(ctx context.Context, req *answer.Request) (*answer.Answer, error) {
	modelName := o.DefaultModel
	if req.Model != "" {
		// Client-facing labels are capitalized ("Mistral"); ollama tags are not.
		modelName = strings.ToLower(req.Model)
	}

	contextDocs := eligibleDocuments(req)

	messages := []ollamaMessage{
		{Role: "system", Content: buildSystemPrompt(req.Language, contextDocs)},
		{Role: "user", Content: req.Question},
	}

	payload := ollamaChatRequest{
		Model:    modelName,
		Messages: messages,
		Stream:   false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	url := fmt.Sprintf("%s/api/chat", o.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(raw))
	}

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode ollama response: %w", err)
	}

	if chatResp.Message.Content == "" {
		return nil, fmt.Errorf("ollama returned an empty response")
	}

	used := make([]uuid.UUID, len(contextDocs))
	for i, d := range contextDocs {
		used[i] = d.Id
	}

	return &answer.Answer{
		Message:       chatResp.Message.Content,
		DocumentsUsed: used,
	}, nil
}

// eligibleDocuments drops excluded documents from the offered context.
func eligibleDocuments(req *answer.Request) []answer.ContextDocument {
	if len(req.ExcludedDocumentIds) == 0 {
		return req.Documents
	}
	excluded := make(map[uuid.UUID]struct{}, len(req.ExcludedDocumentIds))
	for _, id := range req.ExcludedDocumentIds {
		excluded[id] = struct{}{}
	}
	docs := make([]answer.ContextDocument, 0, len(req.Documents))
	for _, d := range req.Documents {
		if _, skip := excluded[d.Id]; !skip {
			docs = append(docs, d)
		}
	}
	return docs
}

func buildSystemPrompt(language string, docs []answer.ContextDocument) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful assistant answering questions for a single user.\n")

	if language != "" && language != "Auto-detect" {
		fmt.Fprintf(&sb, "Answer in %s.\n", language)
	} else {
		sb.WriteString("Answer in the same language as the question.\n")
	}

	if len(docs) > 0 {
		sb.WriteString("The user has uploaded the following documents, use them as background knowledge when relevant:\n")
		for _, d := range docs {
			fmt.Fprintf(&sb, "- %s (%s)\n", d.Name, d.FileType)
		}
	}

	return sb.String()
}
