package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"askn7-backend/internal/dto"
	"askn7-backend/internal/pkg/apperror"
	"askn7-backend/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChatService returns canned results so the tests exercise routing, auth
// and error mapping only.
type stubChatService struct {
	sendErr    error
	getErr     error
	lastUserId uuid.UUID
}

func (s *stubChatService) CreateSession(_ context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	s.lastUserId = userId
	title := req.Title
	if title == "" {
		title = "New Chat"
	}
	return &dto.SessionResponse{Id: uuid.New(), Title: title}, nil
}

func (s *stubChatService) GetAllSessions(_ context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	s.lastUserId = userId
	return []*dto.SessionResponse{}, nil
}

func (s *stubChatService) GetSession(_ context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionWithMessagesResponse, error) {
	s.lastUserId = userId
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &dto.SessionWithMessagesResponse{Id: sessionId, Messages: []*dto.MessageResponse{}}, nil
}

func (s *stubChatService) RenameSession(_ context.Context, userId uuid.UUID, _ uuid.UUID, _ *dto.RenameSessionRequest) error {
	s.lastUserId = userId
	return s.getErr
}

func (s *stubChatService) DeleteSession(_ context.Context, userId uuid.UUID, _ uuid.UUID) error {
	s.lastUserId = userId
	return s.getErr
}

func (s *stubChatService) SendMessage(_ context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	s.lastUserId = userId
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &dto.SendMessageResponse{
		UserMessage: &dto.MessageResponse{Id: uuid.New(), Content: req.Content, IsUserMessage: true},
		AiResponse:  &dto.MessageResponse{Id: uuid.New(), Content: "reply"},
	}, nil
}

func newTestApp(svc *stubChatService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewChatController(svc).RegisterRoutes(api)
	return app
}

func signToken(t *testing.T, userId string) string {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userId})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var payload *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(raw)
	} else {
		payload = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRoutesRequireToken(t *testing.T) {
	app := newTestApp(&stubChatService{})

	resp := doRequest(t, app, http.MethodGet, "/api/chat/v1/sessions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoutesRejectUnsignedToken(t *testing.T) {
	app := newTestApp(&stubChatService{})
	t.Setenv("JWT_SECRET", "test-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": uuid.NewString()})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/api/chat/v1/sessions", unsigned, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetAllSessions_ResolvesCaller(t *testing.T) {
	svc := &stubChatService{}
	app := newTestApp(svc)
	userId := uuid.New()

	resp := doRequest(t, app, http.MethodGet, "/api/chat/v1/sessions", signToken(t, userId.String()), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, userId, svc.lastUserId)
}

func TestGetSession_NotFoundMapsTo404(t *testing.T) {
	svc := &stubChatService{getErr: apperror.NewNotFound("session not found")}
	app := newTestApp(svc)

	resp := doRequest(t, app, http.MethodGet, "/api/chat/v1/sessions/"+uuid.NewString(), signToken(t, uuid.NewString()), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetSession_MalformedIdMapsTo404(t *testing.T) {
	app := newTestApp(&stubChatService{})

	resp := doRequest(t, app, http.MethodGet, "/api/chat/v1/sessions/not-a-uuid", signToken(t, uuid.NewString()), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSendMessage_MissingContentIs400(t *testing.T) {
	app := newTestApp(&stubChatService{})

	resp := doRequest(t, app, http.MethodPost, "/api/chat/v1/sessions/"+uuid.NewString()+"/messages",
		signToken(t, uuid.NewString()), map[string]string{"language": "French"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSendMessage_AdapterFailureIs500WithDetail(t *testing.T) {
	svc := &stubChatService{sendErr: apperror.NewAdapter("answer generation failed", errors.New("model unavailable"))}
	app := newTestApp(svc)

	resp := doRequest(t, app, http.MethodPost, "/api/chat/v1/sessions/"+uuid.NewString()+"/messages",
		signToken(t, uuid.NewString()), map[string]string{"content": "hello"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body serverutils.Response[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "model unavailable")
}

func TestSendMessage_Success(t *testing.T) {
	app := newTestApp(&stubChatService{})

	resp := doRequest(t, app, http.MethodPost, "/api/chat/v1/sessions/"+uuid.NewString()+"/messages",
		signToken(t, uuid.NewString()), map[string]string{"content": "hello"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body serverutils.Response[dto.SendMessageResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "hello", body.Data.UserMessage.Content)
	assert.Equal(t, "reply", body.Data.AiResponse.Content)
}

func TestCreateSession_EmptyBodyAllowed(t *testing.T) {
	app := newTestApp(&stubChatService{})

	resp := doRequest(t, app, http.MethodPost, "/api/chat/v1/sessions", signToken(t, uuid.NewString()), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body serverutils.Response[dto.SessionResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "New Chat", body.Data.Title)
}
