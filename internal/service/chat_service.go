package service

import (
	"context"
	"fmt"
	"time"

	"askn7-backend/internal/constant"
	"askn7-backend/internal/dto"
	"askn7-backend/internal/entity"
	"askn7-backend/internal/pkg/apperror"
	"askn7-backend/internal/pkg/logger"
	"askn7-backend/internal/repository/specification"
	"askn7-backend/internal/repository/unitofwork"
	"askn7-backend/pkg/answer"

	"github.com/google/uuid"
)

// IChatService defines the chat session service interface
type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, request *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	GetSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionWithMessagesResponse, error)
	RenameSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, request *dto.RenameSessionRequest) error
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
	SendMessage(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	answerProvider answer.Provider
	publisher      IPublisherService
	logger         logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	answerProvider answer.Provider,
	publisher IPublisherService,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		answerProvider: answerProvider,
		publisher:      publisher,
		logger:         sysLogger,
	}
}

// CreateSession creates a new chat session with the given or default title.
func (cs *chatService) CreateSession(ctx context.Context, userId uuid.UUID, request *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	title := request.Title
	if title == "" {
		title = constant.DefaultSessionTitle
	}

	chatSession := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.ChatSessionRepository().Create(ctx, &chatSession); err != nil {
		return nil, err
	}

	cs.logger.Info("chat", "Created chat session", map[string]interface{}{
		"user_id":    userId.String(),
		"session_id": chatSession.Id.String(),
	})

	return sessionToDTO(&chatSession), nil
}

// GetAllSessions returns the caller's sessions, most recently updated first.
func (cs *chatService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSessions, err := uow.ChatSessionRepository().FindAllWithMessageCount(ctx, userId)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.SessionResponse, 0, len(chatSessions))
	for _, s := range chatSessions {
		response = append(response, sessionToDTO(s))
	}

	return response, nil
}

// GetSession returns one session with its full ordered message list.
func (cs *chatService) GetSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionWithMessagesResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sess, err := cs.resolveSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	chatMessages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	messages := make([]*dto.MessageResponse, 0, len(chatMessages))
	for _, msg := range chatMessages {
		messages = append(messages, messageToDTO(msg))
	}

	return &dto.SessionWithMessagesResponse{
		Id:           sess.Id,
		Title:        sess.Title,
		CreatedAt:    sess.CreatedAt,
		UpdatedAt:    sess.UpdatedAt,
		MessageCount: int64(len(messages)),
		Messages:     messages,
	}, nil
}

// RenameSession updates the session title.
func (cs *chatService) RenameSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, request *dto.RenameSessionRequest) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sess, err := cs.resolveSession(ctx, uow, userId, sessionId)
	if err != nil {
		return err
	}

	sess.Title = request.Title
	return uow.ChatSessionRepository().Update(ctx, sess)
}

// DeleteSession removes a session and all its messages in one transaction.
// Messages go first so no orphan rows can survive a partial failure.
func (cs *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.resolveSession(ctx, uow, userId, sessionId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	cs.logger.Info("chat", "Deleted chat session", map[string]interface{}{
		"user_id":    userId.String(),
		"session_id": sessionId.String(),
	})

	return nil
}

// SendMessage runs the full exchange: persist the user's message, call the
// answer provider once, persist the reply (or a durable error record) and
// return both messages. The user message is never rolled back on failure.
func (cs *chatService) SendMessage(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sess, err := cs.resolveSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	priorMessages, err := uow.ChatMessageRepository().Count(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	userMessage := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Content:       request.Content,
		IsUserMessage: true,
		CreatedAt:     now,
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMessage); err != nil {
		return nil, err
	}

	// One-time auto-title from the first message. Best effort: a failure here
	// must not fail the exchange.
	if priorMessages == 0 && sess.Title == constant.DefaultSessionTitle {
		sess.Title = deriveTitle(request.Content)
		if err := uow.ChatSessionRepository().Update(ctx, sess); err != nil {
			cs.logger.Warn("chat", "Failed to auto-title session", map[string]interface{}{
				"session_id": sessionId.String(),
				"error":      err.Error(),
			})
		}
	}

	language := request.Language
	if language == "" {
		language = constant.DefaultLanguage
	}
	model := request.Model
	if model == "" {
		model = constant.DefaultModel
	}

	// The provider may consult any of the caller's processed documents.
	contextDocs, err := cs.loadDocumentContext(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	// Exactly one attempt, no transaction or lock held across the call.
	reply, answerErr := cs.answerProvider.Answer(ctx, &answer.Request{
		Question:  request.Content,
		UserId:    userId,
		Language:  language,
		Model:     model,
		Documents: contextDocs,
	})
	if answerErr != nil {
		return nil, cs.recordFailure(ctx, uow, sess, userId, answerErr)
	}

	documentsUsed := len(reply.DocumentsUsed)
	aiMessage := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Content:       reply.Message,
		IsUserMessage: false,
		CreatedAt:     time.Now(),
		DocumentsUsed: &documentsUsed,
		Sources:       reply.DocumentsUsed,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().Create(ctx, &aiMessage); err != nil {
		return nil, err
	}

	// Only a successful exchange bumps updated_at, keeping session list
	// ordering stable across failed calls.
	sess.UpdatedAt = aiMessage.CreatedAt
	if err := uow.ChatSessionRepository().Update(ctx, sess); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	cs.publishMessageSent(ctx, sess, userId, &userMessage, &aiMessage, model)

	return &dto.SendMessageResponse{
		UserMessage: messageToDTO(&userMessage),
		AiResponse:  messageToDTO(&aiMessage),
	}, nil
}

// resolveSession combines the ownership and existence checks: a session owned
// by another user is indistinguishable from a missing one.
func (cs *chatService) resolveSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	sess, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, apperror.NewNotFound("session not found")
	}
	return sess, nil
}

func (cs *chatService) loadDocumentContext(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) ([]answer.ContextDocument, error) {
	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ProcessingCompleted{},
	)
	if err != nil {
		return nil, err
	}

	contextDocs := make([]answer.ContextDocument, 0, len(documents))
	for _, d := range documents {
		contextDocs = append(contextDocs, answer.ContextDocument{
			Id:       d.Id,
			Name:     d.FileName,
			FileType: d.FileType,
			Path:     d.FilePath,
		})
	}
	return contextDocs, nil
}

// recordFailure writes the durable error record for a failed provider call and
// wraps the cause so the boundary reports a server error. The session's
// updated_at is left untouched.
func (cs *chatService) recordFailure(ctx context.Context, uow unitofwork.UnitOfWork, sess *entity.ChatSession, userId uuid.UUID, cause error) error {
	errorMessage := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sess.Id,
		Content:       fmt.Sprintf("Error: %v", cause),
		IsUserMessage: false,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &errorMessage); err != nil {
		cs.logger.Error("chat", "Failed to persist error message", map[string]interface{}{
			"session_id": sess.Id.String(),
			"error":      err.Error(),
		})
	}

	cs.logger.Error("chat", "Answer generation failed", map[string]interface{}{
		"session_id": sess.Id.String(),
		"user_id":    userId.String(),
		"error":      cause.Error(),
	})

	return apperror.NewAdapter("answer generation failed", cause)
}

func (cs *chatService) publishMessageSent(ctx context.Context, sess *entity.ChatSession, userId uuid.UUID, userMessage, aiMessage *entity.ChatMessage, model string) {
	if cs.publisher == nil {
		return
	}

	documentsUsed := 0
	if aiMessage.DocumentsUsed != nil {
		documentsUsed = *aiMessage.DocumentsUsed
	}

	event := dto.ChatMessageSentEvent{
		SessionId:     sess.Id,
		UserId:        userId,
		UserMessageId: userMessage.Id,
		AiMessageId:   aiMessage.Id,
		DocumentsUsed: documentsUsed,
		Model:         model,
		SentAt:        aiMessage.CreatedAt,
	}

	if err := cs.publisher.Publish(ctx, event); err != nil {
		cs.logger.Warn("chat", "Failed to publish chat event", map[string]interface{}{
			"session_id": sess.Id.String(),
			"error":      err.Error(),
		})
	}
}

// deriveTitle truncates the first message to the title prefix length,
// appending an ellipsis when content was cut off.
func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= constant.SessionTitleMaxLen {
		return content
	}
	return string(runes[:constant.SessionTitleMaxLen]) + "..."
}

func sessionToDTO(s *entity.ChatSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:           s.Id,
		Title:        s.Title,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		MessageCount: s.MessageCount,
	}
}

func messageToDTO(m *entity.ChatMessage) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:            m.Id,
		Content:       m.Content,
		IsUserMessage: m.IsUserMessage,
		CreatedAt:     m.CreatedAt,
		DocumentsUsed: m.DocumentsUsed,
		Sources:       m.Sources,
	}
}
