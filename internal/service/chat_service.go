package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"payment-support-be/internal/dto"
	"payment-support-be/internal/entity"
	"payment-support-be/internal/repository/memory"
	"payment-support-be/internal/repository/specification"
	"payment-support-be/internal/repository/unitofwork"
	"payment-support-be/pkg/llm"
	"payment-support-be/pkg/rag/classifier"
	"payment-support-be/pkg/rag/executor"
	"payment-support-be/pkg/rag/history"
	"payment-support-be/pkg/rag/response"
	"payment-support-be/pkg/rag/search"
	"payment-support-be/pkg/rag/state"
	"payment-support-be/pkg/store"
	supportEvents "payment-support-be/pkg/support/events"

	"github.com/google/uuid"
)

const sessionTitleMaxLen = 50

// IChatService defines the chat service interface
type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	SendChat(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	ResetSession(ctx context.Context, userId uuid.UUID, request *dto.ResetSessionRequest) error
	DeleteSession(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error
}

// chatService coordinates the routing pipeline with session persistence
type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	sessionRepo      *memory.SessionRepository
	eventPublisher   supportEvents.Publisher
	llmLogger        *log.Logger
	pipelineExecutor *executor.PipelineExecutor
}

// NewChatService creates a chat service wired with the full routing pipeline
func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	retriever search.Retriever,
	llmProvider llm.LLMProvider,
	sessionRepo *memory.SessionRepository,
	eventPublisher supportEvents.Publisher,
) IChatService {

	llmLogger := initLLMLogger()

	pipelineExecutor := executor.NewPipelineExecutor(
		classifier.New(llmLogger),
		retriever,
		response.NewGenerator(llmProvider, llmLogger),
		llmLogger,
	)

	return &chatService{
		uowFactory:       uowFactory,
		sessionRepo:      sessionRepo,
		eventPublisher:   eventPublisher,
		llmLogger:        llmLogger,
		pipelineExecutor: pipelineExecutor,
	}
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_rag.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// CreateSession creates a new chat session
func (cs *chatService) CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSession := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     "Unnamed session",
		CreatedAt: time.Now(),
	}

	if err := uow.ChatSessionRepository().Create(ctx, &chatSession); err != nil {
		return nil, err
	}

	conv := state.NewConversation(chatSession.Id, userId, history.DefaultMaxExchanges)
	cs.sessionRepo.Save(conv)

	return &dto.CreateSessionResponse{Id: chatSession.Id}, nil
}

// GetAllSessions retrieves all chat sessions owned by the user
func (cs *chatService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.GetAllSessionsResponse, 0, len(chatSessions))
	for _, s := range chatSessions {
		resp = append(resp, &dto.GetAllSessionsResponse{
			Id:        s.Id,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}

	return resp, nil
}

// GetChatHistory retrieves the persisted transcript for a session
func (cs *chatService) GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.verifySession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	chatMessages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.GetChatHistoryResponse, 0, len(chatMessages))
	for _, msg := range chatMessages {
		resp = append(resp, &dto.GetChatHistoryResponse{
			Id:         msg.Id,
			Role:       msg.Role,
			Content:    msg.Content,
			Label:      msg.Label,
			Confidence: msg.Confidence,
			Degraded:   msg.Degraded,
			Sources:    msg.Sources,
			CreatedAt:  msg.CreatedAt,
		})
	}

	return resp, nil
}

// SendChat drives one utterance through the routing pipeline and persists
// the resulting user/assistant pair
func (cs *chatService) SendChat(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSession, err := cs.verifySession(ctx, uow, userId, request.ChatSessionId)
	if err != nil {
		return nil, err
	}

	existingCount, err := uow.ChatMessageRepository().Count(ctx,
		specification.ByChatSessionID{ChatSessionID: request.ChatSessionId},
	)
	if err != nil {
		return nil, err
	}
	updateSessionTitle := existingCount == 0

	conv, err := cs.loadConversation(ctx, uow, chatSession)
	if err != nil {
		return nil, err
	}

	result, err := cs.pipelineExecutor.Execute(ctx, conv, request.Content)
	if err != nil {
		return nil, err
	}
	cs.sessionRepo.Save(conv)

	sources := make([]dto.SourceDocumentDTO, 0, len(result.Documents))
	for _, doc := range result.Documents {
		sources = append(sources, dto.SourceDocumentDTO{
			EntryId: doc.ID,
			Title:   doc.Title,
			Score:   doc.Score,
		})
	}
	var sourcesJson json.RawMessage
	if len(sources) > 0 {
		sourcesJson, _ = json.Marshal(sources)
	}

	now := time.Now()
	userMessage := entity.ChatMessage{
		Id:            uuid.New(),
		Content:       request.Content,
		Role:          store.RoleUser,
		Label:         string(result.Label),
		Confidence:    result.Confidence,
		ChatSessionId: chatSession.Id,
		CreatedAt:     now,
	}
	replyMessage := entity.ChatMessage{
		Id:            uuid.New(),
		Content:       result.Reply,
		Role:          store.RoleAssistant,
		Degraded:      result.Degraded,
		Sources:       sourcesJson,
		ChatSessionId: chatSession.Id,
		CreatedAt:     now.Add(1 * time.Millisecond),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().CreateBulk(ctx, []*entity.ChatMessage{&userMessage, &replyMessage}); err != nil {
		return nil, err
	}

	if updateSessionTitle {
		chatSession.Title = truncateTitle(request.Content)
		chatSession.UpdatedAt = &now
		if err := uow.ChatSessionRepository().Update(ctx, chatSession); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	cs.publishTurnCompleted(ctx, chatSession, result)

	return &dto.SendChatResponse{
		ChatSessionId:    chatSession.Id,
		ChatSessionTitle: chatSession.Title,
		Label:            string(result.Label),
		Confidence:       result.Confidence,
		ElapsedMs:        result.Elapsed.Milliseconds(),
		Degraded:         result.Degraded,
		FailedStages:     result.FailedStages,
		Sources:          sources,
		Sent: &dto.SendChatResponseChat{
			Id:        userMessage.Id,
			Content:   userMessage.Content,
			Role:      userMessage.Role,
			CreatedAt: userMessage.CreatedAt,
		},
		Reply: &dto.SendChatResponseChat{
			Id:        replyMessage.Id,
			Content:   replyMessage.Content,
			Role:      replyMessage.Role,
			CreatedAt: replyMessage.CreatedAt,
		},
	}, nil
}

// ResetSession wipes conversation memory and the persisted transcript,
// keeping the session itself
func (cs *chatService) ResetSession(ctx context.Context, userId uuid.UUID, request *dto.ResetSessionRequest) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.verifySession(ctx, uow, userId, request.ChatSessionId); err != nil {
		return err
	}

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, request.ChatSessionId); err != nil {
		return err
	}

	if conv, found := cs.sessionRepo.Get(request.ChatSessionId.String()); found {
		conv.Lock()
		conv.Reset()
		conv.Unlock()
	}

	return nil
}

// DeleteSession removes a chat session and its transcript
func (cs *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.verifySession(ctx, uow, userId, request.ChatSessionId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Delete(ctx, request.ChatSessionId); err != nil {
		return err
	}
	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, request.ChatSessionId); err != nil {
		return err
	}

	cs.sessionRepo.Delete(request.ChatSessionId.String())

	return uow.Commit()
}

func (cs *chatService) verifySession(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, sessionId uuid.UUID) (*entity.ChatSession, error) {
	sess, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("session not found or access denied")
	}
	return sess, nil
}

// loadConversation returns the live conversation for a session, rebuilding
// it from the persisted transcript when the cache entry has expired
func (cs *chatService) loadConversation(ctx context.Context, uow unitofwork.UnitOfWork, chatSession *entity.ChatSession) (*state.Conversation, error) {
	if conv, found := cs.sessionRepo.Get(chatSession.Id.String()); found {
		return conv, nil
	}

	conv := state.NewConversation(chatSession.Id, chatSession.UserId, history.DefaultMaxExchanges)

	chatMessages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: chatSession.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	// Transcript alternates user/assistant; replay it pairwise
	var pendingUser *entity.ChatMessage
	for _, msg := range chatMessages {
		switch msg.Role {
		case store.RoleUser:
			pendingUser = msg
		case store.RoleAssistant:
			if pendingUser != nil {
				conv.History.AppendExchange(pendingUser.Content, msg.Content)
				pendingUser = nil
			}
		}
	}

	cs.sessionRepo.Save(conv)
	return conv, nil
}

func (cs *chatService) publishTurnCompleted(ctx context.Context, chatSession *entity.ChatSession, result *executor.ExecutionResult) {
	if cs.eventPublisher == nil {
		return
	}
	cs.eventPublisher.PublishChatTurnCompleted(
		ctx,
		chatSession.Id,
		chatSession.UserId,
		string(result.Label),
		result.Confidence,
		result.Degraded,
	)
}

func truncateTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= sessionTitleMaxLen {
		return content
	}
	return string(runes[:sessionTitleMaxLen]) + "..."
}
