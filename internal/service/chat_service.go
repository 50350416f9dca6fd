package service

import (
	"context"
	"fmt"
	"time"

	"ai-pipeline-be/internal/dto"
	"ai-pipeline-be/internal/entity"
	"ai-pipeline-be/internal/pkg/logger"
	"ai-pipeline-be/internal/repository/memory"
	"ai-pipeline-be/internal/repository/specification"
	"ai-pipeline-be/internal/repository/unitofwork"
	"ai-pipeline-be/pkg/events"
	pktNats "ai-pipeline-be/pkg/nats"
	"ai-pipeline-be/pkg/pipeline"
	"ai-pipeline-be/pkg/store"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	sessionTitleMaxLen = 80
)

type IChatService interface {
	Query(ctx context.Context, req *dto.SendQueryRequest) (*dto.SendQueryResponse, error)
	CreateSession(ctx context.Context, title string) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context) ([]*dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	orchestrator   *pipeline.Orchestrator
	sessionRepo    *memory.SessionRepository
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	orchestrator *pipeline.Orchestrator,
	sessionRepo *memory.SessionRepository,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		orchestrator:   orchestrator,
		sessionRepo:    sessionRepo,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// Query runs a single query through the pipeline and persists both sides of
// the exchange. Pipeline failures surface to the caller and nothing is
// persisted for that attempt.
func (s *chatService) Query(ctx context.Context, req *dto.SendQueryRequest) (*dto.SendQueryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.resolveSession(ctx, uow, req)
	if err != nil {
		return nil, err
	}

	state, err := s.orchestrator.Invoke(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	userMsg := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          req.Query,
		Role:          RoleUser,
		ChatSessionId: session.Id,
		CreatedAt:     time.Now(),
	}
	assistantMsg := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          state.Response,
		Role:          RoleAssistant,
		Action:        string(state.Action),
		Evaluation:    state.Evaluation,
		ChatSessionId: session.Id,
		CreatedAt:     time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().Create(ctx, &userMsg); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, &assistantMsg); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.sessionRepo.Save(&store.Session{
		ID:         session.Id.String(),
		LastQuery:  state.Query,
		LastAction: string(state.Action),
		LastAt:     time.Now(),
	})

	// Auxiliary event, a publish failure never fails the request.
	if s.eventPublisher != nil {
		evt := events.NewQueryCompletedEvent(session.Id, string(state.Action), state.Evaluation)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("chat_service", "Failed to publish QUERY_COMPLETED event", map[string]interface{}{
				"chat_session_id": session.Id.String(),
				"error":           err.Error(),
			})
		}
	}

	return buildQueryResponse(session, &userMsg, &assistantMsg, state), nil
}

func (s *chatService) resolveSession(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.SendQueryRequest) (*entity.ChatSession, error) {
	if req.ChatSessionId != uuid.Nil {
		session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: req.ChatSessionId})
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, fmt.Errorf("chat session not found")
		}
		return session, nil
	}

	session := entity.ChatSession{
		Id:        uuid.New(),
		Title:     sessionTitle(req.Query),
		CreatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *chatService) CreateSession(ctx context.Context, title string) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if title == "" {
		title = "New Chat"
	}
	session := entity.ChatSession{
		Id:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}
	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (s *chatService) GetAllSessions(ctx context.Context) ([]*dto.GetAllSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GetAllSessionsResponse, len(sessions))
	for i, sess := range sessions {
		res[i] = &dto.GetAllSessionsResponse{
			Id:        sess.Id,
			Title:     sess.Title,
			CreatedAt: sess.CreatedAt,
			UpdatedAt: sess.UpdatedAt,
		}
		// Recent activity comes from the scratchpad, not the database;
		// sessions idle past the cache TTL just report nothing.
		if cached, ok := s.sessionRepo.Get(sess.Id.String()); ok {
			res[i].LastAction = cached.LastAction
			at := cached.LastAt
			res[i].LastAt = &at
		}
	}
	return res, nil
}

func (s *chatService) GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GetChatHistoryResponse, len(messages))
	for i, msg := range messages {
		res[i] = &dto.GetChatHistoryResponse{
			Id:         msg.Id,
			Role:       msg.Role,
			Chat:       msg.Chat,
			Action:     msg.Action,
			Evaluation: msg.Evaluation,
			CreatedAt:  msg.CreatedAt,
		}
	}
	return res, nil
}

func (s *chatService) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.sessionRepo.Delete(sessionId.String())
	return nil
}

func buildQueryResponse(session *entity.ChatSession, userMsg, assistantMsg *entity.ChatMessage, state pipeline.State) *dto.SendQueryResponse {
	var passages []dto.PassageDTO
	for _, p := range state.Context {
		passages = append(passages, dto.PassageDTO{
			Text:     p.Text,
			Metadata: p.Metadata,
		})
	}

	return &dto.SendQueryResponse{
		ChatSessionId:    session.Id,
		ChatSessionTitle: session.Title,
		Sent: &dto.SendQueryResponseChat{
			Id:        userMsg.Id,
			Chat:      userMsg.Chat,
			Role:      userMsg.Role,
			CreatedAt: userMsg.CreatedAt,
		},
		Reply: &dto.SendQueryResponseChat{
			Id:        assistantMsg.Id,
			Chat:      assistantMsg.Chat,
			Role:      assistantMsg.Role,
			CreatedAt: assistantMsg.CreatedAt,
		},
		Action:      string(state.Action),
		City:        state.City,
		Context:     passages,
		WeatherData: state.WeatherData,
		Evaluation:  state.Evaluation,
	}
}

func sessionTitle(query string) string {
	runes := []rune(query)
	if len(runes) <= sessionTitleMaxLen {
		return query
	}
	return string(runes[:sessionTitleMaxLen]) + "..."
}
