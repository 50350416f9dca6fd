package service

import (
	"context"
	"testing"
	"time"

	"ai-pipeline-be/internal/entity"
	"ai-pipeline-be/internal/repository/contract"
	"ai-pipeline-be/internal/repository/memory"
	"ai-pipeline-be/internal/repository/specification"
	"ai-pipeline-be/internal/repository/unitofwork"
	"ai-pipeline-be/pkg/pipeline"
	"ai-pipeline-be/pkg/store"
	"ai-pipeline-be/pkg/weather"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fakeChatSessionRepository struct {
	sessions []*entity.ChatSession
}

func (r *fakeChatSessionRepository) Create(ctx context.Context, session *entity.ChatSession) error {
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *fakeChatSessionRepository) Update(ctx context.Context, session *entity.ChatSession) error {
	return nil
}

func (r *fakeChatSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (r *fakeChatSessionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	if len(r.sessions) == 0 {
		return nil, nil
	}
	return r.sessions[0], nil
}

func (r *fakeChatSessionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	return r.sessions, nil
}

func (r *fakeChatSessionRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.sessions)), nil
}

type fakeUnitOfWork struct {
	sessions *fakeChatSessionRepository
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository           { return nil }
func (u *fakeUnitOfWork) DocumentChunkRepository() contract.DocumentChunkRepository { return nil }
func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository     { return u.sessions }
func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository     { return nil }

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func TestBuildQueryResponseCarriesWeatherData(t *testing.T) {
	session := &entity.ChatSession{Id: uuid.New(), Title: "Weather chat"}
	userMsg := &entity.ChatMessage{Id: uuid.New(), Chat: "weather in Paris?", Role: RoleUser}
	assistantMsg := &entity.ChatMessage{Id: uuid.New(), Chat: "Sunny, 18.2°C.", Role: RoleAssistant}

	payload := weather.Payload{
		"name": "Paris",
		"main": map[string]any{"temp": 18.2},
	}
	state := pipeline.State{
		Query:       "weather in Paris?",
		Action:      pipeline.ActionWeather,
		City:        "Paris",
		WeatherData: payload,
		Response:    "Sunny, 18.2°C.",
	}

	res := buildQueryResponse(session, userMsg, assistantMsg, state)

	assert.Equal(t, "weather", res.Action)
	assert.Equal(t, "Paris", res.City)
	assert.Equal(t, payload, res.WeatherData)
	assert.Empty(t, res.Context)
}

func TestBuildQueryResponseDocumentPathHasNoWeatherData(t *testing.T) {
	session := &entity.ChatSession{Id: uuid.New(), Title: "Docs"}
	userMsg := &entity.ChatMessage{Id: uuid.New(), Chat: "q", Role: RoleUser}
	assistantMsg := &entity.ChatMessage{Id: uuid.New(), Chat: "a", Role: RoleAssistant}

	state := pipeline.State{
		Query:    "q",
		Action:   pipeline.ActionDocument,
		Context:  []pipeline.Passage{{Text: "evidence"}},
		Response: "a",
	}

	res := buildQueryResponse(session, userMsg, assistantMsg, state)

	assert.Empty(t, res.WeatherData)
	require.Len(t, res.Context, 1)
	assert.Equal(t, "evidence", res.Context[0].Text)
}

func TestGetAllSessionsIncludesRecentActivity(t *testing.T) {
	activeId := uuid.New()
	idleId := uuid.New()
	now := time.Now()

	sessions := &fakeChatSessionRepository{sessions: []*entity.ChatSession{
		{Id: activeId, Title: "Weather chat", CreatedAt: now},
		{Id: idleId, Title: "Old chat", CreatedAt: now.Add(-48 * time.Hour)},
	}}
	uowFactory := &fakeUowFactory{uow: &fakeUnitOfWork{sessions: sessions}}

	sessionRepo := memory.NewSessionRepository()
	sessionRepo.Save(&store.Session{
		ID:         activeId.String(),
		LastQuery:  "weather in Paris",
		LastAction: "weather",
		LastAt:     now,
	})

	svc := NewChatService(uowFactory, nil, sessionRepo, nil, noopLogger{})

	res, err := svc.GetAllSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 2)

	assert.Equal(t, "weather", res[0].LastAction)
	require.NotNil(t, res[0].LastAt)
	assert.WithinDuration(t, now, *res[0].LastAt, time.Second)

	// No scratchpad entry, nothing reported.
	assert.Empty(t, res[1].LastAction)
	assert.Nil(t, res[1].LastAt)
}
