package memory

import (
	"testing"
	"time"

	"ai-pipeline-be/pkg/store"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewSessionRepository()

	session := &store.Session{
		ID:         "session-1",
		LastQuery:  "weather in Paris",
		LastAction: "weather",
		LastAt:     time.Now(),
	}
	repo.Save(session)

	got, found := repo.Get("session-1")
	if !found {
		t.Fatal("session not found after Save")
	}
	if got.LastAction != "weather" || got.LastQuery != "weather in Paris" {
		t.Errorf("got %+v, want the saved session", got)
	}
}

func TestSessionRepositoryMiss(t *testing.T) {
	repo := NewSessionRepository()

	if _, found := repo.Get("missing"); found {
		t.Error("Get returned a session for an unknown id")
	}
}

func TestSessionRepositoryDelete(t *testing.T) {
	repo := NewSessionRepository()

	repo.Save(&store.Session{ID: "session-2"})
	repo.Delete("session-2")

	if _, found := repo.Get("session-2"); found {
		t.Error("session still present after Delete")
	}
}
