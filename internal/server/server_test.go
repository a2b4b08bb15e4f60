package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/bot"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/model"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/session"
)

type stubClient struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
}

func (s *stubClient) Chat(_ context.Context, _ []model.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestServer(t *testing.T, client model.Client) (*Server, *session.Store) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	store := session.NewStore(func(name string) (*bot.Bot, error) {
		return bot.New(name, client, nil, nil, nil, bot.WithLogger(log))
	}, time.Hour)
	t.Cleanup(store.Close)

	return New(store, log), store
}

func postChat(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, &stubClient{reply: "ok"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChatReturnsReply(t *testing.T) {
	client := &stubClient{reply: "Sip the tea slowly, nephew."}
	s, store := newTestServer(t, client)

	rec := postChat(t, s, `{"user_name":"Alice","message":"I feel anxious"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Sip the tea slowly, nephew.", resp.Reply)
	assert.Equal(t, 1, client.callCount())
	assert.Equal(t, 1, store.Len())
}

func TestChatReusesSessionAcrossRequests(t *testing.T) {
	client := &stubClient{reply: "ok"}
	s, store := newTestServer(t, client)

	require.Equal(t, http.StatusOK, postChat(t, s, `{"user_name":"Alice","message":"one"}`).Code)
	require.Equal(t, http.StatusOK, postChat(t, s, `{"user_name":"Alice","message":"two"}`).Code)

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 2, client.callCount())
}

func TestChatRejectsInvalidJSON(t *testing.T) {
	client := &stubClient{reply: "ok"}
	s, store := newTestServer(t, client)

	rec := postChat(t, s, `{"user_name": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, client.callCount())
	assert.Zero(t, store.Len())
}

func TestChatRejectsBlankFieldsBeforeTouchingSessions(t *testing.T) {
	client := &stubClient{reply: "ok"}
	s, store := newTestServer(t, client)

	for _, body := range []string{
		`{"user_name":"","message":"hi"}`,
		`{"user_name":"Alice","message":"   "}`,
		`{}`,
	} {
		rec := postChat(t, s, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}

	assert.Zero(t, client.callCount())
	assert.Zero(t, store.Len())
}

func TestChatReportsModelFailureAsBadGateway(t *testing.T) {
	client := &stubClient{err: errors.New("model unavailable")}
	s, _ := newTestServer(t, client)

	rec := postChat(t, s, `{"user_name":"Alice","message":"hello"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestChatReportsSessionFactoryFailure(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := session.NewStore(func(string) (*bot.Bot, error) {
		return nil, errors.New("no client")
	}, time.Hour)
	t.Cleanup(store.Close)

	s := New(store, log)
	rec := postChat(t, s, `{"user_name":"Alice","message":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
