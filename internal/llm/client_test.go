package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) Config {
	cfg := DefaultConfig()
	cfg.URL = url
	cfg.Timeout = 2 * time.Second
	return cfg
}

type recordingObserver struct {
	mu     sync.Mutex
	events []CallEvent
}

func (o *recordingObserver) OnCallComplete(e CallEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last(t *testing.T) CallEvent {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.events)
	return o.events[len(o.events)-1]
}

func TestAgentClient_Chat_ResolvesTierToModel(t *testing.T) {
	var got chatBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"response":   "hello",
			"model":      got.Model,
			"agent_type": got.AgentType,
		})
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewAgentClient(testConfig(srv.URL), obs)
	defer client.Close()

	resp, err := client.Chat(context.Background(), ChatRequest{Task: TaskTicketParse, Message: "parse this"})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Text)
	assert.Equal(t, "glm-4.5-air", resp.Model)
	assert.Equal(t, "planner", resp.AgentType)

	assert.Equal(t, "parse this", got.Message)
	assert.Equal(t, "glm-4.5-air", got.Model, "ticket parsing runs on the fast tier")
	assert.Equal(t, 2048, got.MaxTokens)

	ev := obs.last(t)
	assert.True(t, ev.Success)
	assert.Equal(t, TierFast, ev.Tier)
	assert.Equal(t, TaskTicketParse, ev.Task)
}

func TestAgentClient_Chat_ExplicitTierAndOverrides(t *testing.T) {
	var got chatBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"response":"ok","model":"glm-5","agent_type":"frontend"}`))
	}))
	defer srv.Close()

	client := NewAgentClient(testConfig(srv.URL), nil)
	temp := 0.1
	_, err := client.Chat(context.Background(), ChatRequest{
		Task:        TaskTaskAnalysis,
		Tier:        TierSmart,
		AgentType:   "frontend",
		Message:     "m",
		Temperature: &temp,
	})
	require.NoError(t, err)
	assert.Equal(t, "glm-5", got.Model)
	assert.Equal(t, "frontend", got.AgentType)
	assert.Equal(t, 0.1, got.Temperature)
}

func TestAgentClient_Chat_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"GLM API error: quota exceeded"}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewAgentClient(testConfig(srv.URL), obs)
	_, err := client.Chat(context.Background(), ChatRequest{Task: TaskChat, Message: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
	assert.Contains(t, err.Error(), "agent request failed")
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, "UNEXPECTED_RESPONSE", obs.last(t).ErrorCode)
}

func TestAgentClient_Chat_WrongShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":42}`))
	}))
	defer srv.Close()

	client := NewAgentClient(testConfig(srv.URL), nil)
	_, err := client.Chat(context.Background(), ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestAgentClient_Chat_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>proxy error</html>`))
	}))
	defer srv.Close()

	client := NewAgentClient(testConfig(srv.URL), nil)
	_, err := client.Chat(context.Background(), ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestAgentClient_Chat_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Timeout = 50 * time.Millisecond
	client := NewAgentClient(cfg, nil)
	_, err := client.Chat(context.Background(), ChatRequest{Message: "slow"})
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestAgentClient_Chat_Unavailable(t *testing.T) {
	client := NewAgentClient(testConfig("http://127.0.0.1:1"), nil)
	_, err := client.Chat(context.Background(), ChatRequest{Message: "anyone?"})
	assert.ErrorIs(t, err, ErrAgentUnavailable)
}

func TestAgentClient_GenerateStandup(t *testing.T) {
	var got StandupRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-standup", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"standup":"**Yesterday:**\n- fixed login"}`))
	}))
	defer srv.Close()

	client := NewAgentClient(testConfig(srv.URL), nil)
	text, err := client.GenerateStandup(context.Background(), StandupRequest{
		YesterdayLogs: []StandupLog{{Description: "fixed login", DurationMinutes: 90}},
	})
	require.NoError(t, err)
	assert.Contains(t, text, "fixed login")
	require.Len(t, got.YesterdayLogs, 1)
	assert.Equal(t, 90, got.YesterdayLogs[0].DurationMinutes)
	assert.NotNil(t, got.TodayTickets, "empty lists are sent as [] not null")
}

func TestAgentClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{"status":"ok","service":"agent_service"}`))
	}))
	defer srv.Close()

	client := NewAgentClient(testConfig(srv.URL+"/"), nil)
	assert.NoError(t, client.Health(context.Background()))
}

func TestAgentClient_CloseRejectsLaterCalls(t *testing.T) {
	client := NewAgentClient(testConfig("http://127.0.0.1:1"), nil)
	require.NoError(t, client.Close())
	require.NoError(t, client.Close())

	_, err := client.Chat(context.Background(), ChatRequest{Message: "x"})
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, client.Health(context.Background()), ErrClosed)
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("", TierSmart)
	require.NoError(t, err)
	assert.Equal(t, TierSmart, tier)

	tier, err = ParseTier("fast", TierSmart)
	require.NoError(t, err)
	assert.Equal(t, TierFast, tier)

	_, err = ParseTier("turbo", TierSmart)
	assert.Error(t, err)
}

func TestLogObserver_WritesStructuredEvent(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(slog.New(slog.NewJSONHandler(&buf, nil)))
	obs.OnCallComplete(CallEvent{Task: TaskChat, Tier: TierSmart, Model: "glm-5", Success: false, ErrorCode: "TIMEOUT"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "agent_call", line["msg"])
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "glm-5", line["model"])
	assert.Equal(t, "TIMEOUT", line["error_code"])
}
