package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"leaddizioni/internal/game"
	"leaddizioni/internal/repository"
	"leaddizioni/internal/security"
	"leaddizioni/internal/service"
)

const testSession = "projects/addizioni/agent/sessions/abc123"

func newTestHandler(seed int64) *WebhookHandler {
	store := repository.NewMemoryContextRepository(time.Minute)
	engine := game.NewEngine(game.NewRandomPicker(seed))
	return NewWebhookHandler(service.NewTurnService(engine, store, 1))
}

func webhookBody(intent string, params map[string]any) string {
	req := map[string]any{
		"responseId": "r-1",
		"session":    testSession,
		"queryResult": map[string]any{
			"queryText":  "test",
			"parameters": params,
			"intent":     map[string]any{"displayName": intent},
		},
	}
	data, _ := json.Marshal(req)
	return string(data)
}

func postTurn(t *testing.T, h *WebhookHandler, intent string, params map[string]any) (*httptest.ResponseRecorder, *WebhookResponse) {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(webhookBody(intent, params)))
	w := httptest.NewRecorder()
	h.HandleWebhook(w, r)

	if w.Code != http.StatusOK {
		return w, nil
	}
	var resp WebhookResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return w, &resp
}

func TestWebhookWelcome(t *testing.T) {
	h := newTestHandler(1)

	w, resp := postTurn(t, h, "Welcome and Level Choice", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Response-Id") == "" {
		t.Error("missing X-Response-Id header")
	}
	if !strings.HasPrefix(resp.FulfillmentText, "Benvenuto!") {
		t.Errorf("FulfillmentText = %q", resp.FulfillmentText)
	}

	google := resp.Payload.Google
	if !google.ExpectUserResponse {
		t.Error("welcome should keep the conversation open")
	}
	if len(google.RichResponse.Suggestions) != 4 || google.RichResponse.Suggestions[0].Title != "base" {
		t.Errorf("suggestions = %+v", google.RichResponse.Suggestions)
	}
	if len(google.RichResponse.Items) != 2 || google.RichResponse.Items[1].BasicCard == nil {
		t.Errorf("expected simple response and basic card, got %+v", google.RichResponse.Items)
	}
	if len(resp.OutputContexts) != 0 {
		t.Errorf("welcome should not write contexts: %+v", resp.OutputContexts)
	}
}

func TestWebhookGameFlow(t *testing.T) {
	h := newTestHandler(7)

	_, resp := postTurn(t, h, "Difficulty Level", map[string]any{"difficultyLevel": "base"})
	if resp == nil {
		t.Fatal("set level failed")
	}
	if !strings.HasPrefix(resp.FulfillmentText, "Quanto fa ") {
		t.Fatalf("FulfillmentText = %q", resp.FulfillmentText)
	}
	if len(resp.OutputContexts) != 1 {
		t.Fatalf("expected data context, got %+v", resp.OutputContexts)
	}
	data := resp.OutputContexts[0]
	if data.Name != testSession+"/contexts/data" || data.LifespanCount != 1 {
		t.Errorf("context = %+v", data)
	}
	answer := data.Parameters["firstAddend"].(float64) + data.Parameters["secondAddend"].(float64)

	_, resp = postTurn(t, h, "Response Answer", map[string]any{"guessedNumber": answer})
	if resp == nil {
		t.Fatal("answer failed")
	}
	if !strings.Contains(resp.Payload.Google.RichResponse.Items[0].SimpleResponse.TextToSpeech, "<speak>") {
		t.Errorf("right answer should carry an audio cue: %+v", resp.Payload.Google.RichResponse.Items[0])
	}
	if strings.Contains(resp.FulfillmentText, "<audio") {
		t.Errorf("display text carries markup: %q", resp.FulfillmentText)
	}
	if got := resp.OutputContexts[0].Parameters["correctGuesses"]; got != float64(1) {
		t.Errorf("correctGuesses = %v, want 1", got)
	}

	_, resp = postTurn(t, h, "End of game", nil)
	if resp == nil {
		t.Fatal("end of game failed")
	}
	if resp.Payload.Google.ExpectUserResponse {
		t.Error("end of game should close the conversation")
	}
	if !strings.Contains(resp.FulfillmentText, "Hai risposto correttamente a una domanda su una.") {
		t.Errorf("FulfillmentText = %q", resp.FulfillmentText)
	}
	if len(resp.OutputContexts) != 1 || resp.OutputContexts[0].LifespanCount != 0 {
		t.Errorf("end of game should clear the data context: %+v", resp.OutputContexts)
	}
}

func TestWebhookErrors(t *testing.T) {
	h := newTestHandler(1)

	tests := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{name: "wrong method", method: http.MethodGet, want: http.StatusMethodNotAllowed},
		{name: "malformed json", method: http.MethodPost, body: "{", want: http.StatusBadRequest},
		{name: "missing session", method: http.MethodPost, body: `{"queryResult":{"intent":{"displayName":"Welcome and Level Choice"}}}`, want: http.StatusBadRequest},
		{name: "unknown intent", method: http.MethodPost, body: webhookBody("Default Fallback Intent", nil), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, "/webhook", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.HandleWebhook(w, r)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %q)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(1)
	w := httptest.NewRecorder()

	h.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestMiddlewareChain(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("rate limit", func(t *testing.T) {
		handler := RateLimit(security.NewRateLimiter(1, time.Minute))(ok)

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/webhook", nil))
		second := httptest.NewRecorder()
		handler.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/webhook", nil))

		if first.Code != http.StatusNoContent || second.Code != http.StatusTooManyRequests {
			t.Errorf("codes = %d, %d", first.Code, second.Code)
		}
		if second.Header().Get("Retry-After") != "60" {
			t.Errorf("Retry-After = %q", second.Header().Get("Retry-After"))
		}
	})

	t.Run("rate limit ignores spoofed forwarding headers", func(t *testing.T) {
		handler := RateLimit(security.NewRateLimiter(1, time.Minute))(ok)

		codes := make([]int, 0, 3)
		for _, forwarded := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
			r := httptest.NewRequest(http.MethodPost, "/webhook", nil)
			r.Header.Set("X-Forwarded-For", forwarded)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			codes = append(codes, w.Code)
		}
		if codes[0] != http.StatusNoContent || codes[1] != http.StatusTooManyRequests || codes[2] != http.StatusTooManyRequests {
			t.Errorf("codes = %v, want [204 429 429]", codes)
		}
	})

	t.Run("webhook auth", func(t *testing.T) {
		handler := RequireWebhookAuth(security.NewWebhookAuthenticator("", "", "secret", ""))(ok)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook", nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("logging records status", func(t *testing.T) {
		w := httptest.NewRecorder()
		Logging(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if w.Code != http.StatusNoContent {
			t.Errorf("status = %d", w.Code)
		}
	})
}
