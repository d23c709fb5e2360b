package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messenger-bot/config"
)

type capturedEvent struct {
	kind EventType
	m    Messaging
}

// captureEmitter records emitted events; dispatch runs in a goroutine, so
// access is synchronized.
type captureEmitter struct {
	mu     sync.Mutex
	events []capturedEvent
}

func (c *captureEmitter) Emit(kind EventType, m Messaging) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, capturedEvent{kind: kind, m: m})
}

func (c *captureEmitter) snapshot() []capturedEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]capturedEvent(nil), c.events...)
}

// useSyncDispatch makes envelope processing run inline so assertions on
// emitted (or not emitted) events are deterministic.
func useSyncDispatch(t *testing.T) {
	t.Helper()
	orig := dispatchAsync
	dispatchAsync = dispatchEnvelope
	t.Cleanup(func() { dispatchAsync = orig })
}

func newTestApp(t *testing.T, cfg *config.Config) (*fiber.App, *captureEmitter) {
	t.Helper()
	cfg.ApplyDefaults()
	app := fiber.New()
	emitter := &captureEmitter{}
	RegisterRoutes(app, cfg, emitter)
	return app, emitter
}

func testConfig() *config.Config {
	return &config.Config{
		AccessToken: "test_access_token",
		VerifyToken: "test_verify_token",
	}
}

func TestVerifyWebhook(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid subscription",
			query:      "hub.mode=subscribe&hub.verify_token=test_verify_token&hub.challenge=challenge_token",
			wantStatus: http.StatusOK,
			wantBody:   "challenge_token",
		},
		{
			name:       "token mismatch",
			query:      "hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=challenge_token",
			wantStatus: http.StatusForbidden,
			wantBody:   "Forbidden",
		},
		{
			name:       "wrong mode",
			query:      "hub.mode=unsubscribe&hub.verify_token=test_verify_token&hub.challenge=challenge_token",
			wantStatus: http.StatusForbidden,
			wantBody:   "Forbidden",
		},
		{
			name:       "missing verify token",
			query:      "hub.mode=subscribe&hub.challenge=challenge_token",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Bad Request",
		},
		{
			name:       "missing mode",
			query:      "hub.verify_token=test_verify_token&hub.challenge=challenge_token",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Bad Request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, testConfig())

			req := httptest.NewRequest(http.MethodGet, "/webhook?"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestVerifyWebhookEchoesChallengeVerbatim(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=test_verify_token&hub.challenge=1158201444", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "1158201444", string(body))
}

func postJSON(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestHandleWebhookEventEmitsMessage(t *testing.T) {
	app, emitter := newTestApp(t, testConfig())

	resp := postJSON(t, app,
		`{"object":"page","entry":[{"messaging":[{"sender":{"id":"123"},"message":{"text":"hi"}}]}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Eventually(t, func() bool {
		return len(emitter.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)

	events := emitter.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, EventMessage, events[0].kind)
	assert.Equal(t, "123", events[0].m.Sender.ID)
	require.NotNil(t, events[0].m.Message)
	assert.Equal(t, "hi", events[0].m.Message.Text)
}

func TestHandleWebhookEventProcessesFullMessagingArray(t *testing.T) {
	useSyncDispatch(t)
	app, emitter := newTestApp(t, testConfig())

	resp := postJSON(t, app, `{"object":"page","entry":[
		{"messaging":[
			{"sender":{"id":"1"},"message":{"text":"first"}},
			{"sender":{"id":"2"},"postback":{"title":"Go","payload":"GO"}}
		]},
		{"messaging":[
			{"sender":{"id":"3"},"referral":{"source":"SHORTLINK","type":"OPEN_THREAD","ref":"promo"}}
		]}
	]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	events := emitter.snapshot()
	require.Len(t, events, 3)
	assert.Equal(t, EventMessage, events[0].kind)
	assert.Equal(t, EventPostback, events[1].kind)
	assert.Equal(t, EventReferral, events[2].kind)
	assert.Equal(t, "promo", events[2].m.Referral.Ref)
}

func TestHandleWebhookEventEmitsUnknown(t *testing.T) {
	useSyncDispatch(t)
	app, emitter := newTestApp(t, testConfig())

	resp := postJSON(t, app,
		`{"object":"page","entry":[{"messaging":[{"sender":{"id":"123"},"timestamp":1}]}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	events := emitter.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, EventUnknown, events[0].kind)
}

func TestHandleWebhookEventRejectsNonPageObject(t *testing.T) {
	useSyncDispatch(t)
	app, emitter := newTestApp(t, testConfig())

	resp := postJSON(t, app, `{"object":"not_page","entry":[]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, emitter.snapshot())
}

func TestHandleWebhookEventRejectsMalformedBody(t *testing.T) {
	useSyncDispatch(t)
	app, emitter := newTestApp(t, testConfig())

	resp := postJSON(t, app, `{"object":`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, emitter.snapshot())
}

func TestHandleWebhookEventWithSignatureVerification(t *testing.T) {
	useSyncDispatch(t)
	cfg := testConfig()
	cfg.AppSecret = "app_secret"
	app, emitter := newTestApp(t, cfg)

	body := `{"object":"page","entry":[{"messaging":[{"sender":{"id":"123"},"message":{"text":"hi"}}]}]}`

	t.Run("missing signature", func(t *testing.T) {
		resp := postJSON(t, app, body)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Empty(t, emitter.snapshot())
	})

	t.Run("invalid signature", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Hub-Signature-256", "sha256=deadbeef")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("valid signature", func(t *testing.T) {
		mac := hmac.New(sha256.New, []byte("app_secret"))
		mac.Write([]byte(body))
		signature := "sha256=" + hex.EncodeToString(mac.Sum(nil))

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Hub-Signature-256", signature)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, emitter.snapshot(), 1)
	})
}

func TestRegisterRoutesUsesConfiguredEndpoint(t *testing.T) {
	cfg := testConfig()
	cfg.Endpoint = "/custom-webhook"
	app, _ := newTestApp(t, cfg)

	req := httptest.NewRequest(http.MethodGet,
		"/custom-webhook?hub.mode=subscribe&hub.verify_token=test_verify_token&hub.challenge=ok", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=test_verify_token&hub.challenge=ok", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
