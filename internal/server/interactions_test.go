package server

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingdomain "github.com/thititongumpun/uoobpremium/internal/billing/domain"
	"github.com/thititongumpun/uoobpremium/internal/clock"
	"github.com/thititongumpun/uoobpremium/internal/config"
)

type stubBilling struct {
	mu           sync.Mutex
	summary      *billingdomain.BillSummary
	summarizeErr error
	calls        int
}

func (s *stubBilling) RunCycle(ctx context.Context, period billingdomain.Period) (billingdomain.CycleResult, error) {
	return billingdomain.CycleResult{Period: period}, nil
}

func (s *stubBilling) Summarize(ctx context.Context, period billingdomain.Period) (*billingdomain.BillSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.summarizeErr != nil {
		return nil, s.summarizeErr
	}
	return s.summary, nil
}

func (s *stubBilling) summarizeCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type testHarness struct {
	engine  *gin.Engine
	billing *stubBilling
	private ed25519.PrivateKey
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	billing := &stubBilling{}
	engine := gin.New()
	srv := NewServer(Params{
		Config: config.Config{
			Discord: config.DiscordConfig{PublicKey: hex.EncodeToString(public)},
		},
		Log:        zap.NewNop(),
		Engine:     engine,
		BillingSvc: billing,
		Clock:      clock.NewFake(time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)),
	})
	srv.RegisterRoutes()

	return &testHarness{engine: engine, billing: billing, private: private}
}

func (h *testHarness) signedRequest(body string) *http.Request {
	timestamp := "1700000000"
	signature := ed25519.Sign(h.private, []byte(timestamp+body))

	req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(signature))
	req.Header.Set("X-Signature-Timestamp", timestamp)
	return req
}

func (h *testHarness) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)
	return rec
}

func TestLiveness(t *testing.T) {
	h := newTestHarness(t)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Discord Bot Worker is active") {
		t.Fatalf("unexpected liveness body: %q", rec.Body.String())
	}
}

func TestPingAnswersPong(t *testing.T) {
	h := newTestHarness(t)

	rec := h.do(h.signedRequest(`{"type":1}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != `{"type":1}` {
		t.Fatalf("expected bare pong, got %q", rec.Body.String())
	}
}

func TestRejectsBadSignatureBeforeRouting(t *testing.T) {
	h := newTestHarness(t)

	// Signature was produced over a different body.
	signed := h.signedRequest(`{"type":2,"data":{"name":"status"}}`)
	req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewBufferString(`{"type":2,"data":{"name":"checkbill"}}`))
	req.Header.Set("X-Signature-Ed25519", signed.Header.Get("X-Signature-Ed25519"))
	req.Header.Set("X-Signature-Timestamp", signed.Header.Get("X-Signature-Timestamp"))

	rec := h.do(req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if h.billing.summarizeCalls() != 0 {
		t.Fatal("command handler must not run on failed verification")
	}
}

func TestRejectsMissingSignatureHeaders(t *testing.T) {
	h := newTestHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewBufferString(`{"type":1}`))
	rec := h.do(req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without signature headers, got %d", rec.Code)
	}
}

func TestRejectsTamperedTimestamp(t *testing.T) {
	h := newTestHarness(t)

	req := h.signedRequest(`{"type":1}`)
	req.Header.Set("X-Signature-Timestamp", "1700000001")

	rec := h.do(req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for tampered timestamp, got %d", rec.Code)
	}
}

func TestRejectsMalformedSignatureHex(t *testing.T) {
	h := newTestHarness(t)

	req := h.signedRequest(`{"type":1}`)
	req.Header.Set("X-Signature-Ed25519", "not-hex")

	rec := h.do(req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed signature, got %d", rec.Code)
	}
}

func TestMalformedJSONAfterAuthIsBadRequest(t *testing.T) {
	h := newTestHarness(t)

	rec := h.do(h.signedRequest(`{"type":`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestUnknownCommandIsBadRequest(t *testing.T) {
	h := newTestHarness(t)

	rec := h.do(h.signedRequest(`{"type":2,"data":{"name":"selfdestruct"}}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown command, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unknown_command") {
		t.Fatalf("expected unknown_command error code, got %q", rec.Body.String())
	}
}

func TestUnknownInteractionTypeIsBadRequest(t *testing.T) {
	h := newTestHarness(t)

	rec := h.do(h.signedRequest(`{"type":99}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown interaction type, got %d", rec.Code)
	}
}

func TestStatusCommandEchoesCaller(t *testing.T) {
	h := newTestHarness(t)

	body := `{"type":2,"data":{"name":"status"},"member":{"user":{"id":"42","username":"somchai","avatar":"abc"}}}`
	rec := h.do(h.signedRequest(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "<@42>") {
		t.Fatalf("status reply missing mention: %q", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "somchai") {
		t.Fatalf("status reply missing username: %q", rec.Body.String())
	}
}

func TestCheckBillReportsAllPaid(t *testing.T) {
	h := newTestHarness(t)
	h.billing.summary = &billingdomain.BillSummary{
		Period: billingdomain.Period{Year: 2025, Month: 3},
		Statuses: []billingdomain.PaymentStatus{
			{Name: "A", IsPaid: true},
			{Name: "B", IsPaid: true},
		},
		AllPaid: true,
	}

	rec := h.do(h.signedRequest(`{"type":2,"data":{"name":"checkbill"}}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "จ่ายครบทุกคนแล้ว") {
		t.Fatalf("all-paid summary missing celebration line: %q", rec.Body.String())
	}
}

func TestCheckBillWithoutCycleShowsNotFoundEmbed(t *testing.T) {
	h := newTestHarness(t)
	h.billing.summarizeErr = billingdomain.ErrBillNotFound

	rec := h.do(h.signedRequest(`{"type":2,"data":{"name":"checkbill"}}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with not-found embed, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ไม่พบรายการบิล") {
		t.Fatalf("expected not-found embed, got %q", rec.Body.String())
	}
}

func TestCheckBillStoreFailureShowsVisibleError(t *testing.T) {
	h := newTestHarness(t)
	h.billing.summarizeErr = errors.New("db gone")

	rec := h.do(h.signedRequest(`{"type":2,"data":{"name":"checkbill"}}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("interaction must still be answered, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ไม่สามารถดึงข้อมูลบิล") {
		t.Fatalf("expected visible error line, got %q", rec.Body.String())
	}
}

func TestInteractionRateLimit(t *testing.T) {
	h := newTestHarness(t)

	var limited bool
	for i := 0; i < 40; i++ {
		rec := h.do(h.signedRequest(`{"type":1}`))
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Fatal("expected the rate limiter to trip within 40 requests")
	}
}
