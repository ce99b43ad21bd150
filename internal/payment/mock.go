package payment

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/logger"
)

// MockProvider keeps checkout sessions in memory and serves a tiny checkout
// page so the success and cancel callbacks can be exercised without Stripe.
type MockProvider struct {
	baseURL string

	mu       sync.Mutex
	sessions map[string]*mockSession
}

type mockSession struct {
	Session
	req SessionRequest
}

// NewMockProvider builds checkout URLs under baseURL (e.g. "http://localhost:8080").
func NewMockProvider(baseURL string) *MockProvider {
	return &MockProvider{
		baseURL:  strings.TrimRight(baseURL, "/"),
		sessions: make(map[string]*mockSession),
	}
}

func (m *MockProvider) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: create session: %w", domain.ErrPaymentProvider, err)
	}
	if req.AmountMinor < 0 {
		return nil, fmt.Errorf("%w: negative amount %d", domain.ErrPaymentProvider, req.AmountMinor)
	}

	id := "cs_mock_" + uuid.New().String()
	s := &mockSession{
		Session: Session{
			ID:     id,
			URL:    fmt.Sprintf("%s/mock-checkout/%s", m.baseURL, id),
			Status: StatusOpen,
		},
		req: req,
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	logger.Debug("Mock checkout session created", "sessionID", id, "amount", req.AmountMinor, "reference", req.ClientReferenceID)
	out := s.Session
	return &out, nil
}

func (m *MockProvider) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: retrieve session: %w", domain.ErrPaymentProvider, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: no such session %s", domain.ErrPaymentProvider, sessionID)
	}
	out := s.Session
	return &out, nil
}

// SetStatus moves a session to the given status.
func (m *MockProvider) SetStatus(sessionID string, status SessionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return fmt.Errorf("no such session %s", sessionID)
	}
	s.Status = status
	return nil
}

// RegisterRoutes serves GET /mock-checkout/{id}?action=pay|cancel. Paying
// completes the session; both actions redirect to the matching callback.
func (m *MockProvider) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/mock-checkout/{id}", m.handleCheckout).Methods(http.MethodGet)
}

func (m *MockProvider) handleCheckout(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	m.mu.Lock()
	s, ok := m.sessions[id]
	var target string
	if ok {
		switch r.URL.Query().Get("action") {
		case "pay":
			s.Status = StatusComplete
			target = s.req.SuccessURL
		case "cancel":
			target = s.req.CancelURL
		}
	}
	m.mu.Unlock()

	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if target == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, `<html><body><h1>%s</h1><p>%d %s</p><a href="?action=pay">Pay</a> <a href="?action=cancel">Cancel</a></body></html>`,
			s.req.ProductName, s.req.AmountMinor, s.req.Currency)
		return
	}
	http.Redirect(w, r, strings.ReplaceAll(target, SessionIDPlaceholder, id), http.StatusSeeOther)
}
