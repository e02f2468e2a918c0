package connect

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// MockConnectService implements Service in memory for unit tests and local runs.
type MockConnectService struct {
	mu               sync.Mutex
	securityProfiles []ProfileSummary
	routingProfiles  []ProfileSummary
	users            map[string]CreatedUser

	// Injected failures, returned as-is when set.
	ListSecurityErr error
	ListRoutingErr  error
	CreateErr       error

	// Recorded calls.
	ListSecurityCalls int
	ListRoutingCalls  int
	PageSizes         []int32
	Created           []CreateUserParams
}

// NewMockConnectService creates a mock pre-populated with the given profiles.
func NewMockConnectService(security, routing []ProfileSummary) *MockConnectService {
	return &MockConnectService{
		securityProfiles: security,
		routingProfiles:  routing,
		users:            make(map[string]CreatedUser),
	}
}

func (m *MockConnectService) ListSecurityProfiles(_ context.Context, _ string, pageSize int32) ([]ProfileSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListSecurityCalls++
	m.PageSizes = append(m.PageSizes, pageSize)
	if m.ListSecurityErr != nil {
		return nil, m.ListSecurityErr
	}
	return append([]ProfileSummary(nil), m.securityProfiles...), nil
}

func (m *MockConnectService) ListRoutingProfiles(_ context.Context, _ string, pageSize int32) ([]ProfileSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListRoutingCalls++
	m.PageSizes = append(m.PageSizes, pageSize)
	if m.ListRoutingErr != nil {
		return nil, m.ListRoutingErr
	}
	return append([]ProfileSummary(nil), m.routingProfiles...), nil
}

// CreateUser rejects usernames that already exist, like the real platform.
func (m *MockConnectService) CreateUser(_ context.Context, params CreateUserParams) (*CreatedUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Created = append(m.Created, params)
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	if _, exists := m.users[params.Username]; exists {
		return nil, &UpstreamError{
			Kind:    UpstreamErrorKindDuplicate,
			Code:    "DuplicateResourceException",
			Message: fmt.Sprintf("User with username %s already exists", params.Username),
			Status:  http.StatusConflict,
			cause:   ErrDuplicateUser,
		}
	}

	n := len(m.users) + 1
	u := CreatedUser{
		UserID:         fmt.Sprintf("user-%d", n),
		UserARN:        fmt.Sprintf("arn:aws:connect:us-east-1:000000000000:instance/%s/agent/user-%d", params.InstanceID, n),
		RequestID:      fmt.Sprintf("req-%d", n),
		HTTPStatusCode: http.StatusOK,
	}
	m.users[params.Username] = u
	return &u, nil
}

// CreateCalls reports how many CreateUser calls were made.
func (m *MockConnectService) CreateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Created)
}

// Compile-time interface check
var _ Service = (*MockConnectService)(nil)
