package providers

import (
	"context"

	"flight-deals-service/internal/ports"
)

// MockProvider returns canned offers for tests. Err, when set, fails
// every call; TransientErr fails the first FailuresLeft calls and then
// the canned offers are served, which exercises the caller's retry
// policy.
type MockProvider struct {
	ProviderName string
	Offers       []ports.Offer
	Err          error
	TransientErr error
	FailuresLeft int

	Calls []ports.SearchRequest
}

func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "Mock"
	}
	return m.ProviderName
}

func (m *MockProvider) Search(_ context.Context, req ports.SearchRequest) ([]ports.Offer, error) {
	m.Calls = append(m.Calls, req)

	if m.FailuresLeft > 0 {
		m.FailuresLeft--
		return nil, m.TransientErr
	}
	if m.Err != nil {
		return nil, m.Err
	}

	return m.Offers, nil
}
