package mocks

import (
	"context"

	"github.com/solhaven/astrocade/internal/services/identity"
)

// MockProvider is a canned identity provider for tests. Exchange returns
// the configured profile regardless of code, unless Err is set.
type MockProvider struct {
	Profile identity.Profile
	Err     error

	ExchangeCalls []string
}

var _ identity.Provider = (*MockProvider)(nil)

func (p *MockProvider) Name() string {
	return "mock"
}

func (p *MockProvider) AuthCodeURL(state string) string {
	return "/mock/authorize?state=" + state
}

func (p *MockProvider) Exchange(_ context.Context, code string) (*identity.Profile, error) {
	p.ExchangeCalls = append(p.ExchangeCalls, code)
	if p.Err != nil {
		return nil, p.Err
	}
	profile := p.Profile
	return &profile, nil
}
