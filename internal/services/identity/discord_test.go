package identity_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/solhaven/astrocade/internal/model"
	"github.com/solhaven/astrocade/internal/services/identity"
)

type DiscordTestSuite struct {
	suite.Suite
	server   *httptest.Server
	provider *identity.Discord

	tokenStatus   int
	profileStatus int
	profileBody   string
}

func (s *DiscordTestSuite) SetupTest() {
	s.tokenStatus = http.StatusOK
	s.profileStatus = http.StatusOK
	s.profileBody = `{"id":"123456789","username":"stargazer"}`

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if s.tokenStatus != http.StatusOK {
			w.WriteHeader(s.tokenStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/users/@me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.profileStatus)
		_, _ = w.Write([]byte(s.profileBody))
	})
	s.server = httptest.NewServer(mux)

	s.provider = identity.NewDiscord(identity.DiscordConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		CallbackURL:  "http://localhost/auth/discord/callback",
		AuthURL:      s.server.URL + "/oauth2/authorize",
		TokenURL:     s.server.URL + "/oauth2/token",
		APIBaseURL:   s.server.URL,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *DiscordTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *DiscordTestSuite) TestAuthCodeURLCarriesState() {
	url := s.provider.AuthCodeURL("nonce-123")
	s.Require().Contains(url, "state=nonce-123")
	s.Require().Contains(url, "client_id=client-id")
	s.Require().Contains(url, "scope=identify")
}

func (s *DiscordTestSuite) TestExchangeReturnsProfile() {
	profile, err := s.provider.Exchange(context.Background(), "auth-code")
	s.Require().NoError(err)
	s.Require().Equal(model.Identity("123456789"), profile.ID)
	s.Require().Equal("stargazer", profile.Username)
}

func (s *DiscordTestSuite) TestExchangeTokenFailure() {
	s.tokenStatus = http.StatusBadRequest

	_, err := s.provider.Exchange(context.Background(), "bad-code")
	s.Require().ErrorIs(err, model.ErrUpstream)
}

func (s *DiscordTestSuite) TestExchangeProfileFailure() {
	s.profileStatus = http.StatusInternalServerError

	_, err := s.provider.Exchange(context.Background(), "auth-code")
	s.Require().ErrorIs(err, model.ErrUpstream)
}

func (s *DiscordTestSuite) TestExchangeProfileMissingID() {
	s.profileBody = `{"username":"ghost"}`

	_, err := s.provider.Exchange(context.Background(), "auth-code")
	s.Require().ErrorIs(err, model.ErrUpstream)
	s.Require().True(strings.Contains(err.Error(), "missing id"))
}

func TestDiscordTestSuite(t *testing.T) {
	suite.Run(t, new(DiscordTestSuite))
}
