package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/solhaven/astrocade/internal/model"
	"github.com/solhaven/astrocade/internal/services/identity"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: login, sync, chart and record update working against the wired app
func (s *IntegrationSuite) TestLoginSyncAndChartFlow() {
	// Step 1: exchange a code for a profile and open a session
	profile, err := s.app.MockProvider.Exchange(s.ctx, "code")
	s.Require().NoError(err)
	session := s.app.IdentityService.CreateSession(profile)

	// Step 2: first sync provisions the record
	rec, summary, err := s.app.SyncService.Sync(s.ctx, session)
	s.Require().NoError(err)
	s.Equal(model.Identity("123456789"), rec.ID)
	s.Equal("stargazer", summary.DisplayName)
	s.EqualValues(0, summary.Currency)

	// Step 3: a second sync finds the same record
	again, _, err := s.app.SyncService.Sync(s.ctx, session)
	s.Require().NoError(err)
	s.Equal(rec.CreatedAt, again.CreatedAt)

	// Step 4: compute a chart and write the result back
	result, err := s.app.ChartService.Compute(s.ctx, "1990-07-16", "14:30", "New York")
	s.Require().NoError(err)
	s.Equal("Cancer", result.SunSign)

	err = s.app.Store.UpdatePlayerFields(s.ctx, rec.ID, model.PlayerUpdate{
		BirthDate:     "1990-07-16",
		BirthTime:     "14:30",
		BirthLocation: "New York",
		SunSign:       result.SunSign,
		MoonSign:      result.MoonSign,
		AscendantSign: result.AscendantSign,
		MidheavenSign: result.MidheavenSign,
	})
	s.Require().NoError(err)

	stored, err := s.app.Store.GetPlayer(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal("Cancer", stored.SunSign)
	s.Equal("Scorpio", stored.MoonSign)
}

// Test: sessions expire with the clock and update then refuses the token
func (s *IntegrationSuite) TestSessionExpiry() {
	session := s.app.IdentityService.CreateSession(&identity.Profile{
		ID:       model.Identity("42"),
		Username: "fleeting",
	})

	_, err := s.app.IdentityService.ValidateSession(session.Token)
	s.Require().NoError(err)

	s.app.MockClock.Advance(48 * time.Hour)

	_, err = s.app.IdentityService.ValidateSession(session.Token)
	s.Require().ErrorIs(err, model.ErrInvalidSession)
}

// Test: updating before any sync reports a missing record
func (s *IntegrationSuite) TestUpdateWithoutRecord() {
	err := s.app.Store.UpdatePlayerFields(s.ctx, model.Identity("ghost"), model.PlayerUpdate{
		SunSign: "Leo",
	})
	s.Require().ErrorIs(err, model.ErrPlayerNotFound)
}
