package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/solhaven/astrocade/internal/dependencies/mocks"
	"github.com/solhaven/astrocade/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	clock   *mocks.MockClock
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	client := goredis.NewClient(&goredis.Options{Addr: s.mini.Addr()})
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.storage = NewWithClient(client, s.clock, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TestGetPlayerMissing() {
	_, err := s.storage.GetPlayer(s.ctx, "unknown")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestCreatePlayerIfAbsentCreates() {
	rec, err := s.storage.CreatePlayerIfAbsent(s.ctx, "u1")
	s.Require().NoError(err)

	s.Equal(model.Identity("u1"), rec.ID)
	s.Equal(int64(0), rec.Currency)
	s.True(s.mini.Exists("astrocade:player:u1"))
}

func (s *StorageSuite) TestCreatePlayerIfAbsentLosesRace() {
	first, err := s.storage.CreatePlayerIfAbsent(s.ctx, "u1")
	s.Require().NoError(err)

	// A later call must observe the existing record rather than overwrite it
	s.clock.Advance(time.Hour)
	second, err := s.storage.CreatePlayerIfAbsent(s.ctx, "u1")
	s.Require().NoError(err)

	s.Equal(first, second)
}

func (s *StorageSuite) TestCreatePlayerIfAbsentConcurrent() {
	const callers = 16

	records := make([]*model.PlayerRecord, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			rec, err := s.storage.CreatePlayerIfAbsent(s.ctx, "u1")
			s.NoError(err)
			records[i] = rec
		}(i)
	}
	wg.Wait()

	for _, rec := range records {
		s.Equal(records[0], rec)
	}
}

func (s *StorageSuite) TestUpdatePlayerFields() {
	_, err := s.storage.CreatePlayerIfAbsent(s.ctx, "u1")
	s.Require().NoError(err)

	err = s.storage.UpdatePlayerFields(s.ctx, "u1", model.PlayerUpdate{
		BirthDate:     "1986-04-23",
		BirthTime:     "06:21",
		BirthLocation: "New York City",
		SunSign:       "Taurus",
		MoonSign:      "Virgo",
		AscendantSign: "Gemini",
		MidheavenSign: "Aquarius",
	})
	s.Require().NoError(err)

	rec, err := s.storage.GetPlayer(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("New York City", rec.BirthLocation)
	s.Equal("Virgo", rec.MoonSign)
	s.Equal(int64(0), rec.Currency)
}

func (s *StorageSuite) TestUpdatePlayerFieldsOverwritesWholesale() {
	_, err := s.storage.CreatePlayerIfAbsent(s.ctx, "u1")
	s.Require().NoError(err)

	s.Require().NoError(s.storage.UpdatePlayerFields(s.ctx, "u1", model.PlayerUpdate{
		BirthDate: "1986-04-23",
		SunSign:   "Taurus",
	}))
	s.Require().NoError(s.storage.UpdatePlayerFields(s.ctx, "u1", model.PlayerUpdate{
		BirthDate: "1990-01-05",
	}))

	rec, err := s.storage.GetPlayer(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("1990-01-05", rec.BirthDate)
	s.Empty(rec.SunSign)
}

func (s *StorageSuite) TestUpdatePlayerFieldsMissingDoesNotCreate() {
	err := s.storage.UpdatePlayerFields(s.ctx, "ghost", model.PlayerUpdate{BirthDate: "1986-04-23"})
	s.ErrorIs(err, model.ErrPlayerNotFound)

	s.False(s.mini.Exists("astrocade:player:ghost"))
}
