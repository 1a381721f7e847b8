package records_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/repositories/records"
	"github.com/KirkDiggler/pokedex-api/internal/testutils"
)

type InMemoryTestSuite struct {
	suite.Suite
	repo *records.InMemoryRepository
	ctx  context.Context
}

func (s *InMemoryTestSuite) SetupTest() {
	s.repo = records.NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemoryTestSuite) TestAppendKeepsCommitOrder() {
	starters := testutils.CreateStarterRecords()

	out, err := s.repo.Append(s.ctx, &records.AppendInput{Records: starters[:2]})
	s.Require().NoError(err)
	s.Equal(2, out.Count)

	out, err = s.repo.Append(s.ctx, &records.AppendInput{Records: starters[2:]})
	s.Require().NoError(err)
	s.Equal(3, out.Count)

	list, err := s.repo.List(s.ctx, &records.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(list.Records, 3)
	for i, record := range list.Records {
		s.Equal(i+1, record.ID)
	}
}

func (s *InMemoryTestSuite) TestListIsASnapshot() {
	_, err := s.repo.Append(s.ctx, &records.AppendInput{Records: testutils.CreateStarterRecords()})
	s.Require().NoError(err)

	list, err := s.repo.List(s.ctx, &records.ListInput{})
	s.Require().NoError(err)
	list.Records[0] = nil

	again, err := s.repo.List(s.ctx, &records.ListInput{})
	s.Require().NoError(err)
	s.NotNil(again.Records[0])
}

func (s *InMemoryTestSuite) TestGetByIDAndName() {
	_, err := s.repo.Append(s.ctx, &records.AppendInput{Records: testutils.CreateStarterRecords()})
	s.Require().NoError(err)

	byID, err := s.repo.GetByID(s.ctx, &records.GetByIDInput{ID: 2})
	s.Require().NoError(err)
	s.Equal("ivysaur", byID.Record.Name)

	byName, err := s.repo.GetByName(s.ctx, &records.GetByNameInput{Name: "venusaur"})
	s.Require().NoError(err)
	s.Equal(3, byName.Record.ID)

	_, err = s.repo.GetByID(s.ctx, &records.GetByIDInput{ID: 999})
	s.True(errors.IsNotFound(err))

	// names match exactly
	_, err = s.repo.GetByName(s.ctx, &records.GetByNameInput{Name: "Venusaur"})
	s.True(errors.IsNotFound(err))
}

func (s *InMemoryTestSuite) TestAppendRejectsNilRecordsAtomically() {
	_, err := s.repo.Append(s.ctx, &records.AppendInput{
		Records: []*pokedex.CatalogRecord{testutils.CreateTestRecord(1, "bulbasaur"), nil},
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	count, err := s.repo.Count(s.ctx)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *InMemoryTestSuite) TestReset() {
	_, err := s.repo.Append(s.ctx, &records.AppendInput{Records: testutils.CreateStarterRecords()})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Reset(s.ctx))

	count, err := s.repo.Count(s.ctx)
	s.Require().NoError(err)
	s.Zero(count)

	_, err = s.repo.GetByName(s.ctx, &records.GetByNameInput{Name: "bulbasaur"})
	s.True(errors.IsNotFound(err))
}

func (s *InMemoryTestSuite) TestConcurrentReadersDuringAppend() {
	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			_, _ = s.repo.Append(s.ctx, &records.AppendInput{
				Records: []*pokedex.CatalogRecord{testutils.CreateTestRecord(id, "mon")},
			})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = s.repo.List(s.ctx, &records.ListInput{})
		}()
	}
	wg.Wait()

	count, err := s.repo.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(20, count)
}

func TestInMemoryTestSuite(t *testing.T) {
	suite.Run(t, new(InMemoryTestSuite))
}
