package pokedex_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

type FilterStateTestSuite struct {
	suite.Suite
}

func TestFilterStateSuite(t *testing.T) {
	suite.Run(t, new(FilterStateTestSuite))
}

func (s *FilterStateTestSuite) TestNewFilterState() {
	state := pokedex.NewFilterState()
	s.Equal([]string{pokedex.TypeAll}, state.SelectedTypes)
	s.True(state.IsAll())
	s.Empty(state.ConcreteTypes())
}

func (s *FilterStateTestSuite) TestPickType() {
	testCases := []struct {
		name     string
		start    []string
		pick     string
		expected []string
		wantErr  func(error) bool
	}{
		{
			name:     "concrete type replaces all",
			start:    []string{pokedex.TypeAll},
			pick:     pokedex.TypeFire,
			expected: []string{pokedex.TypeFire},
		},
		{
			name:     "second type is added",
			start:    []string{pokedex.TypeFire},
			pick:     pokedex.TypeFlying,
			expected: []string{pokedex.TypeFire, pokedex.TypeFlying},
		},
		{
			name:     "all clears selection",
			start:    []string{pokedex.TypeFire, pokedex.TypeFlying},
			pick:     pokedex.TypeAll,
			expected: []string{pokedex.TypeAll},
		},
		{
			name:     "toggling a selected type removes it",
			start:    []string{pokedex.TypeFire, pokedex.TypeFlying},
			pick:     pokedex.TypeFire,
			expected: []string{pokedex.TypeFlying},
		},
		{
			name:     "removing the last type resets to all",
			start:    []string{pokedex.TypeWater},
			pick:     pokedex.TypeWater,
			expected: []string{pokedex.TypeAll},
		},
		{
			name:     "third type is rejected",
			start:    []string{pokedex.TypeFire, pokedex.TypeFlying},
			pick:     pokedex.TypeDragon,
			expected: []string{pokedex.TypeFire, pokedex.TypeFlying},
			wantErr:  errors.IsResourceExhausted,
		},
		{
			name:     "unknown type is rejected",
			start:    []string{pokedex.TypeAll},
			pick:     "plasma",
			expected: []string{pokedex.TypeAll},
			wantErr:  errors.IsInvalidArgument,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			start := pokedex.FilterState{SearchTerm: "char", SelectedTypes: tc.start}

			next, err := start.PickType(tc.pick)

			if tc.wantErr != nil {
				s.Require().Error(err)
				s.True(tc.wantErr(err))
			} else {
				s.Require().NoError(err)
			}
			s.Equal(tc.expected, next.SelectedTypes)
			s.Equal("char", next.SearchTerm)
		})
	}
}

func (s *FilterStateTestSuite) TestPickTypeDoesNotMutateReceiver() {
	start := pokedex.FilterState{SelectedTypes: []string{pokedex.TypeFire, pokedex.TypeFlying}}

	_, err := start.PickType(pokedex.TypeFire)
	s.Require().NoError(err)

	s.Equal([]string{pokedex.TypeFire, pokedex.TypeFlying}, start.SelectedTypes)
}

func (s *FilterStateTestSuite) TestFilterStateFromTypes() {
	state, err := pokedex.FilterStateFromTypes("saur", pokedex.TypeGrass, pokedex.TypePoison)
	s.Require().NoError(err)
	s.Equal("saur", state.SearchTerm)
	s.Equal([]string{pokedex.TypeGrass, pokedex.TypePoison}, state.SelectedTypes)

	state, err = pokedex.FilterStateFromTypes("", pokedex.TypeAll)
	s.Require().NoError(err)
	s.True(state.IsAll())

	_, err = pokedex.FilterStateFromTypes("", pokedex.TypeGrass, pokedex.TypePoison, pokedex.TypeFire)
	s.True(errors.IsResourceExhausted(err))
}

func (s *FilterStateTestSuite) TestDisplayImage() {
	animated := "https://img.test/animated/25.gif"
	withAnimation := &pokedex.CatalogRecord{StaticImage: "https://img.test/25.png", AnimatedImage: &animated}
	withoutAnimation := &pokedex.CatalogRecord{StaticImage: "https://img.test/25.png"}

	s.Equal(animated, withAnimation.DisplayImage(true))
	s.Equal("https://img.test/25.png", withAnimation.DisplayImage(false))
	s.Equal("https://img.test/25.png", withoutAnimation.DisplayImage(true))
	s.Equal("https://img.test/25.png", withoutAnimation.DisplayImage(false))
}
