package entities_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
)

type RosterTestSuite struct {
	suite.Suite
	roster *entities.Roster
}

func TestRosterSuite(t *testing.T) {
	suite.Run(t, new(RosterTestSuite))
}

func (s *RosterTestSuite) SetupTest() {
	roster, err := entities.NewRoster(
		&entities.Creature{Name: "Velociraptor", Level: 12, Amount: 300, Rarity: entities.RarityCommon},
		&entities.Creature{Name: "Allosaurus", Level: 10, Amount: 50, Rarity: entities.RarityCommon},
		&entities.Creature{Name: "Allosinosaurus", Level: 5, Amount: 0, Rarity: entities.RarityRare},
	)
	s.Require().NoError(err)
	s.roster = roster
}

func (s *RosterTestSuite) TestNames() {
	s.Assert().Equal([]string{"Allosaurus", "Allosinosaurus", "Velociraptor"}, s.roster.Names())
	s.Assert().Equal(3, s.roster.Len())
}

func (s *RosterTestSuite) TestAddRejectsDuplicate() {
	err := s.roster.Add(&entities.Creature{Name: "Allosaurus", Rarity: entities.RarityCommon})
	s.Require().Error(err)
	s.Assert().True(errors.IsAlreadyExists(err))
}

func (s *RosterTestSuite) TestAddRejectsInvalid() {
	err := s.roster.Add(&entities.Creature{Name: "Broken", Level: -1, Amount: -5, Rarity: entities.RarityCommon})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().False(s.roster.Has("Broken"))
}

func (s *RosterTestSuite) TestGetMissingSuggests() {
	_, err := s.roster.Get("Velociraptr")
	s.Require().Error(err)
	s.Assert().True(errors.IsMissingCreature(err))
	s.Assert().True(errors.IsNotFound(err))
	s.Assert().Equal([]string{"Velociraptor"}, errors.GetMeta(err)["suggestions"])
}

func (s *RosterTestSuite) TestSuggest() {
	s.Assert().Equal([]string{"Allosaurus"}, s.roster.Suggest("alosaurus"))
	s.Assert().Empty(s.roster.Suggest("Stegosaurus"))
}

func (s *RosterTestSuite) TestApplyRecipes() {
	err := s.roster.ApplyRecipes([]entities.Recipe{
		{Child: "Allosinosaurus", First: "Allosaurus", Second: "Velociraptor"},
	})
	s.Require().NoError(err)

	c, err := s.roster.Get("Allosinosaurus")
	s.Require().NoError(err)
	s.Require().True(c.IsHybrid())
	s.Assert().Equal([2]string{"Allosaurus", "Velociraptor"}, c.Parents.Names())
	s.Assert().Equal([]entities.Recipe{
		{Child: "Allosinosaurus", First: "Allosaurus", Second: "Velociraptor"},
	}, s.roster.Recipes())
}

func (s *RosterTestSuite) TestApplyRecipesDangling() {
	testCases := []struct {
		name   string
		recipe entities.Recipe
		check  func(error) bool
	}{
		{
			name:   "unknown child",
			recipe: entities.Recipe{Child: "Indoraptor", First: "Allosaurus", Second: "Velociraptor"},
			check:  errors.IsMissingCreature,
		},
		{
			name:   "unknown parent",
			recipe: entities.Recipe{Child: "Allosinosaurus", First: "Allosaurus", Second: "Sinoceratops"},
			check:  errors.IsMissingCreature,
		},
		{
			name:   "self parent",
			recipe: entities.Recipe{Child: "Allosinosaurus", First: "Allosinosaurus", Second: "Allosaurus"},
			check:  errors.IsInvalidArgument,
		},
		{
			name:   "same parent twice",
			recipe: entities.Recipe{Child: "Allosinosaurus", First: "Allosaurus", Second: "Allosaurus"},
			check:  errors.IsInvalidArgument,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := s.roster.ApplyRecipes([]entities.Recipe{tc.recipe})
			s.Require().Error(err)
			s.Assert().True(tc.check(err), "unexpected error: %v", err)
		})
	}
}

func (s *RosterTestSuite) TestCloneIsIndependent() {
	clone := s.roster.Clone()
	c, err := clone.Get("Velociraptor")
	s.Require().NoError(err)
	c.Amount = 0

	original, err := s.roster.Get("Velociraptor")
	s.Require().NoError(err)
	s.Assert().Equal(300, original.Amount)
}

func (s *RosterTestSuite) TestRemove() {
	s.Require().NoError(s.roster.Remove("Velociraptor"))
	s.Assert().False(s.roster.Has("Velociraptor"))

	err := s.roster.Remove("Velociraptor")
	s.Assert().True(errors.IsMissingCreature(err))
}

func (s *RosterTestSuite) TestCreatureEntity() {
	c, err := s.roster.Get("Allosaurus")
	s.Require().NoError(err)
	s.Assert().Equal("Allosaurus", c.GetID())
	s.Assert().Equal(entities.EntityTypeCreature, c.GetType())
}
