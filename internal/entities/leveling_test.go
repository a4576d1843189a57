package entities_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
)

type LevelingTestSuite struct {
	suite.Suite
}

func TestLevelingSuite(t *testing.T) {
	suite.Run(t, new(LevelingTestSuite))
}

func (s *LevelingTestSuite) TestActivation() {
	testCases := []struct {
		rarity entities.Rarity
		level  int
		amount int
	}{
		{entities.RarityCommon, 0, 50},
		{entities.RarityRare, 5, 100},
		{entities.RarityEpic, 10, 150},
		{entities.RarityLegendary, 15, 200},
		{entities.RarityUnique, 20, 250},
		{entities.RarityApex, 25, 300},
	}

	for _, tc := range testCases {
		s.Run(tc.rarity.String(), func() {
			s.Assert().Equal(tc.level, tc.rarity.ActivationLevel())
			s.Assert().Equal(tc.amount, tc.rarity.ActivationAmount())
		})
	}
}

func (s *LevelingTestSuite) TestDNAForOneLevel() {
	epic := entities.RarityEpic
	activation := epic.ActivationLevel()

	testCases := []struct {
		name     string
		diff     int
		expected int
	}{
		{name: "activation", diff: 0, expected: 150},
		{name: "first step", diff: 1, expected: 100},
		{name: "last linear step", diff: 7, expected: 400},
		{name: "second segment", diff: 8, expected: 500},
		{name: "third segment start", diff: 9, expected: 750},
		{name: "third segment end", diff: 12, expected: 1500},
		{name: "fourth segment start", diff: 13, expected: 2000},
		{name: "fourth segment end", diff: 16, expected: 3500},
		{name: "scaled by ten", diff: 17, expected: 4000},
		{name: "scaled segment", diff: 22, expected: 15000},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Equal(tc.expected, epic.DNAForOneLevel(activation+tc.diff))
		})
	}
}

func (s *LevelingTestSuite) TestDNAToLevel() {
	s.Run("sums half open range", func() {
		s.Assert().Equal(50+100+150, entities.RarityCommon.DNAToLevel(0, 3))
	})

	s.Run("empty range", func() {
		s.Assert().Equal(0, entities.RarityCommon.DNAToLevel(4, 4))
		s.Assert().Equal(0, entities.RarityCommon.DNAToLevel(5, 2))
	})

	s.Run("start below activation is clamped", func() {
		s.Assert().Equal(100, entities.RarityRare.DNAToLevel(0, 6))
		s.Assert().Equal(entities.RarityRare.DNAToLevel(5, 8), entities.RarityRare.DNAToLevel(1, 8))
	})
}

func (s *LevelingTestSuite) TestFuseCost() {
	testCases := []struct {
		name     string
		child    entities.Rarity
		parent   entities.Rarity
		expected int
	}{
		{name: "same tier", child: entities.RarityRare, parent: entities.RarityRare, expected: 20},
		{name: "one tier", child: entities.RarityRare, parent: entities.RarityCommon, expected: 50},
		{name: "two tiers", child: entities.RarityEpic, parent: entities.RarityCommon, expected: 200},
		{name: "three tiers", child: entities.RarityLegendary, parent: entities.RarityCommon, expected: 500},
		{name: "four tiers", child: entities.RarityUnique, parent: entities.RarityCommon, expected: 2000},
		{name: "five tiers", child: entities.RarityApex, parent: entities.RarityCommon, expected: 5000},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cost, err := entities.FuseCost(tc.child, tc.parent)
			s.Require().NoError(err)
			s.Assert().Equal(tc.expected, cost)
		})
	}

	s.Run("rarer parent", func() {
		_, err := entities.FuseCost(entities.RarityCommon, entities.RarityRare)
		s.Require().Error(err)
		s.Assert().True(errors.IsInvalidArgument(err))
	})
}

func (s *LevelingTestSuite) TestParentAmount() {
	s.Run("partial fuse costs a full fuse", func() {
		amount, err := entities.ParentAmount(entities.RarityRare, entities.RarityCommon, 21)
		s.Require().NoError(err)
		s.Assert().Equal(100, amount)
	})

	s.Run("exact fuses", func() {
		amount, err := entities.ParentAmount(entities.RarityRare, entities.RarityCommon, 100)
		s.Require().NoError(err)
		s.Assert().Equal(250, amount)
	})

	s.Run("nothing needed", func() {
		amount, err := entities.ParentAmount(entities.RarityEpic, entities.RarityRare, 0)
		s.Require().NoError(err)
		s.Assert().Zero(amount)
	})
}
