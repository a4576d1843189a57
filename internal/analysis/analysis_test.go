package analysis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dna-planner/internal/analysis"
	"github.com/KirkDiggler/dna-planner/internal/ancestry"
	"github.com/KirkDiggler/dna-planner/internal/engine"
	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
	"github.com/KirkDiggler/dna-planner/internal/testutils"
)

type AnalysisTestSuite struct {
	suite.Suite
	roster   *entities.Roster
	index    *ancestry.Index
	wishlist []string
	totals   entities.Requirements
}

func TestAnalysisSuite(t *testing.T) {
	suite.Run(t, new(AnalysisTestSuite))
}

func (s *AnalysisTestSuite) SetupTest() {
	s.roster = testutils.SampleRoster(s.T())
	s.index = testutils.NewTestIndex(s.T(), s.roster)
	s.wishlist = testutils.SampleWishlist()

	e, err := engine.New(&engine.Config{Roster: s.roster, Index: s.index})
	s.Require().NoError(err)
	s.totals, err = e.DetermineAllNeededDNA(s.wishlist)
	s.Require().NoError(err)
}

func (s *AnalysisTestSuite) TestClassifyTagsSample() {
	tags, err := analysis.ClassifyTags(s.roster, s.index, s.totals, s.wishlist)
	s.Require().NoError(err)

	s.Assert().Equal(map[string]analysis.Tag{
		testutils.SampleCommonRoot:   analysis.TagDeficient,
		testutils.SampleCommonRoot2:  analysis.TagDeficient,
		testutils.SampleRareRoot:     analysis.TagDeficient,
		testutils.SampleUnlockedRoot: analysis.TagSatisfied,
	}, tags)
}

func (s *AnalysisTestSuite) TestClassifyTagsPropagatesThroughHybrids() {
	roster := testutils.NewTestRoster(s.T(),
		testutils.Root("P1", entities.RarityCommon, 3, 0),
		testutils.Root("P2", entities.RarityCommon, 3, 0),
		testutils.Root("P3", entities.RarityCommon, 3, 0),
		testutils.Hybrid("Good", entities.RarityRare, 6, 0, "P1", "P2"),
		testutils.Hybrid("Bad", entities.RarityRare, 6, 0, "P1", "P3"),
		testutils.Hybrid("Goal", entities.RarityEpic, 10, 0, "Good", "Bad"),
	)
	idx := testutils.NewTestIndex(s.T(), roster)

	tags, err := analysis.ClassifyTags(roster, idx, entities.Requirements{"P3": 40}, []string{"Goal"})
	s.Require().NoError(err)

	s.Assert().Equal(analysis.TagSatisfied, tags["Good"])
	s.Assert().Equal(analysis.TagDeficient, tags["Bad"])
	s.Assert().Equal(analysis.TagDeficient, tags["P3"])
	s.Assert().NotContains(tags, "Goal")
}

func (s *AnalysisTestSuite) TestClassifyTagsMissingWishlistEntry() {
	_, err := analysis.ClassifyTags(s.roster, s.index, s.totals, []string{"Erlidon"})
	s.Require().Error(err)
	s.Assert().True(errors.IsMissingCreature(err))
}

func (s *AnalysisTestSuite) TestDeficitsByRarity() {
	tiers, err := analysis.DeficitsByRarity(s.roster, s.totals)
	s.Require().NoError(err)

	s.Assert().Equal([]analysis.TierDeficits{
		{
			Rarity: entities.RarityCommon,
			Deficits: []analysis.Deficit{
				{Name: testutils.SampleCommonRoot, Amount: 900},
				{Name: testutils.SampleCommonRoot2, Amount: 1160},
			},
		},
		{
			Rarity:   entities.RarityRare,
			Deficits: []analysis.Deficit{{Name: testutils.SampleRareRoot, Amount: 280}},
		},
	}, tiers)
}

func (s *AnalysisTestSuite) TestDeficitsByRarityTiesByName() {
	roster := testutils.NewTestRoster(s.T(),
		testutils.Root("Zeta", entities.RarityCommon, 0, 0),
		testutils.Root("Alpha", entities.RarityCommon, 0, 0),
	)

	tiers, err := analysis.DeficitsByRarity(roster, entities.Requirements{"Zeta": 10, "Alpha": 10})
	s.Require().NoError(err)
	s.Require().Len(tiers, 1)
	s.Assert().Equal("Alpha", tiers[0].Deficits[0].Name)
}

func (s *AnalysisTestSuite) TestLimitingFactors() {
	groups, err := analysis.LimitingFactors(s.roster, s.index, s.totals, s.wishlist)
	s.Require().NoError(err)

	s.Assert().Equal([]analysis.TierLimitingFactors{
		{
			Rarity: entities.RarityRare,
			Factors: []analysis.LimitingFactor{
				{Name: testutils.SampleRareHybrid, Root: testutils.SampleCommonRoot2, Amount: 1160},
			},
		},
		{
			Rarity: entities.RarityEpic,
			Factors: []analysis.LimitingFactor{
				{Name: testutils.SampleEpicHybrid, Root: testutils.SampleCommonRoot2, Amount: 1160},
			},
		},
	}, groups)
}

func (s *AnalysisTestSuite) TestLimitingFactorsSkipsSatisfied() {
	groups, err := analysis.LimitingFactors(s.roster, s.index, entities.Requirements{}, s.wishlist)
	s.Require().NoError(err)
	s.Assert().Empty(groups)
}

func (s *AnalysisTestSuite) TestSharedAncestors() {
	shared, err := analysis.SharedAncestors(s.index, s.wishlist)
	s.Require().NoError(err)

	both := []string{testutils.SampleRareHybrid, testutils.SampleEpicHybrid}
	s.Assert().Equal([]analysis.SharedRoot{
		{Root: testutils.SampleCommonRoot, Wanted: both},
		{Root: testutils.SampleCommonRoot2, Wanted: both},
	}, shared)
}

func (s *AnalysisTestSuite) TestUpdateOrder() {
	order := analysis.UpdateOrder(s.roster, s.wishlist)

	s.Assert().Equal([]string{
		testutils.SampleUnlockedRoot, // level 14
		testutils.SampleCommonRoot,   // level 8
		testutils.SampleRareRoot,     // level 7
		testutils.SampleCommonRoot2,  // level 3
		testutils.SampleRareHybrid,   // locked, 80 DNA left
		testutils.SampleEpicHybrid,   // locked, no DNA
	}, order)
}

func (s *AnalysisTestSuite) TestProjectTrend() {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	s.Run("shrinking deficit", func() {
		trend, err := analysis.ProjectTrend("Anky", []entities.Point{
			{At: day, Amount: 1000},
			{At: day.AddDate(0, 0, 1), Amount: 900},
			{At: day.AddDate(0, 0, 2), Amount: 800},
		})
		s.Require().NoError(err)
		s.Assert().InDelta(-100, trend.PerDay, 1e-9)
		s.Assert().InDelta(1, trend.RSquared, 1e-9)
		s.Assert().InDelta(8, trend.DaysToZero, 1e-9)
		s.Assert().True(trend.Shrinking())
		s.Assert().False(trend.Done())
	})

	s.Run("growing deficit", func() {
		trend, err := analysis.ProjectTrend("Anky", []entities.Point{
			{At: day, Amount: 100},
			{At: day.AddDate(0, 0, 3), Amount: 400},
		})
		s.Require().NoError(err)
		s.Assert().False(trend.Shrinking())
	})

	s.Run("cleared", func() {
		trend, err := analysis.ProjectTrend("Anky", []entities.Point{
			{At: day, Amount: 100},
			{At: day.AddDate(0, 0, 1), Amount: 0},
		})
		s.Require().NoError(err)
		s.Assert().True(trend.Done())
		s.Assert().Zero(trend.DaysToZero)
	})

	s.Run("too little history", func() {
		_, err := analysis.ProjectTrend("Anky", []entities.Point{{At: day, Amount: 100}})
		s.Require().Error(err)
		s.Assert().True(errors.IsFailedPrecondition(err))

		_, err = analysis.ProjectTrend("Anky", []entities.Point{{At: day, Amount: 100}, {At: day, Amount: 90}})
		s.Assert().True(errors.IsFailedPrecondition(err))
	})
}
