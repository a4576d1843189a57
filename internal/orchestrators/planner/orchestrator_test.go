package planner_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dna-planner/internal/analysis"
	"github.com/KirkDiggler/dna-planner/internal/engine"
	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
	"github.com/KirkDiggler/dna-planner/internal/metrics"
	"github.com/KirkDiggler/dna-planner/internal/orchestrators/planner"
	"github.com/KirkDiggler/dna-planner/internal/pkg/clock"
	"github.com/KirkDiggler/dna-planner/internal/repositories/history"
	historymock "github.com/KirkDiggler/dna-planner/internal/repositories/history/mock"
	"github.com/KirkDiggler/dna-planner/internal/repositories/roster"
	rostermock "github.com/KirkDiggler/dna-planner/internal/repositories/roster/mock"
	"github.com/KirkDiggler/dna-planner/internal/testutils"
	"github.com/KirkDiggler/dna-planner/internal/testutils/mocks"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	ctx          context.Context
	mockRoster   *rostermock.MockRepository
	mockHistory  *historymock.MockRepository
	recorder     *metrics.Recorder
	now          time.Time
	orchestrator planner.Service
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()
	s.mockRoster = rostermock.NewMockRepository(s.ctrl)
	s.mockHistory = historymock.NewMockRepository(s.ctrl)
	s.recorder = metrics.New(nil)
	s.now = time.Date(2024, 3, 5, 15, 30, 0, 0, time.Local)

	var err error
	s.orchestrator, err = planner.NewOrchestrator(&planner.Config{
		RosterRepo:  s.mockRoster,
		HistoryRepo: s.mockHistory,
		Clock:       &clock.Fixed{At: s.now},
		Metrics:     s.recorder,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) expectSampleLoad() *entities.Roster {
	r := testutils.SampleRoster(s.T())
	mocks.ExpectRosterLoad(s.ctx, s.mockRoster, r, testutils.SampleWishlist())
	return r
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := planner.NewOrchestrator(nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = planner.NewOrchestrator(&planner.Config{RosterRepo: s.mockRoster})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Contains(err.Error(), "HistoryRepo")
	s.Assert().Contains(err.Error(), "Clock")
}

func (s *OrchestratorTestSuite) TestAnalyze() {
	s.expectSampleLoad()

	out, err := s.orchestrator.Analyze(s.ctx, &planner.AnalyzeInput{})
	s.Require().NoError(err)

	s.Assert().Equal(entities.Requirements{"Anky": 900, "Bary": 1160, "Coelo": 280}, out.Result.Total)
	s.Assert().Equal([]string{"Dracoceratops", "Erlidom"}, out.Result.Wishlist)
	s.Assert().Equal(analysis.TagSatisfied, out.Tags["Flyer"])
	s.Assert().Equal(analysis.TagDeficient, out.Tags["Coelo"])
	s.Require().Len(out.Deficits, 2)
	s.Assert().Equal(entities.RarityCommon, out.Deficits[0].Rarity)
	s.Require().Len(out.Limiting, 2)
	s.Assert().Equal("Bary", out.Limiting[0].Factors[0].Root)
	s.Assert().Len(out.Shared, 2)

	count, err := testutil.GatherAndCount(s.recorder.Gatherer(), "dna_planner_root_deficit")
	s.Require().NoError(err)
	s.Assert().Equal(3, count)
}

func (s *OrchestratorTestSuite) TestAnalyzeWishlistOverride() {
	s.expectSampleLoad()

	out, err := s.orchestrator.Analyze(s.ctx, &planner.AnalyzeInput{
		Wishlist: []string{"Dracoceratops", "Dracoceratops"},
	})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"Dracoceratops"}, out.Result.Wishlist)
	s.Assert().Equal(entities.Requirements{"Bary": 160}, out.Result.Total)
}

func (s *OrchestratorTestSuite) TestAnalyzeMissingWishlistEntry() {
	s.expectSampleLoad()

	_, err := s.orchestrator.Analyze(s.ctx, &planner.AnalyzeInput{Wishlist: []string{"Erlidon"}})
	s.Require().Error(err)
	s.Assert().True(errors.IsMissingCreature(err))
	s.Assert().Equal([]string{"Erlidom"}, errors.GetMeta(err)["suggestions"])
}

func (s *OrchestratorTestSuite) TestAnalyzeCyclicRecipes() {
	r := testutils.NewTestRoster(s.T(),
		testutils.Root("Root", entities.RarityCommon, 0, 0),
		testutils.Hybrid("A", entities.RarityRare, 5, 0, "B", "Root"),
		testutils.Hybrid("B", entities.RarityEpic, 10, 0, "A", "Root"),
	)
	mocks.ExpectRosterLoad(s.ctx, s.mockRoster, r, []string{"A"})

	_, err := s.orchestrator.Analyze(s.ctx, &planner.AnalyzeInput{})
	s.Require().Error(err)
	s.Assert().True(errors.IsCyclicAncestry(err))
}

func (s *OrchestratorTestSuite) TestAnalyzeParentLevelChild() {
	orchestrator, err := planner.NewOrchestrator(&planner.Config{
		RosterRepo:  s.mockRoster,
		HistoryRepo: s.mockHistory,
		Clock:       &clock.Fixed{At: s.now},
		ParentLevel: engine.ParentLevelChild,
	})
	s.Require().NoError(err)
	s.expectSampleLoad()

	out, err := orchestrator.Analyze(s.ctx, &planner.AnalyzeInput{})
	s.Require().NoError(err)
	s.Assert().Greater(out.Result.Total.Total(), 900+1160+280)
}

func (s *OrchestratorTestSuite) TestUpdateOrder() {
	s.expectSampleLoad()

	out, err := s.orchestrator.UpdateOrder(s.ctx, &planner.UpdateOrderInput{})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"Flyer", "Anky", "Coelo", "Bary", "Dracoceratops", "Erlidom"}, out.Order)
}

func (s *OrchestratorTestSuite) TestUnlockReleasesUnusedAncestors() {
	s.expectSampleLoad()
	var saved roster.SaveInput
	mocks.ExpectRosterSave(s.ctx, s.mockRoster, &saved)
	s.mockHistory.EXPECT().
		Archive(s.ctx, &history.ArchiveInput{Name: "Erlidom"}).
		Return(&history.ArchiveOutput{}, nil)
	s.mockHistory.EXPECT().
		Archive(s.ctx, &history.ArchiveInput{Name: "Coelo"}).
		Return(&history.ArchiveOutput{Archived: 3}, nil)

	out, err := s.orchestrator.Unlock(s.ctx, &planner.UnlockInput{Name: "Erlidom"})
	s.Require().NoError(err)

	// Dracoceratops is still wanted, so its parents stay too
	s.Assert().Equal([]string{"Erlidom", "Coelo"}, out.Removed)
	s.Assert().Equal(3, out.Archived)
	s.Assert().Equal([]string{"Dracoceratops"}, out.Wishlist)
	s.Assert().Equal([]string{"Dracoceratops"}, saved.Wishlist)
	s.Assert().Equal([]string{"Anky", "Bary", "Dracoceratops", "Flyer"}, saved.Roster.Names())
}

func (s *OrchestratorTestSuite) TestUnlockKeepsParentsOfRemainingHybrids() {
	s.expectSampleLoad()
	var saved roster.SaveInput
	mocks.ExpectRosterSave(s.ctx, s.mockRoster, &saved)

	out, err := s.orchestrator.Unlock(s.ctx, &planner.UnlockInput{Name: "Dracoceratops"})
	s.Require().NoError(err)

	s.Assert().Empty(out.Removed)
	s.Assert().Equal([]string{"Erlidom"}, saved.Wishlist)
	s.Assert().Equal(6, saved.Roster.Len())
}

func (s *OrchestratorTestSuite) TestUnlockErrors() {
	s.Run("not on wishlist", func() {
		s.expectSampleLoad()
		_, err := s.orchestrator.Unlock(s.ctx, &planner.UnlockInput{Name: "Flyer"})
		s.Assert().True(errors.IsFailedPrecondition(err))
	})

	s.Run("unknown creature", func() {
		s.expectSampleLoad()
		_, err := s.orchestrator.Unlock(s.ctx, &planner.UnlockInput{Name: "Flyr"})
		s.Assert().True(errors.IsMissingCreature(err))
	})

	s.Run("blank name", func() {
		_, err := s.orchestrator.Unlock(s.ctx, &planner.UnlockInput{})
		s.Assert().True(errors.IsInvalidArgument(err))
	})
}

func (s *OrchestratorTestSuite) TestUpdateCreature() {
	s.expectSampleLoad()
	var saved roster.SaveInput
	mocks.ExpectRosterSave(s.ctx, s.mockRoster, &saved)

	amount := 500
	out, err := s.orchestrator.UpdateCreature(s.ctx, &planner.UpdateCreatureInput{Name: "Anky", Amount: &amount})
	s.Require().NoError(err)
	s.Assert().Equal(500, out.Creature.Amount)
	s.Assert().Equal(8, out.Creature.Level)

	anky, err := saved.Roster.Get("Anky")
	s.Require().NoError(err)
	s.Assert().Equal(500, anky.Amount)
	s.Assert().Equal([]string{"Dracoceratops", "Erlidom"}, saved.Wishlist)
}

func (s *OrchestratorTestSuite) TestUpdateCreatureValidation() {
	negative := -1
	testCases := []struct {
		name  string
		input *planner.UpdateCreatureInput
	}{
		{name: "nil input"},
		{name: "nothing to update", input: &planner.UpdateCreatureInput{Name: "Anky"}},
		{name: "negative amount", input: &planner.UpdateCreatureInput{Name: "Anky", Amount: &negative}},
		{name: "negative level", input: &planner.UpdateCreatureInput{Name: "Anky", Level: &negative}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.UpdateCreature(s.ctx, tc.input)
			s.Assert().True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestWishNewHybrid() {
	s.expectSampleLoad()
	var saved roster.SaveInput
	mocks.ExpectRosterSave(s.ctx, s.mockRoster, &saved)

	out, err := s.orchestrator.Wish(s.ctx, &planner.WishInput{
		Name:    "Gigas",
		Rarity:  entities.RarityEpic,
		Parents: &entities.Parents{First: "Anky", Second: "Coelo"},
	})
	s.Require().NoError(err)

	s.Assert().True(out.Added)
	s.Assert().Equal(10, out.Creature.Level)
	s.Assert().True(out.Creature.IsHybrid())
	s.Assert().Equal([]string{"Dracoceratops", "Erlidom", "Gigas"}, saved.Wishlist)
	s.Assert().True(saved.Roster.Has("Gigas"))
}

func (s *OrchestratorTestSuite) TestWishExisting() {
	s.expectSampleLoad()
	var saved roster.SaveInput
	mocks.ExpectRosterSave(s.ctx, s.mockRoster, &saved)

	out, err := s.orchestrator.Wish(s.ctx, &planner.WishInput{Name: "Flyer"})
	s.Require().NoError(err)
	s.Assert().False(out.Added)
	s.Assert().Equal([]string{"Dracoceratops", "Erlidom", "Flyer"}, out.Wishlist)
}

func (s *OrchestratorTestSuite) TestWishRejected() {
	testCases := []struct {
		name  string
		input *planner.WishInput
		check func(error) bool
	}{
		{
			name:  "missing parent",
			input: &planner.WishInput{Name: "Gigas", Rarity: entities.RarityEpic, Parents: &entities.Parents{First: "Anky", Second: "Zed"}},
			check: errors.IsMissingCreature,
		},
		{
			name:  "rarer parent",
			input: &planner.WishInput{Name: "Tiny", Parents: &entities.Parents{First: "Anky", Second: "Coelo"}},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "different recipe",
			input: &planner.WishInput{Name: "Dracoceratops", Parents: &entities.Parents{First: "Anky", Second: "Flyer"}},
			check: errors.IsFailedPrecondition,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.expectSampleLoad()
			_, err := s.orchestrator.Wish(s.ctx, tc.input)
			s.Require().Error(err)
			s.Assert().True(tc.check(err), "unexpected error: %v", err)
		})
	}
}

func (s *OrchestratorTestSuite) TestRecordHistory() {
	r := testutils.SampleRoster(s.T())
	anky, err := r.Get("Anky")
	s.Require().NoError(err)
	anky.Amount = 5000
	mocks.ExpectRosterLoad(s.ctx, s.mockRoster, r, testutils.SampleWishlist())

	s.mockHistory.EXPECT().
		Append(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *history.AppendInput) (*history.AppendOutput, error) {
			return &history.AppendOutput{Recorded: len(input.Snapshot.Amounts)}, nil
		})

	out, err := s.orchestrator.RecordHistory(s.ctx, &planner.RecordHistoryInput{})
	s.Require().NoError(err)

	s.Assert().Equal(map[string]int{"Anky": 0, "Bary": 1160, "Coelo": 280}, out.Snapshot.Amounts)
	s.Assert().Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local), out.Snapshot.TakenAt)
	s.Assert().Equal(3, out.Recorded)
}

func (s *OrchestratorTestSuite) TestHistoryOfRoots() {
	s.expectSampleLoad()
	s.mockHistory.EXPECT().
		List(s.ctx, &history.ListInput{Names: []string{"Anky", "Bary"}}).
		Return(&history.ListOutput{Snapshots: []*entities.Snapshot{
			{TakenAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), Amounts: map[string]int{"Anky": 1000, "Bary": 500}},
			{TakenAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local), Amounts: map[string]int{"Anky": 900}},
			{TakenAt: time.Date(2024, 3, 3, 0, 0, 0, 0, time.Local), Amounts: map[string]int{"Anky": 800, "Bary": 400}},
		}}, nil)

	out, err := s.orchestrator.History(s.ctx, &planner.HistoryInput{Name: "Dracoceratops", Roots: true})
	s.Require().NoError(err)

	s.Assert().Equal([]string{"Anky", "Bary"}, out.Names)
	s.Require().Len(out.Series["Bary"], 3)
	s.Assert().Equal(500, out.Series["Bary"][1].Amount)
	s.Require().Contains(out.Trends, "Anky")
	s.Assert().InDelta(-100, out.Trends["Anky"].PerDay, 1e-9)
	s.Assert().InDelta(8, out.Trends["Anky"].DaysToZero, 1e-9)
}

func (s *OrchestratorTestSuite) TestHistoryOfRarity() {
	rare := entities.RarityRare
	s.expectSampleLoad()
	s.mockHistory.EXPECT().
		List(s.ctx, &history.ListInput{Names: []string{"Coelo"}}).
		Return(&history.ListOutput{Snapshots: []*entities.Snapshot{
			{TakenAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), Amounts: map[string]int{"Coelo": 280}},
		}}, nil)

	out, err := s.orchestrator.History(s.ctx, &planner.HistoryInput{Rarity: &rare})
	s.Require().NoError(err)

	s.Assert().Equal([]string{"Coelo"}, out.Names)
	s.Assert().Empty(out.Trends)
}

func (s *OrchestratorTestSuite) TestHistoryOfTierWithoutRoots() {
	legendary := entities.RarityLegendary
	s.expectSampleLoad()

	out, err := s.orchestrator.History(s.ctx, &planner.HistoryInput{Rarity: &legendary})
	s.Require().NoError(err)
	s.Assert().Empty(out.Names)
}

func (s *OrchestratorTestSuite) TestHistoryValidation() {
	rare := entities.RarityRare

	_, err := s.orchestrator.History(s.ctx, &planner.HistoryInput{})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.History(s.ctx, &planner.HistoryInput{Name: "Anky", Rarity: &rare})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestCopyHistory() {
	target := historymock.NewMockRepository(s.ctrl)
	day1 := &entities.Snapshot{ID: "snap_1", TakenAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), Amounts: map[string]int{"Anky": 500, "Bary": 80}}
	day2 := &entities.Snapshot{ID: "snap_2", TakenAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local), Amounts: map[string]int{"Anky": 300}}

	target.EXPECT().List(s.ctx, &history.ListInput{}).Return(&history.ListOutput{}, nil)
	s.mockHistory.EXPECT().
		List(s.ctx, &history.ListInput{}).
		Return(&history.ListOutput{Snapshots: []*entities.Snapshot{day1, day2}}, nil)

	var copied []*entities.Snapshot
	target.EXPECT().
		Append(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *history.AppendInput) (*history.AppendOutput, error) {
			copied = append(copied, input.Snapshot)
			return &history.AppendOutput{Recorded: len(input.Snapshot.Amounts)}, nil
		}).
		Times(2)

	out, err := s.orchestrator.CopyHistory(s.ctx, &planner.CopyHistoryInput{Target: target})
	s.Require().NoError(err)

	s.Assert().Equal(2, out.Snapshots)
	s.Assert().Equal(3, out.Amounts)
	s.Require().Len(copied, 2)
	s.Assert().Empty(copied[0].ID)
	s.Assert().Equal(day1.TakenAt, copied[0].TakenAt)
	s.Assert().Equal(map[string]int{"Anky": 300}, copied[1].Amounts)
}

func (s *OrchestratorTestSuite) TestCopyHistoryRefusesFilledTarget() {
	target := historymock.NewMockRepository(s.ctrl)
	target.EXPECT().
		List(s.ctx, &history.ListInput{}).
		Return(&history.ListOutput{Snapshots: []*entities.Snapshot{{TakenAt: s.now}}}, nil)

	_, err := s.orchestrator.CopyHistory(s.ctx, &planner.CopyHistoryInput{Target: target})
	s.Assert().True(errors.IsFailedPrecondition(err))

	_, err = s.orchestrator.CopyHistory(s.ctx, &planner.CopyHistoryInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}
