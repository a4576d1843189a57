package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
	"github.com/KirkDiggler/dna-planner/internal/testutils"
)

type RecorderTestSuite struct {
	suite.Suite
	roster *entities.Roster
}

func TestRecorderSuite(t *testing.T) {
	suite.Run(t, new(RecorderTestSuite))
}

func (s *RecorderTestSuite) SetupTest() {
	s.roster = testutils.SampleRoster(s.T())
}

func (s *RecorderTestSuite) observe(r *Recorder, totals entities.Requirements) {
	s.Require().NoError(r.Observe(&Observation{
		Roster:   s.roster,
		Totals:   totals,
		Wishlist: testutils.SampleWishlist(),
		At:       time.Unix(1700000000, 0),
	}))
}

func (s *RecorderTestSuite) TestObserve() {
	r := New(nil)
	s.observe(r, entities.Requirements{"Anky": 900, "Bary": 1160, "Coelo": 280})

	s.Assert().Equal(900.0, testutil.ToFloat64(r.rootDeficit.WithLabelValues("Anky", "common")))
	s.Assert().Equal(280.0, testutil.ToFloat64(r.rootDeficit.WithLabelValues("Coelo", "rare")))
	s.Assert().Equal(2340.0, testutil.ToFloat64(r.totalDeficit))
	s.Assert().Equal(2.0, testutil.ToFloat64(r.wishlistSize))
	s.Assert().Equal(1700000000.0, testutil.ToFloat64(r.observedAt))
}

func (s *RecorderTestSuite) TestObserveDropsClearedRoots() {
	r := New(nil)
	s.observe(r, entities.Requirements{"Anky": 900, "Bary": 1160})
	s.observe(r, entities.Requirements{"Bary": 40})

	s.Assert().Equal(1, testutil.CollectAndCount(r.rootDeficit))
	s.Assert().Equal(40.0, testutil.ToFloat64(r.totalDeficit))
}

func (s *RecorderTestSuite) TestObserveUnknownRoot() {
	r := New(nil)
	err := r.Observe(&Observation{Roster: s.roster, Totals: entities.Requirements{"Nope": 1}})
	s.Assert().True(errors.IsMissingCreature(err))

	s.Assert().True(errors.IsInvalidArgument(r.Observe(nil)))
}

func (s *RecorderTestSuite) TestFlush() {
	s.Run("disabled without a path", func() {
		s.Assert().NoError(New(&Config{}).Flush())
	})

	s.Run("writes textfile", func() {
		path := filepath.Join(s.T().TempDir(), "dna.prom")
		r := New(&Config{TextfilePath: path})
		s.observe(r, entities.Requirements{"Anky": 900})
		s.Require().NoError(r.Flush())

		data, err := os.ReadFile(path)
		s.Require().NoError(err)
		s.Assert().Contains(string(data), `dna_planner_root_deficit{creature="Anky",rarity="common"} 900`)
		s.Assert().Contains(string(data), "dna_planner_wishlist_size 2")
	})
}
