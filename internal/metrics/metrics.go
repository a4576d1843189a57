// Package metrics exposes outstanding DNA as Prometheus gauges and writes
// them to a node-exporter textfile.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
)

const namespace = "dna_planner"

// Exporter receives the outcome of each planning pass
type Exporter interface {
	Observe(obs *Observation) error
	Flush() error
}

// Observation is one computed set of requirements
type Observation struct {
	Roster   *entities.Roster
	Totals   entities.Requirements
	Wishlist []string
	At       time.Time
}

// Config configures the recorder
type Config struct {
	// TextfilePath is where Flush writes; empty disables writing
	TextfilePath string
}

// Recorder keeps the gauges in a private registry
type Recorder struct {
	registry *prometheus.Registry
	textfile string

	rootDeficit  *prometheus.GaugeVec
	wishlistSize prometheus.Gauge
	totalDeficit prometheus.Gauge
	observedAt   prometheus.Gauge
}

var _ Exporter = (*Recorder)(nil)

// New creates a recorder. A nil config keeps metrics in memory only.
func New(cfg *Config) *Recorder {
	if cfg == nil {
		cfg = &Config{}
	}

	r := &Recorder{
		registry: prometheus.NewRegistry(),
		textfile: cfg.TextfilePath,
		rootDeficit: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "root_deficit",
			Help:      "Root DNA still needed for the wishlist.",
		}, []string{"creature", "rarity"}),
		wishlistSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wishlist_size",
			Help:      "Creatures on the wishlist.",
		}),
		totalDeficit: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_deficit",
			Help:      "Sum of root DNA still needed.",
		}),
		observedAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_observation_timestamp_seconds",
			Help:      "Unix time of the last planning pass.",
		}),
	}
	r.registry.MustRegister(r.rootDeficit, r.wishlistSize, r.totalDeficit, r.observedAt)
	return r
}

// Observe replaces the gauges with obs. Roots missing from obs are dropped.
func (r *Recorder) Observe(obs *Observation) error {
	if obs == nil || obs.Roster == nil {
		return errors.InvalidArgument("observation with roster is required")
	}

	r.rootDeficit.Reset()
	for _, name := range obs.Totals.Names() {
		c, err := obs.Roster.Get(name)
		if err != nil {
			return errors.Wrap(err, "metrics")
		}
		r.rootDeficit.WithLabelValues(name, strings.ToLower(c.Rarity.String())).
			Set(float64(obs.Totals.Get(name)))
	}
	r.wishlistSize.Set(float64(len(obs.Wishlist)))
	r.totalDeficit.Set(float64(obs.Totals.Total()))
	if !obs.At.IsZero() {
		r.observedAt.Set(float64(obs.At.Unix()))
	}
	return nil
}

// Flush writes the textfile when one is configured
func (r *Recorder) Flush() error {
	if r.textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(r.textfile, r.registry); err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable, "write metrics to %s", r.textfile)
	}
	return nil
}

// Gatherer exposes the registry, mainly for tests
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}
