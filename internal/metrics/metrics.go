package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "diffgame"
	subsystem = "seeder"
)

// Метрики одного запуска сидера. Свой registry, без глобального состояния
type Metrics struct {
	Registry *prometheus.Registry

	GamesGenerated      prometheus.Counter
	RectanglesGenerated prometheus.Counter
	RankingUpserts      prometheus.Counter
	FilesWritten        *prometheus.CounterVec
	LastRunDuration     prometheus.Gauge
	LastRunSuccess      prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		GamesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "games_generated_total",
			Help:      "Number of games fully written by the seeder.",
		}),
		RectanglesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rectangles_generated_total",
			Help:      "Number of difference rectangles generated.",
		}),
		RankingUpserts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ranking_upserts_total",
			Help:      "Number of leaderboard documents upserted.",
		}),
		FilesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "files_written_total",
			Help:      "Number of files written, by file kind.",
		}, []string{"kind"}),
		LastRunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_run_duration_seconds",
			Help:      "Duration of the last seeder run.",
		}),
		LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_run_success",
			Help:      "1 if the last seeder run finished without error.",
		}),
	}

	m.Registry.MustRegister(
		m.GamesGenerated,
		m.RectanglesGenerated,
		m.RankingUpserts,
		m.FilesWritten,
		m.LastRunDuration,
		m.LastRunSuccess,
	)
	return m
}

// ObserveRun фиксирует итог запуска
func (m *Metrics) ObserveRun(d time.Duration, err error) {
	m.LastRunDuration.Set(d.Seconds())
	if err != nil {
		m.LastRunSuccess.Set(0)
		return
	}
	m.LastRunSuccess.Set(1)
}

// WriteTextfile пишет метрики в формате textfile-коллектора node_exporter
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
