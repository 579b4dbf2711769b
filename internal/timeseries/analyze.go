package timeseries

import (
	"github.com/andresuchdata/medicast/backend-go/internal/domain"
)

// Options tunes Analyze. Zero values select the defaults; Year1 and Year2
// default to the two most recent synthesized years.
type Options struct {
	Years  int
	Window int
	Year1  int
	Year2  int
}

// Analyze synthesizes history for medicine and runs every analytic over it.
func (s *Synthesizer) Analyze(medicine string, opts Options) (domain.HistoryAnalytics, error) {
	if opts.Years == 0 {
		opts.Years = DefaultYears
	}
	if opts.Window == 0 {
		opts.Window = DefaultWindow
	}

	history, err := s.SynthesizeHistory(medicine, opts.Years)
	if err != nil {
		return domain.HistoryAnalytics{}, err
	}
	ma, err := MovingAverage(history, opts.Window)
	if err != nil {
		return domain.HistoryAnalytics{}, err
	}

	latest := s.LatestYear()
	if opts.Year2 == 0 {
		opts.Year2 = latest
	}
	if opts.Year1 == 0 {
		opts.Year1 = opts.Year2 - 1
	}

	anomalies := DetectAnomalies(history)

	return domain.HistoryAnalytics{
		Medicine:      medicine,
		History:       history,
		MovingAverage: ma,
		Anomalies:     anomalies,
		Comparison:    YearOverYear(history, opts.Year1, opts.Year2),
		Year1:         opts.Year1,
		Year2:         opts.Year2,
		Summary:       Summarize(history, anomalies),
	}, nil
}
