package service

import (
	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/andresuchdata/medicast/backend-go/internal/timeseries"
)

type AnalyticsService struct {
	synth        *timeseries.Synthesizer
	defaultYears int
}

func NewAnalyticsService(synth *timeseries.Synthesizer, defaultYears int) *AnalyticsService {
	if defaultYears <= 0 || defaultYears > timeseries.MaxYears {
		defaultYears = timeseries.DefaultYears
	}
	return &AnalyticsService{synth: synth, defaultYears: defaultYears}
}

// History synthesizes and analyses sales history for medicine.
func (s *AnalyticsService) History(medicine string, opts timeseries.Options) (domain.HistoryAnalytics, error) {
	if opts.Years == 0 {
		opts.Years = s.defaultYears
	}
	return s.synth.Analyze(medicine, opts)
}
