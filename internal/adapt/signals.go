package adapt

import "sort"

// AnalyzeSignals derives rolling measurements from the most recent events.
// Events are expected oldest-first; only the trailing window is considered.
func AnalyzeSignals(events []Event, cfg Config) Signals {
	if cfg.WindowSize > 0 && len(events) > cfg.WindowSize {
		events = events[len(events)-cfg.WindowSize:]
	}

	s := Signals{Window: len(events)}
	if len(events) == 0 {
		return s
	}

	passes := 0
	latencies := make([]int64, 0, len(events))
	for _, e := range events {
		if e.Passed {
			passes++
		}
		latencies = append(latencies, e.LatencyMs)
		if !e.Passed && e.Score >= cfg.NearMissFloor {
			s.NearMisses++
		}
	}
	s.RollingAccuracy = float64(passes) / float64(len(events))

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	mid := len(latencies) / 2
	if len(latencies)%2 == 0 {
		s.MedianLatencyMs = (latencies[mid-1] + latencies[mid]) / 2
	} else {
		s.MedianLatencyMs = latencies[mid]
	}

	// Trailing run of near-empty responses.
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].ResponseLen >= cfg.SkipLengthChars {
			break
		}
		s.ConsecutiveSkips++
	}

	return s
}

// EngagementScore condenses signals into a [0, 1] score for dashboards.
// Returns 0.5 when there is no signal to judge by.
func EngagementScore(s Signals, expectedLatencyMs int64) float64 {
	if s.Window == 0 {
		return 0.5
	}

	paceScore := 1.0
	if expectedLatencyMs > 0 && s.MedianLatencyMs > expectedLatencyMs {
		paceScore = 0.5
	}
	skipPenalty := 1.0 - float64(s.ConsecutiveSkips)/float64(s.Window)
	if skipPenalty < 0 {
		skipPenalty = 0
	}
	confusionPenalty := 1.0 - (1.0-s.RollingAccuracy)*0.5

	score := paceScore*0.2 + s.RollingAccuracy*0.4 + skipPenalty*0.2 + confusionPenalty*0.2
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
