package adapt

import "testing"

func failed(latencyMs int64, responseLen int, score float64) Event {
	return Event{ResponseLen: responseLen, LatencyMs: latencyMs, Score: score}
}

func passed(latencyMs int64) Event {
	return Event{ResponseLen: 120, LatencyMs: latencyMs, Score: 0.8, Passed: true}
}

func TestClassify_NoEvents(t *testing.T) {
	if a := Classify(nil, DefaultConfig(), 60_000); a != "" {
		t.Errorf("got %q, want no action", a)
	}
}

func TestClassify_ConsecutiveSkips(t *testing.T) {
	events := []Event{
		passed(30_000),
		failed(2_000, 3, 0.1),
		failed(1_500, 0, 0.1),
	}
	if a := Classify(events, DefaultConfig(), 60_000); a != ActionForceRetrieval {
		t.Errorf("got %q, want %q", a, ActionForceRetrieval)
	}
}

func TestClassify_SkipRunBrokenByRealResponse(t *testing.T) {
	events := []Event{
		failed(2_000, 3, 0.1),
		failed(30_000, 200, 0.6),
	}
	if a := Classify(events, DefaultConfig(), 60_000); a == ActionForceRetrieval {
		t.Error("skip run broken by a real response should not force retrieval")
	}
}

func TestClassify_LowAccuracySwitchesModality(t *testing.T) {
	events := []Event{
		failed(40_000, 80, 0.3),
		failed(45_000, 90, 0.2),
		failed(50_000, 70, 0.3),
	}
	if a := Classify(events, DefaultConfig(), 60_000); a != ActionSwitchModality {
		t.Errorf("got %q, want %q", a, ActionSwitchModality)
	}
}

func TestClassify_LowAccuracyRequiresThreeEvents(t *testing.T) {
	events := []Event{
		failed(40_000, 80, 0.3),
		failed(45_000, 90, 0.2),
	}
	if a := Classify(events, DefaultConfig(), 60_000); a == ActionSwitchModality {
		t.Error("two events should not be enough for the accuracy rule")
	}
}

func TestClassify_SlowPaceShortensContent(t *testing.T) {
	// Passing answers, but median latency over 3x the expectation.
	events := []Event{
		passed(200_000),
		passed(210_000),
		passed(220_000),
	}
	if a := Classify(events, DefaultConfig(), 60_000); a != ActionShortenContent {
		t.Errorf("got %q, want %q", a, ActionShortenContent)
	}
}

func TestClassify_NearMissesAddScaffolding(t *testing.T) {
	events := []Event{
		passed(50_000),
		failed(55_000, 150, 0.6),
		failed(60_000, 140, 0.55),
		passed(50_000),
	}
	if a := Classify(events, DefaultConfig(), 60_000); a != ActionAddScaffolding {
		t.Errorf("got %q, want %q", a, ActionAddScaffolding)
	}
}

func TestClassify_WideMissesAtGoodPaceIntroduceAnalogy(t *testing.T) {
	// Prompt answers, failing well below the near-miss floor.
	events := []Event{
		passed(40_000),
		failed(45_000, 120, 0.3),
		failed(50_000, 130, 0.35),
		passed(40_000),
	}
	if a := Classify(events, DefaultConfig(), 60_000); a != ActionIntroduceAnalogy {
		t.Errorf("got %q, want %q", a, ActionIntroduceAnalogy)
	}
}

func TestClassify_HealthyLoopNoAction(t *testing.T) {
	events := []Event{passed(40_000), passed(45_000), passed(50_000)}
	if a := Classify(events, DefaultConfig(), 60_000); a != "" {
		t.Errorf("got %q, want no action", a)
	}
}

func TestClassify_SkipsOutrankAccuracy(t *testing.T) {
	events := []Event{
		failed(40_000, 80, 0.2),
		failed(2_000, 2, 0.1),
		failed(1_000, 1, 0.1),
	}
	if a := Classify(events, DefaultConfig(), 60_000); a != ActionForceRetrieval {
		t.Errorf("got %q, want %q (rule priority)", a, ActionForceRetrieval)
	}
}

func TestAnalyzeSignals_Window(t *testing.T) {
	events := make([]Event, 0, 8)
	for range 8 {
		events = append(events, passed(30_000))
	}
	s := AnalyzeSignals(events, DefaultConfig())
	if s.Window != 5 {
		t.Errorf("window = %d, want 5", s.Window)
	}
}

func TestAnalyzeSignals_MedianLatency(t *testing.T) {
	events := []Event{passed(10), passed(30), passed(20)}
	s := AnalyzeSignals(events, DefaultConfig())
	if s.MedianLatencyMs != 20 {
		t.Errorf("median = %d, want 20", s.MedianLatencyMs)
	}

	even := []Event{passed(10), passed(30)}
	s = AnalyzeSignals(even, DefaultConfig())
	if s.MedianLatencyMs != 20 {
		t.Errorf("even median = %d, want 20", s.MedianLatencyMs)
	}
}

func TestEngagementScore(t *testing.T) {
	if got := EngagementScore(Signals{}, 60_000); got != 0.5 {
		t.Errorf("no signal: got %g, want 0.5", got)
	}

	healthy := AnalyzeSignals([]Event{passed(30_000), passed(35_000)}, DefaultConfig())
	if got := EngagementScore(healthy, 60_000); got < 0.9 {
		t.Errorf("healthy loop: got %g, want >= 0.9", got)
	}

	skipping := AnalyzeSignals([]Event{failed(1_000, 2, 0), failed(1_000, 2, 0)}, DefaultConfig())
	if got := EngagementScore(skipping, 60_000); got > 0.5 {
		t.Errorf("skipping learner: got %g, want <= 0.5", got)
	}
}
