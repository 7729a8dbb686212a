package adapt

// Rule inspects derived signals and either claims an action or passes.
// Rules run in fixed priority order; the first claim wins.
type Rule interface {
	Name() string
	Apply(s Signals, cfg Config, expectedLatencyMs int64) (Action, bool)
}

// DefaultRules returns the rule chain in priority order. Skip detection
// outranks accuracy because a disengaged learner produces misleading
// accuracy signals.
func DefaultRules() []Rule {
	return []Rule{
		skipRule{},
		lowAccuracyRule{},
		slowPaceRule{},
		nearMissRule{},
		analogyRule{},
	}
}

// Classify runs the default rule chain over the event window.
// Returns "" when no rule applies and the loop should proceed normally.
func Classify(events []Event, cfg Config, expectedLatencyMs int64) Action {
	s := AnalyzeSignals(events, cfg)
	for _, r := range DefaultRules() {
		if action, ok := r.Apply(s, cfg, expectedLatencyMs); ok {
			return action
		}
	}
	return ""
}

type skipRule struct{}

func (skipRule) Name() string { return "consecutive-skips" }

func (skipRule) Apply(s Signals, cfg Config, _ int64) (Action, bool) {
	if s.ConsecutiveSkips >= cfg.SkipTrigger {
		return ActionForceRetrieval, true
	}
	return "", false
}

type lowAccuracyRule struct{}

func (lowAccuracyRule) Name() string { return "low-accuracy" }

func (lowAccuracyRule) Apply(s Signals, cfg Config, _ int64) (Action, bool) {
	if s.Window >= cfg.MinAccuracyEvents && s.RollingAccuracy < cfg.LowAccuracy {
		return ActionSwitchModality, true
	}
	return "", false
}

type slowPaceRule struct{}

func (slowPaceRule) Name() string { return "slow-pace" }

func (slowPaceRule) Apply(s Signals, cfg Config, expectedLatencyMs int64) (Action, bool) {
	if s.Window == 0 || expectedLatencyMs <= 0 {
		return "", false
	}
	if float64(s.MedianLatencyMs) > cfg.SlowFactor*float64(expectedLatencyMs) {
		return ActionShortenContent, true
	}
	return "", false
}

type nearMissRule struct{}

func (nearMissRule) Name() string { return "near-miss" }

func (nearMissRule) Apply(s Signals, cfg Config, _ int64) (Action, bool) {
	if s.Window == 0 {
		return "", false
	}
	if s.RollingAccuracy >= cfg.LowAccuracy && s.RollingAccuracy < cfg.MasteryThreshold &&
		s.NearMisses >= cfg.NearMissTrigger {
		return ActionAddScaffolding, true
	}
	return "", false
}

// analogyRule catches a learner who answers promptly but keeps falling
// short of mastery without producing near-misses. The failures are wide
// of the mark, so a bridge to familiar ground helps more than a hint.
type analogyRule struct{}

func (analogyRule) Name() string { return "struggling-engaged" }

func (analogyRule) Apply(s Signals, cfg Config, expectedLatencyMs int64) (Action, bool) {
	if s.Window < cfg.MinAccuracyEvents {
		return "", false
	}
	if expectedLatencyMs > 0 && float64(s.MedianLatencyMs) > float64(expectedLatencyMs) {
		return "", false
	}
	if s.RollingAccuracy < cfg.MasteryThreshold {
		return ActionIntroduceAnalogy, true
	}
	return "", false
}
