// Package session glues the learning loop together: decomposition, content
// orchestration, Socratic evaluation, adaptation, and mastery updates, all
// against the storage seam.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tutorloop/tutorloop/internal/adapt"
	"github.com/tutorloop/tutorloop/internal/decompose"
	"github.com/tutorloop/tutorloop/internal/evaluate"
	"github.com/tutorloop/tutorloop/internal/graph"
	"github.com/tutorloop/tutorloop/internal/mastery"
	"github.com/tutorloop/tutorloop/internal/orchestrate"
	"github.com/tutorloop/tutorloop/internal/store"
)

// ErrPrerequisiteViolation is returned when a session's current concept has
// unmastered prerequisites. It should not occur through normal flow; it
// guards against clients replaying stale sessions after state changes.
var ErrPrerequisiteViolation = errors.New("concept prerequisites not mastered")

// responsesPerConcept spreads a node's estimated learning time across the
// turns a concept typically takes, giving the expected per-response latency
// the adaptation rules compare against.
const responsesPerConcept = 10

// Repos bundles the storage interfaces the service needs.
type Repos struct {
	Goals     store.GoalRepo
	Graphs    store.GraphRepo
	Sessions  store.SessionRepo
	Masteries store.MasteryRepo
	Events    store.EventRepo
}

// Service runs the learning loop.
type Service struct {
	repos      Repos
	decomposer *decompose.Decomposer
	scorer     evaluate.Scorer
	adaptCfg   adapt.Config

	mu    sync.Mutex
	locks map[string]*sync.Mutex // per-session interact serialization

	now func() time.Time
}

// NewService wires the loop. A nil scorer defaults to the heuristic.
func NewService(repos Repos, dec *decompose.Decomposer, scorer evaluate.Scorer) *Service {
	if scorer == nil {
		scorer = evaluate.NewHeuristicScorer()
	}
	return &Service{
		repos:      repos,
		decomposer: dec,
		scorer:     scorer,
		adaptCfg:   adapt.DefaultConfig(),
		locks:      make(map[string]*sync.Mutex),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// sessionLock returns the mutex serializing interacts for one session.
func (s *Service) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}

// CreateGoal decomposes a goal into a concept graph and persists both.
func (s *Service) CreateGoal(ctx context.Context, userID, goalText string) (*GoalResult, error) {
	g, err := s.decomposer.Decompose(ctx, goalText)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Graphs.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("save graph: %w", err)
	}

	goal := &store.Goal{
		ID:        uuid.NewString(),
		UserID:    userID,
		Goal:      goalText,
		GraphID:   g.ID,
		Status:    store.GoalStatusActive,
		CreatedAt: s.now(),
	}
	if err := s.repos.Goals.Save(ctx, goal); err != nil {
		return nil, fmt.Errorf("save goal: %w", err)
	}

	return &GoalResult{
		GoalID:   goal.ID,
		GraphID:  g.ID,
		Graph:    g,
		Concepts: g.Concepts(),
	}, nil
}

// GetGraph returns the concept graph for a goal.
func (s *Service) GetGraph(ctx context.Context, goalID string) (*GraphResult, error) {
	goal, err := s.repos.Goals.Get(ctx, goalID)
	if err != nil {
		return nil, err
	}
	g, err := s.repos.Graphs.Get(ctx, goal.GraphID)
	if err != nil {
		return nil, err
	}
	return &GraphResult{Graph: g, Goal: goal.Goal}, nil
}

// StartSession opens a session on the next available concept for the goal.
func (s *Service) StartSession(ctx context.Context, goalID, userID string) (*StartResult, error) {
	goal, err := s.repos.Goals.Get(ctx, goalID)
	if err != nil {
		return nil, err
	}
	g, err := s.repos.Graphs.Get(ctx, goal.GraphID)
	if err != nil {
		return nil, err
	}

	states, err := s.repos.Masteries.ListByGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	mastered := mastery.MasteredSet(states)

	progress := g.ProgressPercentage(mastered)
	next := g.SelectNext(mastered)
	if next == "" {
		return &StartResult{
			Completed: true,
			Message:   "All concepts mastered! Goal complete.",
			Progress:  progress,
		}, nil
	}

	now := s.now()
	sess := &store.Session{
		ID:                uuid.NewString(),
		GoalID:            goalID,
		UserID:            userID,
		CurrentConcept:    next,
		Stage:             orchestrate.StageExplain,
		Modality:          orchestrate.ModalityText,
		AskedQuestions:    make(map[string][]string),
		StartedAt:         now,
		LastInteractionAt: now,
	}
	sess.ConceptsMastered = mastery.MasteredConcepts(states)
	if err := s.repos.Sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if err := s.ensureMastery(ctx, userID, goalID, next); err != nil {
		return nil, err
	}

	node, err := g.Node(next)
	if err != nil {
		return nil, err
	}
	content := orchestrate.NextContent(orchestrate.Request{
		Node:     node,
		Stage:    sess.Stage,
		Modality: sess.Modality,
	})

	return &StartResult{
		SessionID:    sess.ID,
		FirstConcept: next,
		Content:      &content,
		Progress:     progress,
	}, nil
}

// Interact processes one learner turn. Every submission is scored and
// recorded; the stage machine is only the advancement gate, so delivery
// stages move forward regardless of the result while question stages
// re-enter on failure. Failures pick an adaptation from the recent window.
// Interacts on the same session are serialized.
func (s *Service) Interact(ctx context.Context, sessionID, response string) (*InteractResult, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.repos.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Completed {
		return &InteractResult{
			SessionID:          sess.ID,
			Completed:          true,
			Message:            "Congratulations! You've mastered all concepts.",
			ProgressPercentage: 100,
		}, nil
	}

	goal, err := s.repos.Goals.Get(ctx, sess.GoalID)
	if err != nil {
		return nil, err
	}
	g, err := s.repos.Graphs.Get(ctx, goal.GraphID)
	if err != nil {
		return nil, err
	}

	concept := sess.CurrentConcept
	node, err := g.Node(concept)
	if err != nil {
		return nil, err
	}

	mastered, err := s.masteredSet(ctx, sess.UserID, sess.GoalID)
	if err != nil {
		return nil, err
	}
	if !g.IsUnlocked(concept, mastered) {
		return nil, fmt.Errorf("%w: %s", ErrPrerequisiteViolation, concept)
	}

	now := s.now()
	latencyMs := now.Sub(sess.LastInteractionAt).Milliseconds()
	sess.LastInteractionAt = now
	sess.InteractionCount++

	ev, err := s.scorer.Evaluate(ctx, evaluate.Input{
		Concept:         concept,
		Response:        response,
		QuestionHistory: sess.AskedQuestions[concept],
	})
	if err != nil {
		return nil, fmt.Errorf("evaluate response: %w", err)
	}

	st, err := s.repos.Masteries.Get(ctx, sess.UserID, sess.GoalID, concept)
	if errors.Is(err, store.ErrNotFound) {
		st = mastery.NewState(sess.UserID, sess.GoalID, concept)
	} else if err != nil {
		return nil, err
	}
	st.RecordEvaluation(ev.Score, now)

	interaction := &store.Interaction{
		ID:        uuid.NewString(),
		SessionID: sess.ID,
		Concept:   concept,
		Response:  response,
		LatencyMs: latencyMs,
		Score:     ev.Score,
		Passed:    ev.Passed,
		Timestamp: now,
	}

	if ev.Passed {
		if err := s.repos.Events.AppendInteraction(ctx, interaction); err != nil {
			return nil, err
		}
		return s.advance(ctx, g, node, sess, st, ev, mastered)
	}

	// Failed evaluation: classify an adaptation from the recent window.
	// A failed delivery stage still moves forward; a failed question stage
	// re-enters with adjusted delivery.
	recent, err := s.repos.Events.RecentInteractions(ctx, sess.ID, s.adaptCfg.WindowSize)
	if err != nil {
		return nil, err
	}
	events := toAdaptEvents(recent)
	events = append(events, adapt.Event{
		ResponseLen: len(response),
		LatencyMs:   latencyMs,
		Score:       ev.Score,
		Passed:      false,
	})
	action := adapt.Classify(events, s.adaptCfg, expectedLatencyMs(node))

	interaction.Adaptation = string(action)
	if err := s.repos.Events.AppendInteraction(ctx, interaction); err != nil {
		return nil, err
	}
	if err := s.repos.Masteries.Save(ctx, st); err != nil {
		return nil, err
	}

	if ev.FollowUp != "" {
		qt := evaluate.FollowUpType(ev.Score, sess.AskedQuestions[concept])
		if sess.AskedQuestions == nil {
			sess.AskedQuestions = make(map[string][]string)
		}
		sess.AskedQuestions[concept] = append(sess.AskedQuestions[concept], qt)
	}

	sess.Stage = orchestrate.Advance(sess.Stage, false, action)
	sess.Modality = orchestrate.NextModality(sess.Modality, action)
	if err := s.repos.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	content := orchestrate.NextContent(orchestrate.Request{
		Node:     node,
		Stage:    sess.Stage,
		Modality: sess.Modality,
		Attempts: st.Attempts,
		Action:   action,
	})

	return &InteractResult{
		SessionID:          sess.ID,
		Passed:             false,
		Stage:              sess.Stage,
		Feedback:           ev.Feedback,
		FollowUpQuestion:   ev.FollowUp,
		AdaptationApplied:  string(action),
		NextContent:        &content,
		ReasoningQuality:   ev.Score,
		Breakdown:          ev.Breakdown,
		ProgressPercentage: g.ProgressPercentage(mastered),
	}, nil
}

// advance moves a session forward after a passed evaluation. Delivery and
// recall passes only advance the stage; a transfer pass marks the concept
// mastered and selects the next concept, completing the goal when none
// remains.
func (s *Service) advance(ctx context.Context, g *graph.Graph, node graph.Node, sess *store.Session, st *mastery.State, ev evaluate.Evaluation, mastered map[string]bool) (*InteractResult, error) {
	sess.Stage = orchestrate.Advance(sess.Stage, true, "")

	if sess.Stage != orchestrate.StageComplete {
		if err := s.repos.Masteries.Save(ctx, st); err != nil {
			return nil, err
		}
		content := orchestrate.NextContent(orchestrate.Request{
			Node:     node,
			Stage:    sess.Stage,
			Modality: sess.Modality,
			Attempts: st.Attempts,
		})
		if err := s.repos.Sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
		return &InteractResult{
			SessionID:          sess.ID,
			Passed:             true,
			Stage:              sess.Stage,
			Feedback:           ev.Feedback,
			NextContent:        &content,
			ReasoningQuality:   ev.Score,
			Breakdown:          ev.Breakdown,
			ProgressPercentage: g.ProgressPercentage(mastered),
		}, nil
	}

	// Transfer passed: the concept is mastered.
	st.MarkMastered(s.now())
	if err := s.repos.Masteries.Save(ctx, st); err != nil {
		return nil, err
	}
	mastered[st.Concept] = true
	sess.ConceptsMastered = append(sess.ConceptsMastered, st.Concept)

	progress := g.ProgressPercentage(mastered)
	next := g.SelectNext(mastered)
	if next == "" {
		sess.Completed = true
		if err := s.repos.Sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
		return &InteractResult{
			SessionID:          sess.ID,
			Passed:             true,
			ConceptMastered:    true,
			Completed:          true,
			Message:            "Congratulations! You've mastered all concepts.",
			ReasoningQuality:   ev.Score,
			ProgressPercentage: progress,
		}, nil
	}

	sess.CurrentConcept = next
	sess.Stage = orchestrate.StageExplain
	sess.Modality = orchestrate.ModalityText
	if err := s.repos.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	if err := s.ensureMastery(ctx, sess.UserID, sess.GoalID, next); err != nil {
		return nil, err
	}

	nextNode, err := g.Node(next)
	if err != nil {
		return nil, err
	}
	content := orchestrate.NextContent(orchestrate.Request{
		Node:  nextNode,
		Stage: orchestrate.StageExplain,
	})

	return &InteractResult{
		SessionID:          sess.ID,
		Passed:             true,
		ConceptMastered:    true,
		NewConcept:         next,
		NextContent:        &content,
		ReasoningQuality:   ev.Score,
		Feedback:           ev.Feedback,
		ProgressPercentage: progress,
	}, nil
}

// State reports a session's position and the content it would serve next.
func (s *Service) State(ctx context.Context, sessionID string) (*StateResult, error) {
	sess, err := s.repos.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	goal, err := s.repos.Goals.Get(ctx, sess.GoalID)
	if err != nil {
		return nil, err
	}
	g, err := s.repos.Graphs.Get(ctx, goal.GraphID)
	if err != nil {
		return nil, err
	}
	mastered, err := s.masteredSet(ctx, sess.UserID, sess.GoalID)
	if err != nil {
		return nil, err
	}

	res := &StateResult{
		SessionID:          sess.ID,
		CurrentConcept:     sess.CurrentConcept,
		Stage:              sess.Stage,
		ProgressPercentage: g.ProgressPercentage(mastered),
		MasteredConcepts:   sess.ConceptsMastered,
		Completed:          sess.Completed,
	}
	if sess.Completed {
		return res, nil
	}

	node, err := g.Node(sess.CurrentConcept)
	if err != nil {
		return nil, err
	}
	st, _ := s.repos.Masteries.Get(ctx, sess.UserID, sess.GoalID, sess.CurrentConcept)
	attempts := 0
	if st != nil {
		attempts = st.Attempts
	}
	content := orchestrate.NextContent(orchestrate.Request{
		Node:     node,
		Stage:    sess.Stage,
		Modality: sess.Modality,
		Attempts: attempts,
	})
	res.NextContent = &content
	return res, nil
}

// Progress builds the full progress report for a goal.
func (s *Service) Progress(ctx context.Context, userID, goalID string) (*ProgressResult, error) {
	goal, err := s.repos.Goals.Get(ctx, goalID)
	if err != nil {
		return nil, err
	}
	g, err := s.repos.Graphs.Get(ctx, goal.GraphID)
	if err != nil {
		return nil, err
	}
	states, err := s.repos.Masteries.ListByGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	mastered := mastery.MasteredSet(states)
	available, blocked := g.Availability(mastered)

	engagement, err := s.engagementScore(ctx, g, goalID)
	if err != nil {
		return nil, err
	}

	byConcept := make(map[string]*mastery.State, len(states))
	for _, st := range states {
		byConcept[st.Concept] = st
	}
	availableSet := make(map[string]bool, len(available))
	for _, c := range available {
		availableSet[c] = true
	}

	var details []ConceptDetail
	for _, concept := range g.Concepts() {
		node := g.Nodes[concept]
		d := ConceptDetail{
			Concept:       concept,
			Status:        string(graph.StatusBlocked),
			Difficulty:    node.DifficultyScore,
			EstimatedTime: node.EstimatedTimeMinutes,
		}
		if st := byConcept[concept]; st != nil {
			d.Confidence = st.Confidence
			d.Attempts = st.Attempts
		}
		switch {
		case mastered[concept]:
			d.Status = string(graph.StatusMastered)
		case availableSet[concept]:
			d.Status = string(graph.StatusAvailable)
		}
		details = append(details, d)
	}

	return &ProgressResult{
		Goal:               goal.Goal,
		ProgressPercentage: g.ProgressPercentage(mastered),
		MasteredConcepts:   mastery.MasteredConcepts(states),
		AvailableConcepts:  available,
		BlockedConcepts:    blocked,
		EngagementScore:    engagement,
		ConceptDetails:     details,
		TotalConcepts:      len(g.Nodes),
		NextConcept:        g.SelectNext(mastered),
		LastUpdated:        s.now(),
	}, nil
}

// engagementScore derives engagement from the most recently active session
// of the goal, defaulting to 0.5 when nothing has happened yet.
func (s *Service) engagementScore(ctx context.Context, g *graph.Graph, goalID string) (float64, error) {
	sessions, err := s.repos.Sessions.ListByGoal(ctx, goalID)
	if err != nil {
		return 0, err
	}
	var latest *store.Session
	for _, sess := range sessions {
		if latest == nil || sess.LastInteractionAt.After(latest.LastInteractionAt) {
			latest = sess
		}
	}
	if latest == nil {
		return 0.5, nil
	}
	recent, err := s.repos.Events.RecentInteractions(ctx, latest.ID, s.adaptCfg.WindowSize)
	if err != nil {
		return 0, err
	}
	if len(recent) == 0 {
		return 0.5, nil
	}

	var expected int64
	if node, err := g.Node(latest.CurrentConcept); err == nil {
		expected = expectedLatencyMs(node)
	}
	signals := adapt.AnalyzeSignals(toAdaptEvents(recent), s.adaptCfg)
	return adapt.EngagementScore(signals, expected), nil
}

func (s *Service) masteredSet(ctx context.Context, userID, goalID string) (map[string]bool, error) {
	states, err := s.repos.Masteries.ListByGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	return mastery.MasteredSet(states), nil
}

func (s *Service) ensureMastery(ctx context.Context, userID, goalID, concept string) error {
	_, err := s.repos.Masteries.Get(ctx, userID, goalID, concept)
	if errors.Is(err, store.ErrNotFound) {
		return s.repos.Masteries.Save(ctx, mastery.NewState(userID, goalID, concept))
	}
	return err
}

func expectedLatencyMs(node graph.Node) int64 {
	return int64(node.EstimatedTimeMinutes) * 60_000 / responsesPerConcept
}

func toAdaptEvents(interactions []*store.Interaction) []adapt.Event {
	events := make([]adapt.Event, 0, len(interactions))
	for _, in := range interactions {
		events = append(events, adapt.Event{
			ResponseLen: len(in.Response),
			LatencyMs:   in.LatencyMs,
			Score:       in.Score,
			Passed:      in.Passed,
		})
	}
	return events
}
