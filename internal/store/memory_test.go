package store

import (
	"context"
	"errors"
	"testing"

	"github.com/tutorloop/tutorloop/internal/mastery"
	"github.com/tutorloop/tutorloop/internal/orchestrate"
)

func TestGoalRepo_RoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.Goals().Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing goal: got %v, want ErrNotFound", err)
	}

	g := &Goal{ID: "g1", UserID: "demo_user", Goal: "learn RL", GraphID: "gr1", Status: GoalStatusActive}
	if err := m.Goals().Save(ctx, g); err != nil {
		t.Fatal(err)
	}

	got, err := m.Goals().Get(ctx, "g1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Goal != "learn RL" || got.UserID != "demo_user" {
		t.Fatalf("got %+v", got)
	}

	// Mutating the returned copy must not affect the store.
	got.Goal = "changed"
	again, _ := m.Goals().Get(ctx, "g1")
	if again.Goal != "learn RL" {
		t.Fatal("stored goal was aliased by a read")
	}
}

func TestGoalRepo_ListByUser(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	m.Goals().Save(ctx, &Goal{ID: "g1", UserID: "a"})
	m.Goals().Save(ctx, &Goal{ID: "g2", UserID: "b"})
	m.Goals().Save(ctx, &Goal{ID: "g3", UserID: "a"})

	goals, err := m.Goals().ListByUser(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 2 {
		t.Fatalf("got %d goals, want 2", len(goals))
	}
}

func TestSessionRepo_CloneIsolation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	s := &Session{
		ID:               "s1",
		GoalID:           "g1",
		Stage:            orchestrate.StageExplain,
		ConceptsMastered: []string{"A"},
		AskedQuestions:   map[string][]string{"A": {"explanation"}},
	}
	if err := m.Sessions().Save(ctx, s); err != nil {
		t.Fatal(err)
	}

	// Mutate the original after saving.
	s.ConceptsMastered = append(s.ConceptsMastered, "B")
	s.AskedQuestions["A"] = append(s.AskedQuestions["A"], "why")

	got, err := m.Sessions().Get(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.ConceptsMastered) != 1 || len(got.AskedQuestions["A"]) != 1 {
		t.Fatalf("stored session aliased caller state: %+v", got)
	}
}

func TestSessionRepo_ListByGoal(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	m.Sessions().Save(ctx, &Session{ID: "s1", GoalID: "g1"})
	m.Sessions().Save(ctx, &Session{ID: "s2", GoalID: "g2"})

	got, err := m.Sessions().ListByGoal(ctx, "g1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("got %+v", got)
	}
}

func TestMasteryRepo_KeyedByUserGoalConcept(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	st := mastery.NewState("u1", "g1", "Q-Learning")
	if err := m.Masteries().Save(ctx, st); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Masteries().Get(ctx, "u1", "g1", "Policy Gradients"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("wrong concept: got %v, want ErrNotFound", err)
	}
	if _, err := m.Masteries().Get(ctx, "u2", "g1", "Q-Learning"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("wrong user: got %v, want ErrNotFound", err)
	}

	got, err := m.Masteries().Get(ctx, "u1", "g1", "Q-Learning")
	if err != nil {
		t.Fatal(err)
	}
	if got.Concept != "Q-Learning" {
		t.Fatalf("got %+v", got)
	}

	states, err := m.Masteries().ListByGoal(ctx, "u1", "g1")
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 {
		t.Fatalf("got %d states, want 1", len(states))
	}
}

func TestEventRepo_InteractionsWindow(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		err := m.Events().AppendInteraction(ctx, &Interaction{
			SessionID: "s1",
			Score:     float64(i) / 10,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	m.Events().AppendInteraction(ctx, &Interaction{SessionID: "other"})

	recent, err := m.Events().RecentInteractions(ctx, "s1", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 5 {
		t.Fatalf("got %d interactions, want 5", len(recent))
	}
	// Trailing window in chronological order: scores 0.2 .. 0.6.
	if recent[0].Score != 0.2 || recent[4].Score != 0.6 {
		t.Fatalf("window wrong: first %f last %f", recent[0].Score, recent[4].Score)
	}

	all, err := m.Events().RecentInteractions(ctx, "s1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 7 {
		t.Fatalf("got %d, want 7", len(all))
	}
}

func TestEventRepo_LLMRequests(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Events().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "decompose", Success: true})
	m.Events().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "evaluate", Success: false})

	events, err := m.Events().LLMRequests(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// Newest first.
	if events[0].Purpose != "evaluate" || events[0].Sequence != 2 {
		t.Fatalf("got %+v", events[0])
	}

	one, _ := m.Events().LLMRequests(ctx, 1)
	if len(one) != 1 || one[0].Purpose != "evaluate" {
		t.Fatalf("limited query wrong: %+v", one)
	}
}
