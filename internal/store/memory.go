package store

import (
	"context"
	"sync"
	"time"

	"github.com/tutorloop/tutorloop/internal/graph"
	"github.com/tutorloop/tutorloop/internal/mastery"
)

// Memory is the in-memory Store. All repositories share one RWMutex; reads
// return copies so callers never alias internal state.
type Memory struct {
	mu sync.RWMutex

	goals        map[string]*Goal
	graphs       map[string]*graph.Graph
	sessions     map[string]*Session
	masteries    map[masteryKey]*mastery.State
	interactions []*Interaction
	llmEvents    []*LLMRequestEvent
	seq          int64
}

type masteryKey struct {
	userID  string
	goalID  string
	concept string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		goals:     make(map[string]*Goal),
		graphs:    make(map[string]*graph.Graph),
		sessions:  make(map[string]*Session),
		masteries: make(map[masteryKey]*mastery.State),
	}
}

// Goals returns the goal repository.
func (m *Memory) Goals() GoalRepo { return (*goalRepo)(m) }

// Graphs returns the graph repository.
func (m *Memory) Graphs() GraphRepo { return (*graphRepo)(m) }

// Sessions returns the session repository.
func (m *Memory) Sessions() SessionRepo { return (*sessionRepo)(m) }

// Masteries returns the mastery repository.
func (m *Memory) Masteries() MasteryRepo { return (*masteryRepo)(m) }

// Events returns the event repository.
func (m *Memory) Events() EventRepo { return (*eventRepo)(m) }

type goalRepo Memory

func (r *goalRepo) Save(_ context.Context, g *Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *g
	r.goals[g.ID] = &cp
	return nil
}

func (r *goalRepo) Get(_ context.Context, id string) (*Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.goals[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *goalRepo) ListByUser(_ context.Context, userID string) ([]*Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

type graphRepo Memory

func (r *graphRepo) Save(_ context.Context, g *graph.Graph) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Graphs are immutable after construction, so the pointer is shared.
	r.graphs[g.ID] = g
	return nil
}

func (r *graphRepo) Get(_ context.Context, id string) (*graph.Graph, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.graphs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return g, nil
}

type sessionRepo Memory

func (r *sessionRepo) Save(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s.Clone()
	return nil
}

func (r *sessionRepo) Get(_ context.Context, id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (r *sessionRepo) ListByGoal(_ context.Context, goalID string) ([]*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Session
	for _, s := range r.sessions {
		if s.GoalID == goalID {
			out = append(out, s.Clone())
		}
	}
	return out, nil
}

type masteryRepo Memory

func (r *masteryRepo) Save(_ context.Context, st *mastery.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *st
	r.masteries[masteryKey{st.UserID, st.GoalID, st.Concept}] = &cp
	return nil
}

func (r *masteryRepo) Get(_ context.Context, userID, goalID, concept string) (*mastery.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.masteries[masteryKey{userID, goalID, concept}]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (r *masteryRepo) ListByGoal(_ context.Context, userID, goalID string) ([]*mastery.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*mastery.State
	for k, st := range r.masteries {
		if k.userID == userID && k.goalID == goalID {
			cp := *st
			out = append(out, &cp)
		}
	}
	return out, nil
}

type eventRepo Memory

func (r *eventRepo) AppendLLMRequest(_ context.Context, data LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.llmEvents = append(r.llmEvents, &LLMRequestEvent{
		Sequence:            r.seq,
		Timestamp:           time.Now().UTC(),
		LLMRequestEventData: data,
	})
	return nil
}

func (r *eventRepo) LLMRequests(_ context.Context, limit int) ([]*LLMRequestEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := len(r.llmEvents)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]*LLMRequestEvent, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		cp := *r.llmEvents[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *eventRepo) AppendInteraction(_ context.Context, in *Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *in
	r.interactions = append(r.interactions, &cp)
	return nil
}

func (r *eventRepo) RecentInteractions(_ context.Context, sessionID string, limit int) ([]*Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*Interaction
	for _, in := range r.interactions {
		if in.SessionID == sessionID {
			matched = append(matched, in)
		}
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	out := make([]*Interaction, 0, len(matched))
	for _, in := range matched {
		cp := *in
		out = append(out, &cp)
	}
	return out, nil
}
