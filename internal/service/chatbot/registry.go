package chatbot

import (
	"context"
	"sync"
	"time"
)

type session struct {
	engine   *Engine
	lastSeen time.Time
}

// Registry hands out one Engine per chat session and forgets idle ones.
type Registry struct {
	rules    *RuleSet
	idle     time.Duration
	opts     []Option
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

func NewRegistry(rules *RuleSet, idle time.Duration, opts ...Option) *Registry {
	return &Registry{
		rules:    rules,
		idle:     idle,
		opts:     opts,
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

func (r *Registry) Rules() *RuleSet {
	return r.rules
}

// Engine returns the session's engine, creating it on first use. An empty
// session id gets a throwaway engine.
func (r *Registry) Engine(sessionID string) *Engine {
	if sessionID == "" {
		return NewEngine(r.rules, r.opts...)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		s = &session{engine: NewEngine(r.rules, r.opts...)}
		r.sessions[sessionID] = s
	}
	s.lastSeen = r.now()
	return s.engine
}

// Cleanup drops sessions idle for longer than the configured duration.
func (r *Registry) Cleanup() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	now := r.now()
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.idle {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Run cleans up every minute until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Cleanup()
		}
	}
}
