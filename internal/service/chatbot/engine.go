package chatbot

import (
	"math/rand/v2"
	"strings"
	"sync"
)

const HistorySize = 5

const replySeparator = "\n\n"

// Reply is the outcome of one message. NeedsEscalation is set, and Text left
// empty, when no intent matched.
type Reply struct {
	Text            string
	NeedsEscalation bool
	OriginalMessage string
	Intents         []string
}

type Option func(*Engine)

// WithRand fixes the response picker, used for reproducible replies.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rnd = r
	}
}

// Engine answers messages for one conversation.
type Engine struct {
	rules   *RuleSet
	mu      sync.Mutex
	history *History
	rnd     *rand.Rand
}

func NewEngine(rules *RuleSet, opts ...Option) *Engine {
	e := &Engine{
		rules:   rules,
		history: NewHistory(HistorySize),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return e
}

func normalize(message string) string {
	return strings.TrimSpace(strings.ToLower(message))
}

func (e *Engine) pick(responses []string) string {
	return responses[e.rnd.IntN(len(responses))]
}

// Respond classifies the message and composes the reply.
func (e *Engine) Respond(message string) Reply {
	msg := normalize(message)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.history.Push(msg)

	var matched []*IntentRule
	for i := range e.rules.intents {
		rule := &e.rules.intents[i]
		if rule.Match(msg) {
			matched = append(matched, rule)
		}
	}

	if len(matched) == 0 {
		return Reply{
			NeedsEscalation: true,
			OriginalMessage: message,
		}
	}

	texts := make([]string, 0, len(matched))
	names := make([]string, 0, len(matched))
	for _, rule := range matched {
		texts = append(texts, e.pick(rule.Responses))
		names = append(names, rule.Name)
	}

	return Reply{
		Text:    strings.Join(texts, replySeparator),
		Intents: names,
	}
}

// FallbackText picks one of the fallback responses.
func (e *Engine) FallbackText() (string, bool) {
	fb, ok := e.rules.Fallback()
	if !ok {
		return "", false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pick(fb.Responses), true
}

func (e *Engine) ButtonResponse(buttonID string) (string, bool) {
	b, ok := e.rules.Button(buttonID)
	if !ok {
		return "", false
	}
	return b.Response, true
}

func (e *Engine) AvailableButtons() map[string]string {
	buttons := make(map[string]string, len(e.rules.buttons))
	for _, b := range e.rules.buttons {
		buttons[b.ID] = b.Title
	}
	return buttons
}

// History is kept for analytics only, matching never reads it.
func (e *Engine) History() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Items()
}
