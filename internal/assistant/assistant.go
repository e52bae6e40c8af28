// Package assistant backs the "Ask AI" page. Replies are canned texts looked
// up by exact question; a fixed fallback covers everything else. A short
// random delay imitates typing.
package assistant

import (
	_ "embed"
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed responses.yaml
var embedded []byte

const (
	DefaultMinDelay = 1500 * time.Millisecond
	DefaultJitter   = 1000 * time.Millisecond
)

type Suggestion struct {
	ID       string `yaml:"id"`
	Question string `yaml:"question"`
	Category string `yaml:"category"`
}

type catalog struct {
	Suggestions []Suggestion      `yaml:"suggestions"`
	FollowUps   []string          `yaml:"follow_ups"`
	Responses   map[string]string `yaml:"responses"`
	Fallback    string            `yaml:"fallback"`
}

// Language only switches the label shown next to the input.
type Language int

const (
	English Language = iota
	Twi
)

func (l Language) String() string {
	if l == Twi {
		return "TWI"
	}
	return "EN"
}

func (l Language) Toggle() Language {
	if l == Twi {
		return English
	}
	return Twi
}

// ReplyMsg delivers a reply once the typing delay has passed.
type ReplyMsg struct {
	Question string
	Text     string
	Matched  bool
	At       time.Time
}

type Option func(*Assistant)

// WithDelay sets the typing delay to base plus a uniform draw from [0, jitter).
func WithDelay(base, jitter time.Duration) Option {
	return func(a *Assistant) {
		a.minDelay = base
		a.jitter = jitter
	}
}

func WithRand(r *rand.Rand) Option {
	return func(a *Assistant) { a.rng = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(a *Assistant) { a.log = l }
}

type Assistant struct {
	cat      catalog
	minDelay time.Duration
	jitter   time.Duration
	rng      *rand.Rand
	log      *zap.Logger
}

func New(opts ...Option) (*Assistant, error) {
	var cat catalog
	if err := yaml.Unmarshal(embedded, &cat); err != nil {
		return nil, fmt.Errorf("assistant: parse responses: %w", err)
	}
	for q, text := range cat.Responses {
		cat.Responses[q] = strings.TrimRight(text, "\n")
	}
	cat.Fallback = strings.TrimRight(cat.Fallback, "\n")

	a := &Assistant{
		cat:      cat,
		minDelay: DefaultMinDelay,
		jitter:   DefaultJitter,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Answer returns the canned reply for question and whether one matched.
// Matching is exact after trimming surrounding whitespace.
func (a *Assistant) Answer(question string) (string, bool) {
	q := strings.TrimSpace(question)
	if text, ok := a.cat.Responses[q]; ok {
		return text, true
	}
	return a.cat.Fallback, false
}

func (a *Assistant) Fallback() string {
	return a.cat.Fallback
}

// Delay draws one typing delay.
func (a *Assistant) Delay() time.Duration {
	if a.jitter <= 0 {
		return a.minDelay
	}
	return a.minDelay + time.Duration(a.rng.Int63n(int64(a.jitter)))
}

// Ask returns a command that delivers a ReplyMsg after the typing delay, or
// nil for a blank question.
func (a *Assistant) Ask(question string) tea.Cmd {
	q := strings.TrimSpace(question)
	if q == "" {
		return nil
	}
	text, matched := a.Answer(q)
	delay := a.Delay()
	a.log.Debug("question asked",
		zap.String("question", q),
		zap.Bool("matched", matched),
		zap.Duration("delay", delay))

	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ReplyMsg{Question: q, Text: text, Matched: matched, At: t}
	})
}

func (a *Assistant) Suggestions() []Suggestion {
	out := make([]Suggestion, len(a.cat.Suggestions))
	copy(out, a.cat.Suggestions)
	return out
}

func (a *Assistant) FollowUps() []string {
	out := make([]string, len(a.cat.FollowUps))
	copy(out, a.cat.FollowUps)
	return out
}
