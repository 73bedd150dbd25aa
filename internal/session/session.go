// Package session holds the per-session interaction state that must survive
// between requests: the last search results feeding the summary flow, the
// last validation outcome, and one-shot notification banners. Nothing here
// is ever persisted.
package session

import (
	"errors"
	"sync"

	"bookshelf/internal/book"
)

// Summary flow states.
const (
	FlowAIdle        = "idle"
	FlowASearched    = "searched"
	FlowASummarizing = "summarizing"
	FlowASummarized  = "summarized"
)

// Recommendation flow states.
const (
	FlowBIdle         = "idle"
	FlowBInvalid      = "invalid"
	FlowBValidated    = "validated"
	FlowBRecommending = "recommending"
	FlowBRecommended  = "recommended"
)

var (
	// ErrNoSearchResults is returned when the summary flow is triggered
	// without a prior non-empty search.
	ErrNoSearchResults = errors.New("no search results to summarize")
	// ErrNotValidated is returned when the recommendation flow is triggered
	// before a successful validation.
	ErrNotValidated = errors.New("preferences have not been validated")
)

// Banner kinds.
const (
	BannerSuccess = "success"
	BannerError   = "error"
	BannerInfo    = "info"
)

// Banner is a one-shot notification: it is shown exactly once and cleared
// when read.
type Banner struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// State is the interaction state of one session.
type State struct {
	mu sync.Mutex

	flowA string
	flowB string

	lastSearch     []book.Book
	lastValidation []string
	banners        []Banner
}

func newState() *State {
	return &State{flowA: FlowAIdle, flowB: FlowBIdle}
}

// RecordSearch stores the latest search results. The results persist until
// the next search overwrites them; an empty result set resets the summary
// flow because there is no reference book left to summarize.
func (s *State) RecordSearch(results []book.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSearch = results
	if len(results) == 0 {
		s.flowA = FlowAIdle
	} else {
		s.flowA = FlowASearched
	}
}

// LastSearch returns the retained search results.
func (s *State) LastSearch() []book.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSearch
}

// BeginSummary transitions the summary flow to summarizing and returns the
// reference book: the first result of the last non-empty search.
func (s *State) BeginSummary() (book.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lastSearch) == 0 {
		return book.Book{}, ErrNoSearchResults
	}
	s.flowA = FlowASummarizing
	return s.lastSearch[0], nil
}

// EndSummary records the outcome of a summary attempt. On failure the flow
// returns to searched so the user can retry without searching again.
func (s *State) EndSummary(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.flowA = FlowASummarized
	} else {
		s.flowA = FlowASearched
	}
}

// RecordValidationFailure retains the violation messages until the next
// submission attempt overwrites them.
func (s *State) RecordValidationFailure(messages []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flowB = FlowBInvalid
	s.lastValidation = messages
}

// RecordValidated marks the preferences as accepted and clears any retained
// violations.
func (s *State) RecordValidated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flowB = FlowBValidated
	s.lastValidation = nil
}

// LastValidation returns the retained violation messages, if any.
func (s *State) LastValidation() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastValidation
}

// BeginRecommend transitions the recommendation flow to recommending. It
// fails unless the last submission validated successfully.
func (s *State) BeginRecommend() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flowB != FlowBValidated && s.flowB != FlowBRecommended {
		return ErrNotValidated
	}
	s.flowB = FlowBRecommending
	return nil
}

// EndRecommend records the outcome of a recommendation attempt.
func (s *State) EndRecommend(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.flowB = FlowBRecommended
	} else {
		s.flowB = FlowBValidated
	}
}

// FlowA returns the current summary-flow state.
func (s *State) FlowA() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flowA
}

// FlowB returns the current recommendation-flow state.
func (s *State) FlowB() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flowB
}

// AddBanner queues a one-shot notification.
func (s *State) AddBanner(kind, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banners = append(s.banners, Banner{Kind: kind, Message: message})
}

// TakeBanners returns all queued banners and clears them. Each banner is
// therefore displayed at most once.
func (s *State) TakeBanners() []Banner {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.banners
	s.banners = nil
	return out
}

// Manager hands out session state keyed by session ID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*State)}
}

// Get returns the state for id, creating it on first use.
func (m *Manager) Get(id string) *State {
	m.mu.RLock()
	st, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return st
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.sessions[id]; ok {
		return st
	}
	st = newState()
	m.sessions[id] = st
	return st
}
