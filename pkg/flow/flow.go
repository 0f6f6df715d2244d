// Package flow runs the button-driven chord conversation: pick a root,
// then a quality, then an accidental, and get the chord plus the chord to
// improvise over. It knows nothing about the transport; the API and the
// terminal UI both drive it through Store.
package flow

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/james-see/jazzimpro/pkg/i18n"
	"github.com/james-see/jazzimpro/pkg/theory"
	"golang.org/x/text/language"
)

// DefaultTTL is how long an idle session lives
const DefaultTTL = 5 * time.Minute

// ErrInvalidAction is returned for action data the current step cannot accept
var ErrInvalidAction = errors.New("invalid action")

// Step is the position of a session in the conversation
type Step int

const (
	StepRoot Step = iota
	StepType
	StepAccidental
	// StepDone marks a finished conversation. It is kept until its TTL only
	// so that restart remembers the language; otherwise it counts as gone.
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepRoot:
		return "root"
	case StepType:
		return "type"
	case StepAccidental:
		return "acc"
	case StepDone:
		return "done"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// Session is the state of one conversation
type Session struct {
	ID      string
	Lang    language.Tag
	Step    Step
	Root    string
	Quality theory.Quality

	timer *time.Timer
	gen   int
}

// Result is the outcome of a completed conversation
type Result struct {
	Analysis theory.Analysis
	Base     string // e.g. "Cmaj7 (C E G B)"
	Improv   string
}

// Reply is what the transport shows after an action
type Reply struct {
	Text     string
	Keyboard Keyboard
	Result   *Result
	Closed   bool // the session no longer exists
}

// ExpireFunc is called, outside any lock, when a session times out
type ExpireFunc func(id, text string)

// Store keeps one session per chat and expires idle ones
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	lang     language.Tag
	tr       *i18n.Translator
	onExpire ExpireFunc
}

// NewStore creates a store. A zero ttl means DefaultTTL; defaultLang is
// used for chats that never said which language they speak.
func NewStore(tr *i18n.Translator, ttl time.Duration, defaultLang string, onExpire ExpireFunc) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		lang:     tr.Match(defaultLang),
		tr:       tr,
		onExpire: onExpire,
	}
}

// New starts a session under a fresh id
func (s *Store) New(lang string) (string, Reply) {
	id := uuid.New().String()
	return id, s.Start(id, lang)
}

// Start begins (or restarts) the conversation for id at the root step
func (s *Store) Start(id, lang string) Reply {
	tag := s.lang
	if lang != "" {
		tag = s.tr.Match(lang)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.open(id, tag)
	return Reply{
		Text:     s.tr.T(tag, i18n.Welcome),
		Keyboard: rootKeyboard(s.tr, tag, true),
	}
}

// Handle applies the action data of a pressed button
func (s *Store) Handle(id, data string) (Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	lang := s.lang
	if ok {
		lang = sess.Lang
		ok = sess.Step != StepDone
	}

	switch data {
	case ActionShowHelp:
		return Reply{Text: s.tr.T(lang, i18n.Help)}, nil
	case ActionQuickCancel:
		s.drop(id)
		return Reply{Text: s.tr.T(lang, i18n.Cancelled), Closed: true}, nil
	case ActionRestart:
		// also the only button left once a conversation has finished
		s.open(id, lang)
		return Reply{Text: s.tr.T(lang, i18n.ChooseRoot), Keyboard: rootKeyboard(s.tr, lang, true)}, nil
	}

	if !ok {
		return Reply{Text: s.tr.T(lang, i18n.Expired), Closed: true}, nil
	}

	switch data {
	case ActionBackRoot:
		sess.Step, sess.Root = StepRoot, ""
		s.touch(sess)
		return Reply{Text: s.tr.T(lang, i18n.ChooseRoot), Keyboard: rootKeyboard(s.tr, lang, false)}, nil
	case ActionBackType:
		if sess.Root == "" {
			return Reply{}, fmt.Errorf("%w: %q before a root was chosen", ErrInvalidAction, data)
		}
		sess.Step = StepType
		s.touch(sess)
		return Reply{Text: s.tr.T(lang, i18n.RootChosen, sess.Root), Keyboard: typeKeyboard(s.tr, lang)}, nil
	}

	step, value, found := strings.Cut(data, ":")
	if !found {
		return Reply{}, fmt.Errorf("%w: %q", ErrInvalidAction, data)
	}

	switch {
	case step == prefixRoot && sess.Step == StepRoot:
		if !isRoot(value) {
			return Reply{}, fmt.Errorf("%w: unknown root %q", ErrInvalidAction, value)
		}
		sess.Root = value
		sess.Step = StepType
		s.touch(sess)
		return Reply{Text: s.tr.T(lang, i18n.RootChosen, value), Keyboard: typeKeyboard(s.tr, lang)}, nil

	case step == prefixType && sess.Step == StepType:
		q, err := theory.ParseQuality(value)
		if err != nil || value == "" {
			return Reply{}, fmt.Errorf("%w: unknown quality %q", ErrInvalidAction, value)
		}
		sess.Quality = q
		sess.Step = StepAccidental
		s.touch(sess)
		return Reply{Text: s.tr.T(lang, i18n.QualityChosen, q.Token()), Keyboard: accKeyboard(s.tr, lang)}, nil

	case step == prefixAcc && sess.Step == StepAccidental:
		if value != "" && value != "b" && value != "#" {
			return Reply{}, fmt.Errorf("%w: unknown accidental %q", ErrInvalidAction, value)
		}
		symbol := sess.Root + value + sess.Quality.Token()
		sess.Step = StepDone
		s.touch(sess)
		return s.result(lang, symbol), nil
	}

	return Reply{}, fmt.Errorf("%w: %q at step %s", ErrInvalidAction, data, sess.Step)
}

// Cancel ends the session for id
func (s *Store) Cancel(id string) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.Step == StepDone {
		lang := s.lang
		if ok {
			lang = sess.Lang
		}
		s.drop(id)
		return Reply{Text: s.tr.T(lang, i18n.NoSession), Closed: true}
	}
	s.drop(id)
	return Reply{Text: s.tr.T(sess.Lang, i18n.Cancelled), Closed: true}
}

// Session returns a copy of the session for id
func (s *Store) Session(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.Step == StepDone {
		return Session{}, false
	}
	cp := *sess
	cp.timer = nil
	return cp, true
}

// Len returns the number of conversations in progress
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sess := range s.sessions {
		if sess.Step != StepDone {
			n++
		}
	}
	return n
}

// Close stops every timer and forgets all sessions
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.sessions {
		s.drop(id)
	}
}

func (s *Store) result(lang language.Tag, symbol string) Reply {
	a, err := theory.Analyze(symbol)
	if err != nil {
		return Reply{Text: s.tr.T(lang, i18n.Failed, err.Error()), Keyboard: resultKeyboard(s.tr, lang), Closed: true}
	}

	res := &Result{
		Analysis: a,
		Base:     label(a.Chord, a.Notes),
		Improv:   label(a.Improvisation, a.ImprovisationNotes),
	}
	text := fmt.Sprintf("%s\n%-25s | %s\n%-25s | %s",
		s.tr.T(lang, i18n.Result),
		s.tr.T(lang, i18n.BaseChord), res.Base,
		s.tr.T(lang, i18n.ImprovChord), res.Improv,
	)
	return Reply{Text: text, Keyboard: resultKeyboard(s.tr, lang), Result: res, Closed: true}
}

func label(c theory.Chord, notes []theory.Note) string {
	names := make([]string, len(notes))
	for i, n := range notes {
		names[i] = n.String()
	}
	return fmt.Sprintf("%s (%s)", c.Symbol(), strings.Join(names, " "))
}

// open replaces any session for id with a fresh one at the root step.
// Caller holds s.mu.
func (s *Store) open(id string, lang language.Tag) *Session {
	s.drop(id)
	sess := &Session{ID: id, Lang: lang, Step: StepRoot}
	s.sessions[id] = sess
	s.touch(sess)
	return sess
}

// touch (re)arms the expiry timer. Caller holds s.mu.
func (s *Store) touch(sess *Session) {
	if sess.timer != nil {
		sess.timer.Stop()
	}
	sess.gen++
	gen := sess.gen
	sess.timer = time.AfterFunc(s.ttl, func() { s.expire(sess, gen) })
}

// expire drops sess unless it was touched or replaced since the timer armed
func (s *Store) expire(sess *Session, gen int) {
	s.mu.Lock()
	cur, ok := s.sessions[sess.ID]
	if !ok || cur != sess || sess.gen != gen {
		s.mu.Unlock()
		return
	}
	delete(s.sessions, sess.ID)
	done := sess.Step == StepDone
	text := s.tr.T(sess.Lang, i18n.Expired)
	s.mu.Unlock()

	if s.onExpire != nil && !done {
		s.onExpire(sess.ID, text)
	}
}

// drop removes a session. Caller holds s.mu.
func (s *Store) drop(id string) {
	if sess, ok := s.sessions[id]; ok {
		sess.timer.Stop()
		delete(s.sessions, id)
	}
}

func isRoot(v string) bool {
	for _, r := range Roots {
		if r == v {
			return true
		}
	}
	return false
}
