package flow

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/james-see/jazzimpro/pkg/i18n"
	"github.com/james-see/jazzimpro/pkg/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(i18n.MustNew(), time.Minute, "en", nil)
	t.Cleanup(s.Close)
	return s
}

func press(t *testing.T, s *Store, id string, actions ...string) Reply {
	t.Helper()
	var r Reply
	for _, a := range actions {
		var err error
		r, err = s.Handle(id, a)
		require.NoError(t, err, a)
	}
	return r
}

func TestFullConversation(t *testing.T) {
	s := newTestStore(t)
	welcome := s.Start("chat", "en")
	assert.Contains(t, welcome.Text, "Welcome")
	require.Len(t, welcome.Keyboard, 5)
	assert.Equal(t, ActionShowHelp, welcome.Keyboard[0][0].Data)
	assert.Equal(t, ActionQuickCancel, welcome.Keyboard[0][1].Data)
	assert.Equal(t, "root:C", welcome.Keyboard[1][0].Data)
	assert.Equal(t, "root:B", welcome.Keyboard[4][0].Data)

	r := press(t, s, "chat", "root:D")
	assert.Len(t, r.Keyboard, 6)
	assert.Equal(t, ActionBackRoot, r.Keyboard[0][0].Data)
	assert.Equal(t, "type:m7", r.Keyboard[2][0].Data)

	r = press(t, s, "chat", "type:m7")
	assert.Len(t, r.Keyboard, 4)
	assert.Equal(t, ActionBackType, r.Keyboard[0][0].Data)

	r = press(t, s, "chat", "acc:")
	require.NotNil(t, r.Result)
	assert.True(t, r.Closed)
	assert.Equal(t, "Dm7 (D F A C)", r.Result.Base)
	assert.Equal(t, "Am7 (A C E G)", r.Result.Improv)
	assert.Contains(t, r.Text, "Dm7 (D F A C)")
	assert.Equal(t, ActionRestart, r.Keyboard[0][0].Data)
	assert.Equal(t, 0, s.Len())
}

func TestAccidentals(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		root, quality, acc string
		base, improv       string
	}{
		{"B", "m7b5", "", "Bm7b5 (B D F A)", "Fmaj7 (F A C E)"},
		{"C", "dim7", "", "Cdim7 (C Eb Gb Bbb)", "Gbdim7 (Gb Bbb Dbb Fbb)"},
		{"C", "maj7", "#", "C#maj7 (C# E# G# B#)", "G#maj7 (G# B# D# F##)"},
		{"B", "7", "b", "Bb7 (Bb D F Ab)", "Fm7 (F Ab C Eb)"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			s.Start("chat", "en")
			r := press(t, s, "chat", "root:"+tt.root, "type:"+tt.quality, "acc:"+tt.acc)
			require.NotNil(t, r.Result)
			assert.Equal(t, tt.base, r.Result.Base)
			assert.Equal(t, tt.improv, r.Result.Improv)
		})
	}
}

func TestUnspellableResult(t *testing.T) {
	s := newTestStore(t)
	s.Start("chat", "en")

	// Fdim7 improvises over Cbdim7, whose seventh needs a triple flat
	r := press(t, s, "chat", "root:F", "type:dim7", "acc:")
	assert.Nil(t, r.Result)
	assert.True(t, r.Closed)
	assert.True(t, strings.HasPrefix(r.Text, "⚠️"))
	assert.Equal(t, 0, s.Len())
}

func TestBackNavigation(t *testing.T) {
	s := newTestStore(t)
	s.Start("chat", "en")

	press(t, s, "chat", "root:E", "type:7")
	r := press(t, s, "chat", ActionBackType)
	assert.Contains(t, r.Text, "E")
	sess, ok := s.Session("chat")
	require.True(t, ok)
	assert.Equal(t, StepType, sess.Step)
	assert.Equal(t, "E", sess.Root)

	r = press(t, s, "chat", ActionBackRoot)
	assert.Len(t, r.Keyboard, 4, "no quick row after back")
	sess, _ = s.Session("chat")
	assert.Equal(t, StepRoot, sess.Step)
	assert.Empty(t, sess.Root)

	r = press(t, s, "chat", "root:A", "type:maj7", "acc:b")
	assert.Equal(t, "Abmaj7 (Ab C Eb G)", r.Result.Base)
}

func TestInvalidActions(t *testing.T) {
	s := newTestStore(t)
	s.Start("chat", "en")

	for _, data := range []string{"root:H", "type:m7", "acc:#", "nonsense", ActionBackType} {
		_, err := s.Handle("chat", data)
		assert.True(t, errors.Is(err, ErrInvalidAction), data)
	}

	press(t, s, "chat", "root:C")
	for _, data := range []string{"type:", "type:M9", "root:D"} {
		_, err := s.Handle("chat", data)
		assert.ErrorIs(t, err, ErrInvalidAction, data)
	}

	press(t, s, "chat", "type:maj7")
	_, err := s.Handle("chat", "acc:x")
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestNoSession(t *testing.T) {
	s := newTestStore(t)

	r, err := s.Handle("ghost", "root:C")
	require.NoError(t, err)
	assert.True(t, r.Closed)
	assert.Contains(t, r.Text, "expired")

	r, err = s.Handle("ghost", ActionShowHelp)
	require.NoError(t, err)
	assert.Contains(t, r.Text, "fifth")

	r = s.Cancel("ghost")
	assert.Contains(t, r.Text, "No active session")
}

func TestCancelAndRestart(t *testing.T) {
	s := newTestStore(t)
	s.Start("a", "en")
	s.Start("b", "en")
	assert.Equal(t, 2, s.Len())

	r := press(t, s, "a", ActionQuickCancel)
	assert.True(t, r.Closed)
	assert.Equal(t, 1, s.Len())

	press(t, s, "b", "root:G")
	r = press(t, s, "b", ActionRestart)
	assert.Len(t, r.Keyboard, 5)
	sess, _ := s.Session("b")
	assert.Equal(t, StepRoot, sess.Step)

	r = s.Cancel("b")
	assert.True(t, r.Closed)
	assert.Equal(t, 0, s.Len())
}

func TestLanguage(t *testing.T) {
	s := newTestStore(t)
	r := s.Start("chat", "pt-BR")
	sess, _ := s.Session("chat")
	assert.Equal(t, language.Portuguese, sess.Lang)
	assert.Contains(t, r.Keyboard[0][0].Text, "Ajuda")

	r = press(t, s, "chat", "root:C", "type:maj7", "acc:")
	assert.Contains(t, r.Text, "Acorde base")
	assert.Equal(t, "Cmaj7 (C E G B)", r.Result.Base)
}

func TestNewGeneratesIDs(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.New("en")
	b, _ := s.New("")
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
	assert.Equal(t, 2, s.Len())
}

func TestExpiry(t *testing.T) {
	expired := make(chan string, 1)
	s := NewStore(i18n.MustNew(), 20*time.Millisecond, "en", func(id, text string) {
		expired <- id + "|" + text
	})
	defer s.Close()

	s.Start("chat", "en")
	select {
	case got := <-expired:
		assert.True(t, strings.HasPrefix(got, "chat|"))
		assert.Contains(t, got, "expired")
	case <-time.After(2 * time.Second):
		t.Fatal("session did not expire")
	}
	assert.Equal(t, 0, s.Len())
}

func TestCompletedSessionDoesNotExpire(t *testing.T) {
	called := make(chan struct{}, 1)
	s := NewStore(i18n.MustNew(), 20*time.Millisecond, "en", func(string, string) { called <- struct{}{} })
	defer s.Close()

	s.Start("chat", "en")
	press(t, s, "chat", "root:C", "type:maj7", "acc:")

	select {
	case <-called:
		t.Fatal("completed session expired")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestResultAnalysis(t *testing.T) {
	s := newTestStore(t)
	s.Start("chat", "en")
	r := press(t, s, "chat", "root:G", "type:7", "acc:")
	require.NotNil(t, r.Result)
	assert.Equal(t, theory.Dominant7, r.Result.Analysis.Chord.Quality())
	assert.Equal(t, theory.Minor7, r.Result.Analysis.Improvisation.Quality())
}

func TestRestartAfterResult(t *testing.T) {
	s := newTestStore(t)
	s.Start("chat", "pt")

	r := press(t, s, "chat", "root:C", "type:maj7", "acc:")
	require.NotNil(t, r.Result)
	assert.Equal(t, ActionRestart, r.Keyboard[0][0].Data)
	assert.Equal(t, 0, s.Len())
	_, ok := s.Session("chat")
	assert.False(t, ok)

	r = press(t, s, "chat", ActionRestart)
	assert.False(t, r.Closed)
	require.Len(t, r.Keyboard, 5)
	assert.Equal(t, "root:C", r.Keyboard[1][0].Data)
	assert.Contains(t, r.Keyboard[0][0].Text, "Ajuda", "language survives the finished conversation")

	sess, ok := s.Session("chat")
	require.True(t, ok)
	assert.Equal(t, StepRoot, sess.Step)
	assert.Equal(t, language.Portuguese, sess.Lang)

	r = press(t, s, "chat", "root:D", "type:m7", "acc:")
	assert.Equal(t, "Dm7 (D F A C)", r.Result.Base)
}

func TestRestartUnknownChat(t *testing.T) {
	s := newTestStore(t)

	r := press(t, s, "ghost", ActionRestart)
	assert.False(t, r.Closed)
	assert.Len(t, r.Keyboard, 5)
	assert.Equal(t, 1, s.Len())
}

func TestFinishedSessionRejectsSteps(t *testing.T) {
	s := newTestStore(t)
	s.Start("chat", "en")
	press(t, s, "chat", "root:C", "type:maj7", "acc:")

	r := press(t, s, "chat", "root:C")
	assert.True(t, r.Closed)
	assert.Contains(t, r.Text, "expired")

	r = s.Cancel("chat")
	assert.Contains(t, r.Text, "No active session")
}
