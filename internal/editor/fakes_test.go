package editor

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	mock_diary "github.com/at-ishikawa/stickerdiary/internal/mocks/diary"
)

var testNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

// sequenceRand returns values in order and then repeats the last one.
type sequenceRand struct {
	values []float64
	next   int
}

func (r *sequenceRand) Float64() float64 {
	if len(r.values) == 0 {
		return 0.5
	}
	v := r.values[min(r.next, len(r.values)-1)]
	r.next++
	return v
}

type fakeTimer struct {
	delay   time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer := &fakeTimer{delay: d, f: f}
	s.timers = append(s.timers, timer)
	return timer
}

func (s *fakeScheduler) active() []*fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	var timers []*fakeTimer
	for _, timer := range s.timers {
		if !timer.stopped {
			timers = append(timers, timer)
		}
	}
	return timers
}

func (s *fakeScheduler) created() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.timers)
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Alert(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) alerts() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]string(nil), n.messages...)
}

type testEngine struct {
	*Engine
	repo      *mock_diary.MockRepository
	scheduler *fakeScheduler
	notifier  *recordingNotifier
}

func newTestEngine(t *testing.T, opts ...Option) *testEngine {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock_diary.NewMockRepository(ctrl)
	scheduler := &fakeScheduler{}
	notifier := &recordingNotifier{}
	defaults := []Option{
		WithClock(fixedClock),
		WithRand(&sequenceRand{}),
		WithScheduler(scheduler),
		WithNotifier(notifier),
	}
	e := New(repo, append(defaults, opts...)...)
	t.Cleanup(e.Close)
	return &testEngine{
		Engine:    e,
		repo:      repo,
		scheduler: scheduler,
		notifier:  notifier,
	}
}
