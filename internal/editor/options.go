package editor

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/at-ishikawa/stickerdiary/internal/card"
	"github.com/at-ishikawa/stickerdiary/internal/diary"
)

// DiaryRepository is the part of diary.Repository the engine needs.
type DiaryRepository interface {
	GetByID(ctx context.Context, id string) (*diary.Diary, error)
	Create(ctx context.Context, userID string, content diary.Content) (*diary.Diary, error)
	Update(ctx context.Context, id string, content diary.Content) (*diary.Diary, error)
}

// CardCatalog feeds the card palette.
type CardCatalog interface {
	GetAll(ctx context.Context) ([]card.Card, error)
}

// Rand is the source of randomness for initial placements. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Notifier shows a blocking message to the user.
type Notifier interface {
	Alert(message string)
}

type NotifierFunc func(message string)

func (f NotifierFunc) Alert(message string) {
	f(message)
}

// Timer is a pending call scheduled by a Scheduler.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. The real implementation is time.AfterFunc.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type globalRand struct{}

func (globalRand) Float64() float64 {
	return rand.Float64()
}

type logNotifier struct {
	logger *slog.Logger
}

func (n logNotifier) Alert(message string) {
	n.logger.Error(message)
}

const DefaultAutosaveDelay = 30 * time.Second

type options struct {
	clock         func() time.Time
	rand          Rand
	scheduler     Scheduler
	notifier      Notifier
	catalog       CardCatalog
	logger        *slog.Logger
	ownerID       string
	author        string
	autosaveDelay time.Duration
	snap          bool
	guides        bool
}

type Option func(*options)

func defaultOptions() options {
	return options{
		clock:         time.Now,
		rand:          globalRand{},
		scheduler:     timeScheduler{},
		logger:        slog.Default(),
		ownerID:       "user_1",
		author:        "me",
		autosaveDelay: DefaultAutosaveDelay,
		snap:          true,
		guides:        false,
	}
}

func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func WithRand(r Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

func WithScheduler(scheduler Scheduler) Option {
	return func(o *options) {
		o.scheduler = scheduler
	}
}

// WithNotifier sets where failed explicit saves are reported. By default they are only logged.
func WithNotifier(notifier Notifier) Option {
	return func(o *options) {
		o.notifier = notifier
	}
}

func WithCatalog(catalog CardCatalog) Option {
	return func(o *options) {
		o.catalog = catalog
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOwner sets the user a new diary is created for.
func WithOwner(ownerID string) Option {
	return func(o *options) {
		o.ownerID = ownerID
	}
}

// WithAuthor sets the author name of new comments.
func WithAuthor(author string) Option {
	return func(o *options) {
		o.author = author
	}
}

func WithAutosaveDelay(d time.Duration) Option {
	return func(o *options) {
		o.autosaveDelay = d
	}
}

func WithSnap(enabled bool) Option {
	return func(o *options) {
		o.snap = enabled
	}
}

func WithGuides(enabled bool) Option {
	return func(o *options) {
		o.guides = enabled
	}
}
