package main

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

type Tab struct {
	Key   string
	Label string
}

// App owns the mutable session state behind the UI: the active tab, the
// current card and the streak.
type App struct {
	store  Store
	links  LinksConfig
	tabs   []Tab
	logger *zap.Logger
	now    func() time.Time
	intn   func(int) int

	dataset Dataset
	builder *LinkBuilder
	loaded  bool
	started bool

	filter  string
	current ContentItem
	err     error
	streak  StreakState
}

type AppOptions struct {
	Store      Store
	Links      LinksConfig
	Tabs       []TabConfig
	DefaultTab string
	Logger     *zap.Logger
	Now        func() time.Time
	Intn       func(int) int
}

func NewApp(opts AppOptions) *App {
	a := &App{
		store:  opts.Store,
		links:  opts.Links,
		logger: opts.Logger,
		now:    opts.Now,
		intn:   opts.Intn,
		filter: opts.DefaultTab,
		err:    ErrNotLoaded,
	}
	for _, t := range opts.Tabs {
		a.tabs = append(a.tabs, Tab{Key: t.Key, Label: t.Label})
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.intn == nil {
		a.intn = rand.Intn
	}
	if a.filter == "" {
		a.filter = FilterAll
	}
	return a
}

// Start installs the dataset and picks the first card. The streak is
// counted on the first call only.
func (a *App) Start(ds Dataset) error {
	b, err := NewLinkBuilder(a.links, ds.Audio)
	if err != nil {
		return err
	}
	a.dataset = ds
	a.builder = b
	a.loaded = true
	if !a.started {
		a.started = true
		a.streak = visitStreak(a.store, a.today(), a.logger)
		a.logger.Info("visit recorded", zap.Int("streak", a.streak.Count), zap.String("day", string(a.streak.LastVisit)))
	}
	a.Refresh()
	return nil
}

func (a *App) today() Day {
	return DayOf(a.now())
}

func (a *App) CurrentContent() (ContentItem, error) {
	if a.err != nil {
		return ContentItem{}, a.err
	}
	return a.current, nil
}

// Refresh draws a new card from the active pool. Failures leave the app in
// an error state that the next Refresh or SetFilter can clear.
func (a *App) Refresh() error {
	if !a.loaded {
		return ErrNotLoaded
	}
	item, err := a.pick()
	if err != nil {
		a.current, a.err = ContentItem{}, err
		if errors.Is(err, ErrSuttaNotFound) {
			a.logger.Error("content unavailable", zap.String("tab", a.filter), zap.Error(err))
		} else {
			a.logger.Info("content unavailable", zap.String("tab", a.filter), zap.Error(err))
		}
		return err
	}
	a.current, a.err = item, nil
	return nil
}

func (a *App) pick() (ContentItem, error) {
	item, err := pickRandom(resolvePool(a.dataset.Items, a.filter), a.intn)
	if err != nil {
		return ContentItem{}, err
	}
	if item.Kind != KindSutta {
		return item, nil
	}
	rec, err := dailySutta(a.store, a.dataset.Suttas, a.today(), a.intn, a.logger)
	if err != nil {
		return ContentItem{}, err
	}
	enriched, err := a.builder.Enrich(rec)
	if err != nil {
		return ContentItem{}, err
	}
	return withPlaceholder(enriched, item), nil
}

func (a *App) SetFilter(tab string) error {
	if !a.hasTab(tab) {
		return fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}
	a.filter = tab
	return a.Refresh()
}

func (a *App) hasTab(key string) bool {
	for _, t := range a.tabs {
		if t.Key == key {
			return true
		}
	}
	return false
}

func (a *App) Filter() string      { return a.filter }
func (a *App) Tabs() []Tab         { return a.tabs }
func (a *App) Streak() StreakState { return a.streak }
func (a *App) Dataset() Dataset    { return a.dataset }
func (a *App) Today() time.Time    { return a.now() }
