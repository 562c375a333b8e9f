package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestApp(t *testing.T, store Store, clock *fakeClock, intn func(int) int) *App {
	t.Helper()
	cfg := testConfig(t)
	return NewApp(AppOptions{
		Store:      store,
		Links:      cfg.Links,
		Tabs:       cfg.UI.Tabs,
		DefaultTab: cfg.UI.DefaultTab,
		Logger:     zaptest.NewLogger(t),
		Now:        clock.Now,
		Intn:       intn,
	})
}

func testDataset() Dataset {
	return Dataset{Items: sampleItems(), Suttas: threeSuttas(), Audio: map[int]AudioRef{}}
}

func TestApp_BeforeStart(t *testing.T) {
	app := newTestApp(t, newMemStore(), &fakeClock{day(t, "2024-05-01")}, fixedIntn(0))

	_, err := app.CurrentContent()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.ErrorIs(t, app.Refresh(), ErrNotLoaded)
	assert.Equal(t, StreakState{}, app.Streak())
}

func TestApp_StartCountsStreakOnce(t *testing.T) {
	store := newMemStore()
	require.NoError(t, saveJSON(store, streakKey, StreakState{Count: 1, LastVisit: "2024-05-01"}))
	clock := &fakeClock{day(t, "2024-05-02")}
	app := newTestApp(t, store, clock, fixedIntn(0))

	require.NoError(t, app.Start(testDataset()))
	assert.Equal(t, StreakState{Count: 2, LastVisit: "2024-05-02"}, app.Streak())

	// Refreshes, tab switches and reloads during the session never count again.
	clock.t = day(t, "2024-05-03")
	require.NoError(t, app.Refresh())
	require.NoError(t, app.SetFilter(string(KindTeaching)))
	require.NoError(t, app.Start(testDataset()))
	assert.Equal(t, 2, app.Streak().Count)
}

func TestApp_SetFilter(t *testing.T) {
	app := newTestApp(t, newMemStore(), &fakeClock{day(t, "2024-05-01")}, seededIntn(1))
	require.NoError(t, app.Start(testDataset()))
	assert.Equal(t, FilterAll, app.Filter())

	require.NoError(t, app.SetFilter(string(KindTeaching)))
	for i := 0; i < 20; i++ {
		require.NoError(t, app.Refresh())
		item, err := app.CurrentContent()
		require.NoError(t, err)
		assert.Equal(t, KindTeaching, item.Kind)
	}

	err := app.SetFilter("chant")
	assert.ErrorIs(t, err, ErrUnknownTab)
	assert.Equal(t, string(KindTeaching), app.Filter())
}

func TestApp_EmptyPoolIsRecoverable(t *testing.T) {
	app := newTestApp(t, newMemStore(), &fakeClock{day(t, "2024-05-01")}, fixedIntn(0))
	ds := testDataset()
	ds.Items = []ContentItem{ds.Items[0]}
	require.NoError(t, app.Start(ds))

	err := app.SetFilter(string(KindPali))
	assert.ErrorIs(t, err, ErrNoContent)
	_, err = app.CurrentContent()
	assert.ErrorIs(t, err, ErrNoContent)

	require.NoError(t, app.SetFilter(FilterAll))
	item, err := app.CurrentContent()
	require.NoError(t, err)
	assert.Equal(t, ds.Items[0], item)
}

func TestApp_SuttaTabIsStableForTheDay(t *testing.T) {
	store := newMemStore()
	clock := &fakeClock{day(t, "2024-05-01")}
	app := newTestApp(t, store, clock, countingIntn())
	require.NoError(t, app.Start(testDataset()))
	require.NoError(t, app.SetFilter(string(KindSutta)))

	first, err := app.CurrentContent()
	require.NoError(t, err)
	require.NotNil(t, first.Sutta)
	assert.Equal(t, "Today's discourse.", first.Body)
	assert.Equal(t, "How does it guide you?", first.Reflection)

	for i := 0; i < 5; i++ {
		require.NoError(t, app.Refresh())
		again, err := app.CurrentContent()
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	// A restarted session on the same day sees the same sutta.
	restarted := newTestApp(t, store, clock, countingIntn())
	require.NoError(t, restarted.Start(testDataset()))
	require.NoError(t, restarted.SetFilter(string(KindSutta)))
	again, err := restarted.CurrentContent()
	require.NoError(t, err)
	assert.Equal(t, first.Sutta.ID, again.Sutta.ID)

	clock.t = day(t, "2024-05-02")
	require.NoError(t, app.Refresh())
	choice, ok := loadJSON[DailyChoice](store, dailySuttaKey, zaptest.NewLogger(t))
	require.True(t, ok)
	assert.Equal(t, Day("2024-05-02"), choice.Date)
}

func TestApp_PersistedSuttaMissingFromTable(t *testing.T) {
	store := newMemStore()
	require.NoError(t, saveJSON(store, dailySuttaKey, DailyChoice{Date: "2024-05-01", SuttaID: 120}))
	app := newTestApp(t, store, &fakeClock{day(t, "2024-05-01")}, fixedIntn(0))
	require.NoError(t, app.Start(testDataset()))

	err := app.SetFilter(string(KindSutta))
	assert.ErrorIs(t, err, ErrSuttaNotFound)
	_, err = app.CurrentContent()
	assert.ErrorIs(t, err, ErrSuttaNotFound)

	// Other tabs still work.
	require.NoError(t, app.SetFilter(string(KindPali)))
}
