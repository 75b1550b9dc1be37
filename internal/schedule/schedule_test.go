package schedule

import (
	"bytes"
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kireiroutine/internal/catalog"
	"kireiroutine/internal/datekey"
	"kireiroutine/internal/logger"
	"kireiroutine/internal/storage"
)

func newStore(t *testing.T) (*Store, storage.KV) {
	t.Helper()
	kv := storage.NewMemory()
	t.Cleanup(func() { _ = kv.Close() })
	return NewStore(kv), kv
}

func sorted(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}

func assertNoEmptyDays(t *testing.T, m Map) {
	t.Helper()
	for date, ids := range m {
		assert.NotEmpty(t, ids, "date %s maps to an empty list", date)
	}
}

func TestReplaceDayIsIdempotent(t *testing.T) {
	s, _ := newStore(t)
	base := Map{"2024-03-01": {"x"}}

	once := s.ReplaceDay(base, "2024-03-01", []string{"a", "b", "a"})
	twice := s.ReplaceDay(once, "2024-03-01", []string{"a", "b", "a"})

	assert.Equal(t, []string{"a", "b"}, once["2024-03-01"])
	assert.Equal(t, once, twice)
	assert.Equal(t, []string{"x"}, base["2024-03-01"], "input map must not change")
}

func TestMergeDayIsSetUnion(t *testing.T) {
	s, _ := newStore(t)
	base := Map{"2024-03-01": {"x", "a"}}
	a := []string{"a", "b"}
	b := []string{"c", "b"}

	ab := s.MergeDay(s.MergeDay(base, "2024-03-01", a), "2024-03-01", b)
	ba := s.MergeDay(s.MergeDay(base, "2024-03-01", b), "2024-03-01", a)

	assert.Equal(t, []string{"a", "b", "c", "x"}, sorted(ab["2024-03-01"]))
	assert.Equal(t, sorted(ab["2024-03-01"]), sorted(ba["2024-03-01"]))
}

func TestEmptyDaysAreDeleted(t *testing.T) {
	s, _ := newStore(t)

	m := s.ReplaceDay(Map{"2024-03-01": {"a"}}, "2024-03-01", nil)
	_, ok := m["2024-03-01"]
	assert.False(t, ok)

	m = s.MergeDay(Map{}, "2024-03-02", []string{})
	_, ok = m["2024-03-02"]
	assert.False(t, ok)

	m = s.Move(Map{"2024-03-01": {"a"}}, "a", "2024-03-01", "2024-03-05")
	_, ok = m["2024-03-01"]
	assert.False(t, ok)
	assertNoEmptyDays(t, m)

	m = s.Mutate(Map{}, func(d Map) { d["2024-03-03"] = []string{} })
	assertNoEmptyDays(t, m)
}

func TestClearDay(t *testing.T) {
	s, _ := newStore(t)
	m := s.ClearDay(Map{"2024-03-01": {"a"}, "2024-03-02": {"b"}}, "2024-03-01")
	assert.Equal(t, Map{"2024-03-02": {"b"}}, m)
}

func TestMutatePersistsAndCopies(t *testing.T) {
	s, _ := newStore(t)
	orig := Map{"2024-03-01": {"a"}}

	out := s.Mutate(orig, func(d Map) {
		d["2024-03-01"] = append(d["2024-03-01"], "b")
	})

	assert.Equal(t, []string{"a"}, orig["2024-03-01"])
	assert.Equal(t, []string{"a", "b"}, out["2024-03-01"])
	assert.Equal(t, out, s.Load())
}

func TestLoadCorruptReturnsEmpty(t *testing.T) {
	s, kv := newStore(t)
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	require.NoError(t, kv.Set(storage.KeyCalendar, []byte("{oops")))
	assert.Equal(t, Map{}, s.Load())
	assert.Contains(t, buf.String(), "[WARN] calendar")
}

func TestLoadDropsEmptyAndDuplicateEntries(t *testing.T) {
	s, kv := newStore(t)
	require.NoError(t, kv.Set(storage.KeyCalendar, []byte(`{"2024-03-01":[],"2024-03-02":["a","a","b"]}`)))
	assert.Equal(t, Map{"2024-03-02": {"a", "b"}}, s.Load())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := newStore(t)
	s.Save(Map{"2024-03-01": {"a", "b"}, "2024-04-01": {"c"}})

	first := s.Load()
	s.Save(first)
	assert.Equal(t, first, s.Load())
}

func TestOccurrencesHorizon(t *testing.T) {
	for _, base := range []string{"2024-01-31", "2024-02-29", "2023-12-31", "2025-06-15"} {
		start, err := datekey.Parse(base)
		require.NoError(t, err)
		end := datekey.Format(start.AddDate(1, 0, 0))

		for _, r := range RepeatTypes {
			dates, err := Occurrences(base, r)
			require.NoError(t, err)
			require.NotEmpty(t, dates)
			assert.Equal(t, base, dates[0], "%s %s", base, r)
			for i, d := range dates {
				assert.GreaterOrEqual(t, d, base, "%s %s", base, r)
				assert.LessOrEqual(t, d, end, "%s %s", base, r)
				if i > 0 {
					assert.Greater(t, d, dates[i-1])
				}
			}
		}
	}
}

func TestOccurrencesCounts(t *testing.T) {
	tests := []struct {
		base string
		r    RepeatType
		n    int
	}{
		{"2024-01-01", RepeatOnce, 1},
		{"2024-01-01", RepeatWeekly, 53},
		{"2024-01-01", RepeatBiWeekly, 27},
		{"2024-01-31", RepeatMonthly, 13},
		{"2024-01-31", RepeatQuarterly, 5},
		{"2024-01-31", RepeatSemiAnnual, 3},
		{"2024-01-31", RepeatYearly, 2},
	}
	for _, tt := range tests {
		dates, err := Occurrences(tt.base, tt.r)
		require.NoError(t, err)
		assert.Len(t, dates, tt.n, "%s %s", tt.base, tt.r)
	}
}

func TestOccurrencesMonthClamp(t *testing.T) {
	dates, err := Occurrences("2024-01-31", RepeatMonthly)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30",
		"2024-05-31", "2024-06-30", "2024-07-31", "2024-08-31",
		"2024-09-30", "2024-10-31", "2024-11-30", "2024-12-31",
		"2025-01-31",
	}, dates)

	dates, err = Occurrences("2023-11-30", RepeatQuarterly)
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-11-30", "2024-02-29", "2024-05-30", "2024-08-30", "2024-11-30"}, dates)

	dates, err = Occurrences("2024-02-29", RepeatYearly)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-29", "2025-02-28"}, dates)
}

func TestOccurrencesInvalid(t *testing.T) {
	_, err := Occurrences("2024-02-30", RepeatWeekly)
	assert.ErrorIs(t, err, datekey.ErrInvalid)

	_, err = Occurrences("2024-02-01", RepeatType("daily"))
	assert.ErrorIs(t, err, ErrInvalidRepeat)
}

func TestApplyMonthlyClamp(t *testing.T) {
	s, _ := newStore(t)
	m, err := s.Apply(Map{}, "2024-01-31", RepeatMonthly, []string{"t"})
	require.NoError(t, err)

	assert.True(t, m.Has("2024-02-29", "t"))
	assert.True(t, m.Has("2024-03-31", "t"))
	assert.False(t, m.Has("2024-03-29", "t"))
	assert.Len(t, m, 13)
}

func TestApplyOnceReplaces(t *testing.T) {
	s, _ := newStore(t)
	m, err := s.Apply(Map{"2024-03-01": {"old"}}, "2024-03-01", RepeatOnce, []string{"a", "a"})
	require.NoError(t, err)
	assert.Equal(t, Map{"2024-03-01": {"a"}}, m)
}

func TestApplyReplacesSeedAndMergesRest(t *testing.T) {
	s, _ := newStore(t)
	start := Map{
		"2024-03-01": {"stale"},
		"2024-03-08": {"other"},
	}

	m, err := s.Apply(start, "2024-03-01", RepeatWeekly, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, m["2024-03-01"])
	assert.Equal(t, []string{"a", "b", "other"}, sorted(m["2024-03-08"]))

	again, err := s.Apply(m, "2024-03-01", RepeatWeekly, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, again["2024-03-01"])
	assert.Equal(t, m, again)
	assertNoEmptyDays(t, again)
}

func TestApplyInvalidLeavesMapUnchanged(t *testing.T) {
	s, kv := newStore(t)
	m := Map{"2024-03-01": {"a"}}

	out, err := s.Apply(m, "03/01/2024", RepeatWeekly, []string{"b"})
	assert.Error(t, err)
	assert.Equal(t, m, out)
	_, ok, _ := kv.Get(storage.KeyCalendar)
	assert.False(t, ok, "nothing should have been saved")
}

func TestMoveIsAtomic(t *testing.T) {
	s, _ := newStore(t)
	m := Map{"2024-03-01": {"a", "b"}, "2024-03-05": {"c"}}

	out := s.Move(m, "a", "2024-03-01", "2024-03-05")
	assert.False(t, out.Has("2024-03-01", "a"))
	assert.True(t, out.Has("2024-03-05", "a"))
	assert.Equal(t, []string{"b"}, out["2024-03-01"])
	assert.Equal(t, out, s.Load())

	assert.True(t, m.Has("2024-03-01", "a"), "input map must not change")
}

func TestMoveManyAndInvalidTarget(t *testing.T) {
	s, _ := newStore(t)
	m := Map{"2024-03-01": {"a", "b", "c"}}

	out := s.MoveMany(m, "2024-03-01", []string{"a", "c"}, "2024-03-02")
	assert.Equal(t, Map{"2024-03-01": {"b"}, "2024-03-02": {"a", "c"}}, out)

	same := s.MoveMany(m, "2024-03-01", []string{"a"}, "someday")
	assert.Equal(t, m, same)

	noop := s.Move(m, "a", "2024-03-01", "2024-03-01")
	assert.Equal(t, m, noop)
}

func TestBulkAssignMerges(t *testing.T) {
	s, _ := newStore(t)
	cat := catalog.Default()
	m := Map{"2024-03-01": {"x"}}

	out := s.BulkAssign(m, cat, catalog.BiWeekly, []string{"2024-03-01", "2024-03-15", "bad"})

	want := append([]string{"x"}, cat.TaskIDs(catalog.BiWeekly)...)
	assert.Equal(t, sorted(want), sorted(out["2024-03-01"]))
	assert.Equal(t, cat.TaskIDs(catalog.BiWeekly), out["2024-03-15"])
	assert.Len(t, out, 2)
}

func TestUpcomingResolvesWithPlaceholders(t *testing.T) {
	cat := catalog.Default()
	m := Map{
		"2024-03-01": {"w-kitchen-sink", "gone"},
		"2024-03-07": {"m-bath-drain"},
		"2024-03-08": {"a-home-walls"},
	}

	days := Upcoming(m, cat, "2024-03-01", AgendaSize)
	require.Len(t, days, 7)
	assert.Equal(t, "2024-03-01", days[0].Date)
	assert.Equal(t, "2024-03-07", days[6].Date)

	require.Len(t, days[0].Entries, 2)
	assert.True(t, days[0].Entries[0].Known)
	assert.Equal(t, catalog.Weekly, days[0].Entries[0].Frequency)
	assert.False(t, days[0].Entries[1].Known)
	assert.Equal(t, "gone", days[0].Entries[1].Task.Text)
	assert.Empty(t, days[3].Entries)
}

func TestNextOccurrences(t *testing.T) {
	cat := catalog.Default()
	m := Map{
		"2024-02-20": {"a-home-walls"},
		"2024-03-02": {"w-kitchen-sink", "w-bath-tub", "m-bath-drain"},
		"2024-05-10": {"a-home-walls", "a-home-lights"},
		"2024-06-01": {"a-home-balcony"},
	}

	got := NextOccurrences(m, cat, "2024-03-01")
	require.Len(t, got, len(catalog.Frequencies))

	byFreq := map[catalog.Frequency]Summary{}
	for _, s := range got {
		byFreq[s.Frequency] = s
	}
	assert.Equal(t, Summary{Frequency: catalog.Weekly, Date: "2024-03-02", Count: 2, Found: true}, byFreq[catalog.Weekly])
	assert.Equal(t, Summary{Frequency: catalog.Monthly, Date: "2024-03-02", Count: 1, Found: true}, byFreq[catalog.Monthly])
	assert.Equal(t, Summary{Frequency: catalog.Annual, Date: "2024-05-10", Count: 2, Found: true}, byFreq[catalog.Annual])
	assert.False(t, byFreq[catalog.Quarterly].Found)
}

func TestDominant(t *testing.T) {
	cat := catalog.Default()

	f, ok := Dominant(cat, []string{"a-home-walls", "a-home-lights", "a-home-balcony", "b-bed-air"})
	require.True(t, ok)
	assert.Equal(t, catalog.BiWeekly, f)

	f, ok = Dominant(cat, []string{"q-window-glass", "w-floor-vacuum"})
	require.True(t, ok)
	assert.Equal(t, catalog.Weekly, f)

	_, ok = Dominant(cat, []string{"gone"})
	assert.False(t, ok)
}

func TestParseRepeat(t *testing.T) {
	r, err := ParseRepeat(" Monthly ")
	require.NoError(t, err)
	assert.Equal(t, RepeatMonthly, r)

	r, err = ParseRepeat("annual")
	require.NoError(t, err)
	assert.Equal(t, RepeatYearly, r)

	_, err = ParseRepeat("hourly")
	assert.ErrorIs(t, err, ErrInvalidRepeat)
}

func TestRepeatFor(t *testing.T) {
	assert.Equal(t, RepeatWeekly, RepeatFor(catalog.Weekly))
	assert.Equal(t, RepeatYearly, RepeatFor(catalog.Annual))
	assert.Equal(t, RepeatSemiAnnual, RepeatFor(catalog.SemiAnnual))
}
