package tasklist

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklite/internal/persist"
	"tasklite/internal/storage"
	"tasklite/internal/task"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type recordingSaver struct {
	loaded []task.Task
	saves  [][]task.Task
	err    error
}

func (s *recordingSaver) Load() ([]task.Task, error) { return s.loaded, nil }

func (s *recordingSaver) Save(tasks []task.Task) error {
	s.saves = append(s.saves, append([]task.Task(nil), tasks...))
	return s.err
}

func newList(t *testing.T, saver Saver) *List {
	t.Helper()
	n := 0
	l, err := Open(saver,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%02d", n)
		}),
	)
	require.NoError(t, err)
	return l
}

func TestAddScenario(t *testing.T) {
	saver := &recordingSaver{}
	l := newList(t, saver)

	added, ok, err := l.Add("Buy milk")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Buy milk", added.Title)
	assert.False(t, added.Complete)
	assert.False(t, added.HasDescription())
	assert.Equal(t, fixedNow, added.Created)

	ok, err = l.ToggleComplete(added.ID)
	require.NoError(t, err)
	require.True(t, ok)

	tasks := l.Tasks()
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Complete)
	assert.Equal(t, task.Stats{Total: 1, Active: 0, Completed: 1, PercentComplete: 100}, task.ComputeStats(tasks))
	assert.Len(t, saver.saves, 2)
}

func TestAddRejects(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n", strings.Repeat("x", 45), strings.Repeat("x", task.MaxTitleLen+1)} {
		saver := &recordingSaver{}
		l := newList(t, saver)

		_, ok, err := l.Add(title)
		require.NoError(t, err)
		assert.False(t, ok, "title %q", title)
		assert.Equal(t, 0, l.Len())
		assert.Empty(t, saver.saves, "rejected add must not write")
	}
}

func TestAddPrependsAndTrims(t *testing.T) {
	l := newList(t, &recordingSaver{})

	_, _, _ = l.Add("first")
	second, ok, err := l.Add("  second  ")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "second", second.Title)
	tasks := l.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "second", tasks[0].Title)
	assert.Equal(t, "first", tasks[1].Title)
}

func TestAddAtLimit(t *testing.T) {
	l := newList(t, &recordingSaver{})
	_, ok, err := l.Add(strings.Repeat("y", task.MaxTitleLen))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAddRegeneratesCollidingID(t *testing.T) {
	ids := []string{"same", "same", "other"}
	l, err := Open(&recordingSaver{}, WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))
	require.NoError(t, err)

	a, _, _ := l.Add("a")
	b, _, _ := l.Add("b")
	assert.Equal(t, "same", a.ID)
	assert.Equal(t, "other", b.ID)
}

func TestRemove(t *testing.T) {
	saver := &recordingSaver{}
	l := newList(t, saver)
	a, _, _ := l.Add("a")
	b, _, _ := l.Add("b")
	c, _, _ := l.Add("c")
	writes := len(saver.saves)

	ok, err := l.Remove("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, saver.saves, writes)
	assert.Equal(t, 3, l.Len())

	ok, err = l.Remove(b.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	tasks := l.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, c.ID, tasks[0].ID)
	assert.Equal(t, a.ID, tasks[1].ID)
}

func TestEdit(t *testing.T) {
	saver := &recordingSaver{}
	l := newList(t, saver)
	a, _, _ := l.Add("a")
	_, _, _ = l.Add("b")
	_, _ = l.ToggleComplete(a.ID)

	ok, err := l.Edit(a.ID, "  Renamed ", " some notes ")
	require.NoError(t, err)
	require.True(t, ok)

	got, found := l.Get(a.ID)
	require.True(t, found)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "some notes", got.Description)
	assert.True(t, got.Complete)
	assert.Equal(t, a.Created, got.Created)
	assert.Equal(t, a.ID, l.Tasks()[1].ID, "edit keeps position")
}

func TestEditEmptyDescriptionClears(t *testing.T) {
	l := newList(t, &recordingSaver{})
	a, _, _ := l.Add("a")
	_, _ = l.Edit(a.ID, "a", "notes")

	ok, err := l.Edit(a.ID, "New title", "")
	require.NoError(t, err)
	require.True(t, ok)

	got, _ := l.Get(a.ID)
	assert.Equal(t, "New title", got.Title)
	assert.False(t, got.HasDescription())
}

func TestEditRejectsInvalid(t *testing.T) {
	saver := &recordingSaver{}
	l := newList(t, saver)
	a, _, _ := l.Add("a")
	writes := len(saver.saves)

	for _, tc := range []struct{ title, desc string }{
		{"", ""},
		{"   ", "d"},
		{strings.Repeat("t", task.MaxTitleLen+1), ""},
		{"ok", strings.Repeat("d", task.MaxDescriptionLen+1)},
	} {
		ok, err := l.Edit(a.ID, tc.title, tc.desc)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	ok, err := l.Edit("missing", "title", "")
	require.NoError(t, err)
	assert.False(t, ok)

	got, _ := l.Get(a.ID)
	assert.Equal(t, "a", got.Title)
	assert.Len(t, saver.saves, writes)
}

func TestToggleTwiceRestores(t *testing.T) {
	l := newList(t, &recordingSaver{})
	a, _, _ := l.Add("a")
	before := l.Tasks()

	_, _ = l.ToggleComplete(a.ID)
	_, _ = l.ToggleComplete(a.ID)

	assert.Equal(t, before, l.Tasks())

	ok, err := l.ToggleComplete("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTasksReturnsCopy(t *testing.T) {
	l := newList(t, &recordingSaver{})
	_, _, _ = l.Add("a")

	snapshot := l.Tasks()
	snapshot[0].Title = "mutated"

	assert.Equal(t, "a", l.Tasks()[0].Title)
}

func TestSaveErrorLeavesListUnchanged(t *testing.T) {
	saver := &recordingSaver{}
	l := newList(t, saver)
	a, _, _ := l.Add("a")
	b, _, _ := l.Add("b")
	_, _ = l.Edit(a.ID, "a", "notes")
	before := l.Tasks()
	saver.err = errors.New("disk full")

	_, ok, err := l.Add("c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.False(t, ok)

	ok, err = l.Remove(b.ID)
	require.Error(t, err)
	assert.False(t, ok)

	ok, err = l.Edit(a.ID, "renamed", "")
	require.Error(t, err)
	assert.False(t, ok)

	ok, err = l.ToggleComplete(a.ID)
	require.Error(t, err)
	assert.False(t, ok)

	assert.Equal(t, before, l.Tasks())

	saver.err = nil
	ok, err = l.ToggleComplete(a.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, l.Tasks(), saver.saves[len(saver.saves)-1])
}

func TestOpenLoadsCollection(t *testing.T) {
	saver := &recordingSaver{loaded: []task.Task{{ID: "x", Title: "kept"}}}
	l, err := Open(saver)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
	assert.Empty(t, saver.saves)
}

func TestOpenCorruptStore(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(persist.DefaultKey, []byte("not json")))
	bridge, err := persist.New(kv, "")
	require.NoError(t, err)

	_, err = Open(bridge)
	require.Error(t, err)
	assert.ErrorIs(t, err, persist.ErrCorrupt)
	assert.Equal(t, 1, kv.Writes, "nothing written back")
}

func TestOpenRejectsDuplicateIDs(t *testing.T) {
	kv := storage.NewMemory()
	blob := `[{"id":"a","title":"one","created":"2024-01-01T00:00:00Z","complete":false},` +
		`{"id":"a","title":"two","created":"2024-01-01T00:00:00Z","complete":false}]`
	require.NoError(t, kv.Set(persist.DefaultKey, []byte(blob)))
	bridge, err := persist.New(kv, "")
	require.NoError(t, err)

	_, err = Open(bridge)
	require.Error(t, err)
	assert.ErrorIs(t, err, persist.ErrCorrupt)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestOpenRejectsOverlongTitle(t *testing.T) {
	kv := storage.NewMemory()
	blob := `[{"id":"a","title":"` + strings.Repeat("x", 45) + `","created":"2024-01-01T00:00:00Z","complete":false}]`
	require.NoError(t, kv.Set(persist.DefaultKey, []byte(blob)))
	bridge, err := persist.New(kv, "")
	require.NoError(t, err)

	_, err = Open(bridge)
	assert.ErrorIs(t, err, persist.ErrCorrupt)
}

func TestResolve(t *testing.T) {
	saver := &recordingSaver{loaded: []task.Task{
		{ID: "abc123", Title: "one"},
		{ID: "abd456", Title: "two"},
	}}
	l, err := Open(saver)
	require.NoError(t, err)

	got, err := l.Resolve("abc123")
	require.NoError(t, err)
	assert.Equal(t, "one", got.Title)

	got, err = l.Resolve("abd")
	require.NoError(t, err)
	assert.Equal(t, "two", got.Title)

	_, err = l.Resolve("ab")
	assert.ErrorIs(t, err, ErrAmbiguous)

	_, err = l.Resolve("zzz")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.Resolve(" ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersistsAcrossReopen(t *testing.T) {
	kv := storage.NewMemory()
	bridge, err := persist.New(kv, "")
	require.NoError(t, err)

	l, err := Open(bridge)
	require.NoError(t, err)
	a, _, _ := l.Add("Buy milk")
	_, _ = l.Edit(a.ID, "Buy oat milk", "2 litres")
	_, _ = l.ToggleComplete(a.ID)
	_, _, _ = l.Add("Call mom")

	reopened, err := Open(bridge)
	require.NoError(t, err)
	tasks := reopened.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "Call mom", tasks[0].Title)
	assert.Equal(t, "Buy oat milk", tasks[1].Title)
	assert.Equal(t, "2 litres", tasks[1].Description)
	assert.True(t, tasks[1].Complete)
	assert.True(t, a.Created.Equal(tasks[1].Created))
}

func TestRandomOperationsKeepIDsUnique(t *testing.T) {
	l, err := Open(&recordingSaver{})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		tasks := l.Tasks()
		pick := func() string {
			if len(tasks) == 0 || rng.Intn(5) == 0 {
				return "missing"
			}
			return tasks[rng.Intn(len(tasks))].ID
		}
		switch rng.Intn(4) {
		case 0:
			_, _, err = l.Add(fmt.Sprintf("task %d", i))
		case 1:
			_, err = l.Remove(pick())
		case 2:
			_, err = l.Edit(pick(), fmt.Sprintf("edit %d", i), "")
		case 3:
			_, err = l.ToggleComplete(pick())
		}
		require.NoError(t, err)

		seen := map[string]bool{}
		for _, tk := range l.Tasks() {
			require.False(t, seen[tk.ID], "duplicate id %s", tk.ID)
			seen[tk.ID] = true
			require.LessOrEqual(t, task.Len(tk.Title), task.MaxTitleLen)
		}
	}
}
