// Package tasklist owns the in-memory task collection. Every mutation goes
// through a List and is written through to the Saver; the in-memory
// collection only changes once that write succeeds.
//
// A List is not safe for concurrent use; callers drive it from a single
// goroutine (the UI loop or one CLI command).
package tasklist

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"tasklite/internal/task"
)

var (
	ErrNotFound  = errors.New("task not found")
	ErrAmbiguous = errors.New("task reference is ambiguous")
)

// Saver persists and restores the whole collection.
type Saver interface {
	Load() ([]task.Task, error)
	Save([]task.Task) error
}

type List struct {
	tasks  []task.Task
	saver  Saver
	now    func() time.Time
	newID  func() string
	logger *log.Logger
}

type Option func(*List)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *List) { l.now = now }
}

// WithIDGenerator overrides the random UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(l *List) { l.newID = gen }
}

func WithLogger(logger *log.Logger) Option {
	return func(l *List) { l.logger = logger }
}

// Open loads the collection from saver. A load failure is returned as is;
// nothing is written back.
func Open(saver Saver, opts ...Option) (*List, error) {
	l := &List{
		saver:  saver,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	tasks, err := saver.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	l.tasks = tasks
	l.logger.Debug("loaded tasks", "count", len(tasks))
	return l, nil
}

// Tasks returns a copy of the collection, most recent first.
func (l *List) Tasks() []task.Task {
	return append([]task.Task(nil), l.tasks...)
}

func (l *List) Len() int {
	return len(l.tasks)
}

func (l *List) Get(id string) (task.Task, bool) {
	i := l.index(id)
	if i < 0 {
		return task.Task{}, false
	}
	return l.tasks[i], true
}

// Resolve maps a full id or a unique id prefix to a task.
func (l *List) Resolve(ref string) (task.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return task.Task{}, ErrNotFound
	}
	if t, ok := l.Get(ref); ok {
		return t, nil
	}
	var match *task.Task
	for i := range l.tasks {
		if !strings.HasPrefix(l.tasks[i].ID, ref) {
			continue
		}
		if match != nil {
			return task.Task{}, fmt.Errorf("%w: %q", ErrAmbiguous, ref)
		}
		match = &l.tasks[i]
	}
	if match == nil {
		return task.Task{}, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return *match, nil
}

// Add creates a task from title and puts it first. Titles longer than
// task.MaxTitleLen or blank after trimming are rejected: ok is false and
// nothing is written. A failed write leaves the list unchanged.
func (l *List) Add(title string) (t task.Task, ok bool, err error) {
	if !task.ValidTitle(title) {
		l.logger.Debug("add rejected", "title", title)
		return task.Task{}, false, nil
	}
	id := l.newID()
	for l.index(id) >= 0 {
		id = l.newID()
	}
	t = task.Task{
		ID:       id,
		Title:    strings.TrimSpace(title),
		Created:  l.now().UTC(),
		Complete: false,
	}
	if err := l.commit(append([]task.Task{t}, l.tasks...)); err != nil {
		return task.Task{}, false, err
	}
	l.logger.Debug("task added", "id", t.ID)
	return t, true, nil
}

// Remove deletes the task with id. Unknown ids are a no-op.
func (l *List) Remove(id string) (bool, error) {
	i := l.index(id)
	if i < 0 {
		return false, nil
	}
	if err := l.commit(slices.Delete(l.Tasks(), i, i+1)); err != nil {
		return false, err
	}
	l.logger.Debug("task removed", "id", id)
	return true, nil
}

// Edit replaces the title and description of the task with id. An empty
// description clears it. Invalid input and unknown ids are a no-op.
func (l *List) Edit(id, title, description string) (bool, error) {
	i := l.index(id)
	if i < 0 {
		return false, nil
	}
	title = strings.TrimSpace(title)
	description = task.NormalizeDescription(description)
	if !task.ValidTitle(title) || !task.ValidDescription(description) {
		l.logger.Debug("edit rejected", "id", id)
		return false, nil
	}
	next := l.Tasks()
	next[i].Title = title
	next[i].Description = description
	if err := l.commit(next); err != nil {
		return false, err
	}
	l.logger.Debug("task edited", "id", id)
	return true, nil
}

// ToggleComplete flips the completion flag of the task with id.
func (l *List) ToggleComplete(id string) (bool, error) {
	i := l.index(id)
	if i < 0 {
		return false, nil
	}
	next := l.Tasks()
	next[i].Complete = !next[i].Complete
	if err := l.commit(next); err != nil {
		return false, err
	}
	l.logger.Debug("task toggled", "id", id, "complete", next[i].Complete)
	return true, nil
}

func (l *List) index(id string) int {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// commit writes next and adopts it as the collection only if the write
// succeeded. next must not share a backing array with l.tasks.
func (l *List) commit(next []task.Task) error {
	if err := l.saver.Save(next); err != nil {
		l.logger.Error("save failed", "err", err)
		return fmt.Errorf("save tasks: %w", err)
	}
	l.tasks = next
	return nil
}
