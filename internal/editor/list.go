// Package editor implements the add/edit/delete workflow shared by every
// list section of the portfolio.
//
// A List owns one persisted sequence of records. Each user interaction opens
// a Session, walks it through Idle -> Composing -> Idle (or Idle ->
// ConfirmingDelete -> Idle) and commits the whole sequence through the
// persisted state in one write. Records are addressed by id, never by
// position, so a session stays correct if the list changed since it opened.
package editor

import (
	"context"
	"errors"
	"sync"

	"folio/internal/metrics"
	"folio/internal/persisted"
)

var (
	ErrNotIdle              = errors.New("editor: another edit is in progress")
	ErrNotComposing         = errors.New("editor: no form is open")
	ErrNotConfirming        = errors.New("editor: no delete awaiting confirmation")
	ErrRecordNotFound       = errors.New("editor: record not found")
	ErrConfirmationRequired = errors.New("editor: delete requires confirmation")
)

// Record is implemented by every list entry type. WithID and Clone return
// modified copies; Clone must deep copy slice fields.
type Record[T any] interface {
	RecordID() string
	WithID(id string) T
	Clone() T
}

// Action names a committed change.
type Action string

const (
	ActionAdd    Action = "add"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionReset  Action = "reset"
	// ActionReplace is used for singleton sections that are overwritten whole.
	ActionReplace Action = "replace"
)

// Change describes one committed write.
type Change struct {
	Section string
	Key     string
	Action  Action
	ID      string
}

// Options configure a List.
type Options struct {
	// ConfirmDelete gates every delete behind an explicit confirmation.
	ConfirmDelete bool
	IDs           IDGenerator
	// OnCommit runs after each committed write, outside the list lock.
	OnCommit func(ctx context.Context, change Change)
}

// List is safe for concurrent use. Sessions opened on it serialise their
// commits; last write wins.
type List[T Record[T]] struct {
	section string
	state   *persisted.State[[]T]
	opts    Options
	mu      sync.Mutex
}

// NewList binds an editor to state. section is a short human name used in
// change notifications and metrics.
func NewList[T Record[T]](section string, state *persisted.State[[]T], opts Options) *List[T] {
	if opts.IDs == nil {
		opts.IDs = NewClockIDs()
	}
	return &List[T]{section: section, state: state, opts: opts}
}

// Section returns the section name.
func (l *List[T]) Section() string { return l.section }

// ConfirmsDeletes reports the confirmation policy.
func (l *List[T]) ConfirmsDeletes() bool { return l.opts.ConfirmDelete }

// Items returns a deep copy of the current sequence in display order.
func (l *List[T]) Items() []T {
	current := l.state.Get()
	out := make([]T, len(current))
	for i, item := range current {
		out[i] = item.Clone()
	}
	return out
}

// Find returns a copy of the record with id.
func (l *List[T]) Find(id string) (T, bool) {
	current := l.state.Get()
	if i := indexOf(current, id); i >= 0 {
		return current[i].Clone(), true
	}
	var zero T
	return zero, false
}

// Open starts an idle session.
func (l *List[T]) Open() *Session[T] {
	return &Session[T]{list: l}
}

// Add appends record under a freshly generated id and returns the stored copy.
func (l *List[T]) Add(ctx context.Context, record T) (T, error) {
	s := l.Open()
	if err := s.BeginAdd(record); err != nil {
		return record, err
	}
	return s.Save(ctx)
}

// Refresh picks up records written to the store by another process.
func (l *List[T]) Refresh(ctx context.Context) {
	l.state.Refresh(ctx)
}

// Replace overwrites the record with id, keeping the id.
func (l *List[T]) Replace(ctx context.Context, id string, record T) (T, error) {
	l.Refresh(ctx)
	s := l.Open()
	if err := s.BeginEdit(id); err != nil {
		return record, err
	}
	if err := s.Update(func(form *T) { *form = record.Clone() }); err != nil {
		return record, err
	}
	return s.Save(ctx)
}

// Delete removes the record with id. With the confirmation policy on,
// confirmed must be true or ErrConfirmationRequired is returned and the list
// is left untouched.
func (l *List[T]) Delete(ctx context.Context, id string, confirmed bool) error {
	s := l.Open()
	deleted, err := s.RequestDelete(ctx, id)
	if err != nil || deleted {
		return err
	}
	if !confirmed {
		_ = s.CancelDelete()
		return ErrConfirmationRequired
	}
	return s.ConfirmDelete(ctx)
}

// Reset restores the section's default content.
func (l *List[T]) Reset(ctx context.Context) []T {
	l.mu.Lock()
	out := l.state.Reset(ctx)
	l.mu.Unlock()
	l.committed(ctx, ActionReset, "")
	return out
}

// Commits go through State.Modify so the next sequence is built from what
// is stored now, not from what this process loaded. Another writer on the
// same store (the admin CLI next to a running API) is not overwritten.

func (l *List[T]) commitAdd(ctx context.Context, form T) T {
	l.mu.Lock()
	var added T
	_, _ = l.state.Modify(ctx, func(current []T) ([]T, error) {
		id := l.opts.IDs.NextID()
		for indexOf(current, id) >= 0 {
			id = l.opts.IDs.NextID()
		}
		added = form.Clone().WithID(id)
		next := make([]T, 0, len(current)+1)
		next = append(next, current...)
		return append(next, added), nil
	})
	l.mu.Unlock()
	l.committed(ctx, ActionAdd, added.RecordID())
	return added.Clone()
}

func (l *List[T]) commitEdit(ctx context.Context, id string, form T) (T, error) {
	l.mu.Lock()
	replaced := form.Clone().WithID(id)
	_, err := l.state.Modify(ctx, func(current []T) ([]T, error) {
		i := indexOf(current, id)
		if i < 0 {
			return nil, ErrRecordNotFound
		}
		next := make([]T, len(current))
		copy(next, current)
		next[i] = replaced
		return next, nil
	})
	l.mu.Unlock()
	if err != nil {
		var zero T
		return zero, err
	}
	l.committed(ctx, ActionEdit, id)
	return replaced.Clone(), nil
}

func (l *List[T]) commitDelete(ctx context.Context, id string) error {
	l.mu.Lock()
	_, err := l.state.Modify(ctx, func(current []T) ([]T, error) {
		i := indexOf(current, id)
		if i < 0 {
			return nil, ErrRecordNotFound
		}
		next := make([]T, 0, len(current)-1)
		next = append(next, current[:i]...)
		return append(next, current[i+1:]...), nil
	})
	l.mu.Unlock()
	if err != nil {
		return err
	}
	l.committed(ctx, ActionDelete, id)
	return nil
}

func (l *List[T]) committed(ctx context.Context, action Action, id string) {
	metrics.EditorCommitted(l.section, string(action))
	if l.opts.OnCommit != nil {
		l.opts.OnCommit(ctx, Change{Section: l.section, Key: l.state.Key(), Action: action, ID: id})
	}
}

// indexOf returns the first position holding id, or -1.
func indexOf[T Record[T]](items []T, id string) int {
	for i, item := range items {
		if item.RecordID() == id {
			return i
		}
	}
	return -1
}
