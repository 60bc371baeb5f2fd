package editor

import "context"

// Phase is where a Session is in the editing workflow.
type Phase int

const (
	Idle Phase = iota
	Composing
	ConfirmingDelete
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Composing:
		return "composing"
	case ConfirmingDelete:
		return "confirming_delete"
	default:
		return "unknown"
	}
}

// Mode distinguishes the two kinds of Composing.
type Mode int

const (
	ModeNone Mode = iota
	ModeAdd
	ModeEdit
)

// Session is one user's pass through the editor. It is not safe for
// concurrent use; open one per interaction.
type Session[T Record[T]] struct {
	list     *List[T]
	phase    Phase
	mode     Mode
	form     T
	targetID string
}

// Phase returns the current phase.
func (s *Session[T]) Phase() Phase { return s.phase }

// Mode returns ModeAdd or ModeEdit while composing, ModeNone otherwise.
func (s *Session[T]) Mode() Mode { return s.mode }

// TargetID is the id being edited or awaiting delete confirmation.
func (s *Session[T]) TargetID() string { return s.targetID }

// BeginAdd opens the form on a copy of blank with its id cleared; the id is
// assigned on Save.
func (s *Session[T]) BeginAdd(blank T) error {
	if s.phase != Idle {
		return ErrNotIdle
	}
	s.form = blank.Clone().WithID("")
	s.phase, s.mode, s.targetID = Composing, ModeAdd, ""
	return nil
}

// BeginEdit opens the form on a deep copy of the record with id, so edits
// in progress never touch the displayed list.
func (s *Session[T]) BeginEdit(id string) error {
	if s.phase != Idle {
		return ErrNotIdle
	}
	record, ok := s.list.Find(id)
	if !ok {
		return ErrRecordNotFound
	}
	s.form = record
	s.phase, s.mode, s.targetID = Composing, ModeEdit, id
	return nil
}

// Form returns a copy of the form record.
func (s *Session[T]) Form() T {
	return s.form.Clone()
}

// Update mutates the form record in place.
func (s *Session[T]) Update(fn func(form *T)) error {
	if s.phase != Composing {
		return ErrNotComposing
	}
	fn(&s.form)
	return nil
}

// Save commits the form and returns the stored record. Adding appends it
// with a new id; editing replaces the target wholesale and keeps its id. The
// session is Idle afterwards whether or not the commit succeeded.
func (s *Session[T]) Save(ctx context.Context) (T, error) {
	if s.phase != Composing {
		var zero T
		return zero, ErrNotComposing
	}
	form, mode, id := s.form, s.mode, s.targetID
	s.reset()

	if mode == ModeAdd {
		return s.list.commitAdd(ctx, form), nil
	}
	return s.list.commitEdit(ctx, id, form)
}

// Cancel discards the form. The list is left exactly as it was.
func (s *Session[T]) Cancel() {
	if s.phase == Composing {
		s.reset()
	}
}

// RequestDelete starts deleting id. When the list does not confirm deletes
// the record is removed at once and deleted is true; otherwise the session
// moves to ConfirmingDelete.
func (s *Session[T]) RequestDelete(ctx context.Context, id string) (deleted bool, err error) {
	if s.phase != Idle {
		return false, ErrNotIdle
	}
	s.list.Refresh(ctx)
	if _, ok := s.list.Find(id); !ok {
		return false, ErrRecordNotFound
	}
	if !s.list.opts.ConfirmDelete {
		if err := s.list.commitDelete(ctx, id); err != nil {
			return false, err
		}
		return true, nil
	}
	s.phase, s.targetID = ConfirmingDelete, id
	return false, nil
}

// ConfirmDelete removes the record awaiting confirmation.
func (s *Session[T]) ConfirmDelete(ctx context.Context) error {
	if s.phase != ConfirmingDelete {
		return ErrNotConfirming
	}
	id := s.targetID
	s.reset()
	return s.list.commitDelete(ctx, id)
}

// CancelDelete leaves the list unchanged.
func (s *Session[T]) CancelDelete() error {
	if s.phase != ConfirmingDelete {
		return ErrNotConfirming
	}
	s.reset()
	return nil
}

func (s *Session[T]) reset() {
	var zero T
	s.form = zero
	s.phase, s.mode, s.targetID = Idle, ModeNone, ""
}
