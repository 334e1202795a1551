// Package session wires an editor.Controller to its validation gate,
// commit notifier and audit journal, the way an edit dialog would.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/bondprice/editor"
	"github.com/rustyeddy/bondprice/journal"
	"github.com/rustyeddy/bondprice/pkg/id"
	"go.uber.org/zap"
)

var (
	ErrNotValid = errors.New("price is not valid")
	ErrReadOnly = errors.New("session is read-only")
)

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for journal entries.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithID sets the session ID instead of generating one.
func WithID(sessionID string) Option {
	return func(s *Session) { s.id = sessionID }
}

// ReadOnly rejects every edit. Commit stays available.
func ReadOnly() Option {
	return func(s *Session) { s.readOnly = true }
}

// View is what a UI needs to render the three fields.
type View struct {
	Price      string
	CleanPrice *float64
	ZSpread    *float64
	ASM        *float64
	Errors     map[editor.Field]string
	Valid      bool
}

type Session struct {
	id       string
	ctrl     *editor.Controller
	gate     *editor.Gate
	commits  editor.CommitNotifier
	journal  journal.Journal
	logger   *zap.Logger
	now      func() time.Time
	readOnly bool

	changed bool
}

func New(ctrl *editor.Controller, j journal.Journal, opts ...Option) *Session {
	if j == nil {
		j = journal.Nop{}
	}
	s := &Session{
		ctrl:    ctrl,
		gate:    editor.NewGate(ctrl),
		journal: j,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = id.New()
	}

	ctrl.Subscribe(func(editor.Field) { s.changed = true })
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) IsReadOnly() bool { return s.readOnly }

// IsNew is always false: a session edits the price of an existing row.
func (s *Session) IsNew() bool { return false }

func (s *Session) Controller() *editor.Controller { return s.ctrl }

func (s *Session) Gate() *editor.Gate { return s.gate }

// OnCommit registers an owner callback for successful commits.
func (s *Session) OnCommit(fn func()) (unsubscribe func()) {
	return s.commits.OnCommit(fn)
}

// Apply parses input for field and runs the matching edit. For ZSpread and
// ASM an empty input or "none" clears the field.
func (s *Session) Apply(f editor.Field, input string) error {
	input = strings.TrimSpace(input)
	switch f {
	case editor.FieldCleanPrice:
		return s.SetCleanPrice(input)
	case editor.FieldZSpread:
		v, err := parseOptional(input)
		if err != nil {
			return fmt.Errorf("zspread: %w", err)
		}
		return s.SetZSpread(v)
	case editor.FieldASM:
		v, err := parseOptional(input)
		if err != nil {
			return fmt.Errorf("asm: %w", err)
		}
		return s.SetASM(v)
	}
	return fmt.Errorf("unknown field %d", f)
}

func (s *Session) SetCleanPrice(text string) error {
	return s.edit(editor.FieldCleanPrice, text, func() error {
		return s.ctrl.SetCleanPrice(&text)
	})
}

func (s *Session) SetZSpread(v *float64) error {
	return s.edit(editor.FieldZSpread, formatOptional(v), func() error {
		had := s.ctrl.ZSpread() != nil
		if err := s.ctrl.SetZSpread(v); err != nil {
			return err
		}
		// clearing the spread is silent on the controller
		if v == nil && had {
			s.changed = true
		}
		return nil
	})
}

// SetASM assigns the margin directly. It is journaled even though the
// controller raises no change notification for it.
func (s *Session) SetASM(v *float64) error {
	return s.edit(editor.FieldASM, formatOptional(v), func() error {
		s.ctrl.SetASM(v)
		s.changed = true
		return nil
	})
}

func (s *Session) edit(f editor.Field, input string, apply func() error) error {
	if s.readOnly {
		return ErrReadOnly
	}

	s.changed = false
	if err := apply(); err != nil {
		s.logger.Error("edit failed",
			zap.String("session", s.id),
			zap.String("field", f.String()),
			zap.String("input", input),
			zap.Error(err))
		return err
	}
	if !s.changed {
		return nil
	}

	v := s.View()
	now := s.now()
	rec := journal.EditRecord{
		EditID:    id.At(now),
		SessionID: s.id,
		BondID:    s.ctrl.Bond().ID,
		Time:      now,
		Field:     f.String(),
		Input:     input,
		Price:     v.Price,
		ZSpread:   v.ZSpread,
		ASM:       v.ASM,
		Errors:    FormatErrors(v.Errors),
		Valid:     v.Valid,
	}
	if err := s.journal.RecordEdit(rec); err != nil {
		s.logger.Error("journal edit failed", zap.String("session", s.id), zap.Error(err))
		return fmt.Errorf("journal edit: %w", err)
	}
	return nil
}

// CanCommit reports whether Commit would go through.
func (s *Session) CanCommit() bool {
	return s.gate.IsValid()
}

// Commit raises the commit notification if the price is valid, and records
// the commit event in the journal.
func (s *Session) Commit() error {
	if !s.gate.IsValid() {
		return fmt.Errorf("%w: %s", ErrNotValid, FormatErrors(s.gate.Errors()))
	}

	now := s.now()
	rec := journal.CommitRecord{
		CommitID:  id.At(now),
		SessionID: s.id,
		BondID:    s.ctrl.Bond().ID,
		Time:      now,
	}
	if err := s.journal.RecordCommit(rec); err != nil {
		return fmt.Errorf("journal commit: %w", err)
	}

	s.logger.Info("committed",
		zap.String("session", s.id),
		zap.String("bond", rec.BondID),
		zap.String("price", s.ctrl.Price()))
	s.commits.Commit()
	return nil
}

func (s *Session) View() View {
	st := s.ctrl.Snapshot()
	return View{
		Price:      st.Record.Encode(),
		CleanPrice: st.Record.CleanPrice,
		ZSpread:    st.ZSpread,
		ASM:        st.ASM,
		Errors:     s.gate.Errors(),
		Valid:      s.gate.IsValid(),
	}
}

func (s *Session) Close() error {
	return s.journal.Close()
}

// FormatErrors renders field errors in validation order as
// "Field: message; Field: message".
func FormatErrors(errs map[editor.Field]string) string {
	var parts []string
	for _, f := range editor.Fields() {
		if msg, ok := errs[f]; ok {
			parts = append(parts, f.String()+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

func parseOptional(s string) (*float64, error) {
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
