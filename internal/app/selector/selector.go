package selector

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"staybook/internal/app/policies"
	"staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"
	"staybook/internal/domain/reservation"
)

// State names the phase of the guest's in-progress selection.
type State string

const (
	// StateEmpty: no dates picked yet.
	StateEmpty State = "EMPTY"
	// StatePartialIn: check-in picked, check-out still unset.
	StatePartialIn State = "PARTIAL_IN"
	// StateComplete: both dates picked; submission is possible.
	StateComplete State = "COMPLETE"
	// StateSubmitted: booking confirmed; edits disabled until Reset.
	StateSubmitted State = "SUBMITTED"
)

var (
	ErrClosed            = errors.New("selector: view torn down")
	ErrSubmitted         = errors.New("selector: booking already submitted")
	ErrSubmissionPending = errors.New("selector: submission already in flight")
	ErrNotLoaded         = errors.New("selector: availability not loaded")
	ErrCheckInRequired   = errors.New("selector: pick a check-in date first")
	// ErrStaleLoad means a newer fetch superseded this one; its result was
	// discarded and the selector is unchanged.
	ErrStaleLoad = errors.New("selector: stale fetch discarded")
)

// Selector mediates a guest's date-range selection for one property view.
// It keeps the in-progress StayRequest self-consistent, gives live
// validation feedback on every edit, and gates submission to the booking
// store. One instance per property view; the scheduling model is the
// single-threaded UI event loop, so no locking happens here.
type Selector struct {
	store      policies.BookingStore
	creds      policies.CredentialProvider
	logger     *slog.Logger
	propertyID string
	rules      booking.StayRules
	now        func() time.Time

	state      State
	request    booking.StayRequest
	index      *reservation.DaySet
	reason     booking.Reason
	loaded     bool
	fetchSeq   uint64
	submitting bool
	closed     bool
}

// Option tweaks selector construction.
type Option func(*Selector)

// WithClock overrides the time source for "today" comparisons.
func WithClock(now func() time.Time) Option {
	return func(s *Selector) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) { s.logger = logger }
}

func New(store policies.BookingStore, creds policies.CredentialProvider, propertyID string, rules booking.StayRules, opts ...Option) (*Selector, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	s := &Selector{
		store:      store,
		creds:      creds,
		logger:     slog.Default(),
		propertyID: propertyID,
		rules:      rules,
		now:        time.Now,
		state:      StateEmpty,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Selector) today() calendar.Date { return calendar.DateOf(s.now()) }

// State reports the current selection phase.
func (s *Selector) State() State { return s.state }

// Request returns a copy of the in-progress stay request.
func (s *Selector) Request() booking.StayRequest { return s.request }

// RejectionReason returns the reason surfaced by the last failed
// validation or submission, if one is still current.
func (s *Selector) RejectionReason() (booking.Reason, bool) {
	return s.reason, s.reason != ""
}

// Load fetches the property's reservation snapshot and rebuilds the
// occupancy index. Each call supersedes any load still in flight: only
// the newest fetch may be applied, so a slow response can never clobber
// the view with stale occupancy data.
func (s *Selector) Load(ctx context.Context) error {
	if s.closed {
		return ErrClosed
	}
	s.fetchSeq++
	seq := s.fetchSeq

	cred, err := s.creds.Credential(ctx)
	if err != nil {
		return err
	}
	reservations, err := s.store.Reservations(ctx, cred, s.propertyID)
	if s.closed {
		return ErrClosed
	}
	if seq != s.fetchSeq {
		s.logger.Debug("discarding superseded reservation fetch", "property_id", s.propertyID, "seq", seq)
		return ErrStaleLoad
	}
	if err != nil {
		s.logger.Error("reservation fetch failed", "property_id", s.propertyID, "error", err)
		return err
	}
	index, err := reservation.BuildDaySet(reservations)
	if err != nil {
		s.logger.Error("reservation snapshot rejected", "property_id", s.propertyID, "error", err)
		return errors.Join(policies.ErrMalformedResponse, err)
	}
	s.index = index
	s.loaded = true
	return nil
}

// Loaded reports whether an occupancy snapshot has been applied.
func (s *Selector) Loaded() bool { return s.loaded }

// PickCheckIn records a new check-in date. If a check-out is already set
// and the new check-in would invert the range, the check-out is advanced
// to check-in + MinNights so an inverted range is never observable. The
// returned result is live validation feedback for the edited request.
func (s *Selector) PickCheckIn(d calendar.Date) (booking.Result, error) {
	if err := s.editable(); err != nil {
		return booking.Result{}, err
	}
	s.request.CheckIn = d
	if !s.request.CheckOut.IsZero() && !d.Before(s.request.CheckOut) {
		s.request.CheckOut = d.AddDays(s.rules.MinNights)
	}
	return s.afterEdit(), nil
}

// PickCheckOut records a new check-out date. A check-in must exist first;
// the picker never offers check-out days before one is chosen.
func (s *Selector) PickCheckOut(d calendar.Date) (booking.Result, error) {
	if err := s.editable(); err != nil {
		return booking.Result{}, err
	}
	if s.request.CheckIn.IsZero() {
		return booking.Result{}, ErrCheckInRequired
	}
	s.request.CheckOut = d
	return s.afterEdit(), nil
}

func (s *Selector) editable() error {
	switch {
	case s.closed:
		return ErrClosed
	case s.state == StateSubmitted:
		return ErrSubmitted
	case s.submitting:
		return ErrSubmissionPending
	}
	return nil
}

// afterEdit reconciles the state machine, clears any stale rejection
// message and re-validates for live feedback.
func (s *Selector) afterEdit() booking.Result {
	s.reason = ""
	switch {
	case s.request.Complete():
		s.state = StateComplete
	case !s.request.CheckIn.IsZero():
		s.state = StatePartialIn
	default:
		s.state = StateEmpty
	}
	return s.Validate()
}

// Validate runs the authoritative checks against the current request
// without mutating anything.
func (s *Selector) Validate() booking.Result {
	return booking.Validate(s.request, s.today(), s.index, s.rules)
}

// SubmitOutcome is the terminal result of a submission attempt. A
// rejected Result is a normal outcome, not an error; errors are reserved
// for boundary failures the caller must branch on.
type SubmitOutcome struct {
	BookingID string
	Result    booking.Result
}

// Submit validates the request and, when accepted, issues the booking to
// the store. Re-submission is disabled while a call is pending, so rapid
// double clicks produce exactly one CreateBooking. After the store
// confirms, the reservation list is re-fetched and the index rebuilt
// before the selector settles into StateSubmitted.
func (s *Selector) Submit(ctx context.Context) (SubmitOutcome, error) {
	if err := s.editable(); err != nil {
		return SubmitOutcome{}, err
	}
	if !s.loaded {
		return SubmitOutcome{}, ErrNotLoaded
	}
	result := s.Validate()
	if !result.Accepted() {
		s.reason = result.Reason
		return SubmitOutcome{Result: result}, nil
	}

	s.submitting = true
	defer func() { s.submitting = false }()

	cred, err := s.creds.Credential(ctx)
	if err != nil {
		return SubmitOutcome{}, err
	}
	bookingID, err := s.store.CreateBooking(ctx, cred, s.propertyID, s.request)
	if s.closed {
		return SubmitOutcome{}, ErrClosed
	}
	if err != nil {
		if errors.Is(err, policies.ErrConflict) {
			// The server saw an overlap our snapshot missed. Surface it
			// exactly like a local overlap and force a refresh so the
			// picker stops offering the taken days.
			s.reason = booking.ReasonOverlap
			if refreshErr := s.Load(ctx); refreshErr != nil && !errors.Is(refreshErr, ErrStaleLoad) {
				s.logger.Warn("availability refresh after conflict failed", "property_id", s.propertyID, "error", refreshErr)
			}
			return SubmitOutcome{Result: booking.Result{Reason: booking.ReasonOverlap}}, nil
		}
		return SubmitOutcome{}, err
	}

	if err := s.Load(ctx); err != nil && !errors.Is(err, ErrStaleLoad) {
		if errors.Is(err, ErrClosed) {
			return SubmitOutcome{}, ErrClosed
		}
		s.logger.Warn("availability refresh after booking failed", "property_id", s.propertyID, "error", err)
	}
	s.state = StateSubmitted
	return SubmitOutcome{BookingID: bookingID, Result: result}, nil
}

// Reset returns the selector to an empty selection after the surrounding
// view has handled a submitted booking.
func (s *Selector) Reset() error {
	if s.closed {
		return ErrClosed
	}
	if s.submitting {
		return ErrSubmissionPending
	}
	s.request = booking.StayRequest{}
	s.reason = ""
	s.state = StateEmpty
	return nil
}

// Close marks the view as torn down. In-flight fetch or submission
// results are discarded; no state changes after this point.
func (s *Selector) Close() {
	s.closed = true
}
