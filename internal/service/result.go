package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rankedpoll/rankedpoll-api/internal/domain"
	"github.com/rankedpoll/rankedpoll-api/internal/repository"
	"github.com/rankedpoll/rankedpoll-api/internal/tally"
)

var (
	ErrPollNotFound = repository.ErrPollNotFound
	ErrResultExists = repository.ErrResultExists

	// ErrInvalidSnapshot guards against a snapshot whose rows do not belong
	// together. Upstream validation should make it unreachable.
	ErrInvalidSnapshot = errors.New("poll snapshot is inconsistent")
)

type PollRepository interface {
	GetByID(ctx context.Context, id uint) (domain.Poll, error)
	GetSnapshot(ctx context.Context, id uint) (domain.Poll, []domain.Ballot, error)
	UpdateStatus(ctx context.Context, id uint, status string, isActive bool, endAt *time.Time) error
}

type ResultRepository interface {
	FindByPollID(ctx context.Context, pollID uint) (domain.PollResult, error)
	Create(ctx context.Context, result domain.PollResult) (domain.PollResult, error)
	Replace(ctx context.Context, result domain.PollResult) (domain.PollResult, error)
}

// TxManager delimits one atomic unit of storage work.
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PollResultService coordinates the tally engine with the result store: it
// loads the ballot snapshot, runs the count, and persists the outcome so the
// computation never has to be repeated to be inspected.
type PollResultService struct {
	polls   PollRepository
	results ResultRepository
	txm     TxManager
	now     func() time.Time
}

func NewPollResultService(polls PollRepository, results ResultRepository, txm TxManager) *PollResultService {
	return &PollResultService{
		polls:   polls,
		results: results,
		txm:     txm,
		now:     time.Now,
	}
}

// GetOrCompute returns the cached result for the poll when one exists, without
// recomputing it even if ballots have arrived since. Otherwise it computes,
// persists and returns a fresh one. The second return value reports whether
// this call created the result; losing the first-computation race to a
// concurrent caller comes back as created == false with the winner's rows.
func (s *PollResultService) GetOrCompute(ctx context.Context, pollID uint) (domain.PollResult, bool, error) {
	var (
		result  domain.PollResult
		created bool
	)

	err := s.txm.Transaction(ctx, func(ctx context.Context) error {
		existing, err := s.results.FindByPollID(ctx, pollID)
		if err == nil {
			result = existing
			return nil
		}
		if !errors.Is(err, repository.ErrResultNotFound) {
			return fmt.Errorf("s.results.FindByPollID -> %w", err)
		}

		computed, err := s.computeSnapshot(ctx, pollID)
		if err != nil {
			return err
		}

		if _, err = s.results.Create(ctx, computed); err != nil {
			return err
		}

		result, err = s.results.FindByPollID(ctx, pollID)
		if err != nil {
			return fmt.Errorf("s.results.FindByPollID -> %w", err)
		}
		created = true

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrResultExists) {
			// Someone else committed first; their result is the result.
			return s.reread(ctx, pollID)
		}

		return domain.PollResult{}, false, err
	}

	return result, created, nil
}

// Recompute unconditionally reloads the snapshot, re-runs the engine and
// replaces whatever result was stored before. Only the finalization path and
// explicit corrections use it.
func (s *PollResultService) Recompute(ctx context.Context, pollID uint) (domain.PollResult, error) {
	var result domain.PollResult

	err := s.txm.Transaction(ctx, func(ctx context.Context) error {
		var err error
		result, err = s.recompute(ctx, pollID)

		return err
	})
	if err != nil {
		return domain.PollResult{}, err
	}

	return result, nil
}

// FinalizeIfExpired closes a poll whose scheduled end has passed and freezes
// its result. Idempotent: an already-closed poll, a poll without an end time,
// or one still running comes back untouched.
func (s *PollResultService) FinalizeIfExpired(ctx context.Context, poll domain.Poll) (domain.Poll, error) {
	if poll.Status == domain.PollStatusClosed || !poll.Expired(s.now()) {
		return poll, nil
	}

	err := s.txm.Transaction(ctx, func(ctx context.Context) error {
		if err := s.polls.UpdateStatus(ctx, poll.ID, domain.PollStatusClosed, false, poll.EndAt); err != nil {
			return fmt.Errorf("s.polls.UpdateStatus -> %w", err)
		}

		_, err := s.recompute(ctx, poll.ID)

		return err
	})
	if err != nil {
		return domain.Poll{}, err
	}

	poll.Status = domain.PollStatusClosed
	poll.IsActive = false

	return poll, nil
}

// recompute runs inside an already-open transaction scope.
func (s *PollResultService) recompute(ctx context.Context, pollID uint) (domain.PollResult, error) {
	computed, err := s.computeSnapshot(ctx, pollID)
	if err != nil {
		return domain.PollResult{}, err
	}

	existing, err := s.results.FindByPollID(ctx, pollID)
	switch {
	case err == nil:
		computed.ID = existing.ID
		if _, err = s.results.Replace(ctx, computed); err != nil {
			return domain.PollResult{}, err
		}
	case errors.Is(err, repository.ErrResultNotFound):
		if _, err = s.results.Create(ctx, computed); err != nil {
			return domain.PollResult{}, err
		}
	default:
		return domain.PollResult{}, fmt.Errorf("s.results.FindByPollID -> %w", err)
	}

	result, err := s.results.FindByPollID(ctx, pollID)
	if err != nil {
		return domain.PollResult{}, fmt.Errorf("s.results.FindByPollID -> %w", err)
	}

	return result, nil
}

// computeSnapshot loads the live snapshot and runs the engine over it. Nothing
// is written here; NotFound surfaces before any persistence happens.
func (s *PollResultService) computeSnapshot(ctx context.Context, pollID uint) (domain.PollResult, error) {
	poll, ballots, err := s.polls.GetSnapshot(ctx, pollID)
	if err != nil {
		return domain.PollResult{}, err
	}

	if err = validateSnapshot(pollID, poll, ballots); err != nil {
		return domain.PollResult{}, err
	}

	trace := tally.Tally(tallyOptions(poll.Options), tallyBallots(ballots))

	result := domain.PollResult{
		PollID:          pollID,
		TotalBallots:    trace.TotalBallots,
		TotalRounds:     trace.TotalRounds,
		WinnerOptionID:  trace.WinnerOptionID,
		IsDraw:          trace.IsDraw,
		TieBreakApplied: trace.TieBreakApplied,
		CompletedAt:     s.now(),
	}
	for _, c := range trace.PerOption {
		result.Values = append(result.Values, domain.PollResultValue{
			OptionID:           c.OptionID,
			OptionText:         c.OptionText,
			RoundNumber:        c.RoundNumber,
			Votes:              c.Votes,
			EliminatedInRound:  c.EliminatedInRound,
			TieBreakerPosition: c.Position,
		})
	}

	return result, nil
}

func (s *PollResultService) reread(ctx context.Context, pollID uint) (domain.PollResult, bool, error) {
	var result domain.PollResult

	err := s.txm.Transaction(ctx, func(ctx context.Context) error {
		var err error
		result, err = s.results.FindByPollID(ctx, pollID)

		return err
	})
	if err != nil {
		return domain.PollResult{}, false, fmt.Errorf("s.results.FindByPollID -> %w", err)
	}

	return result, false, nil
}

func validateSnapshot(pollID uint, poll domain.Poll, ballots []domain.Ballot) error {
	for _, opt := range poll.Options {
		if opt.PollID != pollID {
			return fmt.Errorf("%w: option %d belongs to poll %d", ErrInvalidSnapshot, opt.ID, opt.PollID)
		}
	}
	for _, b := range ballots {
		if b.PollID != pollID {
			return fmt.Errorf("%w: ballot %d belongs to poll %d", ErrInvalidSnapshot, b.ID, b.PollID)
		}
	}

	return nil
}

func tallyOptions(options []domain.PollOption) []tally.Option {
	out := make([]tally.Option, len(options))
	for i, opt := range options {
		out[i] = tally.Option{
			ID:       opt.ID,
			Text:     opt.Text,
			Position: opt.Position,
		}
	}

	return out
}

func tallyBallots(ballots []domain.Ballot) []tally.Ballot {
	out := make([]tally.Ballot, len(ballots))
	for i, b := range ballots {
		ballot := tally.Ballot{ID: b.ID}
		for _, rk := range b.Rankings {
			ballot.Rankings = append(ballot.Rankings, tally.Ranking{
				OptionID: rk.OptionID,
				Rank:     rk.Rank,
			})
		}
		out[i] = ballot
	}

	return out
}
