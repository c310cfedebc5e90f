package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rankedpoll/rankedpoll-api/internal/domain"
)

var (
	ErrPollDisabled     = errors.New("poll has been disabled by an administrator")
	ErrPollEnded        = errors.New("poll has ended")
	ErrPollNotPublished = errors.New("cannot vote on unpublished polls")
	ErrLoginRequired    = errors.New("login required to vote on this poll")
	ErrAlreadyVoted     = errors.New("user has already voted on this poll")
)

type BallotRepository interface {
	Create(ctx context.Context, ballot domain.Ballot) (domain.Ballot, error)
	ExistsForUser(ctx context.Context, pollID, userID uint) (bool, error)
}

type BallotService struct {
	polls   PollRepository
	ballots BallotRepository
	txm     TxManager
	now     func() time.Time
}

func NewBallotService(polls PollRepository, ballots BallotRepository, txm TxManager) *BallotService {
	return &BallotService{
		polls:   polls,
		ballots: ballots,
		txm:     txm,
		now:     time.Now,
	}
}

// Cast records one voter's ranked preferences. Non-anonymous polls take a
// single ballot per user; anonymous polls take any number.
func (s *BallotService) Cast(ctx context.Context, pollID uint, userID *uint, rankings []domain.BallotRanking) (domain.Ballot, error) {
	var created domain.Ballot

	err := s.txm.Transaction(ctx, func(ctx context.Context) error {
		poll, err := s.polls.GetByID(ctx, pollID)
		if err != nil {
			return err
		}

		if !poll.IsActive {
			return ErrPollDisabled
		}
		if poll.Expired(s.now()) {
			return ErrPollEnded
		}
		if poll.Status != domain.PollStatusPublished {
			return ErrPollNotPublished
		}

		if !poll.AllowAnonymous {
			if userID == nil {
				return ErrLoginRequired
			}

			voted, err := s.ballots.ExistsForUser(ctx, pollID, *userID)
			if err != nil {
				return fmt.Errorf("s.ballots.ExistsForUser -> %w", err)
			}
			if voted {
				return ErrAlreadyVoted
			}
		}

		created, err = s.ballots.Create(ctx, domain.Ballot{
			PollID:   pollID,
			UserID:   userID,
			Rankings: rankings,
		})
		if err != nil {
			return fmt.Errorf("s.ballots.Create -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Ballot{}, err
	}

	return created, nil
}
