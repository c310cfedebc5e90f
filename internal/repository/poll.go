package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rankedpoll/rankedpoll-api/internal/domain"
	"github.com/rankedpoll/rankedpoll-api/internal/repository/dao"
)

var ErrPollNotFound = dao.ErrPollNotFound

type PollDAO interface {
	FindByID(ctx context.Context, id uint) (dao.Poll, error)
	FindWithOptionsAndBallots(ctx context.Context, id uint) (dao.Poll, error)
	UpdateStatus(ctx context.Context, id uint, status string, isActive bool, endAt *time.Time) error
}

type PollRepository struct {
	dao PollDAO
}

func NewPollRepository(dao PollDAO) *PollRepository {
	return &PollRepository{
		dao: dao,
	}
}

func (r *PollRepository) daoToDomain(p dao.Poll) domain.Poll {
	poll := domain.Poll{
		ID:             p.ID,
		Title:          p.Title,
		Question:       p.Question,
		CreatorName:    p.CreatorName,
		Status:         p.Status,
		IsActive:       p.IsActive,
		AllowAnonymous: p.AllowAnonymous,
		EndAt:          p.EndAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	for _, opt := range p.Options {
		poll.Options = append(poll.Options, domain.PollOption{
			ID:       opt.ID,
			PollID:   opt.PollID,
			Text:     opt.Text,
			Position: opt.Position,
		})
	}

	return poll
}

func (r *PollRepository) ballotsDaoToDomain(ballots []dao.Ballot) []domain.Ballot {
	out := make([]domain.Ballot, 0, len(ballots))
	for _, b := range ballots {
		ballot := domain.Ballot{
			ID:        b.ID,
			PollID:    b.PollID,
			UserID:    b.UserID,
			CreatedAt: b.CreatedAt,
		}
		for _, rk := range b.Rankings {
			ballot.Rankings = append(ballot.Rankings, domain.BallotRanking{
				ID:       rk.ID,
				BallotID: rk.BallotID,
				OptionID: rk.OptionID,
				Rank:     rk.Rank,
			})
		}
		out = append(out, ballot)
	}

	return out
}

func (r *PollRepository) GetByID(ctx context.Context, id uint) (domain.Poll, error) {
	poll, err := r.dao.FindByID(ctx, id)
	if err != nil {
		if err == dao.ErrPollNotFound {
			return domain.Poll{}, ErrPollNotFound
		}

		return domain.Poll{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(poll), nil
}

// GetSnapshot loads the poll along with every ballot cast so far, the read-only
// input of one tally run.
func (r *PollRepository) GetSnapshot(ctx context.Context, id uint) (domain.Poll, []domain.Ballot, error) {
	poll, err := r.dao.FindWithOptionsAndBallots(ctx, id)
	if err != nil {
		if err == dao.ErrPollNotFound {
			return domain.Poll{}, nil, ErrPollNotFound
		}

		return domain.Poll{}, nil, fmt.Errorf("r.dao.FindWithOptionsAndBallots -> %w", err)
	}

	return r.daoToDomain(poll), r.ballotsDaoToDomain(poll.Ballots), nil
}

func (r *PollRepository) UpdateStatus(ctx context.Context, id uint, status string, isActive bool, endAt *time.Time) error {
	if err := r.dao.UpdateStatus(ctx, id, status, isActive, endAt); err != nil {
		if err == dao.ErrPollNotFound {
			return ErrPollNotFound
		}

		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}
