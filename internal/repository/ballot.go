package repository

import (
	"context"
	"fmt"

	"github.com/rankedpoll/rankedpoll-api/internal/domain"
	"github.com/rankedpoll/rankedpoll-api/internal/repository/dao"
)

type BallotDAO interface {
	Insert(ctx context.Context, ballot dao.Ballot) (dao.Ballot, error)
	ExistsForUser(ctx context.Context, pollID, userID uint) (bool, error)
}

type BallotRepository struct {
	dao BallotDAO
}

func NewBallotRepository(dao BallotDAO) *BallotRepository {
	return &BallotRepository{
		dao: dao,
	}
}

func (r *BallotRepository) domainToDao(b domain.Ballot) dao.Ballot {
	ballot := dao.Ballot{
		ID:        b.ID,
		PollID:    b.PollID,
		UserID:    b.UserID,
		CreatedAt: b.CreatedAt,
	}
	for _, rk := range b.Rankings {
		ballot.Rankings = append(ballot.Rankings, dao.BallotRanking{
			OptionID: rk.OptionID,
			Rank:     rk.Rank,
		})
	}

	return ballot
}

func (r *BallotRepository) daoToDomain(b dao.Ballot) domain.Ballot {
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

	return ballot
}

func (r *BallotRepository) Create(ctx context.Context, ballot domain.Ballot) (domain.Ballot, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(ballot))
	if err != nil {
		return domain.Ballot{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *BallotRepository) ExistsForUser(ctx context.Context, pollID, userID uint) (bool, error) {
	exists, err := r.dao.ExistsForUser(ctx, pollID, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.ExistsForUser -> %w", err)
	}

	return exists, nil
}
