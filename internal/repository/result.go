package repository

import (
	"context"
	"fmt"

	"github.com/rankedpoll/rankedpoll-api/internal/domain"
	"github.com/rankedpoll/rankedpoll-api/internal/repository/dao"
)

var (
	ErrResultNotFound = dao.ErrResultNotFound
	ErrResultExists   = dao.ErrResultExists
)

type ResultDAO interface {
	FindByPollID(ctx context.Context, pollID uint) (dao.PollResult, error)
	Insert(ctx context.Context, result dao.PollResult) (dao.PollResult, error)
	Replace(ctx context.Context, result dao.PollResult) (dao.PollResult, error)
}

type ResultRepository struct {
	dao ResultDAO
}

func NewResultRepository(dao ResultDAO) *ResultRepository {
	return &ResultRepository{
		dao: dao,
	}
}

func (r *ResultRepository) domainToDao(res domain.PollResult) dao.PollResult {
	result := dao.PollResult{
		ID:              res.ID,
		PollID:          res.PollID,
		TotalBallots:    res.TotalBallots,
		TotalRounds:     res.TotalRounds,
		WinnerOptionID:  res.WinnerOptionID,
		IsDraw:          res.IsDraw,
		TieBreakApplied: res.TieBreakApplied,
		CompletedAt:     res.CompletedAt,
	}
	for _, v := range res.Values {
		result.Values = append(result.Values, dao.PollResultValue{
			ID:                 v.ID,
			PollResultID:       v.PollResultID,
			OptionID:           v.OptionID,
			OptionText:         v.OptionText,
			RoundNumber:        v.RoundNumber,
			Votes:              v.Votes,
			EliminatedInRound:  v.EliminatedInRound,
			TieBreakerPosition: v.TieBreakerPosition,
		})
	}

	return result
}

func (r *ResultRepository) daoToDomain(res dao.PollResult) domain.PollResult {
	result := domain.PollResult{
		ID:              res.ID,
		PollID:          res.PollID,
		TotalBallots:    res.TotalBallots,
		TotalRounds:     res.TotalRounds,
		WinnerOptionID:  res.WinnerOptionID,
		IsDraw:          res.IsDraw,
		TieBreakApplied: res.TieBreakApplied,
		CompletedAt:     res.CompletedAt,
	}
	for _, v := range res.Values {
		result.Values = append(result.Values, domain.PollResultValue{
			ID:                 v.ID,
			PollResultID:       v.PollResultID,
			OptionID:           v.OptionID,
			OptionText:         v.OptionText,
			RoundNumber:        v.RoundNumber,
			Votes:              v.Votes,
			EliminatedInRound:  v.EliminatedInRound,
			TieBreakerPosition: v.TieBreakerPosition,
		})
	}

	return result
}

func (r *ResultRepository) FindByPollID(ctx context.Context, pollID uint) (domain.PollResult, error) {
	result, err := r.dao.FindByPollID(ctx, pollID)
	if err != nil {
		if err == dao.ErrResultNotFound {
			return domain.PollResult{}, ErrResultNotFound
		}

		return domain.PollResult{}, fmt.Errorf("r.dao.FindByPollID -> %w", err)
	}

	return r.daoToDomain(result), nil
}

func (r *ResultRepository) Create(ctx context.Context, result domain.PollResult) (domain.PollResult, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(result))
	if err != nil {
		if err == dao.ErrResultExists {
			return domain.PollResult{}, ErrResultExists
		}

		return domain.PollResult{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

// Replace swaps an existing result for a freshly computed one: scalar fields
// are updated in place and the value rows are fully rewritten.
func (r *ResultRepository) Replace(ctx context.Context, result domain.PollResult) (domain.PollResult, error) {
	replaced, err := r.dao.Replace(ctx, r.domainToDao(result))
	if err != nil {
		return domain.PollResult{}, fmt.Errorf("r.dao.Replace -> %w", err)
	}

	return r.daoToDomain(replaced), nil
}
