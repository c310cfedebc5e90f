package service

import (
	"context"
	"fmt"

	"github.com/rankedpoll/rankedpoll-api/internal/domain"
)

type PollService struct {
	repo PollRepository
}

func NewPollService(repo PollRepository) *PollService {
	return &PollService{
		repo: repo,
	}
}

func (s *PollService) GetPoll(ctx context.Context, id uint) (domain.Poll, error) {
	poll, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == ErrPollNotFound {
			return domain.Poll{}, err
		}

		return domain.Poll{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return poll, nil
}
