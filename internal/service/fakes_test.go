package service

import (
	"context"
	"sort"
	"time"

	"github.com/rankedpoll/rankedpoll-api/internal/domain"
	"github.com/rankedpoll/rankedpoll-api/internal/repository"
)

// In-memory stand-ins for the gorm-backed repositories. They honor the same
// sentinel errors and the same value ordering so the services cannot tell the
// difference.

type fakeTxManager struct{}

func (fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePollRepo struct {
	polls   map[uint]domain.Poll
	ballots map[uint][]domain.Ballot
}

func newFakePollRepo() *fakePollRepo {
	return &fakePollRepo{
		polls:   make(map[uint]domain.Poll),
		ballots: make(map[uint][]domain.Ballot),
	}
}

func (r *fakePollRepo) GetByID(_ context.Context, id uint) (domain.Poll, error) {
	poll, ok := r.polls[id]
	if !ok {
		return domain.Poll{}, repository.ErrPollNotFound
	}

	return poll, nil
}

func (r *fakePollRepo) GetSnapshot(ctx context.Context, id uint) (domain.Poll, []domain.Ballot, error) {
	poll, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.Poll{}, nil, err
	}

	return poll, r.ballots[id], nil
}

func (r *fakePollRepo) UpdateStatus(_ context.Context, id uint, status string, isActive bool, endAt *time.Time) error {
	poll, ok := r.polls[id]
	if !ok {
		return repository.ErrPollNotFound
	}

	poll.Status = status
	poll.IsActive = isActive
	poll.EndAt = endAt
	r.polls[id] = poll

	return nil
}

func (r *fakePollRepo) addBallot(pollID uint, userID *uint, prefs ...uint) {
	ballot := domain.Ballot{
		ID:     uint(len(r.ballots[pollID]) + 1),
		PollID: pollID,
		UserID: userID,
	}
	for i, optID := range prefs {
		ballot.Rankings = append(ballot.Rankings, domain.BallotRanking{OptionID: optID, Rank: i + 1})
	}
	r.ballots[pollID] = append(r.ballots[pollID], ballot)
}

type fakeBallotRepo struct {
	polls  *fakePollRepo
	nextID uint
}

func (r *fakeBallotRepo) Create(_ context.Context, ballot domain.Ballot) (domain.Ballot, error) {
	r.nextID++
	ballot.ID = r.nextID
	r.polls.ballots[ballot.PollID] = append(r.polls.ballots[ballot.PollID], ballot)

	return ballot, nil
}

func (r *fakeBallotRepo) ExistsForUser(_ context.Context, pollID, userID uint) (bool, error) {
	for _, b := range r.polls.ballots[pollID] {
		if b.UserID != nil && *b.UserID == userID {
			return true, nil
		}
	}

	return false, nil
}

type fakeResultRepo struct {
	byPoll      map[uint]domain.PollResult
	nextID      uint
	nextValueID uint

	// raceOnCreate makes the next Create lose a simulated first-computation
	// race: the given result is committed by "someone else" first.
	raceOnCreate *domain.PollResult
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{
		byPoll: make(map[uint]domain.PollResult),
	}
}

func (r *fakeResultRepo) FindByPollID(_ context.Context, pollID uint) (domain.PollResult, error) {
	result, ok := r.byPoll[pollID]
	if !ok {
		return domain.PollResult{}, repository.ErrResultNotFound
	}

	sort.SliceStable(result.Values, func(i, j int) bool {
		if result.Values[i].RoundNumber != result.Values[j].RoundNumber {
			return result.Values[i].RoundNumber < result.Values[j].RoundNumber
		}
		return result.Values[i].Votes > result.Values[j].Votes
	})

	return result, nil
}

func (r *fakeResultRepo) Create(_ context.Context, result domain.PollResult) (domain.PollResult, error) {
	if r.raceOnCreate != nil {
		winner := *r.raceOnCreate
		r.raceOnCreate = nil
		r.byPoll[winner.PollID] = winner

		return domain.PollResult{}, repository.ErrResultExists
	}
	if _, ok := r.byPoll[result.PollID]; ok {
		return domain.PollResult{}, repository.ErrResultExists
	}

	r.nextID++
	result.ID = r.nextID
	for i := range result.Values {
		r.nextValueID++
		result.Values[i].ID = r.nextValueID
		result.Values[i].PollResultID = result.ID
	}
	r.byPoll[result.PollID] = result

	return result, nil
}

func (r *fakeResultRepo) Replace(_ context.Context, result domain.PollResult) (domain.PollResult, error) {
	for i := range result.Values {
		r.nextValueID++
		result.Values[i].ID = r.nextValueID
		result.Values[i].PollResultID = result.ID
	}
	for pollID, existing := range r.byPoll {
		if existing.ID == result.ID {
			result.PollID = pollID
			r.byPoll[pollID] = result
		}
	}

	return result, nil
}

func fixturePoll(id uint, optionTexts ...string) domain.Poll {
	poll := domain.Poll{
		ID:       id,
		Title:    "lunch spot",
		Status:   domain.PollStatusPublished,
		IsActive: true,
	}
	for i, text := range optionTexts {
		poll.Options = append(poll.Options, domain.PollOption{
			ID:       uint(i + 1),
			PollID:   id,
			Text:     text,
			Position: i + 1,
		})
	}

	return poll
}
