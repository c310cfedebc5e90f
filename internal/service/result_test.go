package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rankedpoll/rankedpoll-api/internal/domain"
)

func newResultService() (*PollResultService, *fakePollRepo, *fakeResultRepo) {
	polls := newFakePollRepo()
	results := newFakeResultRepo()
	svc := NewPollResultService(polls, results, fakeTxManager{})

	return svc, polls, results
}

func TestPollResultService_GetOrCompute_CreatesOnFirstCall(t *testing.T) {
	svc, polls, _ := newResultService()
	polls.polls[1] = fixturePoll(1, "Ramen", "Tacos", "Pizza")
	polls.addBallot(1, nil, 1, 2)
	polls.addBallot(1, nil, 1)
	polls.addBallot(1, nil, 2, 3)

	result, created, err := svc.GetOrCompute(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint(1), result.PollID)
	assert.Equal(t, 3, result.TotalBallots)
	require.NotNil(t, result.WinnerOptionID)
	assert.Equal(t, uint(1), *result.WinnerOptionID)
	assert.False(t, result.IsDraw)
	assert.Len(t, result.Values, 3, "one value row per option")
	assert.False(t, result.CompletedAt.IsZero())
}

func TestPollResultService_GetOrCompute_ReturnsCachedResult(t *testing.T) {
	svc, polls, _ := newResultService()
	polls.polls[1] = fixturePoll(1, "Ramen", "Tacos")
	polls.addBallot(1, nil, 1)

	first, created, err := svc.GetOrCompute(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, created)

	// A late ballot must not disturb the cached result.
	polls.addBallot(1, nil, 2)
	polls.addBallot(1, nil, 2)

	second, created, err := svc.GetOrCompute(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.TotalBallots, second.TotalBallots)
	assert.Equal(t, first.WinnerOptionID, second.WinnerOptionID)
	assert.Equal(t, first.CompletedAt, second.CompletedAt)
}

func TestPollResultService_GetOrCompute_PollNotFound(t *testing.T) {
	svc, _, _ := newResultService()

	_, _, err := svc.GetOrCompute(context.Background(), 42)

	assert.ErrorIs(t, err, ErrPollNotFound)
}

func TestPollResultService_GetOrCompute_LosesRaceCleanly(t *testing.T) {
	svc, polls, results := newResultService()
	polls.polls[1] = fixturePoll(1, "Ramen", "Tacos")
	polls.addBallot(1, nil, 1)

	winnerID := uint(2)
	results.raceOnCreate = &domain.PollResult{
		ID:             7,
		PollID:         1,
		TotalBallots:   1,
		TotalRounds:    1,
		WinnerOptionID: &winnerID,
		CompletedAt:    time.Now(),
	}

	result, created, err := svc.GetOrCompute(context.Background(), 1)

	require.NoError(t, err, "losing the race is not an error")
	assert.False(t, created)
	assert.Equal(t, uint(7), result.ID, "the concurrent winner's rows are returned")
}

func TestPollResultService_Recompute_ReplacesEverything(t *testing.T) {
	svc, polls, _ := newResultService()
	polls.polls[1] = fixturePoll(1, "Ramen", "Tacos", "Pizza")
	polls.addBallot(1, nil, 1)
	polls.addBallot(1, nil, 1)
	polls.addBallot(1, nil, 2)

	first, _, err := svc.GetOrCompute(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, first.WinnerOptionID)
	require.Equal(t, uint(1), *first.WinnerOptionID)

	// Enough new ballots to flip the outcome.
	polls.addBallot(1, nil, 2)
	polls.addBallot(1, nil, 2)
	polls.addBallot(1, nil, 2, 3)

	second, err := svc.Recompute(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "scalar row replaced, not duplicated")
	assert.Equal(t, 6, second.TotalBallots)
	require.NotNil(t, second.WinnerOptionID)
	assert.Equal(t, uint(2), *second.WinnerOptionID)

	assert.Len(t, second.Values, 3, "value rows equal option count, no orphans")
	for _, v := range second.Values {
		assert.Equal(t, second.ID, v.PollResultID)
		for _, old := range first.Values {
			assert.NotEqual(t, old.ID, v.ID, "prior value rows fully replaced")
		}
	}
}

func TestPollResultService_ValuesInPresentationOrder(t *testing.T) {
	svc, polls, _ := newResultService()
	polls.polls[1] = fixturePoll(1, "Ramen", "Tacos", "Pizza", "Sushi")
	polls.addBallot(1, nil, 1, 2, 3, 4)
	polls.addBallot(1, nil, 2, 1, 3, 4)
	polls.addBallot(1, nil, 3, 2, 1, 4)
	polls.addBallot(1, nil, 2, 3, 4, 1)
	polls.addBallot(1, nil, 1, 4, 3, 2)

	result, _, err := svc.GetOrCompute(context.Background(), 1)

	require.NoError(t, err)
	for i := 1; i < len(result.Values); i++ {
		prev, cur := result.Values[i-1], result.Values[i]
		if prev.RoundNumber == cur.RoundNumber {
			assert.GreaterOrEqual(t, prev.Votes, cur.Votes)
		} else {
			assert.Less(t, prev.RoundNumber, cur.RoundNumber)
		}
	}
}

func TestPollResultService_TieBreakPersisted(t *testing.T) {
	svc, polls, _ := newResultService()
	polls.polls[1] = fixturePoll(1, "Ramen", "Tacos", "Pizza")
	polls.addBallot(1, nil, 1)
	polls.addBallot(1, nil, 2)
	polls.addBallot(1, nil, 3)

	result, _, err := svc.GetOrCompute(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, result.TieBreakApplied)
	require.NotNil(t, result.WinnerOptionID)
	assert.Equal(t, uint(1), *result.WinnerOptionID, "lowest position wins the all-tied case")
	for _, v := range result.Values {
		assert.NotZero(t, v.TieBreakerPosition)
	}
}

func TestPollResultService_FinalizeIfExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	t.Run("no end time", func(t *testing.T) {
		svc, polls, results := newResultService()
		poll := fixturePoll(1, "Ramen")
		polls.polls[1] = poll

		got, err := svc.FinalizeIfExpired(context.Background(), poll)

		require.NoError(t, err)
		assert.Equal(t, domain.PollStatusPublished, got.Status)
		assert.Empty(t, results.byPoll)
	})

	t.Run("not yet expired", func(t *testing.T) {
		svc, polls, results := newResultService()
		poll := fixturePoll(1, "Ramen")
		poll.EndAt = &future
		polls.polls[1] = poll

		got, err := svc.FinalizeIfExpired(context.Background(), poll)

		require.NoError(t, err)
		assert.Equal(t, domain.PollStatusPublished, got.Status)
		assert.True(t, got.IsActive)
		assert.Empty(t, results.byPoll)
	})

	t.Run("expired closes and freezes", func(t *testing.T) {
		svc, polls, results := newResultService()
		poll := fixturePoll(1, "Ramen", "Tacos")
		poll.EndAt = &past
		polls.polls[1] = poll
		polls.addBallot(1, nil, 2)
		polls.addBallot(1, nil, 2)
		polls.addBallot(1, nil, 1)

		got, err := svc.FinalizeIfExpired(context.Background(), poll)

		require.NoError(t, err)
		assert.Equal(t, domain.PollStatusClosed, got.Status)
		assert.False(t, got.IsActive)
		assert.Equal(t, domain.PollStatusClosed, polls.polls[1].Status)

		stored, ok := results.byPoll[1]
		require.True(t, ok, "finalize recomputes and stores the result")
		require.NotNil(t, stored.WinnerOptionID)
		assert.Equal(t, uint(2), *stored.WinnerOptionID)
	})

	t.Run("already closed is untouched", func(t *testing.T) {
		svc, polls, results := newResultService()
		poll := fixturePoll(1, "Ramen")
		poll.Status = domain.PollStatusClosed
		poll.EndAt = &past
		polls.polls[1] = poll

		got, err := svc.FinalizeIfExpired(context.Background(), poll)

		require.NoError(t, err)
		assert.Equal(t, poll, got)
		assert.Empty(t, results.byPoll, "no recompute for an already-closed poll")
	})

	t.Run("replaces earlier cached result", func(t *testing.T) {
		svc, polls, _ := newResultService()
		poll := fixturePoll(1, "Ramen", "Tacos")
		polls.polls[1] = poll
		polls.addBallot(1, nil, 1)

		early, _, err := svc.GetOrCompute(context.Background(), 1)
		require.NoError(t, err)
		require.Equal(t, 1, early.TotalBallots)

		polls.addBallot(1, nil, 2)
		polls.addBallot(1, nil, 2)
		poll.EndAt = &past
		polls.polls[1] = poll

		_, err = svc.FinalizeIfExpired(context.Background(), poll)
		require.NoError(t, err)

		final, created, err := svc.GetOrCompute(context.Background(), 1)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, early.ID, final.ID)
		assert.Equal(t, 3, final.TotalBallots)
		require.NotNil(t, final.WinnerOptionID)
		assert.Equal(t, uint(2), *final.WinnerOptionID)
	})
}

func TestPollResultService_PollWithNoOptions(t *testing.T) {
	svc, polls, _ := newResultService()
	polls.polls[1] = fixturePoll(1)

	result, created, err := svc.GetOrCompute(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, created)
	assert.Nil(t, result.WinnerOptionID)
	assert.Equal(t, 0, result.TotalRounds)
	assert.Empty(t, result.Values)
}
