package dao_test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rankedpoll/rankedpoll-api/internal/db"
	"github.com/rankedpoll/rankedpoll-api/internal/repository/dao"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("dockertest.NewPool -> %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("pool.Client.Ping -> %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=rankedpoll",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=rankedpoll_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("pool.RunWithOptions -> %v", err)
	}
	_ = resource.Expire(180)

	url := fmt.Sprintf("postgres://rankedpoll:secret@%s/rankedpoll_test?sslmode=disable",
		resource.GetHostPort("5432/tcp"))

	pool.MaxWait = 120 * time.Second
	if err = pool.Retry(func() error {
		testDB, err = db.OpenPostgresWithURL(url)
		return err
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("pool.Purge -> %v", err)
	}

	os.Exit(code)
}

func requireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test needs docker, skipped in -short mode")
	}
}

func seedPoll(t *testing.T, texts ...string) dao.Poll {
	t.Helper()

	poll := dao.Poll{
		Title:          "Lunch spot",
		Question:       "Where should the team eat?",
		Status:         "published",
		IsActive:       true,
		AllowAnonymous: true,
	}
	for i, text := range texts {
		poll.Options = append(poll.Options, dao.PollOption{Text: text, Position: i + 1})
	}
	require.NoError(t, testDB.Create(&poll).Error)

	return poll
}

func TestPollDAO_SnapshotLoadsBallotsWithRankings(t *testing.T) {
	requireDocker(t)

	poll := seedPoll(t, "Ramen", "Tacos", "Pizza")
	ballots := dao.NewBallotDAO(testDB)

	ctx := context.Background()
	_, err := ballots.Insert(ctx, dao.Ballot{
		PollID: poll.ID,
		Rankings: []dao.BallotRanking{
			{OptionID: poll.Options[1].ID, Rank: 1},
			{OptionID: poll.Options[0].ID, Rank: 2},
		},
	})
	require.NoError(t, err)

	got, err := dao.NewPollDAO(testDB).FindWithOptionsAndBallots(ctx, poll.ID)
	require.NoError(t, err)

	require.Len(t, got.Options, 3)
	assert.Equal(t, "Ramen", got.Options[0].Text)
	require.Len(t, got.Ballots, 1)
	assert.Len(t, got.Ballots[0].Rankings, 2)
}

func TestPollDAO_UpdateStatus(t *testing.T) {
	requireDocker(t)

	poll := seedPoll(t, "Yes", "No")
	polls := dao.NewPollDAO(testDB)

	ctx := context.Background()
	endAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, polls.UpdateStatus(ctx, poll.ID, "closed", false, &endAt))

	got, err := polls.FindByID(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, "closed", got.Status)
	assert.False(t, got.IsActive)
	require.NotNil(t, got.EndAt)

	err = polls.UpdateStatus(ctx, 999999, "closed", false, nil)
	assert.ErrorIs(t, err, dao.ErrPollNotFound)
}

func TestResultDAO_InsertRejectsSecondResult(t *testing.T) {
	requireDocker(t)

	poll := seedPoll(t, "Yes", "No")
	results := dao.NewResultDAO(testDB)

	ctx := context.Background()
	first, err := results.Insert(ctx, dao.PollResult{
		PollID:       poll.ID,
		TotalBallots: 3,
		TotalRounds:  1,
		CompletedAt:  time.Now(),
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	_, err = results.Insert(ctx, dao.PollResult{
		PollID:       poll.ID,
		TotalBallots: 4,
		TotalRounds:  1,
		CompletedAt:  time.Now(),
	})
	assert.ErrorIs(t, err, dao.ErrResultExists)
}

func TestResultDAO_ReplaceSwapsValues(t *testing.T) {
	requireDocker(t)

	poll := seedPoll(t, "Alpha", "Bravo")
	results := dao.NewResultDAO(testDB)

	ctx := context.Background()
	winner := poll.Options[0].ID
	created, err := results.Insert(ctx, dao.PollResult{
		PollID:         poll.ID,
		TotalBallots:   2,
		TotalRounds:    1,
		WinnerOptionID: &winner,
		CompletedAt:    time.Now(),
		Values: []dao.PollResultValue{
			{OptionID: poll.Options[0].ID, OptionText: "Alpha", RoundNumber: 1, Votes: 2},
			{OptionID: poll.Options[1].ID, OptionText: "Bravo", RoundNumber: 1, Votes: 0},
		},
	})
	require.NoError(t, err)

	newWinner := poll.Options[1].ID
	created.TotalBallots = 5
	created.WinnerOptionID = &newWinner
	created.Values = []dao.PollResultValue{
		{OptionID: poll.Options[0].ID, OptionText: "Alpha", RoundNumber: 1, Votes: 1},
		{OptionID: poll.Options[1].ID, OptionText: "Bravo", RoundNumber: 1, Votes: 4},
	}
	_, err = results.Replace(ctx, created)
	require.NoError(t, err)

	got, err := results.FindByPollID(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 5, got.TotalBallots)
	require.NotNil(t, got.WinnerOptionID)
	assert.Equal(t, newWinner, *got.WinnerOptionID)

	// values come back round ASC, votes DESC, and old rows are gone
	require.Len(t, got.Values, 2)
	assert.Equal(t, "Bravo", got.Values[0].OptionText)
	assert.Equal(t, 4, got.Values[0].Votes)
	assert.Equal(t, 1, got.Values[1].Votes)
}

func TestTxManager_RollsBackAllWrites(t *testing.T) {
	requireDocker(t)

	poll := seedPoll(t, "Yes", "No")
	ballots := dao.NewBallotDAO(testDB)
	txm := dao.NewTxManager(testDB)

	boom := errors.New("boom")
	err := txm.Transaction(context.Background(), func(ctx context.Context) error {
		if _, err := ballots.Insert(ctx, dao.Ballot{
			PollID:   poll.ID,
			Rankings: []dao.BallotRanking{{OptionID: poll.Options[0].ID, Rank: 1}},
		}); err != nil {
			return err
		}

		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := dao.NewPollDAO(testDB).FindWithOptionsAndBallots(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Ballots)
}
