package domain

import "time"

type Ballot struct {
	ID        uint            `json:"id"`
	PollID    uint            `json:"poll_id"`
	UserID    *uint           `json:"user_id"` // nil for anonymous ballots
	Rankings  []BallotRanking `json:"rankings"`
	CreatedAt time.Time       `json:"created_at"`
}

type BallotRanking struct {
	ID       uint `json:"id"`
	BallotID uint `json:"ballot_id"`
	OptionID uint `json:"option_id"`
	Rank     int  `json:"rank"` // 1 = most preferred
}
