package response

import "github.com/rankedpoll/rankedpoll-api/internal/domain"

type CastBallot struct {
	Message string        `json:"message"`
	Ballot  domain.Ballot `json:"ballot"`
}
