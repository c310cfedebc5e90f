package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rankedpoll/rankedpoll-api/internal/api/handler/v1/request"
	"github.com/rankedpoll/rankedpoll-api/internal/api/handler/v1/response"
	"github.com/rankedpoll/rankedpoll-api/internal/domain"
	"github.com/rankedpoll/rankedpoll-api/internal/service"
)

type BallotService interface {
	Cast(ctx context.Context, pollID uint, userID *uint, rankings []domain.BallotRanking) (domain.Ballot, error)
}

type BallotHandler struct {
	svc BallotService
}

func NewBallotHandler(svc BallotService) *BallotHandler {
	return &BallotHandler{
		svc: svc,
	}
}

// HandleCastBallot godoc
// @Summary      Cast a ballot
// @Description  Records a voter's ranked preferences for a poll (rank 1 = most preferred)
// @Tags         ballots
// @Accept       json
// @Produce      json
// @Param        pollID  path      int                        true  "Poll ID"
// @Param        input   body      request.CastBallotRequest  true  "Ballot rankings"
// @Success      201     {object}  response.CastBallot
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /polls/{pollID}/ballots [post]
func (h *BallotHandler) HandleCastBallot(ctx *gin.Context) {
	pollID, respErr := parsePollID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CastBallotRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	rankings := make([]domain.BallotRanking, len(input.Rankings))
	for i, r := range input.Rankings {
		rankings[i] = domain.BallotRanking{
			OptionID: r.OptionID,
			Rank:     r.Rank,
		}
	}

	ballot, err := h.svc.Cast(ctx.Request.Context(), pollID, input.UserID, rankings)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPollNotFound):
			response.RenderErr(ctx, response.ErrNotFound("poll", "ID", pollID))
		case errors.Is(err, service.ErrPollDisabled):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrLoginRequired):
			response.RenderErr(ctx, response.ErrUnauthorized(err))
		case errors.Is(err, service.ErrPollEnded),
			errors.Is(err, service.ErrPollNotPublished),
			errors.Is(err, service.ErrAlreadyVoted):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("HandleCastBallot -> h.svc.Cast -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.CastBallot{
		Message: "Vote recorded successfully",
		Ballot:  ballot,
	})
}
