package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rankedpoll/rankedpoll-api/internal/api/handler/v1/response"
	"github.com/rankedpoll/rankedpoll-api/internal/domain"
	"github.com/rankedpoll/rankedpoll-api/internal/service"
)

type ResultService interface {
	GetOrCompute(ctx context.Context, pollID uint) (domain.PollResult, bool, error)
	Recompute(ctx context.Context, pollID uint) (domain.PollResult, error)
	FinalizeIfExpired(ctx context.Context, poll domain.Poll) (domain.Poll, error)
}

type ResultHandler struct {
	svc     ResultService
	pollSvc PollService
}

func NewResultHandler(svc ResultService, pollSvc PollService) *ResultHandler {
	return &ResultHandler{
		svc:     svc,
		pollSvc: pollSvc,
	}
}

// HandleGetResult godoc
// @Summary      Get a poll's result
// @Description  Returns the instant-runoff outcome with the per-round audit trail.
// @Description  An expired poll is closed and frozen on first read; afterwards the
// @Description  cached result is served without re-tallying.
// @Tags         results
// @Produce      json
// @Param        pollID  path      int  true  "Poll ID"
// @Success      200     {object}  domain.PollResult
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /polls/{pollID}/result [get]
func (h *ResultHandler) HandleGetResult(ctx *gin.Context) {
	pollID, respErr := parsePollID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	poll, err := h.pollSvc.GetPoll(ctx.Request.Context(), pollID)
	if err != nil {
		if errors.Is(err, service.ErrPollNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("poll", "ID", pollID))
			return
		}

		err = fmt.Errorf("HandleGetResult -> h.pollSvc.GetPoll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if _, err = h.svc.FinalizeIfExpired(ctx.Request.Context(), poll); err != nil {
		err = fmt.Errorf("HandleGetResult -> h.svc.FinalizeIfExpired -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	result, created, err := h.svc.GetOrCompute(ctx.Request.Context(), pollID)
	if err != nil {
		if errors.Is(err, service.ErrPollNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("poll", "ID", pollID))
			return
		}

		err = fmt.Errorf("HandleGetResult -> h.svc.GetOrCompute -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if created {
		zap.L().Info("poll result computed",
			zap.Uint("poll_id", pollID),
			zap.Int("total_rounds", result.TotalRounds))
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleRecompute godoc
// @Summary      Recompute a poll's result
// @Description  Replaces the stored result with a fresh tally of the current
// @Description  ballots. Correction path; ordinary reads never re-tally.
// @Tags         results
// @Produce      json
// @Param        pollID  path      int  true  "Poll ID"
// @Success      200     {object}  domain.PollResult
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /polls/{pollID}/result/recompute [post]
func (h *ResultHandler) HandleRecompute(ctx *gin.Context) {
	pollID, respErr := parsePollID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	result, err := h.svc.Recompute(ctx.Request.Context(), pollID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPollNotFound):
			response.RenderErr(ctx, response.ErrNotFound("poll", "ID", pollID))
		case errors.Is(err, service.ErrResultExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("HandleRecompute -> h.svc.Recompute -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	zap.L().Info("poll result recomputed",
		zap.Uint("poll_id", pollID),
		zap.Int("total_ballots", result.TotalBallots))

	ctx.JSON(http.StatusOK, result)
}
