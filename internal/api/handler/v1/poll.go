package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rankedpoll/rankedpoll-api/internal/api/handler/v1/response"
	"github.com/rankedpoll/rankedpoll-api/internal/domain"
	"github.com/rankedpoll/rankedpoll-api/internal/service"
)

type PollService interface {
	GetPoll(ctx context.Context, id uint) (domain.Poll, error)
}

type PollHandler struct {
	svc PollService
}

func NewPollHandler(svc PollService) *PollHandler {
	return &PollHandler{
		svc: svc,
	}
}

// HandleGetPoll godoc
// @Summary      Get a poll
// @Description  Retrieves a poll with its options. Results live under /result.
// @Tags         polls
// @Produce      json
// @Param        pollID  path      int  true  "Poll ID"
// @Success      200     {object}  domain.Poll
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /polls/{pollID} [get]
func (h *PollHandler) HandleGetPoll(ctx *gin.Context) {
	pollID, respErr := parsePollID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	poll, err := h.svc.GetPoll(ctx.Request.Context(), pollID)
	if err != nil {
		if errors.Is(err, service.ErrPollNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("poll", "ID", pollID))
			return
		}

		err = fmt.Errorf("HandleGetPoll -> h.svc.GetPoll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, poll)
}

func parsePollID(ctx *gin.Context) (uint, *response.Err) {
	raw := ctx.Param("pollID")

	pollID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || pollID == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid poll ID %q", raw))
	}

	return uint(pollID), nil
}
