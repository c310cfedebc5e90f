package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type RankingInput struct {
	OptionID uint `json:"option_id"`
	Rank     int  `json:"rank"`
}

func (r *RankingInput) Validate() error {
	return validation.ValidateStruct(
		r,
		validation.Field(&r.OptionID, validation.Required, validation.Min(uint(1))),
		validation.Field(&r.Rank, validation.Required, validation.Min(1)),
	)
}

type CastBallotRequest struct {
	UserID   *uint          `json:"user_id"`
	Rankings []RankingInput `json:"rankings" binding:"required"`
}

func (req *CastBallotRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Rankings, validation.Required),
	)
	if err != nil {
		return err
	}

	for i := range req.Rankings {
		if err = req.Rankings[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}
