package domain

import "time"

// PollResult is the frozen outcome of one instant-runoff tally. There is at
// most one per poll; Recompute replaces it rather than adding a second.
type PollResult struct {
	ID              uint              `json:"id"`
	PollID          uint              `json:"poll_id"`
	TotalBallots    int               `json:"total_ballots"`
	TotalRounds     int               `json:"total_rounds"`
	WinnerOptionID  *uint             `json:"winner_option_id"`
	IsDraw          bool              `json:"is_draw"`
	TieBreakApplied bool              `json:"tie_break_applied"`
	CompletedAt     time.Time         `json:"completed_at"`
	Values          []PollResultValue `json:"values"`
}

// PollResultValue is one option's final line in the audit trail: the votes it
// held when it left the active set (or its final-round count for the winner).
// OptionText is snapshotted at tally time so the result survives later edits.
type PollResultValue struct {
	ID                 uint   `json:"id"`
	PollResultID       uint   `json:"poll_result_id"`
	OptionID           uint   `json:"option_id"`
	OptionText         string `json:"option_text"`
	RoundNumber        int    `json:"round_number"`
	Votes              int    `json:"votes"`
	EliminatedInRound  *int   `json:"eliminated_in_round"` // nil for the winner
	TieBreakerPosition int    `json:"tie_breaker_position"`
}
