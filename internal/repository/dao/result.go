package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrResultNotFound = errors.New("poll result not found")
	ErrResultExists   = errors.New("poll result already exists")
)

type PollResult struct {
	ID     uint `gorm:"primaryKey"`
	PollID uint `gorm:"uniqueIndex;not null"`

	TotalBallots    int       `gorm:"not null"`
	TotalRounds     int       `gorm:"not null;default:0"`
	WinnerOptionID  *uint     `gorm:"default:null"`
	IsDraw          bool      `gorm:"not null;default:false"`
	TieBreakApplied bool      `gorm:"not null;default:false"`
	CompletedAt     time.Time `gorm:"not null"`

	Values []PollResultValue `gorm:"foreignKey:PollResultID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PollResultValue struct {
	ID           uint `gorm:"primaryKey"`
	PollResultID uint `gorm:"index;not null"`
	OptionID     uint `gorm:"not null"`

	OptionText         string `gorm:"not null"`
	RoundNumber        int    `gorm:"not null"`
	Votes              int    `gorm:"not null;default:0"`
	EliminatedInRound  *int
	TieBreakerPosition int
}

type ResultDAO struct {
	db *gorm.DB
}

func NewResultDAO(db *gorm.DB) *ResultDAO {
	return &ResultDAO{
		db: db,
	}
}

// FindByPollID loads a result with its values in presentation order.
func (d *ResultDAO) FindByPollID(ctx context.Context, pollID uint) (PollResult, error) {
	var result PollResult

	err := conn(ctx, d.db).
		Preload("Values", func(db *gorm.DB) *gorm.DB {
			return db.Order("round_number ASC, votes DESC")
		}).
		First(&result, "poll_id = ?", pollID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PollResult{}, ErrResultNotFound
		}

		return PollResult{}, err
	}

	return result, nil
}

// Insert creates a fresh result with its values. A concurrent insert for the
// same poll loses on the poll_id unique index and surfaces as ErrResultExists,
// which callers treat as "someone else already computed it".
func (d *ResultDAO) Insert(ctx context.Context, result PollResult) (PollResult, error) {
	if err := conn(ctx, d.db).Create(&result).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return PollResult{}, ErrResultExists
		}

		return PollResult{}, err
	}

	return result, nil
}

// Replace updates the scalar row in place, deletes every prior value row and
// inserts the new set. Values are never partially updated.
func (d *ResultDAO) Replace(ctx context.Context, result PollResult) (PollResult, error) {
	values := result.Values
	result.Values = nil

	db := conn(ctx, d.db)

	err := db.Model(&PollResult{}).Where("id = ?", result.ID).Updates(map[string]interface{}{
		"total_ballots":     result.TotalBallots,
		"total_rounds":      result.TotalRounds,
		"winner_option_id":  result.WinnerOptionID,
		"is_draw":           result.IsDraw,
		"tie_break_applied": result.TieBreakApplied,
		"completed_at":      result.CompletedAt,
	}).Error
	if err != nil {
		return PollResult{}, err
	}

	if err = db.Where("poll_result_id = ?", result.ID).Delete(&PollResultValue{}).Error; err != nil {
		return PollResult{}, err
	}

	if len(values) > 0 {
		for i := range values {
			values[i].ID = 0
			values[i].PollResultID = result.ID
		}
		if err = db.Create(&values).Error; err != nil {
			return PollResult{}, err
		}
	}

	result.Values = values

	return result, nil
}
