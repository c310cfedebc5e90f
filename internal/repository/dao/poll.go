package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPollNotFound = errors.New("poll not found")

type Poll struct {
	ID uint `gorm:"primaryKey"`

	Title          string `gorm:"not null"`
	Question       string
	CreatorName    string
	Status         string `gorm:"not null;default:published"`
	IsActive       bool   `gorm:"not null;default:true"`
	AllowAnonymous bool   `gorm:"not null;default:false"`
	EndAt          *time.Time

	Options []PollOption `gorm:"foreignKey:PollID"`
	Ballots []Ballot     `gorm:"foreignKey:PollID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PollOption struct {
	ID       uint   `gorm:"primaryKey"`
	PollID   uint   `gorm:"index;not null"`
	Text     string `gorm:"not null"`
	Position int    `gorm:"not null;default:0"`
}

type PollDAO struct {
	db *gorm.DB
}

func NewPollDAO(db *gorm.DB) *PollDAO {
	return &PollDAO{
		db: db,
	}
}

func (d *PollDAO) FindByID(ctx context.Context, id uint) (Poll, error) {
	var poll Poll

	result := conn(ctx, d.db).Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&poll, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Poll{}, ErrPollNotFound
		}

		return Poll{}, result.Error
	}

	return poll, nil
}

// FindWithOptionsAndBallots loads the full tally snapshot: the poll, its
// options ordered by position, and every ballot with its rankings.
func (d *PollDAO) FindWithOptionsAndBallots(ctx context.Context, id uint) (Poll, error) {
	var poll Poll

	result := conn(ctx, d.db).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Ballots.Rankings").
		First(&poll, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Poll{}, ErrPollNotFound
		}

		return Poll{}, result.Error
	}

	return poll, nil
}

func (d *PollDAO) UpdateStatus(ctx context.Context, id uint, status string, isActive bool, endAt *time.Time) error {
	result := conn(ctx, d.db).Model(&Poll{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":    status,
		"is_active": isActive,
		"end_at":    endAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPollNotFound
	}

	return nil
}
