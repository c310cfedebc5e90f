package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Ballot struct {
	ID     uint  `gorm:"primaryKey"`
	PollID uint  `gorm:"index;not null"`
	UserID *uint `gorm:"index"`

	Rankings []BallotRanking `gorm:"foreignKey:BallotID"`

	CreatedAt time.Time `gorm:"not null"`
}

type BallotRanking struct {
	ID       uint `gorm:"primaryKey"`
	BallotID uint `gorm:"index;not null"`
	OptionID uint `gorm:"not null"`
	Rank     int  `gorm:"not null"`
}

type BallotDAO struct {
	db *gorm.DB
}

func NewBallotDAO(db *gorm.DB) *BallotDAO {
	return &BallotDAO{
		db: db,
	}
}

// Insert creates the ballot and its rankings in one go.
func (d *BallotDAO) Insert(ctx context.Context, ballot Ballot) (Ballot, error) {
	result := conn(ctx, d.db).Create(&ballot)
	if result.Error != nil {
		return Ballot{}, result.Error
	}

	return ballot, nil
}

func (d *BallotDAO) ExistsForUser(ctx context.Context, pollID, userID uint) (bool, error) {
	var count int64

	result := conn(ctx, d.db).Model(&Ballot{}).
		Where("poll_id = ? AND user_id = ?", pollID, userID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}
