package models

import "time"

// VoteDirection is the direction of a cast vote.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// Valid reports whether d is a known direction.
func (d VoteDirection) Valid() bool {
	return d == VoteUp || d == VoteDown
}

// Opposite returns the other direction.
func (d VoteDirection) Opposite() VoteDirection {
	if d == VoteUp {
		return VoteDown
	}
	return VoteUp
}

// Vote records a single identity's active vote on a target. Exactly one of
// UserID and Fingerprint is set. The two unique indexes enforce at most one
// active vote per (target, identity) pair, partitioned on identity kind:
// NULL columns never collide, so user votes only contend on idx_user_vote
// and anonymous votes only on idx_anon_vote.
type Vote struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	TargetType  TargetType    `gorm:"size:20;not null;uniqueIndex:idx_user_vote;uniqueIndex:idx_anon_vote" json:"target_type"`
	TargetID    uint          `gorm:"not null;uniqueIndex:idx_user_vote;uniqueIndex:idx_anon_vote" json:"target_id"`
	UserID      *uint         `gorm:"uniqueIndex:idx_user_vote" json:"user_id,omitempty"`
	Fingerprint *string       `gorm:"size:128;uniqueIndex:idx_anon_vote" json:"fingerprint,omitempty"`
	Direction   VoteDirection `gorm:"size:4;not null" json:"direction"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
