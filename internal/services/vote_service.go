package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "stockforum/internal/errors"
	"stockforum/internal/identity"
	"stockforum/internal/models"
)

// voteService is the vote ledger: it is the only code path that mutates
// vote rows and the denormalized counters on targets. Every operation runs
// as a single transaction so a counter update never lands without its
// matching membership update.
type voteService struct {
	db *gorm.DB
}

// NewVoteService creates a new VoteServicer.
func NewVoteService(db *gorm.DB) VoteServicer {
	return &voteService{db: db}
}

// Apply casts a vote on behalf of the identity. Re-casting the same
// direction fails with DUPLICATE_VOTE. Casting the opposite direction
// switches the vote: the old counter is decremented and the new one
// incremented as one logical step.
func (s *voteService) Apply(ref models.TargetRef, ident identity.Identity, direction models.VoteDirection) (*models.VoteTotals, error) {
	if !ref.Type.Votable() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target does not accept votes")
	}
	if !direction.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "vote direction must be up or down")
	}

	var totals *models.VoteTotals
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureTargetExists(tx, ref); err != nil {
			return err
		}

		var existing models.Vote
		err := s.identityVotes(tx, ref, ident).First(&existing).Error
		switch {
		case err == nil:
			if existing.Direction == direction {
				return apperrors.ErrDuplicateVote
			}
			// Switch: flip the membership row, then move one count across.
			// The flip is conditional on the row still holding the direction
			// this transaction read, so counters only move when this
			// transaction's flip landed.
			if err := switchVoteRow(tx, &existing, direction); err != nil {
				return err
			}
			if err := adjustVoteCounter(tx, ref, direction.Opposite(), -1); err != nil {
				return err
			}
			if err := adjustVoteCounter(tx, ref, direction, +1); err != nil {
				return err
			}

		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{
				TargetType: ref.Type,
				TargetID:   ref.ID,
				Direction:  direction,
			}
			if ident.Authenticated() {
				userID := ident.UserID
				vote.UserID = &userID
			} else {
				fingerprint := ident.Fingerprint
				vote.Fingerprint = &fingerprint
			}
			if err := tx.Create(&vote).Error; err != nil {
				// A concurrent request from the same identity can win the
				// insert race; the unique index turns that into a duplicate.
				if isUniqueViolation(err) {
					return apperrors.ErrDuplicateVote
				}
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if err := adjustVoteCounter(tx, ref, direction, +1); err != nil {
				return err
			}

		default:
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		fresh, err := loadVoteTotals(tx, ref)
		if err != nil {
			return err
		}
		totals = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// Remove withdraws the identity's active vote on the target. Removing a
// vote that was never cast fails with NO_VOTE_FOUND.
func (s *voteService) Remove(ref models.TargetRef, ident identity.Identity) (*models.VoteTotals, error) {
	if !ref.Type.Votable() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target does not accept votes")
	}

	var totals *models.VoteTotals
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureTargetExists(tx, ref); err != nil {
			return err
		}

		var existing models.Vote
		if err := s.identityVotes(tx, ref, ident).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNoVoteFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := deleteVoteRow(tx, &existing); err != nil {
			return err
		}
		if err := adjustVoteCounter(tx, ref, existing.Direction, -1); err != nil {
			return err
		}

		fresh, err := loadVoteTotals(tx, ref)
		if err != nil {
			return err
		}
		totals = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// identityVotes scopes the votes table to the identity's row on the target.
// User votes and anonymous votes are matched on their own column so the two
// identity kinds never collide.
func (s *voteService) identityVotes(tx *gorm.DB, ref models.TargetRef, ident identity.Identity) *gorm.DB {
	q := tx.Model(&models.Vote{}).Where("target_type = ? AND target_id = ?", ref.Type, ref.ID)
	if ident.Authenticated() {
		return q.Where("user_id = ?", ident.UserID)
	}
	return q.Where("fingerprint = ?", ident.Fingerprint)
}

// switchVoteRow flips a previously read vote row to the new direction. The
// update is guarded on the direction the row held when it was read: under
// concurrent requests from the same identity only one flip affects the row,
// and the loser surfaces DUPLICATE_VOTE without touching any counter.
func switchVoteRow(tx *gorm.DB, existing *models.Vote, direction models.VoteDirection) error {
	res := tx.Model(&models.Vote{}).
		Where("id = ? AND direction = ?", existing.ID, existing.Direction).
		Update("direction", direction)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrDuplicateVote
	}
	return nil
}

// deleteVoteRow removes a previously read vote row by primary key. Zero
// affected rows means a concurrent removal already took it; the caller must
// not decrement the counter a second time.
func deleteVoteRow(tx *gorm.DB, existing *models.Vote) error {
	res := tx.Delete(&models.Vote{}, existing.ID)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNoVoteFound
	}
	return nil
}

// isUniqueViolation detects unique-index violations across the postgres and
// sqlite drivers.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
