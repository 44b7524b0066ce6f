package store

import "context"

// Card is the object representing a flashcard.
type Card struct {
	ID        int32
	UID       string
	CreatorID int32
	RowStatus RowStatus
	CreatedTs int64
	UpdatedTs int64
	Front     string
	Back      string
}

// FindCard is the find condition for card.
type FindCard struct {
	ID        *int32
	UID       *string
	CreatorID *int32
	RowStatus *RowStatus

	// Pagination
	Limit  *int
	Offset *int
}

// UpdateCard is the update request for card.
type UpdateCard struct {
	ID        int32
	UpdatedTs *int64
	RowStatus *RowStatus
	Front     *string
	Back      *string
}

// DeleteCard is the delete request for card.
type DeleteCard struct {
	ID int32
}

// CreateCard creates a new card.
func (s *Store) CreateCard(ctx context.Context, create *Card) (*Card, error) {
	card, err := s.driver.CreateCard(ctx, create)
	if err != nil {
		return nil, err
	}
	s.cardCache.Set(ctx, cardCacheKey(card.ID), card)
	return card, nil
}

// ListCards lists cards with filter.
func (s *Store) ListCards(ctx context.Context, find *FindCard) ([]*Card, error) {
	return s.driver.ListCards(ctx, find)
}

// GetCard gets a card by find condition, consulting the cache for
// lookups by ID.
func (s *Store) GetCard(ctx context.Context, find *FindCard) (*Card, error) {
	if find.ID != nil && find.UID == nil && find.CreatorID == nil && find.RowStatus == nil {
		if cached, ok := s.cardCache.Get(ctx, cardCacheKey(*find.ID)); ok {
			if card, ok := cached.(*Card); ok {
				return card, nil
			}
		}
	}

	list, err := s.driver.ListCards(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	card := list[0]
	s.cardCache.Set(ctx, cardCacheKey(card.ID), card)
	return card, nil
}

// UpdateCard updates a card.
func (s *Store) UpdateCard(ctx context.Context, update *UpdateCard) error {
	if err := s.driver.UpdateCard(ctx, update); err != nil {
		return err
	}
	s.cardCache.Delete(ctx, cardCacheKey(update.ID))
	return nil
}

// DeleteCard deletes a card and cascades its review records.
// The review activity log is intentionally kept: completed reviews remain
// part of the learner's history even after the card is gone.
func (s *Store) DeleteCard(ctx context.Context, delete *DeleteCard) error {
	if err := s.driver.DeleteCard(ctx, delete); err != nil {
		return err
	}
	if err := s.driver.DeleteReviewRecord(ctx, &DeleteReviewRecord{CardID: &delete.ID}); err != nil {
		return err
	}
	s.cardCache.Delete(ctx, cardCacheKey(delete.ID))
	return nil
}
