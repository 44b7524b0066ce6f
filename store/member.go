package store

import "context"

// Member is the object representing a learner account.
type Member struct {
	ID        int32
	UID       string
	RowStatus RowStatus
	CreatedTs int64
	UpdatedTs int64
	Username  string
	Nickname  string
}

// FindMember is the find condition for member.
type FindMember struct {
	ID        *int32
	UID       *string
	Username  *string
	RowStatus *RowStatus
}

// UpdateMember is the update request for member.
type UpdateMember struct {
	ID        int32
	UpdatedTs *int64
	RowStatus *RowStatus
	Nickname  *string
}

// DeleteMember is the delete request for member.
type DeleteMember struct {
	ID int32
}

// CreateMember creates a new member.
func (s *Store) CreateMember(ctx context.Context, create *Member) (*Member, error) {
	member, err := s.driver.CreateMember(ctx, create)
	if err != nil {
		return nil, err
	}
	s.memberCache.Set(ctx, memberCacheKey(member.ID), member)
	return member, nil
}

// ListMembers lists members with filter.
func (s *Store) ListMembers(ctx context.Context, find *FindMember) ([]*Member, error) {
	return s.driver.ListMembers(ctx, find)
}

// GetMember gets a member by find condition, consulting the cache for
// lookups by ID.
func (s *Store) GetMember(ctx context.Context, find *FindMember) (*Member, error) {
	if find.ID != nil && find.UID == nil && find.Username == nil && find.RowStatus == nil {
		if cached, ok := s.memberCache.Get(ctx, memberCacheKey(*find.ID)); ok {
			if member, ok := cached.(*Member); ok {
				return member, nil
			}
		}
	}

	list, err := s.driver.ListMembers(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	member := list[0]
	s.memberCache.Set(ctx, memberCacheKey(member.ID), member)
	return member, nil
}

// UpdateMember updates a member.
func (s *Store) UpdateMember(ctx context.Context, update *UpdateMember) error {
	if err := s.driver.UpdateMember(ctx, update); err != nil {
		return err
	}
	s.memberCache.Delete(ctx, memberCacheKey(update.ID))
	return nil
}

// DeleteMember deletes a member.
func (s *Store) DeleteMember(ctx context.Context, delete *DeleteMember) error {
	if err := s.driver.DeleteMember(ctx, delete); err != nil {
		return err
	}
	s.memberCache.Delete(ctx, memberCacheKey(delete.ID))
	return nil
}
