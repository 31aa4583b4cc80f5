package service

import (
	"context"
	"errors"
	"fmt"

	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository"

	"go.uber.org/zap"
)

type CommunityService struct {
	communities repository.CommunityRepository
	members     repository.MemberRepository
	users       repository.UserRepository
	roles       repository.RoleRepository
	membership  *MemberService
	events      EventPublisher
	logger      *zap.Logger
}

func NewCommunityService(
	communities repository.CommunityRepository,
	members repository.MemberRepository,
	users repository.UserRepository,
	roles repository.RoleRepository,
	membership *MemberService,
	events EventPublisher,
	logger *zap.Logger,
) *CommunityService {
	return &CommunityService{
		communities: communities,
		members:     members,
		users:       users,
		roles:       roles,
		membership:  membership,
		events:      events,
		logger:      logger,
	}
}

// OwnerRef is the expanded owner block some listings carry.
type OwnerRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type CommunityView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Slug      string   `json:"slug"`
	Owner     OwnerRef `json:"owner"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

type MemberView struct {
	ID        string   `json:"id"`
	Community string   `json:"community"`
	User      OwnerRef `json:"user"`
	Role      OwnerRef `json:"role"`
	CreatedAt string   `json:"created_at"`
}

// Create derives the slug, persists the community and seeds the owner's
// admin membership. The persistence layer has no multi-record transaction,
// so any failure after the community insert compensates by deleting it
// again.
func (s *CommunityService) Create(ctx context.Context, ownerID, name string) (*model.Community, error) {
	slug := pkg.Slugify(name)

	if _, err := s.communities.FindBySlug(ctx, slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	community := &model.Community{
		ID:    pkg.NewID(),
		Name:  name,
		Slug:  slug,
		Owner: ownerID,
	}
	if err := s.communities.Create(ctx, community); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	adminRole, err := s.roles.FindByName(ctx, model.RoleCommunityAdmin)
	if err != nil {
		s.compensate(ctx, community.ID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMisconfigured
		}
		return nil, err
	}

	if _, err := s.membership.CreateMembership(ctx, community.ID, ownerID, adminRole.ID); err != nil {
		s.compensate(ctx, community.ID)
		if errors.Is(err, ErrAlreadyMember) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("seed owner membership: %w", err)
	}

	if s.events != nil {
		if err := s.events.Publish(ctx, pkg.Event{
			Type:        pkg.EventCommunityCreated,
			CommunityID: community.ID,
			UserID:      ownerID,
		}); err != nil {
			s.logger.Warn("event publish failed", zap.String("community_id", community.ID), zap.Error(err))
		}
	}
	return community, nil
}

func (s *CommunityService) compensate(ctx context.Context, communityID string) {
	if err := s.communities.Delete(ctx, communityID); err != nil {
		s.logger.Error("compensating community delete failed",
			zap.String("community_id", communityID), zap.Error(err))
	}
}

// ListAll pages through every community with the owner block expanded.
// An out-of-range page comes back empty, not as an error.
func (s *CommunityService) ListAll(ctx context.Context, page int) ([]CommunityView, pkg.PageMeta, error) {
	total, err := s.communities.Count(ctx)
	if err != nil {
		return nil, pkg.PageMeta{}, err
	}
	meta, offset := pkg.Paginate(page, total)

	communities, err := s.communities.List(ctx, offset, pkg.PerPage)
	if err != nil {
		return nil, pkg.PageMeta{}, err
	}
	views, err := s.expand(ctx, communities)
	if err != nil {
		return nil, pkg.PageMeta{}, err
	}
	return views, meta, nil
}

// ListOwned pages through the caller's own communities; the owner block is
// not expanded since it is always the caller.
func (s *CommunityService) ListOwned(ctx context.Context, ownerID string, page int) ([]model.Community, pkg.PageMeta, error) {
	total, err := s.communities.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkg.PageMeta{}, err
	}
	meta, offset := pkg.Paginate(page, total)

	communities, err := s.communities.ListByOwner(ctx, ownerID, offset, pkg.PerPage)
	if err != nil {
		return nil, pkg.PageMeta{}, err
	}
	return communities, meta, nil
}

// ListJoined pages through the caller's membership records and resolves each
// to its community. One membership per row, so a user holding two roles in
// one community sees it twice, same as counting member records.
func (s *CommunityService) ListJoined(ctx context.Context, userID string, page int) ([]CommunityView, pkg.PageMeta, error) {
	total, err := s.members.CountByUser(ctx, userID)
	if err != nil {
		return nil, pkg.PageMeta{}, err
	}
	meta, offset := pkg.Paginate(page, total)

	memberships, err := s.members.ListByUser(ctx, userID, offset, pkg.PerPage)
	if err != nil {
		return nil, pkg.PageMeta{}, err
	}

	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.CommunityID)
	}
	communities, err := s.communities.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkg.PageMeta{}, err
	}
	byID := make(map[string]model.Community, len(communities))
	for _, c := range communities {
		byID[c.ID] = c
	}

	ordered := make([]model.Community, 0, len(memberships))
	for _, m := range memberships {
		if c, ok := byID[m.CommunityID]; ok {
			ordered = append(ordered, c)
		}
	}
	views, err := s.expand(ctx, ordered)
	if err != nil {
		return nil, pkg.PageMeta{}, err
	}
	return views, meta, nil
}

// ListMembers pages through a community's members with user and role blocks
// expanded.
func (s *CommunityService) ListMembers(ctx context.Context, communityID string, page int) ([]MemberView, pkg.PageMeta, error) {
	if _, err := s.communities.FindByID(ctx, communityID); err != nil {
		return nil, pkg.PageMeta{}, notFoundOr(err)
	}

	total, err := s.members.CountByCommunity(ctx, communityID)
	if err != nil {
		return nil, pkg.PageMeta{}, err
	}
	meta, offset := pkg.Paginate(page, total)

	memberships, err := s.members.ListByCommunity(ctx, communityID, offset, pkg.PerPage)
	if err != nil {
		return nil, pkg.PageMeta{}, err
	}

	userIDs := make([]string, 0, len(memberships))
	roleIDs := make([]string, 0, len(memberships))
	for _, m := range memberships {
		userIDs = append(userIDs, m.UserID)
		roleIDs = append(roleIDs, m.RoleID)
	}

	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, pkg.PageMeta{}, err
	}
	roles, err := s.roles.FindByIDs(ctx, roleIDs)
	if err != nil {
		return nil, pkg.PageMeta{}, err
	}

	userByID := make(map[string]model.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}
	roleByID := make(map[string]model.Role, len(roles))
	for _, r := range roles {
		roleByID[r.ID] = r
	}

	views := make([]MemberView, 0, len(memberships))
	for _, m := range memberships {
		views = append(views, MemberView{
			ID:        m.ID,
			Community: m.CommunityID,
			User:      OwnerRef{ID: m.UserID, Name: userByID[m.UserID].Name},
			Role:      OwnerRef{ID: m.RoleID, Name: roleByID[m.RoleID].Name},
			CreatedAt: pkg.FormatTime(m.CreatedAt),
		})
	}
	return views, meta, nil
}

// expand resolves each community's owner to an id+name block.
func (s *CommunityService) expand(ctx context.Context, communities []model.Community) ([]CommunityView, error) {
	ownerIDs := make([]string, 0, len(communities))
	for _, c := range communities {
		ownerIDs = append(ownerIDs, c.Owner)
	}
	owners, err := s.users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[string]string, len(owners))
	for _, u := range owners {
		nameByID[u.ID] = u.Name
	}

	views := make([]CommunityView, 0, len(communities))
	for _, c := range communities {
		views = append(views, CommunityView{
			ID:        c.ID,
			Name:      c.Name,
			Slug:      c.Slug,
			Owner:     OwnerRef{ID: c.Owner, Name: nameByID[c.Owner]},
			CreatedAt: pkg.FormatTime(c.CreatedAt),
			UpdatedAt: pkg.FormatTime(c.UpdatedAt),
		})
	}
	return views, nil
}
