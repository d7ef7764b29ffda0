package projections

import (
	"context"

	gymStore "sportiva/internal/adapters/storage/gym"
	"sportiva/internal/application/listutil"
	"sportiva/internal/domain/gym"
)

// BrowseGymStore defines the gym store interface needed by the directory
// projection.
type BrowseGymStore interface {
	List(ctx context.Context, filter gymStore.ListFilter) ([]gym.Gym, error)
	Count(ctx context.Context, filter gymStore.ListFilter) (int, error)
}

// BrowseMembershipStore answers membership questions for the directory.
type BrowseMembershipStore interface {
	Exists(ctx context.Context, accountID, gymID string) (bool, error)
	CountForGym(ctx context.Context, gymID string) (int, error)
}

// BrowseGymsQuery carries input for the gym directory projection.
type BrowseGymsQuery struct {
	AccountID string // viewer, used to mark already-joined gyms
	Params    listutil.Params
}

// BrowseGymsDeps holds dependencies for the gym directory projection.
type BrowseGymsDeps struct {
	GymStore        BrowseGymStore
	MembershipStore BrowseMembershipStore
}

// GymCard is one gym in the directory listing.
type GymCard struct {
	Gym         gym.Gym
	MemberCount int
	Joined      bool // viewer already belongs to this gym
}

// BrowseGymsResult carries the directory page.
type BrowseGymsResult struct {
	Gyms     []GymCard
	PageInfo listutil.PageInfo
	City     string // active city filter, empty for all
	Cities   []string
}

// QueryBrowseGyms lists gyms filtered by city and search text, one page at
// a time, with the viewer's membership marked on each card.
// PRE: Params parsed by listutil
// POST: len(Gyms) <= Params.PerPage
func QueryBrowseGyms(ctx context.Context, query BrowseGymsQuery, deps BrowseGymsDeps) (BrowseGymsResult, error) {
	filter := gymStore.ListFilter{
		Limit:  query.Params.PerPage,
		Offset: query.Params.Offset(),
		City:   query.Params.Filters["city"],
		Search: query.Params.Search,
	}

	total, err := deps.GymStore.Count(ctx, filter)
	if err != nil {
		return BrowseGymsResult{}, err
	}
	gyms, err := deps.GymStore.List(ctx, filter)
	if err != nil {
		return BrowseGymsResult{}, err
	}

	cards := make([]GymCard, 0, len(gyms))
	for _, g := range gyms {
		card := GymCard{Gym: g}
		card.MemberCount, err = deps.MembershipStore.CountForGym(ctx, g.ID)
		if err != nil {
			return BrowseGymsResult{}, err
		}
		if query.AccountID != "" {
			card.Joined, err = deps.MembershipStore.Exists(ctx, query.AccountID, g.ID)
			if err != nil {
				return BrowseGymsResult{}, err
			}
		}
		cards = append(cards, card)
	}

	return BrowseGymsResult{
		Gyms:     cards,
		PageInfo: listutil.NewPageInfo(query.Params, total),
		City:     filter.City,
		Cities:   gym.Cities,
	}, nil
}
