package application

import (
	"context"

	"github.com/streamvault/streamvault/internal/domain/entity"
	repo "github.com/streamvault/streamvault/internal/domain/repository"
	"github.com/streamvault/streamvault/pkg/apperror"
)

// SubscriptionService owns the subscriber/channel relation.
type SubscriptionService struct {
	Repo  repo.SubscriptionRepository
	Users repo.UserRepository
}

func NewSubscriptionService(r repo.SubscriptionRepository, users repo.UserRepository) *SubscriptionService {
	return &SubscriptionService{Repo: r, Users: users}
}

// Toggle subscribes or unsubscribes and reports the resulting state.
// Subscribing to your own channel is rejected.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID string) (bool, error) {
	if subscriberID == channelID {
		return false, apperror.BadRequest("you cannot subscribe to your own channel")
	}
	if _, err := s.Users.GetByID(ctx, channelID); err != nil {
		if err == repo.ErrNotFound {
			return false, apperror.NotFound("channel does not exist")
		}
		return false, err
	}
	return s.Repo.Toggle(ctx, subscriberID, channelID)
}

func (s *SubscriptionService) Subscribers(ctx context.Context, channelID string) ([]entity.OwnerSummary, error) {
	return s.Repo.Subscribers(ctx, channelID)
}

func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID string) ([]entity.OwnerSummary, error) {
	return s.Repo.SubscribedChannels(ctx, subscriberID)
}
