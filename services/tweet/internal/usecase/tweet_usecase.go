package usecase

import (
	"context"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/owner"
	"vidtube/pkg/ownership"
	"vidtube/pkg/validate"
	"vidtube/services/tweet/internal/entity"
	"vidtube/services/tweet/internal/repo/persistent"
)

type TweetUseCase interface {
	CreateTweet(ctx context.Context, userID, content string) (*entity.Tweet, error)
	ListUserTweets(ctx context.Context, userID string) ([]*entity.Tweet, error)
	UpdateTweet(ctx context.Context, userID, tweetID, content string) (*entity.Tweet, error)
	DeleteTweet(ctx context.Context, userID, tweetID string) error
}

type tweetUseCase struct {
	tweetRepo persistent.TweetRepository
	owners    owner.Loader
	logger    *logger.Logger
}

func NewTweetUseCase(tweetRepo persistent.TweetRepository, owners owner.Loader, logger *logger.Logger) TweetUseCase {
	return &tweetUseCase{
		tweetRepo: tweetRepo,
		owners:    owners,
		logger:    logger,
	}
}

func (uc *tweetUseCase) CreateTweet(ctx context.Context, userID, content string) (*entity.Tweet, error) {
	content, err := validate.Text("content", content)
	if err != nil {
		return nil, err
	}

	tweet, err := uc.tweetRepo.Create(ctx, userID, content)
	if err != nil {
		uc.logger.Error("Failed to create tweet for %s: %v", userID, err)
		return nil, err
	}
	if err := uc.attachOwners(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

// ListUserTweets returns the user's tweets newest first. A user without
// tweets gets an empty list.
func (uc *tweetUseCase) ListUserTweets(ctx context.Context, userID string) ([]*entity.Tweet, error) {
	userID, err := validate.ID("user id", userID)
	if err != nil {
		return nil, err
	}
	exists, err := uc.tweetRepo.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("user not found")
	}

	tweets, err := uc.tweetRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := uc.attachOwners(ctx, tweets...); err != nil {
		return nil, err
	}
	return tweets, nil
}

// loadOwned returns the canonical id of a tweet owned by userID.
func (uc *tweetUseCase) loadOwned(ctx context.Context, userID, tweetID string) (string, error) {
	tweetID, err := validate.ID("tweet id", tweetID)
	if err != nil {
		return "", err
	}
	tweet, err := uc.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return "", err
	}
	if err := ownership.Check(userID, tweet.OwnerID, "tweet"); err != nil {
		return "", err
	}
	return tweet.ID, nil
}

func (uc *tweetUseCase) UpdateTweet(ctx context.Context, userID, tweetID, content string) (*entity.Tweet, error) {
	content, err := validate.Text("content", content)
	if err != nil {
		return nil, err
	}
	tweetID, err = uc.loadOwned(ctx, userID, tweetID)
	if err != nil {
		return nil, err
	}

	tweet, err := uc.tweetRepo.UpdateContent(ctx, tweetID, userID, content)
	if err != nil {
		return nil, err
	}
	if err := uc.attachOwners(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (uc *tweetUseCase) DeleteTweet(ctx context.Context, userID, tweetID string) error {
	tweetID, err := uc.loadOwned(ctx, userID, tweetID)
	if err != nil {
		return err
	}
	return uc.tweetRepo.Delete(ctx, tweetID, userID)
}

func (uc *tweetUseCase) attachOwners(ctx context.Context, tweets ...*entity.Tweet) error {
	err := owner.Attach(ctx, uc.owners, tweets,
		func(t *entity.Tweet) string { return t.OwnerID },
		func(t *entity.Tweet, p *owner.Profile) { t.Owner = p })
	if err != nil {
		return apperror.Internal("failed to load tweet owners", err)
	}
	return nil
}
