package usecase

import (
	"context"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/owner"
	"vidtube/pkg/ownership"
	"vidtube/pkg/pagination"
	"vidtube/pkg/validate"
	"vidtube/services/comment/internal/entity"
	"vidtube/services/comment/internal/repo/persistent"
)

type CommentUseCase interface {
	ListComments(ctx context.Context, videoID string, req pagination.Request) (pagination.Page[*entity.Comment], error)
	AddComment(ctx context.Context, userID, videoID, content string) (*entity.Comment, error)
	UpdateComment(ctx context.Context, userID, commentID, content string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID string) error
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	owners      owner.Loader
	pageCfg     pagination.Config
	logger      *logger.Logger
}

func NewCommentUseCase(commentRepo persistent.CommentRepository, owners owner.Loader, pageCfg pagination.Config, logger *logger.Logger) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		owners:      owners,
		pageCfg:     pageCfg,
		logger:      logger,
	}
}

// requireVideo returns the canonical id of an existing video.
func (uc *commentUseCase) requireVideo(ctx context.Context, videoID string) (string, error) {
	videoID, err := validate.ID("video id", videoID)
	if err != nil {
		return "", err
	}
	exists, err := uc.commentRepo.VideoExists(ctx, videoID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", apperror.NotFound("video not found")
	}
	return videoID, nil
}

func (uc *commentUseCase) ListComments(ctx context.Context, videoID string, req pagination.Request) (pagination.Page[*entity.Comment], error) {
	req.Normalize(uc.pageCfg)
	if err := req.Validate(); err != nil {
		return pagination.Page[*entity.Comment]{}, err
	}
	videoID, err := uc.requireVideo(ctx, videoID)
	if err != nil {
		return pagination.Page[*entity.Comment]{}, err
	}

	total, err := uc.commentRepo.CountByVideo(ctx, videoID)
	if err != nil {
		return pagination.Page[*entity.Comment]{}, err
	}
	if int64(req.Offset()) >= total {
		return pagination.NewPage[*entity.Comment](nil, req, total), nil
	}

	comments, err := uc.commentRepo.ListByVideo(ctx, videoID, req.Offset(), req.Limit)
	if err != nil {
		return pagination.Page[*entity.Comment]{}, err
	}
	if err := uc.attachOwners(ctx, comments...); err != nil {
		return pagination.Page[*entity.Comment]{}, err
	}

	return pagination.NewPage(comments, req, total), nil
}

func (uc *commentUseCase) AddComment(ctx context.Context, userID, videoID, content string) (*entity.Comment, error) {
	content, err := validate.Text("content", content)
	if err != nil {
		return nil, err
	}
	videoID, err = uc.requireVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{Content: content, VideoID: videoID, OwnerID: userID}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		uc.logger.Error("Failed to create comment on video %s: %v", videoID, err)
		return nil, err
	}

	if err := uc.attachOwners(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// loadOwned fetches the comment and checks that userID owns it.
func (uc *commentUseCase) loadOwned(ctx context.Context, userID, commentID string) (*entity.Comment, error) {
	commentID, err := validate.ID("comment id", commentID)
	if err != nil {
		return nil, err
	}
	comment, err := uc.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := ownership.Check(userID, comment.OwnerID, "comment"); err != nil {
		return nil, err
	}
	return comment, nil
}

func (uc *commentUseCase) UpdateComment(ctx context.Context, userID, commentID, content string) (*entity.Comment, error) {
	content, err := validate.Text("content", content)
	if err != nil {
		return nil, err
	}
	existing, err := uc.loadOwned(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	comment, err := uc.commentRepo.UpdateContent(ctx, existing.ID, userID, content)
	if err != nil {
		return nil, err
	}
	if err := uc.attachOwners(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (uc *commentUseCase) DeleteComment(ctx context.Context, userID, commentID string) error {
	existing, err := uc.loadOwned(ctx, userID, commentID)
	if err != nil {
		return err
	}
	return uc.commentRepo.Delete(ctx, existing.ID, userID)
}

func (uc *commentUseCase) attachOwners(ctx context.Context, comments ...*entity.Comment) error {
	err := owner.Attach(ctx, uc.owners, comments,
		func(c *entity.Comment) string { return c.OwnerID },
		func(c *entity.Comment, p *owner.Profile) { c.Owner = p })
	if err != nil {
		return apperror.Internal("failed to load comment owners", err)
	}
	return nil
}
