package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/owner"
	"vidtube/pkg/ownership"
	"vidtube/pkg/pagination"
	"vidtube/pkg/s3"
	"vidtube/pkg/validate"
	"vidtube/services/video/internal/entity"
	"vidtube/services/video/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

const viewDedupTTL = 365 * 24 * time.Hour

type VideoUseCase interface {
	CreateVideo(ctx context.Context, userID string, in entity.CreateVideoInput) (*entity.Video, error)
	GetVideo(ctx context.Context, userID, videoID string) (*entity.Video, error)
	ListVideos(ctx context.Context, filter entity.ListFilter, sort entity.Sort, req pagination.Request) (pagination.Page[*entity.Video], error)
	UpdateVideo(ctx context.Context, userID, videoID string, in entity.UpdateVideoInput) (*entity.Video, error)
	DeleteVideo(ctx context.Context, userID, videoID string) error
	TogglePublish(ctx context.Context, userID, videoID string) (*entity.Video, error)
	// RecordView counts one view per viewer and video. It reports whether
	// this call was counted.
	RecordView(ctx context.Context, viewer, videoID string) (bool, error)
}

type videoUseCase struct {
	videoRepo   persistent.VideoRepository
	owners      owner.Loader
	uploader    s3.Store
	redisClient *redis.Client
	pageCfg     pagination.Config
	logger      *logger.Logger
}

// NewVideoUseCase wires the video operations. uploader may be nil when media
// is only ever given as URLs; redisClient may be nil, in which case every
// view is counted.
func NewVideoUseCase(
	videoRepo persistent.VideoRepository,
	owners owner.Loader,
	uploader s3.Store,
	redisClient *redis.Client,
	pageCfg pagination.Config,
	logger *logger.Logger,
) VideoUseCase {
	return &videoUseCase{
		videoRepo:   videoRepo,
		owners:      owners,
		uploader:    uploader,
		redisClient: redisClient,
		pageCfg:     pageCfg,
		logger:      logger,
	}
}

// store uploads file when present and otherwise falls back to url.
func (uc *videoUseCase) store(ctx context.Context, userID, prefix, field string, file *entity.Upload, url, defaultType string) (string, error) {
	if file == nil {
		return validate.Text(field, url)
	}
	if uc.uploader == nil {
		return "", apperror.Internal("media storage is not configured", nil)
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = defaultType
	}
	uploaded, err := uc.uploader.UploadFile(ctx, s3.ObjectKey(prefix, userID, file.Filename), file.Body, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload %s for %s: %v", field, userID, err)
		return "", apperror.Internal("failed to upload "+field, err)
	}
	return uploaded, nil
}

func (uc *videoUseCase) CreateVideo(ctx context.Context, userID string, in entity.CreateVideoInput) (*entity.Video, error) {
	title, err := validate.Text("title", in.Title)
	if err != nil {
		return nil, err
	}
	description, err := validate.Text("description", in.Description)
	if err != nil {
		return nil, err
	}
	if in.Duration < 0 {
		return nil, apperror.InvalidArgument("duration must not be negative")
	}

	videoURL, err := uc.store(ctx, userID, "videos", "video", in.VideoFile, in.VideoURL, "video/mp4")
	if err != nil {
		return nil, err
	}
	thumbnailURL, err := uc.store(ctx, userID, "thumbnails", "thumbnail", in.ThumbnailFile, in.ThumbnailURL, "image/jpeg")
	if err != nil {
		return nil, err
	}

	video := &entity.Video{
		OwnerID:      userID,
		Title:        title,
		Description:  description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Duration:     in.Duration,
		IsPublished:  true,
	}
	if err := uc.videoRepo.Create(ctx, video); err != nil {
		uc.logger.Error("Failed to create video for %s: %v", userID, err)
		return nil, err
	}

	uc.logger.Info("Video %s published by %s", video.ID, userID)
	if err := uc.attachOwners(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// visible loads a video that userID may see: published videos are public,
// unpublished ones exist only for their owner.
func (uc *videoUseCase) visible(ctx context.Context, userID, videoID string) (*entity.Video, error) {
	videoID, err := validate.ID("video id", videoID)
	if err != nil {
		return nil, err
	}
	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != userID {
		return nil, apperror.NotFound("video not found")
	}
	return video, nil
}

func (uc *videoUseCase) GetVideo(ctx context.Context, userID, videoID string) (*entity.Video, error) {
	video, err := uc.visible(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}
	if err := uc.attachOwners(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (uc *videoUseCase) ListVideos(ctx context.Context, filter entity.ListFilter, sort entity.Sort, req pagination.Request) (pagination.Page[*entity.Video], error) {
	var empty pagination.Page[*entity.Video]

	req.Normalize(uc.pageCfg)
	if err := req.Validate(); err != nil {
		return empty, err
	}
	if sort.Field == "" {
		sort = entity.DefaultSort
	}
	filter.Query = strings.TrimSpace(filter.Query)
	if filter.OwnerID != "" {
		ownerID, err := validate.ID("owner id", filter.OwnerID)
		if err != nil {
			return empty, err
		}
		filter.OwnerID = ownerID
	}

	total, err := uc.videoRepo.Count(ctx, filter)
	if err != nil {
		return empty, err
	}
	if int64(req.Offset()) >= total {
		return pagination.NewPage[*entity.Video](nil, req, total), nil
	}

	videos, err := uc.videoRepo.List(ctx, filter, sort, req.Offset(), req.Limit)
	if err != nil {
		return empty, err
	}
	if err := uc.attachOwners(ctx, videos...); err != nil {
		return empty, err
	}
	return pagination.NewPage(videos, req, total), nil
}

func (uc *videoUseCase) loadOwned(ctx context.Context, userID, videoID string) (*entity.Video, error) {
	videoID, err := validate.ID("video id", videoID)
	if err != nil {
		return nil, err
	}
	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := ownership.Check(userID, video.OwnerID, "video"); err != nil {
		return nil, err
	}
	return video, nil
}

func (uc *videoUseCase) UpdateVideo(ctx context.Context, userID, videoID string, in entity.UpdateVideoInput) (*entity.Video, error) {
	existing, err := uc.loadOwned(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Title != nil {
		title, err := validate.Text("title", *in.Title)
		if err != nil {
			return nil, err
		}
		fields["title"] = title
	}
	if in.Description != nil {
		description, err := validate.Text("description", *in.Description)
		if err != nil {
			return nil, err
		}
		fields["description"] = description
	}
	if in.ThumbnailFile != nil || in.ThumbnailURL != nil {
		var url string
		if in.ThumbnailURL != nil {
			url = *in.ThumbnailURL
		}
		thumbnailURL, err := uc.store(ctx, userID, "thumbnails", "thumbnail", in.ThumbnailFile, url, "image/jpeg")
		if err != nil {
			return nil, err
		}
		fields["thumbnail_url"] = thumbnailURL
	}
	if len(fields) == 0 {
		return nil, apperror.InvalidArgument("nothing to update")
	}

	video, err := uc.videoRepo.Update(ctx, existing.ID, userID, fields)
	if err != nil {
		return nil, err
	}
	if err := uc.attachOwners(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (uc *videoUseCase) DeleteVideo(ctx context.Context, userID, videoID string) error {
	video, err := uc.loadOwned(ctx, userID, videoID)
	if err != nil {
		return err
	}
	if err := uc.videoRepo.Delete(ctx, video.ID, userID); err != nil {
		return err
	}
	uc.logger.Info("Video %s deleted by %s", video.ID, userID)
	uc.removeMedia(ctx, video)
	return nil
}

// removeMedia deletes the stored files of a deleted video. Failures leave
// orphaned objects behind and are only logged.
func (uc *videoUseCase) removeMedia(ctx context.Context, video *entity.Video) {
	if uc.uploader == nil {
		return
	}
	for _, url := range []string{video.VideoURL, video.ThumbnailURL} {
		if err := uc.uploader.DeleteURL(ctx, url); err != nil {
			uc.logger.Warn("Failed to remove media %s of video %s: %v", url, video.ID, err)
		}
	}
}

func (uc *videoUseCase) TogglePublish(ctx context.Context, userID, videoID string) (*entity.Video, error) {
	current, err := uc.loadOwned(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}

	video, err := uc.videoRepo.Update(ctx, current.ID, userID, map[string]interface{}{"is_published": !current.IsPublished})
	if err != nil {
		return nil, err
	}
	if err := uc.attachOwners(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func viewKey(videoID, viewer string) string {
	return fmt.Sprintf("video_viewed:%s:%s", videoID, viewer)
}

func (uc *videoUseCase) RecordView(ctx context.Context, viewer, videoID string) (bool, error) {
	video, err := uc.visible(ctx, viewer, videoID)
	if err != nil {
		return false, err
	}

	if uc.redisClient != nil && viewer != "" {
		set, err := uc.redisClient.SetNX(ctx, viewKey(video.ID, viewer), "1", viewDedupTTL).Result()
		if err != nil {
			uc.logger.Error("Failed to set view key in Redis: %v", err)
			return false, apperror.Internal("failed to track view", err)
		}
		if !set {
			return false, nil
		}
	}

	if err := uc.videoRepo.IncrementViews(ctx, video.ID); err != nil {
		return false, err
	}
	return true, nil
}

func (uc *videoUseCase) attachOwners(ctx context.Context, videos ...*entity.Video) error {
	err := owner.Attach(ctx, uc.owners, videos,
		func(v *entity.Video) string { return v.OwnerID },
		func(v *entity.Video, p *owner.Profile) { v.Owner = p })
	if err != nil {
		return apperror.Internal("failed to load video owners", err)
	}
	return nil
}
