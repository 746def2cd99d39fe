package http

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/pagination"
	"vidtube/pkg/response"
	"vidtube/services/video/internal/entity"
	"vidtube/services/video/internal/usecase"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoUseCase usecase.VideoUseCase
	pageCfg      pagination.Config
	logger       *logger.Logger
}

func NewVideoHandler(videoUseCase usecase.VideoUseCase, pageCfg pagination.Config, logger *logger.Logger) *VideoHandler {
	return &VideoHandler{
		videoUseCase: videoUseCase,
		pageCfg:      pageCfg,
		logger:       logger,
	}
}

type CreateVideoRequest struct {
	Title        string  `form:"title" json:"title"`
	Description  string  `form:"description" json:"description"`
	Duration     float64 `form:"duration" json:"duration"`
	VideoURL     string  `form:"video_url" json:"video_url"`
	ThumbnailURL string  `form:"thumbnail_url" json:"thumbnail_url"`
}

type UpdateVideoRequest struct {
	Title        *string `form:"title" json:"title"`
	Description  *string `form:"description" json:"description"`
	ThumbnailURL *string `form:"thumbnail_url" json:"thumbnail_url"`
}

// formUpload opens the named multipart file. A missing file is not an error.
func formUpload(c *gin.Context, field string) (*entity.Upload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, func() {}, nil
	}
	return openUpload(header)
}

func openUpload(header *multipart.FileHeader) (*entity.Upload, func(), error) {
	src, err := header.Open()
	if err != nil {
		return nil, func() {}, apperror.InvalidArgument("failed to read %s", header.Filename)
	}
	upload := &entity.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        src,
	}
	return upload, func() { src.Close() }, nil
}

// CreateVideo godoc
// @Summary      Publish a video
// @Description  Upload the video and thumbnail files, or give already hosted URLs
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title         formData string true  "Title"
// @Param        description   formData string true  "Description"
// @Param        duration      formData number false "Duration in seconds"
// @Param        video         formData file   false "Video file"
// @Param        thumbnail     formData file   false "Thumbnail image"
// @Param        video_url     formData string false "Hosted video URL when no file is sent"
// @Param        thumbnail_url formData string false "Hosted thumbnail URL when no file is sent"
// @Success      201  {object}  response.Result[entity.Video]
// @Failure      400  {object}  response.Result[any]
// @Router       /videos [post]
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, h.logger, apperror.InvalidArgument("invalid video form"))
		return
	}

	videoFile, closeVideo, err := formUpload(c, "video")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	defer closeVideo()

	thumbnailFile, closeThumbnail, err := formUpload(c, "thumbnail")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	defer closeThumbnail()

	video, err := h.videoUseCase.CreateVideo(c.Request.Context(), middleware.Principal(c), entity.CreateVideoInput{
		Title:         req.Title,
		Description:   req.Description,
		Duration:      req.Duration,
		VideoURL:      req.VideoURL,
		ThumbnailURL:  req.ThumbnailURL,
		VideoFile:     videoFile,
		ThumbnailFile: thumbnailFile,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusCreated, video, "Video published")
}

// ListVideos godoc
// @Summary      Search published videos
// @Tags         videos
// @Produce      json
// @Param        query    query string false "Case-insensitive match on title or description"
// @Param        owner_id query string false "Only videos of this channel"
// @Param        sort_by  query string false "Sort field" Enums(createdAt, views, duration, title)
// @Param        sort_dir query string false "Sort direction" Enums(asc, desc)
// @Param        page     query int    false "Page number (default 1)"
// @Param        limit    query int    false "Page size (default 10, max 100)"
// @Success      200  {object}  response.Result[pagination.Page[entity.Video]]
// @Failure      400  {object}  response.Result[any]
// @Router       /videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	req, err := pagination.FromQuery(c.Request.URL.Query(), h.pageCfg)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	sort, err := entity.ParseSort(c.Query("sort_by"), c.Query("sort_dir"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	filter := entity.ListFilter{
		Query:   c.Query("query"),
		OwnerID: c.Query("owner_id"),
	}

	page, err := h.videoUseCase.ListVideos(c.Request.Context(), filter, sort, req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, page, "Videos fetched")
}

// GetVideo godoc
// @Summary      Get a video
// @Description  Unpublished videos are only visible to their owner
// @Tags         videos
// @Produce      json
// @Param        id path string true "Video ID"
// @Success      200  {object}  response.Result[entity.Video]
// @Failure      404  {object}  response.Result[any]
// @Router       /videos/{id} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	video, err := h.videoUseCase.GetVideo(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, video, "Video fetched")
}

// UpdateVideo godoc
// @Summary      Edit a video
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id            path     string true  "Video ID"
// @Param        title         formData string false "Title"
// @Param        description   formData string false "Description"
// @Param        thumbnail     formData file   false "New thumbnail"
// @Param        thumbnail_url formData string false "New hosted thumbnail URL"
// @Success      200  {object}  response.Result[entity.Video]
// @Failure      403  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /videos/{id} [patch]
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	var req UpdateVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, h.logger, apperror.InvalidArgument("invalid video form"))
		return
	}

	thumbnailFile, closeThumbnail, err := formUpload(c, "thumbnail")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	defer closeThumbnail()

	video, err := h.videoUseCase.UpdateVideo(c.Request.Context(), middleware.Principal(c), c.Param("id"), entity.UpdateVideoInput{
		Title:         req.Title,
		Description:   req.Description,
		ThumbnailURL:  req.ThumbnailURL,
		ThumbnailFile: thumbnailFile,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, video, "Video updated")
}

// DeleteVideo godoc
// @Summary      Delete a video
// @Description  Also removes the video from every playlist
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Success      200  {object}  response.Result[any]
// @Failure      403  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /videos/{id} [delete]
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	videoID := c.Param("id")
	if err := h.videoUseCase.DeleteVideo(c.Request.Context(), middleware.Principal(c), videoID); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"id": videoID}, "Video deleted")
}

// TogglePublish godoc
// @Summary      Publish or unpublish a video
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Success      200  {object}  response.Result[entity.Video]
// @Failure      403  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /videos/{id}/publish [patch]
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	video, err := h.videoUseCase.TogglePublish(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, video, "Publish status is "+strconv.FormatBool(video.IsPublished))
}

// RecordView godoc
// @Summary      Count a view
// @Description  Counted once per viewer; anonymous viewers are keyed by client IP
// @Tags         videos
// @Produce      json
// @Param        id path string true "Video ID"
// @Success      200  {object}  response.Result[map[string]interface{}]
// @Failure      404  {object}  response.Result[any]
// @Router       /videos/{id}/view [post]
func (h *VideoHandler) RecordView(c *gin.Context) {
	viewer := middleware.Principal(c)
	if viewer == "" {
		viewer = c.ClientIP()
	}

	counted, err := h.videoUseCase.RecordView(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	message := "View already counted"
	if counted {
		message = "View counted"
	}
	response.JSON(c, http.StatusOK, gin.H{"viewed": counted}, message)
}
