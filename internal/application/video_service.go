package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/streamvault/streamvault/internal/domain/entity"
	repo "github.com/streamvault/streamvault/internal/domain/repository"
	"github.com/streamvault/streamvault/pkg/apperror"
	"github.com/streamvault/streamvault/pkg/helpers"
	"github.com/streamvault/streamvault/pkg/mailer"
)

// VideoService owns the video lifecycle: publishing, playback lookup,
// owner-only mutation, and search.
type VideoService struct {
	Repo    repo.VideoRepository
	Users   repo.UserRepository
	Storage Uploader
	Pub     *helpers.RabbitPublisher
	Logger  *logrus.Logger
	ES      *elasticsearch.Client
	ESIndex string
}

func NewVideoService(r repo.VideoRepository, users repo.UserRepository, storage Uploader, pub *helpers.RabbitPublisher, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *VideoService {
	return &VideoService{Repo: r, Users: users, Storage: storage, Pub: pub, Logger: logger, ES: es, ESIndex: esIndex}
}

type PublishVideoInput struct {
	Title       string
	Description string
	Duration    float64
	VideoFile   *FileInput
	Thumbnail   *FileInput
}

// Publish uploads the media pair, creates the record published by default,
// indexes it for search, and enqueues a new-video notification for the
// channel's subscribers.
func (s *VideoService) Publish(ctx context.Context, ownerID string, in PublishVideoInput) (*entity.Video, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" || in.Description == "" {
		return nil, apperror.BadRequest("title and description are required")
	}
	if in.VideoFile == nil || in.Thumbnail == nil {
		return nil, apperror.BadRequest("video file and thumbnail are required")
	}

	videoURL, err := s.Storage.Upload(ctx, objectPath("videos", ownerID, in.VideoFile.Filename), in.VideoFile.ContentType, in.VideoFile.Reader)
	if err != nil {
		return nil, apperror.Internal("video upload failed")
	}
	thumbURL, err := s.Storage.Upload(ctx, objectPath("thumbnails", ownerID, in.Thumbnail.Filename), in.Thumbnail.ContentType, in.Thumbnail.Reader)
	if err != nil {
		return nil, apperror.Internal("thumbnail upload failed")
	}

	v := &entity.Video{
		OwnerID:      ownerID,
		Title:        in.Title,
		Description:  in.Description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbURL,
		Duration:     in.Duration,
		IsPublished:  true,
	}
	if err := s.Repo.Create(ctx, v); err != nil {
		return nil, err
	}

	_ = s.indexVideo(ctx, v)
	s.notifySubscribers(ctx, v)
	return v, nil
}

// Get returns one video by id and records the read: the view counter is
// bumped for every reader and authenticated viewers get it added to their
// watch history.
func (s *VideoService) Get(ctx context.Context, videoID, viewerID string) (*entity.Video, error) {
	v, err := s.Repo.GetByID(ctx, videoID, viewerID)
	if err != nil {
		if err == repo.ErrNotFound {
			return nil, apperror.NotFound("video not found")
		}
		return nil, err
	}
	if err := s.Repo.IncrementViews(ctx, videoID); err == nil {
		v.Views++
	}
	if viewerID != "" {
		if err := s.Users.AddWatchHistory(ctx, viewerID, videoID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("video_id", videoID).Warn("watch history update failed")
		}
	}
	return v, nil
}

type UpdateVideoInput struct {
	Title       string
	Description string
	Thumbnail   *FileInput
}

func (s *VideoService) Update(ctx context.Context, videoID, requesterID string, in UpdateVideoInput) (*entity.Video, error) {
	v, err := s.ownedVideo(ctx, videoID, requesterID)
	if err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" && in.Description == "" && in.Thumbnail == nil {
		return nil, apperror.BadRequest("at least one field is required")
	}
	if in.Title != "" {
		v.Title = in.Title
	}
	if in.Description != "" {
		v.Description = in.Description
	}
	if in.Thumbnail != nil {
		url, err := s.Storage.Upload(ctx, objectPath("thumbnails", requesterID, in.Thumbnail.Filename), in.Thumbnail.ContentType, in.Thumbnail.Reader)
		if err != nil {
			return nil, apperror.Internal("thumbnail upload failed")
		}
		v.ThumbnailURL = url
	}
	if err := s.Repo.Update(ctx, v); err != nil {
		return nil, err
	}
	_ = s.indexVideo(ctx, v)
	return v, nil
}

func (s *VideoService) Delete(ctx context.Context, videoID, requesterID string) error {
	if _, err := s.ownedVideo(ctx, videoID, requesterID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, videoID); err != nil {
		return err
	}
	s.removeFromIndex(ctx, videoID)
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, videoID, requesterID string) (*entity.Video, error) {
	v, err := s.ownedVideo(ctx, videoID, requesterID)
	if err != nil {
		return nil, err
	}
	v.IsPublished = !v.IsPublished
	if err := s.Repo.Update(ctx, v); err != nil {
		return nil, err
	}
	if v.IsPublished {
		_ = s.indexVideo(ctx, v)
	} else {
		s.removeFromIndex(ctx, videoID)
	}
	return v, nil
}

// List returns a published-only page; owners see their unpublished videos
// through the dashboard instead.
func (s *VideoService) List(ctx context.Context, f entity.VideoFilter) (*entity.VideoPage, error) {
	f.OnlyPublished = true
	return s.Repo.List(ctx, f)
}

// ChannelVideos lists every video owned by the requester, drafts included.
func (s *VideoService) ChannelVideos(ctx context.Context, ownerID string, page, limit int) (*entity.VideoPage, error) {
	return s.Repo.List(ctx, entity.VideoFilter{OwnerID: ownerID, Page: page, Limit: limit})
}

func (s *VideoService) ownedVideo(ctx context.Context, videoID, requesterID string) (*entity.Video, error) {
	v, err := s.Repo.GetByID(ctx, videoID, requesterID)
	if err != nil {
		if err == repo.ErrNotFound {
			return nil, apperror.NotFound("video not found")
		}
		return nil, err
	}
	if v.OwnerID != requesterID {
		return nil, apperror.Forbidden("you are not allowed to modify this video")
	}
	return v, nil
}

func (s *VideoService) notifySubscribers(ctx context.Context, v *entity.Video) {
	if s.Pub == nil {
		return
	}
	job := mailer.Job{Kind: mailer.KindNewVideo, ChannelID: v.OwnerID, VideoID: v.ID, Title: v.Title}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("video_id", v.ID).Warn("new video notification enqueue failed")
	}
}

func (s *VideoService) indexVideo(ctx context.Context, v *entity.Video) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":          v.ID,
		"title":       v.Title,
		"description": v.Description,
		"owner_id":    v.OwnerID,
		"thumbnail":   v.ThumbnailURL,
		"duration":    v.Duration,
		"views":       v.Views,
		"created_at":  v.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: v.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("video_id", v.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("video_id", v.ID).Warn("es index response error")
	}
	return nil
}

func (s *VideoService) removeFromIndex(ctx context.Context, videoID string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: videoID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("video_id", videoID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match over title and description in Elasticsearch.
func (s *VideoService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
