package application

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamvault/streamvault/internal/domain/entity"
	"github.com/streamvault/streamvault/pkg/apperror"
)

func seedVideo(t *testing.T, videos *fakeVideoRepo, ownerID string) *entity.Video {
	t.Helper()
	v := &entity.Video{OwnerID: ownerID, Title: "clip", Description: "d", IsPublished: true}
	require.NoError(t, videos.Create(context.Background(), v))
	return v
}

func TestAddCommentToExistingVideo(t *testing.T) {
	videos := newFakeVideoRepo()
	svc := NewCommentService(newFakeCommentRepo(), videos)
	v := seedVideo(t, videos, "owner-1")

	c, err := svc.Add(context.Background(), v.ID, "viewer-1", "nice one")
	require.NoError(t, err)
	assert.Equal(t, v.ID, c.VideoID)
	assert.Equal(t, "viewer-1", c.OwnerID)
	assert.Equal(t, "nice one", c.Content)
}

func TestAddCommentUnknownVideo(t *testing.T) {
	svc := NewCommentService(newFakeCommentRepo(), newFakeVideoRepo())

	_, err := svc.Add(context.Background(), "missing", "viewer-1", "hello")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.From(err).Code)
}

func TestAddCommentEmptyContent(t *testing.T) {
	videos := newFakeVideoRepo()
	svc := NewCommentService(newFakeCommentRepo(), videos)
	v := seedVideo(t, videos, "owner-1")

	_, err := svc.Add(context.Background(), v.ID, "viewer-1", "   ")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.From(err).Code)
}

func TestUpdateCommentRejectsNonOwner(t *testing.T) {
	videos := newFakeVideoRepo()
	svc := NewCommentService(newFakeCommentRepo(), videos)
	v := seedVideo(t, videos, "owner-1")
	c, err := svc.Add(context.Background(), v.ID, "viewer-1", "original")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), c.ID, "intruder", "edited")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperror.From(err).Code)

	err = svc.Delete(context.Background(), c.ID, "intruder")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperror.From(err).Code)
}

func TestUpdateCommentByOwner(t *testing.T) {
	videos := newFakeVideoRepo()
	svc := NewCommentService(newFakeCommentRepo(), videos)
	v := seedVideo(t, videos, "owner-1")
	c, err := svc.Add(context.Background(), v.ID, "viewer-1", "original")
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), c.ID, "viewer-1", "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)
}

func TestPostOwnerOnlyMutation(t *testing.T) {
	svc := NewPostService(newFakePostRepo())

	p, err := svc.Create(context.Background(), "owner-1", "community update")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), p.ID, "intruder", "hijacked")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperror.From(err).Code)

	got, err := svc.Update(context.Background(), p.ID, "owner-1", "revised")
	require.NoError(t, err)
	assert.Equal(t, "revised", got.Content)

	require.NoError(t, svc.Delete(context.Background(), p.ID, "owner-1"))
	posts, err := svc.ListByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestLikeToggleRoundTrip(t *testing.T) {
	svc := NewLikeService(newFakeLikeRepo("video-1"))

	liked, err := svc.Toggle(context.Background(), entity.LikeVideo, "video-1", "viewer-1")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.Toggle(context.Background(), entity.LikeVideo, "video-1", "viewer-1")
	require.NoError(t, err)
	assert.False(t, liked)

	liked, err = svc.Toggle(context.Background(), entity.LikeVideo, "video-1", "viewer-1")
	require.NoError(t, err)
	assert.True(t, liked, "double toggle restores the original state")
}

func TestLikeUnknownTarget(t *testing.T) {
	svc := NewLikeService(newFakeLikeRepo())

	_, err := svc.Toggle(context.Background(), entity.LikeComment, "missing", "viewer-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.From(err).Code)
}

func TestPlaylistCreateAndGet(t *testing.T) {
	svc := NewPlaylistService(newFakePlaylistRepo(), newFakeVideoRepo())

	p, err := svc.Create(context.Background(), "owner-1", "Favorites", "the good ones")
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Favorites", got.Name)

	_, err = svc.Create(context.Background(), "owner-1", "", "no name")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.From(err).Code)
}

func TestPlaylistAddVideo(t *testing.T) {
	videos := newFakeVideoRepo()
	svc := NewPlaylistService(newFakePlaylistRepo(), videos)
	v := seedVideo(t, videos, "owner-1")

	p, err := svc.Create(context.Background(), "owner-1", "Watch later", "queue")
	require.NoError(t, err)

	got, err := svc.AddVideo(context.Background(), p.ID, v.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalVideos)

	_, err = svc.AddVideo(context.Background(), p.ID, v.ID, "owner-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.From(err).Code)
}

func TestPlaylistAddVideoRejectsNonOwner(t *testing.T) {
	videos := newFakeVideoRepo()
	svc := NewPlaylistService(newFakePlaylistRepo(), videos)
	v := seedVideo(t, videos, "owner-1")

	p, err := svc.Create(context.Background(), "owner-1", "Private", "mine")
	require.NoError(t, err)

	_, err = svc.AddVideo(context.Background(), p.ID, v.ID, "intruder")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperror.From(err).Code)
}

func TestPlaylistRemoveMissingVideo(t *testing.T) {
	videos := newFakeVideoRepo()
	svc := NewPlaylistService(newFakePlaylistRepo(), videos)
	v := seedVideo(t, videos, "owner-1")

	p, err := svc.Create(context.Background(), "owner-1", "Empty", "nothing yet")
	require.NoError(t, err)

	_, err = svc.RemoveVideo(context.Background(), p.ID, v.ID, "owner-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.From(err).Code)
}

func TestPlaylistUpdateKeepsBlankFields(t *testing.T) {
	svc := NewPlaylistService(newFakePlaylistRepo(), newFakeVideoRepo())
	p, err := svc.Create(context.Background(), "owner-1", "Old name", "old description")
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), p.ID, "owner-1", "New name", "")
	require.NoError(t, err)
	assert.Equal(t, "New name", got.Name)
	assert.Equal(t, "old description", got.Description)
}

func TestSubscriptionToggle(t *testing.T) {
	users := newFakeUserRepo()
	channel := &entity.User{UserName: "channel", Email: "ch@test.dev", Password: "x"}
	require.NoError(t, users.Create(context.Background(), channel))
	svc := NewSubscriptionService(newFakeSubscriptionRepo(), users)

	on, err := svc.Toggle(context.Background(), "viewer-1", channel.ID)
	require.NoError(t, err)
	assert.True(t, on)

	subs, err := svc.Subscribers(context.Background(), channel.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	on, err = svc.Toggle(context.Background(), "viewer-1", channel.ID)
	require.NoError(t, err)
	assert.False(t, on)

	subs, err = svc.Subscribers(context.Background(), channel.ID)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestSubscribeToSelf(t *testing.T) {
	users := newFakeUserRepo()
	u := &entity.User{UserName: "solo", Email: "solo@test.dev", Password: "x"}
	require.NoError(t, users.Create(context.Background(), u))
	svc := NewSubscriptionService(newFakeSubscriptionRepo(), users)

	_, err := svc.Toggle(context.Background(), u.ID, u.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.From(err).Code)
}

func TestSubscribeUnknownChannel(t *testing.T) {
	svc := NewSubscriptionService(newFakeSubscriptionRepo(), newFakeUserRepo())

	_, err := svc.Toggle(context.Background(), "viewer-1", "ghost")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.From(err).Code)
}
