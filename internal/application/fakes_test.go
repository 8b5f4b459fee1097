package application

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/streamvault/streamvault/internal/domain/entity"
	repo "github.com/streamvault/streamvault/internal/domain/repository"
)

// In-memory repositories backing the service tests. They mirror the
// documented repository contracts, duplicate and not-found sentinels
// included.

type fakeUploader struct {
	uploads []string
	fail    bool
}

func (f *fakeUploader) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	if f.fail {
		return "", fmt.Errorf("upload refused")
	}
	_, _ = io.ReadAll(r)
	f.uploads = append(f.uploads, objectPath)
	return "https://cdn.test/" + objectPath, nil
}

type fakeUserRepo struct {
	seq     int
	users   map[string]*entity.User
	history map[string][]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}, history: map[string][]string{}}
}

func (f *fakeUserRepo) nextID() string {
	f.seq++
	return "user-" + strconv.Itoa(f.seq)
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, ex := range f.users {
		if ex.UserName == u.UserName || ex.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	u.ID = f.nextID()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUserNameOrEmail(_ context.Context, userName, email string) (*entity.User, error) {
	for _, u := range f.users {
		if (userName != "" && u.UserName == userName) || (email != "" && u.Email == email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) ExistsByUserNameOrEmail(_ context.Context, userName, email string) (bool, error) {
	_, err := f.GetByUserNameOrEmail(context.Background(), userName, email)
	if err == repo.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	ex, ok := f.users[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	ex.FullName = u.FullName
	ex.Email = u.Email
	ex.AvatarURL = u.AvatarURL
	ex.CoverImageURL = u.CoverImageURL
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (f *fakeUserRepo) SetRefreshToken(_ context.Context, id, token string) error {
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.RefreshToken = token
	return nil
}

func (f *fakeUserRepo) SwapRefreshToken(_ context.Context, id, old, next string) (bool, error) {
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	if u.RefreshToken != old {
		return false, nil
	}
	u.RefreshToken = next
	return true, nil
}

func (f *fakeUserRepo) ChannelProfile(_ context.Context, userName, _ string) (*entity.ChannelProfile, error) {
	for _, u := range f.users {
		if u.UserName == userName {
			return &entity.ChannelProfile{ID: u.ID, UserName: u.UserName, FullName: u.FullName}, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) AddWatchHistory(_ context.Context, userID, videoID string) error {
	for _, id := range f.history[userID] {
		if id == videoID {
			return nil
		}
	}
	f.history[userID] = append(f.history[userID], videoID)
	return nil
}

func (f *fakeUserRepo) WatchHistory(_ context.Context, userID string, page, limit int) (*entity.VideoPage, error) {
	return &entity.VideoPage{
		Docs:      []entity.Video{},
		TotalDocs: int64(len(f.history[userID])),
		Page:      page,
		Limit:     limit,
	}, nil
}

type fakeVideoRepo struct {
	seq    int
	videos map[string]*entity.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: map[string]*entity.Video{}}
}

func (f *fakeVideoRepo) Create(_ context.Context, v *entity.Video) error {
	f.seq++
	v.ID = "video-" + strconv.Itoa(f.seq)
	cp := *v
	f.videos[v.ID] = &cp
	return nil
}

func (f *fakeVideoRepo) GetByID(_ context.Context, id, _ string) (*entity.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideoRepo) IncrementViews(_ context.Context, id string) error {
	v, ok := f.videos[id]
	if !ok {
		return repo.ErrNotFound
	}
	v.Views++
	return nil
}

func (f *fakeVideoRepo) Update(_ context.Context, v *entity.Video) error {
	ex, ok := f.videos[v.ID]
	if !ok {
		return repo.ErrNotFound
	}
	ex.Title = v.Title
	ex.Description = v.Description
	ex.ThumbnailURL = v.ThumbnailURL
	ex.IsPublished = v.IsPublished
	return nil
}

func (f *fakeVideoRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.videos[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.videos, id)
	return nil
}

func (f *fakeVideoRepo) List(_ context.Context, flt entity.VideoFilter) (*entity.VideoPage, error) {
	matched := []entity.Video{}
	for _, v := range f.videos {
		if flt.OnlyPublished && !v.IsPublished {
			continue
		}
		if flt.OwnerID != "" && v.OwnerID != flt.OwnerID {
			continue
		}
		if flt.Query != "" && !strings.Contains(strings.ToLower(v.Title), strings.ToLower(flt.Query)) {
			continue
		}
		matched = append(matched, *v)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	page, limit := flt.Page, flt.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &entity.VideoPage{
		Docs:        matched[start:end],
		TotalDocs:   total,
		Limit:       limit,
		Page:        page,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}, nil
}

type likeKey struct {
	target   entity.LikeTarget
	targetID string
	userID   string
}

type fakeLikeRepo struct {
	likes   map[likeKey]bool
	targets map[string]bool
}

func newFakeLikeRepo(existingTargets ...string) *fakeLikeRepo {
	t := map[string]bool{}
	for _, id := range existingTargets {
		t[id] = true
	}
	return &fakeLikeRepo{likes: map[likeKey]bool{}, targets: t}
}

func (f *fakeLikeRepo) Toggle(_ context.Context, target entity.LikeTarget, targetID, userID string) (bool, error) {
	if !f.targets[targetID] {
		return false, repo.ErrNotFound
	}
	k := likeKey{target, targetID, userID}
	if f.likes[k] {
		delete(f.likes, k)
		return false, nil
	}
	f.likes[k] = true
	return true, nil
}

func (f *fakeLikeRepo) LikedVideos(_ context.Context, _ string) ([]entity.Video, error) {
	return []entity.Video{}, nil
}

type fakeCommentRepo struct {
	seq      int
	comments map[string]*entity.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[string]*entity.Comment{}}
}

func (f *fakeCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	f.seq++
	c.ID = "comment-" + strconv.Itoa(f.seq)
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) Update(_ context.Context, id, content string) (*entity.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c.Content = content
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.comments[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) ListByVideo(_ context.Context, videoID string, _, _ int) ([]entity.Comment, int64, error) {
	out := []entity.Comment{}
	for _, c := range f.comments {
		if c.VideoID == videoID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

type fakePostRepo struct {
	seq   int
	posts map[string]*entity.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*entity.Post{}}
}

func (f *fakePostRepo) Create(_ context.Context, p *entity.Post) error {
	f.seq++
	p.ID = "post-" + strconv.Itoa(f.seq)
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id string) (*entity.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) Update(_ context.Context, id, content string) (*entity.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	p.Content = content
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) ListByOwner(_ context.Context, ownerID string) ([]entity.Post, error) {
	out := []entity.Post{}
	for _, p := range f.posts {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakePlaylistRepo struct {
	seq       int
	playlists map[string]*entity.Playlist
	members   map[string][]string
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{playlists: map[string]*entity.Playlist{}, members: map[string][]string{}}
}

func (f *fakePlaylistRepo) Create(_ context.Context, p *entity.Playlist) error {
	f.seq++
	p.ID = "playlist-" + strconv.Itoa(f.seq)
	cp := *p
	f.playlists[p.ID] = &cp
	return nil
}

func (f *fakePlaylistRepo) GetByID(_ context.Context, id string) (*entity.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	cp.TotalVideos = len(f.members[id])
	return &cp, nil
}

func (f *fakePlaylistRepo) ListByOwner(_ context.Context, ownerID string) ([]entity.Playlist, error) {
	out := []entity.Playlist{}
	for _, p := range f.playlists {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlaylistRepo) Update(_ context.Context, id, name, description string) (*entity.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	p.Name = name
	p.Description = description
	cp := *p
	return &cp, nil
}

func (f *fakePlaylistRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.playlists[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.playlists, id)
	delete(f.members, id)
	return nil
}

func (f *fakePlaylistRepo) AddVideo(_ context.Context, playlistID, videoID string) error {
	for _, v := range f.members[playlistID] {
		if v == videoID {
			return repo.ErrDuplicate
		}
	}
	f.members[playlistID] = append(f.members[playlistID], videoID)
	return nil
}

func (f *fakePlaylistRepo) RemoveVideo(_ context.Context, playlistID, videoID string) error {
	vids := f.members[playlistID]
	for i, v := range vids {
		if v == videoID {
			f.members[playlistID] = append(vids[:i], vids[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

type subKey struct {
	subscriber string
	channel    string
}

type fakeSubscriptionRepo struct {
	subs map[subKey]bool
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: map[subKey]bool{}}
}

func (f *fakeSubscriptionRepo) Toggle(_ context.Context, subscriberID, channelID string) (bool, error) {
	k := subKey{subscriberID, channelID}
	if f.subs[k] {
		delete(f.subs, k)
		return false, nil
	}
	f.subs[k] = true
	return true, nil
}

func (f *fakeSubscriptionRepo) Subscribers(_ context.Context, channelID string) ([]entity.OwnerSummary, error) {
	out := []entity.OwnerSummary{}
	for k := range f.subs {
		if k.channel == channelID {
			out = append(out, entity.OwnerSummary{ID: k.subscriber})
		}
	}
	return out, nil
}

func (f *fakeSubscriptionRepo) SubscribedChannels(_ context.Context, subscriberID string) ([]entity.OwnerSummary, error) {
	out := []entity.OwnerSummary{}
	for k := range f.subs {
		if k.subscriber == subscriberID {
			out = append(out, entity.OwnerSummary{ID: k.channel})
		}
	}
	return out, nil
}

func (f *fakeSubscriptionRepo) SubscriberEmails(_ context.Context, _ string) ([]string, error) {
	return []string{}, nil
}
