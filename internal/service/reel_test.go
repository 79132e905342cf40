package service

import (
	"context"
	"sync"
	"testing"

	"OwlTurf/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReelFixture(t *testing.T) (*ReelService, string) {
	t.Helper()
	env := newTestEnv(t)
	env.user(t, "author")
	env.user(t, "fan")
	svc := NewReelService(env.db, env.logger)
	r, err := svc.Create(context.Background(), "author", &CreateReelRequest{
		VideoURL: "reels/20300115_100000_abcd1234_goal.mp4",
		Sport:    strPtr("football"),
		Hashtags: []string{"goal"},
	})
	require.NoError(t, err)
	assert.True(t, r.IsPublic)
	assert.True(t, r.IsActive)
	return svc, r.ID
}

func TestReelLikeOncePerUser(t *testing.T) {
	svc, id := newReelFixture(t)
	ctx := context.Background()

	r, err := svc.Like(ctx, id, "fan")
	require.NoError(t, err)
	assert.Equal(t, 1, r.LikesCount)

	_, err = svc.Like(ctx, id, "fan")
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	r, err = svc.View(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, r.LikesCount)

	r, err = svc.Unlike(ctx, id, "fan")
	require.NoError(t, err)
	assert.Equal(t, 0, r.LikesCount)

	_, err = svc.Unlike(ctx, id, "fan")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Like(ctx, id, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Like(ctx, "missing", "fan")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReelCountersNeverNegative(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "author")
	svc := NewReelService(env.db, env.logger)
	ctx := context.Background()
	r, err := svc.Create(ctx, "author", &CreateReelRequest{VideoURL: "reels/a.mp4"})
	require.NoError(t, err)

	reels := repository.NewReelRepository(env.db)
	n, err := reels.Decrement(ctx, r.ID, repository.CounterLikes)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := reels.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikesCount)

	_, err = reels.Increment(ctx, r.ID, "user_id")
	assert.Error(t, err)
}

func TestReelViewAndShare(t *testing.T) {
	svc, id := newReelFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.View(ctx, id)
		require.NoError(t, err)
	}
	r, err := svc.Share(ctx, id, "fan")
	require.NoError(t, err)
	assert.Equal(t, 3, r.ViewsCount)
	assert.Equal(t, 1, r.SharesCount)

	_, err = svc.View(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Share(ctx, "missing", "fan")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReelComments(t *testing.T) {
	svc, id := newReelFixture(t)
	ctx := context.Background()

	c1, err := svc.Comment(ctx, id, "fan", &CommentRequest{Text: "what a strike"})
	require.NoError(t, err)
	_, err = svc.Comment(ctx, id, "author", &CommentRequest{Text: "thanks"})
	require.NoError(t, err)

	list, err := svc.ListComments(ctx, id, repository.Page{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	assert.ErrorIs(t, svc.DeleteComment(ctx, id, c1.ID, "author"), ErrForbidden)
	assert.ErrorIs(t, svc.DeleteComment(ctx, "other-reel", c1.ID, "fan"), ErrNotFound)
	require.NoError(t, svc.DeleteComment(ctx, id, c1.ID, "fan"))
	assert.ErrorIs(t, svc.DeleteComment(ctx, id, c1.ID, "fan"), ErrNotFound)

	r, err := svc.View(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, r.CommentsCount)

	_, err = svc.ListComments(ctx, "missing", repository.Page{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReelSoftDelete(t *testing.T) {
	svc, id := newReelFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, id, "fan"), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, id, "author"))

	r, err := svc.View(ctx, id)
	require.NoError(t, err)
	assert.False(t, r.IsActive)

	list, err := svc.List(ctx, repository.ReelFilter{PublicOnly: true}, repository.Page{})
	require.NoError(t, err)
	assert.Empty(t, list)

	mine, err := svc.ListByUser(ctx, "author", repository.Page{})
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestReelListFilters(t *testing.T) {
	svc, id := newReelFixture(t)
	ctx := context.Background()
	private := false
	_, err := svc.Create(ctx, "fan", &CreateReelRequest{VideoURL: "reels/b.mp4", Sport: strPtr("cricket"), IsPublic: &private})
	require.NoError(t, err)

	list, err := svc.List(ctx, repository.ReelFilter{PublicOnly: true}, repository.Page{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	list, err = svc.List(ctx, repository.ReelFilter{}, repository.Page{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = svc.List(ctx, repository.ReelFilter{PublicOnly: true, Sport: "cricket"}, repository.Page{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReelUpdateKeepsCounters(t *testing.T) {
	svc, id := newReelFixture(t)
	ctx := context.Background()
	_, err := svc.Like(ctx, id, "fan")
	require.NoError(t, err)

	caption := "last minute winner"
	r, err := svc.Update(ctx, id, &UpdateReelRequest{Caption: &caption, Hashtags: []string{"winner"}})
	require.NoError(t, err)
	require.NotNil(t, r.Caption)
	assert.Equal(t, caption, *r.Caption)
	assert.Equal(t, 1, r.LikesCount)
	assert.JSONEq(t, `["winner"]`, string(r.Hashtags))
}

func TestReelConcurrentCommentDeleteCountsOnce(t *testing.T) {
	svc, id := newReelFixture(t)
	ctx := context.Background()

	keep, err := svc.Comment(ctx, id, "author", &CommentRequest{Text: "first"})
	require.NoError(t, err)
	c, err := svc.Comment(ctx, id, "fan", &CommentRequest{Text: "second"})
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		deleted int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := svc.DeleteComment(ctx, id, c.ID, "fan")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				deleted++
			} else {
				assert.ErrorIs(t, err, ErrNotFound)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, deleted)

	list, err := svc.ListComments(ctx, id, repository.Page{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)

	r, err := svc.View(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, len(list), r.CommentsCount)
}
