package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-url-shortener/types"
)

// testStoreContract exercises behaviour every Store implementation must share.
func testStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("Users", func(t *testing.T) {
		store := newStore(t)

		user := &types.User{Email: "user@example.com", PasswordHash: "hash"}
		require.NoError(t, store.CreateUser(ctx, user))
		assert.NotEmpty(t, user.ID, "CreateUser should assign an id")

		byID, err := store.FindUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", byID.Email)

		byEmail, err := store.FindUserByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
		assert.Equal(t, "hash", byEmail.PasswordHash)

		err = store.CreateUser(ctx, &types.User{Email: "user@example.com", PasswordHash: "other"})
		assert.ErrorIs(t, err, ErrEmailExists)

		_, err = store.FindUserByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrUserNotFound)
		_, err = store.FindUserByEmail(ctx, "missing@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Create and find links", func(t *testing.T) {
		store := newStore(t)
		owner := createUser(t, store, "owner@example.com")

		link := &types.Link{ShortCode: "aB3dE9", TargetURL: "https://example.com", OwnerID: &owner.ID}
		require.NoError(t, store.CreateLink(ctx, link))
		assert.NotEmpty(t, link.ID)
		assert.False(t, link.CreatedAt.IsZero())

		found, err := store.FindActiveByShortCode(ctx, "aB3dE9")
		require.NoError(t, err)
		assert.Equal(t, link.ID, found.ID)
		assert.Equal(t, "https://example.com", found.TargetURL)
		assert.Equal(t, int64(0), found.Clicks)
		require.NotNil(t, found.OwnerID)
		assert.Equal(t, owner.ID, *found.OwnerID)

		err = store.CreateLink(ctx, &types.Link{ShortCode: "aB3dE9", TargetURL: "https://other.com"})
		assert.ErrorIs(t, err, ErrShortCodeExists)

		_, err = store.FindActiveByShortCode(ctx, "zzzzzz")
		assert.ErrorIs(t, err, ErrShortURLNotFound)
	})

	t.Run("Short codes are case sensitive", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.CreateLink(ctx, &types.Link{ShortCode: "abcdef", TargetURL: "https://lower.com"}))
		require.NoError(t, store.CreateLink(ctx, &types.Link{ShortCode: "ABCDEF", TargetURL: "https://upper.com"}))

		found, err := store.FindActiveByShortCode(ctx, "ABCDEF")
		require.NoError(t, err)
		assert.Equal(t, "https://upper.com", found.TargetURL)
	})

	t.Run("Owner scoped lookup", func(t *testing.T) {
		store := newStore(t)
		alice := createUser(t, store, "alice@example.com")
		bob := createUser(t, store, "bob@example.com")

		require.NoError(t, store.CreateLink(ctx, &types.Link{ShortCode: "alice1", TargetURL: "https://a.com", OwnerID: &alice.ID}))
		require.NoError(t, store.CreateLink(ctx, &types.Link{ShortCode: "anon01", TargetURL: "https://anon.com"}))

		found, err := store.FindActiveByShortCodeAndOwner(ctx, "alice1", alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://a.com", found.TargetURL)

		_, err = store.FindActiveByShortCodeAndOwner(ctx, "alice1", bob.ID)
		assert.ErrorIs(t, err, ErrShortURLNotFound, "Links owned by others should look missing")

		_, err = store.FindActiveByShortCodeAndOwner(ctx, "anon01", alice.ID)
		assert.ErrorIs(t, err, ErrShortURLNotFound, "Anonymous links have no owner")
	})

	t.Run("Clicks and saves", func(t *testing.T) {
		store := newStore(t)
		link := &types.Link{ShortCode: "click1", TargetURL: "https://example.com"}
		require.NoError(t, store.CreateLink(ctx, link))

		for i := 1; i <= 3; i++ {
			clicks, err := store.IncrementClicks(ctx, link.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(i), clicks)
		}

		// a stale copy must not roll the counter back
		stale := *link
		stale.TargetURL = "https://example.org"
		require.NoError(t, store.SaveLink(ctx, &stale))

		found, err := store.FindActiveByShortCode(ctx, "click1")
		require.NoError(t, err)
		assert.Equal(t, "https://example.org", found.TargetURL)
		assert.Equal(t, int64(3), found.Clicks)

		_, err = store.IncrementClicks(ctx, "missing")
		assert.ErrorIs(t, err, ErrShortURLNotFound)

		err = store.SaveLink(ctx, &types.Link{ID: "missing", TargetURL: "https://x.com"})
		assert.ErrorIs(t, err, ErrShortURLNotFound)
	})

	t.Run("Soft delete", func(t *testing.T) {
		store := newStore(t)
		owner := createUser(t, store, "owner@example.com")
		link := &types.Link{ShortCode: "gone01", TargetURL: "https://example.com", OwnerID: &owner.ID}
		require.NoError(t, store.CreateLink(ctx, link))

		deletedAt := time.Now().UTC()
		link.DeletedAt = &deletedAt
		require.NoError(t, store.SaveLink(ctx, link))

		_, err := store.FindActiveByShortCode(ctx, "gone01")
		assert.ErrorIs(t, err, ErrShortURLNotFound)
		_, err = store.FindActiveByShortCodeAndOwner(ctx, "gone01", owner.ID)
		assert.ErrorIs(t, err, ErrShortURLNotFound)
		_, err = store.IncrementClicks(ctx, link.ID)
		assert.ErrorIs(t, err, ErrShortURLNotFound)

		links, total, err := store.ListActiveByOwner(ctx, owner.ID, 0, 10)
		require.NoError(t, err)
		assert.Empty(t, links)
		assert.Equal(t, int64(0), total)

		err = store.CreateLink(ctx, &types.Link{ShortCode: "gone01", TargetURL: "https://reuse.com"})
		assert.ErrorIs(t, err, ErrShortCodeExists, "Deleted codes stay reserved")
	})

	t.Run("List pagination", func(t *testing.T) {
		store := newStore(t)
		owner := createUser(t, store, "owner@example.com")
		other := createUser(t, store, "other@example.com")

		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 15; i++ {
			link := &types.Link{
				ShortCode: fmt.Sprintf("own%03d", i),
				TargetURL: fmt.Sprintf("https://example.com/%d", i),
				OwnerID:   &owner.ID,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			}
			require.NoError(t, store.CreateLink(ctx, link))
		}
		require.NoError(t, store.CreateLink(ctx, &types.Link{ShortCode: "oth000", TargetURL: "https://other.com", OwnerID: &other.ID}))

		first, total, err := store.ListActiveByOwner(ctx, owner.ID, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		require.Len(t, first, 10)
		assert.Equal(t, "own014", first[0].ShortCode, "Newest link should come first")

		second, total, err := store.ListActiveByOwner(ctx, owner.ID, 10, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		require.Len(t, second, 5)
		assert.Equal(t, "own000", second[4].ShortCode)

		beyond, total, err := store.ListActiveByOwner(ctx, owner.ID, 20, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Empty(t, beyond)

		none, total, err := store.ListActiveByOwner(ctx, "nobody", 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})
}

func createUser(t *testing.T, store Store, email string) types.User {
	t.Helper()
	user := &types.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return *user
}
