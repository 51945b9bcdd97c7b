package market_test

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/aussiebroadwan/market/pkg/marketsdk"
	"github.com/stretchr/testify/require"
)

func TestMarketplaceFlow(t *testing.T) {
	ctx := context.Background()
	srv := setupMarket(t, false)

	alice, aliceSession := srv.signup(t, "alice")
	require.Len(t, alice.Token, 16)
	require.Equal(t, "alice", alice.Account.Username)

	_, err := srv.Client.Login(ctx, marketsdk.LoginRequest{Email: "alice@example.com", Password: "secret-alice"})
	require.NoError(t, err)

	shoes := publish(t, aliceSession, "Running shoes", 60)
	shirt := publish(t, aliceSession, "Blue shirt", 15)
	_ = publish(t, aliceSession, "Old shoes", 5)

	require.Equal(t, alice.ID, shoes.Owner.ID)
	require.NotNil(t, shoes.Image)
	require.Contains(t, shoes.Image.PublicID, "vinted/offers/"+shoes.ID+"/")

	brand, ok := shoes.Value("MARQUE")
	require.True(t, ok)
	require.Equal(t, "Nike", brand)

	t.Run("picture is served", func(t *testing.T) {
		u, err := url.Parse(shoes.Image.SecureURL)
		require.NoError(t, err)

		resp := srv.get(t, u.Path)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, pngBytes, body)
	})

	t.Run("listing filters and sorts", func(t *testing.T) {
		list, err := srv.Client.ListOffers(ctx, marketsdk.ListOffersParams{Title: "SHOES", Sort: marketsdk.SortAsc})
		require.NoError(t, err)
		require.EqualValues(t, 2, list.Count)
		require.Equal(t, "Old shoes", list.Offers[0].Name)
		require.Equal(t, "Running shoes", list.Offers[1].Name)
		require.Equal(t, "alice", list.Offers[0].Owner.Account.Username)
		require.Nil(t, list.Offers[0].CreatedAt)

		list, err = srv.Client.ListOffers(ctx, marketsdk.ListOffersParams{
			PriceMin: marketsdk.Price(10),
			PriceMax: marketsdk.Price(60),
			Sort:     marketsdk.SortDesc,
		})
		require.NoError(t, err)
		require.EqualValues(t, 2, list.Count)
		require.Equal(t, shoes.ID, list.Offers[0].ID)
		require.Equal(t, shirt.ID, list.Offers[1].ID)
	})

	t.Run("fetch resolves the owner", func(t *testing.T) {
		got, err := srv.Client.GetOffer(ctx, shirt.ID)
		require.NoError(t, err)
		require.Equal(t, "Blue shirt", got.Name)
		require.Equal(t, "alice@example.com", got.Owner.Email)
		require.NotNil(t, got.CreatedAt)
	})

	t.Run("owner updates colour", func(t *testing.T) {
		updated, err := aliceSession.UpdateOffer(ctx, marketsdk.UpdateOfferRequest{ID: shirt.ID, Color: "green"})
		require.NoError(t, err)

		color, ok := updated.Value("COULEUR")
		require.True(t, ok)
		require.Equal(t, "green", color)
		require.Equal(t, alice.ID, updated.Owner.ID)
		require.Nil(t, updated.Owner.Account)
	})

	t.Run("other users are refused", func(t *testing.T) {
		_, bobSession := srv.signup(t, "bob")

		_, err := bobSession.UpdateOffer(ctx, marketsdk.UpdateOfferRequest{ID: shirt.ID, Color: "black"})
		requireAPIError(t, err, http.StatusForbidden, "You are not the owner of this offer")

		_, err = bobSession.DeleteOffer(ctx, shirt.ID)
		requireAPIError(t, err, http.StatusForbidden, "You are not the owner of this offer")
	})

	t.Run("owner deletes", func(t *testing.T) {
		msg, err := aliceSession.DeleteOffer(ctx, shoes.ID)
		require.NoError(t, err)
		require.NotEmpty(t, msg.Message)

		_, err = srv.Client.GetOffer(ctx, shoes.ID)
		requireAPIError(t, err, http.StatusNotFound, "Offer not found")

		list, err := srv.Client.ListOffers(ctx, marketsdk.ListOffersParams{})
		require.NoError(t, err)
		require.EqualValues(t, 2, list.Count)
	})
}

func TestSignupConflicts(t *testing.T) {
	ctx := context.Background()
	srv := setupMarket(t, false)
	srv.signup(t, "carol")

	_, err := srv.Client.Signup(ctx, marketsdk.SignupRequest{
		Email:    "carol@example.com",
		Username: "someone",
		Password: "pw",
	}, nil)
	requireAPIError(t, err, http.StatusConflict, "Email already exists")

	_, err = srv.Client.Signup(ctx, marketsdk.SignupRequest{
		Email:    "other@example.com",
		Username: "carol",
		Password: "pw",
	}, nil)
	requireAPIError(t, err, http.StatusConflict, "Username already exists")

	n, err := srv.store.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	srv := setupMarket(t, false)
	srv.signup(t, "dave")

	_, err := srv.Client.Login(ctx, marketsdk.LoginRequest{Username: "dave", Password: "nope"})
	requireAPIError(t, err, http.StatusBadRequest, "Wrong password")

	_, err = srv.Client.Login(ctx, marketsdk.LoginRequest{Username: "nobody", Password: "nope"})
	requireAPIError(t, err, http.StatusUnauthorized, "Incorrect username or email")
}

func TestPublishLimits(t *testing.T) {
	ctx := context.Background()
	srv := setupMarket(t, false)
	_, session := srv.signup(t, "erin")

	_, err := session.Publish(ctx, publishRequest("Too expensive", 10001), picture())
	var apiErr *marketsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	list, err := srv.Client.ListOffers(ctx, marketsdk.ListOffersParams{})
	require.NoError(t, err)
	require.Zero(t, list.Count)
}

func TestUnauthenticatedMutations(t *testing.T) {
	ctx := context.Background()
	srv := setupMarket(t, false)

	_, err := srv.Client.NewSession("0123456789abcdef").DeleteOffer(ctx, "000000000000000000000000")
	requireAPIError(t, err, http.StatusUnauthorized, "Unauthorized")
}

func TestLegacyStatusCodes(t *testing.T) {
	ctx := context.Background()
	srv := setupMarket(t, true)

	got, err := srv.Client.GetOffer(ctx, "000000000000000000000000")
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = srv.Client.GetOffer(ctx, "nope")
	requireAPIError(t, err, http.StatusBadRequest, "Invalid offer id")
}

func TestHealth(t *testing.T) {
	ctx := context.Background()
	srv := setupMarket(t, false)

	live, err := srv.Client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "e2e", live.Version)

	ready, err := srv.Client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks["database"])
}
