package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/cs2hub/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func redline() models.SkinDraft {
	return models.SkinDraft{
		Name:       "AK-47 | Redline",
		Weapon:     "AK-47",
		Rarity:     models.RarityClassified,
		Wear:       "Field-Tested",
		Price:      15420,
		ImageURL:   "https://cdn.example/ak-redline.png",
		FloatValue: 0.28,
		OwnerName:  "s1mple",
	}
}

func asiimov() models.SkinDraft {
	return models.SkinDraft{
		Name:     "M4A4 | Asiimov",
		Weapon:   "M4A4",
		Rarity:   models.RarityCovert,
		Wear:     "Battle-Scarred",
		Price:    45890,
		Stickers: []string{"Katowice 2014", "Crown (Foil)"},
	}
}

func TestSkinLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id, err := store.CreateSkin(ctx, redline())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := store.GetSkin(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, redline().Skin(id), *got)

	updated := *got
	updated.Price = 16000
	updated.Stickers = []string{"iBUYPOWER (Holo)"}
	found, err := store.UpdateSkin(ctx, updated)
	require.NoError(t, err)
	assert.True(t, found)

	got, err = store.GetSkin(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, updated, *got)

	found, err = store.DeleteSkin(ctx, id)
	require.NoError(t, err)
	assert.True(t, found)

	skins, err := store.ListSkins(ctx, SkinQuery{})
	require.NoError(t, err)
	assert.Empty(t, skins)

	// Soft-deleted rows stay readable but cannot be updated or deleted again.
	got, err = store.GetSkin(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsAvailable)

	found, err = store.UpdateSkin(ctx, updated)
	require.NoError(t, err)
	assert.False(t, found)
	found, err = store.DeleteSkin(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCreateSkinDefaultsOwner(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id, err := store.CreateSkin(ctx, asiimov())
	require.NoError(t, err)
	got, err := store.GetSkin(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultOwner, got.OwnerName)
	assert.Equal(t, []string{"Katowice 2014", "Crown (Foil)"}, got.Stickers)
	assert.True(t, got.IsAvailable)
}

func TestGetSkinMissing(t *testing.T) {
	store := newTestStore(t)
	got, err := store.GetSkin(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestListSkinsFilters(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	awp := models.SkinDraft{Name: "AWP | Dragon Lore", Weapon: "AWP", Rarity: models.RarityCovert, Price: 980000}
	glock := models.SkinDraft{Name: "Glock-18 | Fade", Weapon: "Glock-18", Rarity: models.RarityRestricted, Price: 52000}
	for _, d := range []models.SkinDraft{redline(), asiimov(), awp, glock} {
		_, err := store.CreateSkin(ctx, d)
		require.NoError(t, err)
	}

	names := func(skins []models.Skin) []string {
		out := make([]string, len(skins))
		for i, sk := range skins {
			out[i] = sk.Name
		}
		return out
	}

	all, err := store.ListSkins(ctx, SkinQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"AWP | Dragon Lore", "Glock-18 | Fade", "M4A4 | Asiimov", "AK-47 | Redline"}, names(all))

	covert, err := store.ListSkins(ctx, SkinQuery{Rarity: models.RarityCovert})
	require.NoError(t, err)
	assert.Equal(t, []string{"AWP | Dragon Lore", "M4A4 | Asiimov"}, names(covert))

	byWeapon, err := store.ListSkins(ctx, SkinQuery{Weapon: "m4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"M4A4 | Asiimov"}, names(byWeapon))

	lo, hi := int64(20000), int64(60000)
	priced, err := store.ListSkins(ctx, SkinQuery{MinPrice: &lo, MaxPrice: &hi})
	require.NoError(t, err)
	assert.Equal(t, []string{"Glock-18 | Fade", "M4A4 | Asiimov"}, names(priced))

	wildcard, err := store.ListSkins(ctx, SkinQuery{Weapon: "%"})
	require.NoError(t, err)
	assert.Empty(t, wildcard, "LIKE wildcards in the filter are matched literally")
}

func TestTradeAcceptSwapsOwners(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	offered, err := store.CreateSkin(ctx, redline())
	require.NoError(t, err)
	requestedDraft := asiimov()
	requestedDraft.OwnerName = "niko"
	requested, err := store.CreateSkin(ctx, requestedDraft)
	require.NoError(t, err)

	tradeID, err := store.CreateTrade(ctx, models.TradeCreate{
		FromUser:        "s1mple",
		ToUser:          "niko",
		OfferedSkinID:   offered,
		RequestedSkinID: requested,
		Message:         "straight swap?",
	})
	require.NoError(t, err)

	pending, err := store.ListTrades(ctx, TradeQuery{User: "niko"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.TradePending, pending[0].Status)
	assert.Equal(t, "AK-47 | Redline", pending[0].OfferedSkinName)
	assert.Equal(t, int64(45890), pending[0].RequestedPrice)

	found, err := store.UpdateTradeStatus(ctx, tradeID, models.TradeAccepted)
	require.NoError(t, err)
	assert.True(t, found)

	a, err := store.GetSkin(ctx, offered)
	require.NoError(t, err)
	b, err := store.GetSkin(ctx, requested)
	require.NoError(t, err)
	assert.Equal(t, "niko", a.OwnerName)
	assert.Equal(t, "s1mple", b.OwnerName)

	pending, err = store.ListTrades(ctx, TradeQuery{})
	require.NoError(t, err)
	assert.Empty(t, pending)

	accepted, err := store.ListTrades(ctx, TradeQuery{Status: models.TradeAccepted})
	require.NoError(t, err)
	assert.Len(t, accepted, 1)
}

func TestTradeRejectKeepsOwners(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	offered, err := store.CreateSkin(ctx, redline())
	require.NoError(t, err)
	requested, err := store.CreateSkin(ctx, asiimov())
	require.NoError(t, err)
	tradeID, err := store.CreateTrade(ctx, models.TradeCreate{
		FromUser: "s1mple", ToUser: "Admin", OfferedSkinID: offered, RequestedSkinID: requested,
	})
	require.NoError(t, err)

	found, err := store.UpdateTradeStatus(ctx, tradeID, models.TradeRejected)
	require.NoError(t, err)
	assert.True(t, found)

	a, err := store.GetSkin(ctx, offered)
	require.NoError(t, err)
	assert.Equal(t, "s1mple", a.OwnerName)

	found, err = store.UpdateTradeStatus(ctx, "missing", models.TradeRejected)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCreateTradeUnknownSkin(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	offered, err := store.CreateSkin(ctx, redline())
	require.NoError(t, err)
	_, err = store.CreateTrade(ctx, models.TradeCreate{
		FromUser: "a", ToUser: "b", OfferedSkinID: offered, RequestedSkinID: "ghost",
	})
	assert.ErrorIs(t, err, ErrUnknownSkin)
}

func TestServers(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.BulkCreateServers(ctx, []models.GameServer{
		{ID: "1", Name: "RU AWP Only Server", IP: "185.25.118.45", Port: "27015", Map: "de_dust2", Players: 28, MaxPlayers: 32, Status: models.ServerOnline, Rating: 4.8},
		{ID: "2", Name: "Competitive 128 Tick", IP: "92.63.197.102", Port: "27016", Map: "de_mirage", Players: 32, MaxPlayers: 32, Status: models.ServerOnline, Rating: 4.9},
	})
	require.NoError(t, err)

	servers, err := store.GetServers(ctx)
	require.NoError(t, err)
	require.Len(t, servers, 2)
	assert.Equal(t, "Competitive 128 Tick", servers[0].Name)
	assert.Equal(t, "185.25.118.45:27015", servers[1].Address())
}

func TestBulkCreateSkins(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.BulkCreateSkins(ctx, []models.Skin{
		redline().Skin(""),
		asiimov().Skin("fixed-id"),
	})
	require.NoError(t, err)

	skins, err := store.ListSkins(ctx, SkinQuery{})
	require.NoError(t, err)
	require.Len(t, skins, 2)
	assert.Equal(t, "fixed-id", skins[0].ID)
	assert.NotEmpty(t, skins[1].ID)
}
