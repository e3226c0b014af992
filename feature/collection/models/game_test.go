package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"collection-manager/feature/catalog"
)

func ptr[T any](v T) *T { return &v }

func TestApplyRemotePreservesLocalFields(t *testing.T) {
	g := Game{
		UserID:        1,
		Name:          "Azul",
		IsForTrade:    true,
		IsForSale:     true,
		Condition:     ptr("like new"),
		Price:         ptr(150.0),
		PurchasePrice: ptr(120.0),
		Notes:         ptr("gift from Ana"),
		Rating:        ptr(7.0),
	}

	g.ApplyRemote(catalog.Game{
		RemoteID:      42,
		Name:          "Azul (2017)",
		Kind:          catalog.KindBase,
		Rating:        ptr(7.8),
		PurchasePrice: ptr(99.0),
	})

	assert.Equal(t, "Azul (2017)", g.Name)
	assert.Equal(t, 7.8, *g.Rating)
	assert.Equal(t, 99.0, *g.PurchasePrice)

	assert.True(t, g.IsForTrade)
	assert.True(t, g.IsForSale)
	assert.Equal(t, "like new", *g.Condition)
	assert.Equal(t, 150.0, *g.Price)
	assert.Equal(t, "gift from Ana", *g.Notes)
}

func TestApplyRemoteClearsAbsentRemoteFields(t *testing.T) {
	g := Game{Name: "Root", Weight: ptr(3.7), RankingPosition: ptr(30)}

	g.ApplyRemote(catalog.Game{RemoteID: 1, Name: "Root"})

	assert.Nil(t, g.Weight)
	assert.Nil(t, g.RankingPosition)
}

func TestNewFromRemote(t *testing.T) {
	g := NewFromRemote(7, catalog.SourceBGG, catalog.Game{
		RemoteID: 174430,
		Name:     "Gloomhaven",
		Kind:     catalog.KindBase,
	})

	assert.Equal(t, uint(7), g.UserID)
	assert.Equal(t, int64(174430), *g.BGGID)
	assert.Nil(t, g.LudopediaID)
	assert.Equal(t, GameTypeBase, g.GameType)
	assert.False(t, g.IsForTrade)
	assert.False(t, g.IsForSale)
}

func TestRemoteIDPerSource(t *testing.T) {
	g := Game{}
	g.SetRemoteID(catalog.SourceLudopedia, 9)

	assert.Equal(t, int64(9), *g.RemoteID(catalog.SourceLudopedia))
	assert.Nil(t, g.RemoteID(catalog.SourceBGG))
	assert.Nil(t, g.RemoteID(catalog.Source("unknown")))
}

func TestGameTypeFromKind(t *testing.T) {
	assert.Equal(t, GameTypeExpansion, GameTypeFromKind(catalog.KindExpansion))
	assert.Equal(t, GameTypeBase, GameTypeFromKind(catalog.KindBase))
	assert.Equal(t, GameTypeBase, GameTypeFromKind(catalog.Kind("")))
}
