package bgg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"collection-manager/feature/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() catalog.Config {
	return catalog.Config{RequestDelayMS: 1, TimeoutSeconds: 5}
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "catan", r.URL.Query().Get("query"))
		w.Write([]byte(`<?xml version="1.0" encoding="utf-8"?>
			<items>
				<item type="boardgame" id="13">
					<name type="primary" value="Catan"/>
					<yearpublished value="1995"/>
				</item>
				<item type="boardgameexpansion" id="926">
					<name type="primary" value="Catan: Seafarers"/>
					<yearpublished value="1997"/>
				</item>
				<item type="boardgame" id="999">
					<name type="primary" value="Over Limit"/>
				</item>
			</items>`))
	}))
	defer srv.Close()

	client := NewWithBaseURL(srv.URL, testConfig(), zap.NewNop())
	games, err := client.Search(context.Background(), "catan", 2)
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, int64(13), games[0].RemoteID)
	assert.Equal(t, "Catan", games[0].Name)
	assert.Equal(t, catalog.KindBase, games[0].Kind)
	require.NotNil(t, games[0].YearPublished)
	assert.Equal(t, 1995, *games[0].YearPublished)

	assert.Equal(t, catalog.KindExpansion, games[1].Kind)
}

func TestFetchDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/thing", r.URL.Path)
		assert.Equal(t, "13", r.URL.Query().Get("id"))
		w.Write([]byte(`<?xml version="1.0" encoding="utf-8"?>
			<items>
				<item type="boardgame" id="13">
					<name type="primary" value="Catan"/>
					<name type="alternate" value="Die Siedler von Catan"/>
					<description>Trade, build, settle.</description>
					<image>https://example.com/catan.jpg</image>
					<yearpublished value="1995"/>
					<minplayers value="3"/>
					<maxplayers value="4"/>
					<minplaytime value="60"/>
					<maxplaytime value="120"/>
					<minage value="10"/>
					<statistics>
						<ratings>
							<average value="7.123"/>
							<averageweight value="2.316"/>
							<ranks>
								<rank type="subtype" name="boardgame" value="432"/>
							</ranks>
						</ratings>
					</statistics>
				</item>
			</items>`))
	}))
	defer srv.Close()

	client := NewWithBaseURL(srv.URL, testConfig(), zap.NewNop())
	game, err := client.FetchDetails(context.Background(), 13, "")
	require.NoError(t, err)
	require.NotNil(t, game)

	assert.Equal(t, "Catan", game.Name)
	require.NotNil(t, game.Description)
	assert.Equal(t, "Trade, build, settle.", *game.Description)
	require.NotNil(t, game.Rating)
	assert.Equal(t, 7.12, *game.Rating)
	require.NotNil(t, game.Weight)
	assert.Equal(t, 2.32, *game.Weight)
	require.NotNil(t, game.RankPosition)
	assert.Equal(t, 432, *game.RankPosition)
	require.NotNil(t, game.MinPlayers)
	assert.Equal(t, 3, *game.MinPlayers)
	require.NotNil(t, game.MinAge)
	assert.Equal(t, 10, *game.MinAge)
}

func TestFetchDetailsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0" encoding="utf-8"?><items></items>`))
	}))
	defer srv.Close()

	client := NewWithBaseURL(srv.URL, testConfig(), zap.NewNop())
	game, err := client.FetchDetails(context.Background(), 404404, "")
	require.NoError(t, err)
	assert.Nil(t, game)
}

func TestFetchUserCollection(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collection", r.URL.Path)
		assert.Equal(t, "meeple", r.URL.Query().Get("username"))
		assert.Equal(t, "1", r.URL.Query().Get("own"))

		// First response is the async "queued" answer.
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		w.Write([]byte(`<?xml version="1.0" encoding="utf-8"?>
			<items totalitems="2">
				<item objecttype="thing" objectid="13" subtype="boardgame">
					<name sortindex="1">Catan</name>
					<yearpublished>1995</yearpublished>
					<image>https://example.com/catan.jpg</image>
					<stats minplayers="3" maxplayers="4" minplaytime="60" maxplaytime="120">
						<rating value="N/A">
							<average value="7.1"/>
						</rating>
					</stats>
				</item>
				<item objecttype="thing" objectid="926" subtype="boardgameexpansion">
					<name sortindex="1">Catan: Seafarers</name>
					<yearpublished>1997</yearpublished>
				</item>
			</items>`))
	}))
	defer srv.Close()

	client := NewWithBaseURL(srv.URL, testConfig(), zap.NewNop())
	games, err := client.FetchUserCollection(context.Background(), "meeple")
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.GreaterOrEqual(t, calls.Load(), int32(2))

	assert.Equal(t, int64(13), games[0].RemoteID)
	assert.Equal(t, "Catan", games[0].Name)
	require.NotNil(t, games[0].MinPlayers)
	assert.Equal(t, 3, *games[0].MinPlayers)
	require.NotNil(t, games[0].Rating)
	assert.Equal(t, 7.1, *games[0].Rating)
	require.NotNil(t, games[0].SequenceOrder)
	assert.Equal(t, 0, *games[0].SequenceOrder)

	assert.Equal(t, catalog.KindExpansion, games[1].Kind)
	require.NotNil(t, games[1].SequenceOrder)
	assert.Equal(t, 1, *games[1].SequenceOrder)
}

func TestFetchUserCollectionMissingUsername(t *testing.T) {
	client := NewWithBaseURL("http://unused", testConfig(), zap.NewNop())
	_, err := client.FetchUserCollection(context.Background(), "  ")
	assert.ErrorIs(t, err, catalog.ErrUnauthorized)
}

func TestServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewWithBaseURL(srv.URL, testConfig(), zap.NewNop())
	_, err := client.Search(context.Background(), "catan", 5)
	assert.ErrorIs(t, err, catalog.ErrUnavailable)
}
