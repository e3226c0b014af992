package cached

import (
	"context"
	"testing"
	"time"

	"collection-manager/feature/catalog"
	"collection-manager/feature/catalog/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearchPassThroughWithoutCache(t *testing.T) {
	inner := new(mocks.Client)
	inner.On("Search", mock.Anything, "catan", 5).
		Return([]catalog.Game{{RemoteID: 13, Name: "Catan"}}, nil).Twice()

	// Nil cache: every call reaches the inner client.
	client := Wrap(inner, nil, time.Minute)

	for i := 0; i < 2; i++ {
		games, err := client.Search(context.Background(), "catan", 5)
		require.NoError(t, err)
		require.Len(t, games, 1)
		assert.Equal(t, "Catan", games[0].Name)
	}
	inner.AssertExpectations(t)
}

func TestDelegates(t *testing.T) {
	inner := new(mocks.Client)
	inner.Src = catalog.SourceLudopedia
	detail := &catalog.Game{RemoteID: 900, Name: "Azul"}
	inner.On("FetchDetails", mock.Anything, int64(900), "tok").Return(detail, nil)
	inner.On("FetchUserCollection", mock.Anything, "tok").Return([]catalog.Game{*detail}, nil)

	client := Wrap(inner, nil, time.Minute)
	assert.Equal(t, catalog.SourceLudopedia, client.Source())

	got, err := client.FetchDetails(context.Background(), 900, "tok")
	require.NoError(t, err)
	assert.Equal(t, detail, got)

	coll, err := client.FetchUserCollection(context.Background(), "tok")
	require.NoError(t, err)
	assert.Len(t, coll, 1)
}
