package mocks

import (
	"context"

	"collection-manager/feature/catalog"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of catalog.Client
type Client struct {
	mock.Mock

	// Src is returned by Source(); defaults to catalog.SourceBGG.
	Src catalog.Source
}

func (m *Client) Source() catalog.Source {
	if m.Src == "" {
		return catalog.SourceBGG
	}
	return m.Src
}

func (m *Client) Search(ctx context.Context, query string, limit int) ([]catalog.Game, error) {
	args := m.Called(ctx, query, limit)
	if games, ok := args.Get(0).([]catalog.Game); ok {
		return games, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) FetchDetails(ctx context.Context, remoteID int64, credential string) (*catalog.Game, error) {
	args := m.Called(ctx, remoteID, credential)
	if game, ok := args.Get(0).(*catalog.Game); ok {
		return game, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) FetchUserCollection(ctx context.Context, credential string) ([]catalog.Game, error) {
	args := m.Called(ctx, credential)
	if games, ok := args.Get(0).([]catalog.Game); ok {
		return games, args.Error(1)
	}
	return nil, args.Error(1)
}
