package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	authmodels "collection-manager/feature/auth/models"
	"collection-manager/feature/collection/models"
)

// ErrNothingForSale is returned when the caller has no priced games
// marked for sale.
var ErrNothingForSale = errors.New("no games marked for sale")

// Options carries the caller-supplied fields of an export request.
type Options struct {
	DiscountPercentage *float64 `json:"discount_percentage"`
	Contact            *string  `json:"contact"`
	Location           *string  `json:"location"`
	ShippingInfo       *string  `json:"shipping_info"`
	ListURL            *string  `json:"list_url"`
	BuyerName          *string  `json:"buyer_name"`
}

// Rendered is the response of an export.
type Rendered struct {
	Channel    Channel `json:"channel"`
	Text       string  `json:"text"`
	ItemCount  int     `json:"item_count"`
	TotalPrice float64 `json:"total_price"`
}

// Service builds sale lists from the caller's collection and renders
// them per channel.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates the export service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Render builds the caller's sale list and formats it for the channel.
// Only games marked for sale with a price make the list.
func (s *Service) Render(ctx context.Context, userID uint, channel Channel, opts Options) (*Rendered, error) {
	list, err := s.buildList(ctx, userID, opts)
	if err != nil {
		return nil, err
	}

	text, err := Format(channel, *list, time.Now())
	if err != nil {
		return nil, err
	}

	return &Rendered{
		Channel:    channel,
		Text:       text,
		ItemCount:  len(list.Items),
		TotalPrice: list.TotalPrice,
	}, nil
}

func (s *Service) buildList(ctx context.Context, userID uint, opts Options) (*List, error) {
	var user authmodels.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("loading seller: %w", err)
	}

	var games []models.Game
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_for_sale = ? AND price IS NOT NULL", userID, true).
		Order("(sequence_order IS NULL) ASC, sequence_order ASC").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("loading games for sale: %w", err)
	}
	if len(games) == 0 {
		return nil, ErrNothingForSale
	}

	seller := user.Username
	if user.FullName != nil && *user.FullName != "" {
		seller = *user.FullName
	}

	list := List{
		SellerName:         seller,
		DiscountPercentage: opts.DiscountPercentage,
		Contact:            opts.Contact,
		Location:           opts.Location,
		ShippingInfo:       opts.ShippingInfo,
		ListURL:            opts.ListURL,
		BuyerName:          opts.BuyerName,
	}
	for _, g := range games {
		item := Item{
			Name:          g.Name,
			Price:         *g.Price,
			Condition:     g.Condition,
			YearPublished: g.YearPublished,
			MinPlayers:    g.MinPlayers,
			MaxPlayers:    g.MaxPlayers,
			PlayingTime:   g.MaxPlaytime,
			Description:   g.Description,
		}
		if item.PlayingTime == nil {
			item.PlayingTime = g.MinPlaytime
		}
		list.Items = append(list.Items, item)
		list.TotalPrice += item.Price
	}

	return &list, nil
}
