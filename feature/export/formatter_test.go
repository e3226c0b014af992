package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func saleList() List {
	return List{
		SellerName: "Ana",
		Items: []Item{
			{
				Name:          "Azul",
				Price:         150,
				Condition:     ptr("like_new"),
				YearPublished: ptr(2017),
				MinPlayers:    ptr(2),
				MaxPlayers:    ptr(4),
				PlayingTime:   ptr(45),
			},
			{Name: "Coup", Price: 40},
		},
		TotalPrice: 190,
	}
}

func TestFormatWhatsApp(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	text, err := Format(ChannelWhatsApp, saleList(), now)

	require.NoError(t, err)
	assert.Contains(t, text, "🎲 *SALE LIST - ANA*")
	assert.Contains(t, text, "📦 *Azul*")
	assert.Contains(t, text, "💰 Price: *R$ 150.00*")
	assert.Contains(t, text, "📊 Condition: 🌟 LIKE_NEW")
	assert.Contains(t, text, "👥 Players: 2-4")
	assert.Contains(t, text, "⏱️ Time: 45 min")
	assert.Contains(t, text, "💵 *TOTAL: R$ 190.00*")
	assert.Contains(t, text, "📅 Generated at: 15/03/2025 14:30")
	// No discount block without a discount.
	assert.NotContains(t, text, "TOTAL WITH DISCOUNT")
}

func TestFormatWhatsAppDiscount(t *testing.T) {
	l := saleList()
	l.DiscountPercentage = ptr(10.0)

	text, err := Format(ChannelWhatsApp, l, time.Now())

	require.NoError(t, err)
	assert.Contains(t, text, "🎁 *Bundle discount: 10%*")
	assert.Contains(t, text, "💎 *TOTAL WITH DISCOUNT: R$ 171.00*")
}

func TestFormatWhatsAppOmitsMissingFields(t *testing.T) {
	l := List{SellerName: "Ana", Items: []Item{{Name: "Coup", Price: 40}}, TotalPrice: 40}

	text, err := Format(ChannelWhatsApp, l, time.Now())

	require.NoError(t, err)
	assert.NotContains(t, text, "Condition:")
	assert.NotContains(t, text, "Year:")
	assert.NotContains(t, text, "Players:")
	assert.NotContains(t, text, "Contact:")
	assert.NotContains(t, text, "Shipping:")
}

func TestFormatInstagram(t *testing.T) {
	l := saleList()
	l.ListURL = ptr("https://example.com/list/1")

	text, err := Format(ChannelInstagram, l, time.Now())

	require.NoError(t, err)
	assert.Contains(t, text, "🎲 SALE LIST - Ana")
	assert.Contains(t, text, "🔗 Link in bio: https://example.com/list/1")
	assert.Contains(t, text, "#boardgames")
}

func TestFormatFacebookNumbersItems(t *testing.T) {
	text, err := Format(ChannelFacebook, saleList(), time.Now())

	require.NoError(t, err)
	assert.Contains(t, text, "1. Azul - R$ 150.00")
	assert.Contains(t, text, "2. Coup - R$ 40.00")
	assert.Contains(t, text, "💰 Total: R$ 190.00")
}

func TestFormatEmailGreeting(t *testing.T) {
	l := saleList()

	text, err := Format(ChannelEmail, l, time.Now())
	require.NoError(t, err)
	assert.Contains(t, text, "Hello,\n")

	l.BuyerName = ptr("Bruno")
	text, err = Format(ChannelEmail, l, time.Now())
	require.NoError(t, err)
	assert.Contains(t, text, "Hello Bruno,")
	assert.Contains(t, text, "sale list from Ana")
}

func TestFormatUnknownChannel(t *testing.T) {
	_, err := Format(Channel("telegram"), saleList(), time.Now())

	assert.ErrorIs(t, err, ErrUnknownChannel)
}

func TestDiscountedTotal(t *testing.T) {
	l := List{TotalPrice: 200}
	assert.Equal(t, 200.0, l.DiscountedTotal())

	l.DiscountPercentage = ptr(25.0)
	assert.Equal(t, 150.0, l.DiscountedTotal())

	l.DiscountPercentage = ptr(0.0)
	assert.Equal(t, 200.0, l.DiscountedTotal())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))
	long := make([]rune, 0, 150)
	for i := 0; i < 150; i++ {
		long = append(long, 'a')
	}
	assert.Len(t, []rune(truncate(string(long), 100)), 100)
}
