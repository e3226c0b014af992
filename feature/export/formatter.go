package export

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Channel is an output format for a sale list.
type Channel string

const (
	ChannelWhatsApp  Channel = "whatsapp"
	ChannelInstagram Channel = "instagram"
	ChannelFacebook  Channel = "facebook"
	ChannelEmail     Channel = "email"
)

// Valid reports whether c names a known channel.
func (c Channel) Valid() bool {
	switch c {
	case ChannelWhatsApp, ChannelInstagram, ChannelFacebook, ChannelEmail:
		return true
	}
	return false
}

// ErrUnknownChannel is returned for channels Format does not know.
var ErrUnknownChannel = errors.New("unknown export channel")

// Item is one game on a sale list.
type Item struct {
	Name          string
	Price         float64
	Condition     *string
	YearPublished *int
	MinPlayers    *int
	MaxPlayers    *int
	PlayingTime   *int
	Description   *string
}

// List is the input of every formatter. Optional fields are skipped in
// the output when nil.
type List struct {
	SellerName         string
	Items              []Item
	TotalPrice         float64
	DiscountPercentage *float64
	Contact            *string
	Location           *string
	ShippingInfo       *string
	ListURL            *string
	BuyerName          *string
}

// DiscountedTotal applies the bundle discount to the total price.
func (l List) DiscountedTotal() float64 {
	if l.DiscountPercentage == nil || *l.DiscountPercentage <= 0 {
		return l.TotalPrice
	}
	return l.TotalPrice * (1 - *l.DiscountPercentage/100)
}

const separator = "━━━━━━━━━━━━━━━━━━━━━━"

var conditionEmoji = map[string]string{
	"new":      "✨",
	"like_new": "🌟",
	"good":     "👍",
	"fair":     "⚡",
}

// Format renders the list for one channel. now stamps the generated-at
// footer where the channel carries one.
func Format(channel Channel, l List, now time.Time) (string, error) {
	switch channel {
	case ChannelWhatsApp:
		return formatWhatsApp(l, now), nil
	case ChannelInstagram:
		return formatInstagram(l), nil
	case ChannelFacebook:
		return formatFacebook(l), nil
	case ChannelEmail:
		return formatEmail(l), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
	}
}

func formatWhatsApp(l List, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎲 *SALE LIST - %s*\n\n", strings.ToUpper(l.SellerName))
	b.WriteString(separator + "\n\n")

	for _, item := range l.Items {
		fmt.Fprintf(&b, "📦 *%s*\n", item.Name)
		fmt.Fprintf(&b, "💰 Price: *R$ %.2f*\n", item.Price)

		if item.Condition != nil {
			emoji, ok := conditionEmoji[*item.Condition]
			if !ok {
				emoji = "📦"
			}
			fmt.Fprintf(&b, "📊 Condition: %s %s\n", emoji, strings.ToUpper(*item.Condition))
		}
		if item.YearPublished != nil {
			fmt.Fprintf(&b, "📅 Year: %d\n", *item.YearPublished)
		}
		if item.MinPlayers != nil && item.MaxPlayers != nil {
			fmt.Fprintf(&b, "👥 Players: %d-%d\n", *item.MinPlayers, *item.MaxPlayers)
		}
		if item.PlayingTime != nil {
			fmt.Fprintf(&b, "⏱️ Time: %d min\n", *item.PlayingTime)
		}
		if item.Description != nil {
			fmt.Fprintf(&b, "📝 %s...\n", truncate(*item.Description, 100))
		}

		b.WriteString("\n" + separator + "\n\n")
	}

	fmt.Fprintf(&b, "💵 *TOTAL: R$ %.2f*\n", l.TotalPrice)
	if l.DiscountPercentage != nil && *l.DiscountPercentage > 0 {
		fmt.Fprintf(&b, "🎁 *Bundle discount: %g%%*\n", *l.DiscountPercentage)
		fmt.Fprintf(&b, "💎 *TOTAL WITH DISCOUNT: R$ %.2f*\n", l.DiscountedTotal())
	}

	b.WriteString("\n" + separator + "\n\n")

	if l.Contact != nil {
		fmt.Fprintf(&b, "📞 *Contact:* %s\n", *l.Contact)
	}
	if l.Location != nil {
		fmt.Fprintf(&b, "📍 *Location:* %s\n", *l.Location)
	}
	if l.ShippingInfo != nil {
		fmt.Fprintf(&b, "🚚 *Shipping:* %s\n", *l.ShippingInfo)
	}
	if l.ListURL != nil {
		fmt.Fprintf(&b, "\n🔗 *Full list:* %s\n", *l.ListURL)
	}

	b.WriteString("\n" + separator + "\n")
	fmt.Fprintf(&b, "\n📅 Generated at: %s\n", now.Format("02/01/2006 15:04"))

	return b.String()
}

func formatInstagram(l List) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎲 SALE LIST - %s\n\n", l.SellerName)

	for _, item := range l.Items {
		fmt.Fprintf(&b, "📦 %s\n", item.Name)
		fmt.Fprintf(&b, "💰 R$ %.2f\n", item.Price)
		if item.Condition != nil {
			fmt.Fprintf(&b, "📊 %s\n", strings.ToUpper(*item.Condition))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "💵 TOTAL: R$ %.2f\n\n", l.TotalPrice)
	if l.ListURL != nil {
		fmt.Fprintf(&b, "🔗 Link in bio: %s\n\n", *l.ListURL)
	}
	b.WriteString("#boardgames #tabletop #sale #collection")

	return b.String()
}

func formatFacebook(l List) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎲 Sale List - %s\n\n", l.SellerName)
	b.WriteString("Check out the board games available:\n\n")

	for i, item := range l.Items {
		fmt.Fprintf(&b, "%d. %s - R$ %.2f\n", i+1, item.Name, item.Price)
		if item.Condition != nil {
			fmt.Fprintf(&b, "   Condition: %s\n", strings.ToUpper(*item.Condition))
		}
	}

	fmt.Fprintf(&b, "\n💰 Total: R$ %.2f\n", l.TotalPrice)
	if l.ListURL != nil {
		fmt.Fprintf(&b, "\n🔗 See details: %s\n", *l.ListURL)
	}

	return b.String()
}

func formatEmail(l List) string {
	greeting := "Hello,"
	if l.BuyerName != nil && *l.BuyerName != "" {
		greeting = fmt.Sprintf("Hello %s,", *l.BuyerName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nYou are receiving the sale list from %s:\n\n", greeting, l.SellerName)

	for i, item := range l.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Name)
		fmt.Fprintf(&b, "   Price: R$ %.2f\n", item.Price)
		if item.Condition != nil {
			fmt.Fprintf(&b, "   Condition: %s\n", strings.ToUpper(*item.Condition))
		}
		if item.Description != nil {
			fmt.Fprintf(&b, "   Description: %s\n", *item.Description)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Total: R$ %.2f\n\n", l.TotalPrice)
	b.WriteString("Best regards,\nThe Collection Manager team")

	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
