package handlers

import (
	"fmt"
	"strings"

	"github.com/TheSilent01/ryanair-bot/internal/database"
	"github.com/TheSilent01/ryanair-bot/internal/fares"
)

// maxListedFares bounds the date-sorted listing in the /prices reply.
const maxListedFares = 15

func welcomeMessage(origin, destination string, lowest *fares.Fare) string {
	priceInfo := "💰 Checking prices..."
	if lowest != nil {
		priceInfo = fmt.Sprintf("💰 *Current lowest:* `%.2f %s`\n📅 %s (%s)",
			lowest.Price, lowest.Currency, lowest.Date, lowest.Weekday())
	}

	return fmt.Sprintf(`╔══════════════════════════════╗
       ✈️  *RYANAIR FLIGHTS*  ✈️
╚══════════════════════════════╝

🛫 *%s*  ──────►  *%s* 🛬

%s

┌─────────────────────────────┐
│       📋 *COMMANDS*         │
├─────────────────────────────┤
│ /prices  → All prices       │
│ /lowest  → Best deal        │
│ /stats   → Statistics       │
│ /alert   → Price alert      │
│ /myalert → Check alert      │
│ /help    → This menu        │
└─────────────────────────────┘`, origin, destination, priceInfo)
}

func pricesMessage(window []fares.Fare, origin, destination string) string {
	lowest := window[0]

	var b strings.Builder
	fmt.Fprintf(&b, "╔══════════════════════════════╗\n")
	fmt.Fprintf(&b, "    ✈️ *%s → %s* ✈️\n", origin, destination)
	fmt.Fprintf(&b, "╚══════════════════════════════╝\n\n")

	fmt.Fprintf(&b, "🏆 *BEST PRICE:* `%.2f %s`\n", lowest.Price, lowest.Currency)
	fmt.Fprintf(&b, "📅 %s (%s)\n", lowest.Date, lowest.WeekdayShort())
	if lowest.Departure != "" {
		fmt.Fprintf(&b, "🕐 %s → %s\n", lowest.Departure, lowest.Arrival)
	}
	b.WriteString("\n┌─────────────────────────────┐\n")
	b.WriteString("│    📊 *ALL FLIGHTS*         │\n")
	b.WriteString("└─────────────────────────────┘\n\n")

	listed := window
	if len(listed) > maxListedFares {
		listed = listed[:maxListedFares]
	}
	for _, f := range fares.SortByDate(listed) {
		marker := "⚪"
		if f.Price == lowest.Price {
			marker = "🟢"
		}
		fmt.Fprintf(&b, "%s `%s` %s %s │ *%.0f %s*\n",
			marker, f.Date, f.WeekdayShort(), f.Departure, f.Price, f.Currency)
	}

	if len(window) > maxListedFares {
		fmt.Fprintf(&b, "\n_+%d more dates available_\n", len(window)-maxListedFares)
	}

	b.WriteString("\n🟢 = Lowest price")
	return b.String()
}

func lowestMessage(f *fares.Fare, origin, destination string) string {
	return fmt.Sprintf(`╔══════════════════════════════╗
     🏆 *BEST DEAL FOUND!* 🏆
╚══════════════════════════════╝

🛫 *%s* → *%s*

┌─────────────────────────────┐
│  💰 *%.2f %s*
│  📅 %s
│  📆 %s
└─────────────────────────────┘

💡 _Set alert with:_ `+"`/alert %d`",
		origin, destination, f.Price, f.Currency, f.Date, f.Weekday(), int(f.Price-10))
}

func alertSetMessage(target float64, lowest *fares.Fare, origin, destination string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `╔══════════════════════════════╗
     ✅ *ALERT ACTIVATED!* ✅
╚══════════════════════════════╝

🎯 Target: *≤ %.0f*
🛫 %s → %s
`, target, origin, destination)

	if lowest != nil {
		if lowest.Price <= target {
			fmt.Fprintf(&b, "\n🎉 *GOOD NEWS!* Current lowest price is already at your target!\n💰 Current: *%.2f %s* on %s\n",
				lowest.Price, lowest.Currency, lowest.Date)
		} else {
			fmt.Fprintf(&b, "\n💰 Current lowest: *%.2f %s*\n📉 Difference: *%.2f %s* to go\n",
				lowest.Price, lowest.Currency, lowest.Price-target, lowest.Currency)
		}
	}

	b.WriteString("\n💡 I'll notify you when the price drops to your target!")
	return b.String()
}

func myAlertMessage(alert *database.Alert, lowest *fares.Fare, origin, destination string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `╔══════════════════════════════╗
       🔔 *YOUR ALERT* 🔔
╚══════════════════════════════╝

🎯 Target: *≤ %.0f*
🛫 %s → %s
✅ Status: *Active*
`, alert.TargetPrice, origin, destination)

	if lowest != nil {
		status := fmt.Sprintf("⏳ Waiting for a %.2f %s drop", lowest.Price-alert.TargetPrice, lowest.Currency)
		if lowest.Price <= alert.TargetPrice {
			status = "🎉 Price is at your target!"
		}
		fmt.Fprintf(&b, "\n💰 Current lowest: *%.2f %s*\n%s\n", lowest.Price, lowest.Currency, status)
	}

	return b.String()
}

func statsMessage(st *fares.Stats, trend []database.PriceSnapshot, days int, origin, destination string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `╔══════════════════════════════╗
      📈 *PRICE STATISTICS* 📈
╚══════════════════════════════╝

🛫 %s → %s (next %d days)

`, origin, destination, days)

	fmt.Fprintf(&b, "▼ Low:  *%.2f %s*\n", st.Min, st.Currency)
	fmt.Fprintf(&b, "▲ High: *%.2f %s*\n", st.Max, st.Currency)
	fmt.Fprintf(&b, "◆ Avg:  *%.2f %s*\n\n", st.Avg, st.Currency)
	fmt.Fprintf(&b, "✈️ Flights: *%d*\n", st.Count)
	fmt.Fprintf(&b, "🏆 Best day: `%s`\n", st.BestDate)

	if len(trend) > 0 {
		b.WriteString("\n🕐 *Recent checks:*\n")
		for _, snap := range trend {
			fmt.Fprintf(&b, "• %s │ *%.2f %s* (for %s)\n",
				snap.CheckedAt.Format("Jan 02 15:04"), snap.Price, snap.Currency, snap.FareDate)
		}
	}

	return b.String()
}
