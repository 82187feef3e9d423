package service

import (
	"fmt"
	"strings"
	"time"

	"signal_bot/internal/models"
)

func welcomeText(firstName, botName string) string {
	return fmt.Sprintf(
		"🤖 Welcome to Trade2Retire AI Assistant, %s!\n\n"+
			"I'm your intelligent 24/7 trading companion powered by advanced AI.\n\n"+
			"What I Can Do:\n"+
			"✅ Answer trading questions instantly\n"+
			"✅ Track and analyze signals automatically\n"+
			"✅ Calculate risk and position sizes\n"+
			"✅ Remember our conversations\n\n"+
			"📱 In private chat: just message me anything!\n"+
			"👥 In groups: mention me @%s, reply to my messages or use commands.\n\n"+
			"Quick start:\n"+
			"/signals - View active signals\n"+
			"/help - See all commands\n"+
			"/stats - Your statistics\n\n"+
			"Ready to elevate your trading? Ask me anything! 🚀",
		firstName, botName)
}

func helpText(botName string) string {
	return fmt.Sprintf(
		"🔧 Trade2Retire AI Assistant - Commands\n\n"+
			"📊 Signals:\n"+
			"/signals - All active trading signals\n"+
			"/closed - Recently closed signals\n"+
			"/performance - Win rate & stats\n\n"+
			"👤 Personal:\n"+
			"/stats - Your usage statistics\n\n"+
			"💬 Natural conversation:\n"+
			"Just talk to me! Ask things like:\n"+
			"• \"What's happening with EURUSD?\"\n"+
			"• \"Calculate lot size for $500 account\"\n"+
			"• \"Should I enter this trade?\"\n\n"+
			"👥 In groups mention me: @%s", botName)
}

const noSignalsText = "📭 No Active Signals\n\n" +
	"All signals are currently closed or no new signals have been posted.\n\n" +
	"💡 Signals are automatically tracked from the channel!\n" +
	"⏰ Check back soon."

func quickGuideText(botName string) string {
	return fmt.Sprintf(
		"📚 Quick Trading Guide\n\n"+
			"1️⃣ Check /signals for active trades\n"+
			"2️⃣ Ask questions in natural language\n"+
			"3️⃣ Get instant FAQ responses\n"+
			"4️⃣ Receive AI-powered analysis\n\n"+
			"In groups: mention @%s or reply to my messages.\n\n"+
			"Start by asking me anything! 🚀", botName)
}

const howToUseText = "💡 How to Use Me Effectively\n\n" +
	"✅ Be specific in questions\n" +
	"✅ Ask about signal rationale\n" +
	"✅ Request risk calculations\n\n" +
	"Example questions:\n" +
	"• \"Analyze the GBPUSD signal\"\n" +
	"• \"Calculate lot size for $1000, 2% risk\"\n" +
	"• \"What's the status of today's trades?\"\n\n" +
	"I understand context and remember our chat. 😊"

func formatActiveSignals(active []*models.Signal, closed []models.Signal) string {
	var b strings.Builder
	b.WriteString("📊 *ACTIVE TRADING SIGNALS*\n")
	b.WriteString(strings.Repeat("=", 30) + "\n\n")

	for _, s := range active {
		emoji := "⚪"
		statusText := "Pending Entry"
		if s.CurrentProfit > 0 {
			emoji = "🟢"
			statusText = fmt.Sprintf("+%.1f pips", s.CurrentProfit)
		} else if s.CurrentProfit < 0 {
			emoji = "🔴"
			statusText = fmt.Sprintf("%.1f pips", s.CurrentProfit)
		}

		fmt.Fprintf(&b, "%s *%s*\n", emoji, s.Instrument)
		fmt.Fprintf(&b, "├─ Direction: *%s*\n", s.Side)
		fmt.Fprintf(&b, "├─ Entry: `%g`\n", s.Entry)
		fmt.Fprintf(&b, "├─ Take Profit: `%g`\n", s.TP)
		fmt.Fprintf(&b, "├─ Stop Loss: `%g`\n", s.SL)
		if s.BreakevenLevel != nil {
			fmt.Fprintf(&b, "├─ Breakeven: `%g`\n", *s.BreakevenLevel)
		}
		fmt.Fprintf(&b, "├─ Status: %s\n", statusText)
		fmt.Fprintf(&b, "└─ Posted: %s\n\n", s.Timestamp.Format("Jan 02, 15:04"))
	}

	fmt.Fprintf(&b, "📈 Total Active: %d\n", len(active))
	fmt.Fprintf(&b, "🎯 Closed Today: %d\n\n", closedToday(closed))
	b.WriteString("💬 Ask me: \"Explain the EURUSD signal\" for analysis!")
	return b.String()
}

func formatSignalsShort(active []*models.Signal) string {
	var b strings.Builder
	b.WriteString("📊 ACTIVE SIGNALS\n\n")
	for _, s := range active {
		fmt.Fprintf(&b, "• %s - %s\n  Entry: %g | TP: %g | SL: %g\n\n",
			s.Instrument, s.Side, s.Entry, s.TP, s.SL)
	}
	fmt.Fprintf(&b, "Total: %d active signals", len(active))
	return b.String()
}

func formatClosedSignals(closed []models.Signal) string {
	var b strings.Builder
	b.WriteString("🗂 *CLOSED SIGNALS*\n\n")

	// последние десять, свежие сверху
	start := 0
	if len(closed) > 10 {
		start = len(closed) - 10
	}
	for i := len(closed) - 1; i >= start; i-- {
		s := closed[i]
		fmt.Fprintf(&b, "• *%s* %s entry `%g`", s.Instrument, s.Side, s.Entry)
		if n := len(s.PartialProfits); n > 0 {
			fmt.Fprintf(&b, " (%d partials)", n)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nTotal closed: %d", len(closed))
	return b.String()
}

func formatPerformance(active []*models.Signal, closed []models.Signal) string {
	if len(closed) == 0 {
		return "📊 Performance Stats\n\n" +
			"No closed signals yet to analyze.\n" +
			"Stats will appear here once signals are closed! 📈"
	}

	wins := 0
	for _, s := range closed {
		// a close that locked anything in counts as a win
		if len(s.PartialProfits) > 0 || s.BreakevenLevel != nil {
			wins++
		}
	}
	total := len(closed)
	winRate := float64(wins) / float64(total) * 100

	return fmt.Sprintf(
		"📊 Trading Performance\n\n"+
			"✅ Wins: %d\n"+
			"❌ Losses: %d\n"+
			"📈 Win Rate: %.1f%%\n"+
			"🎯 Total Signals: %d\n\n"+
			"Active Now: %d\n"+
			"Closed Today: %d\n\n"+
			"Keep following the signals! 🚀",
		wins, total-wins, winRate, total, len(active), closedToday(closed))
}

func formatStats(st *models.UserStats, activeCount, closedCount int) string {
	favorites := "None set"
	if len(st.FavoritePairs) > 0 {
		favorites = strings.Join(st.FavoritePairs, ", ")
	}

	return fmt.Sprintf(
		"📊 Your Trade2Retire Statistics\n\n"+
			"👤 Profile:\n"+
			"Member Since: %s\n"+
			"Total Queries: %d\n\n"+
			"📈 Activity:\n"+
			"Active Signals: %d\n"+
			"Signals Tracked: %d\n\n"+
			"🎯 Favorites: %s",
		st.Joined.Format("January 02, 2006"), st.Queries,
		activeCount, activeCount+closedCount, favorites)
}

func closedToday(closed []models.Signal) int {
	n := 0
	today := time.Now().Truncate(24 * time.Hour)
	for _, s := range closed {
		if !s.Timestamp.Before(today) {
			n++
		}
	}
	return n
}
