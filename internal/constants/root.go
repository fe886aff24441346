package constants

// Badge identifies an unlocked achievement
type Badge string

const (
	AppName            = "streaks"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/streaks/streaks.json"
	Version            = "v0.2.0"

	// DateFormat is the standard day-key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultNotifyTime is the reminder time assigned to new habits
	DefaultNotifyTime = "09:00"

	// Badge identifiers. Thresholds live in the metrics package.
	BadgeFirstStep Badge = "first-step"
	BadgeTenClub   Badge = "ten-club"
	BadgeFiftyClub Badge = "fifty-club"
	BadgeCentury   Badge = "century"
	BadgeStreak3   Badge = "streak-3"
	BadgeStreak7   Badge = "streak-7"
	BadgeStreak30  Badge = "streak-30"
	BadgeCollector Badge = "collector"
)

// BadgeTitles maps badge identifiers to display titles
var BadgeTitles = map[Badge]string{
	BadgeFirstStep: "First Step (1 completion)",
	BadgeTenClub:   "Ten Club (10 completions)",
	BadgeFiftyClub: "Fifty Club (50 completions)",
	BadgeCentury:   "Century (100 completions)",
	BadgeStreak3:   "On a Roll (3-day streak)",
	BadgeStreak7:   "Full Week (7-day streak)",
	BadgeStreak30:  "Iron Will (30-day streak)",
	BadgeCollector: "Collector (5 habits)",
}
