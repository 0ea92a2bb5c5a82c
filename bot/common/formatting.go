package common

import (
	"fmt"
	"strings"
	"time"

	"exptracker/models"
	"exptracker/progression"
)

// FormatStars formats a star count with thousand separators
func FormatStars(stars int64) string {
	sign := ""
	if stars < 0 {
		sign = "-"
		stars = -stars
	}

	str := fmt.Sprintf("%d", stars)

	n := len(str)
	if n <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatSignedStars formats a star delta with an explicit sign
func FormatSignedStars(stars int64) string {
	if stars > 0 {
		return "+" + FormatStars(stars)
	}
	return FormatStars(stars)
}

// FormatProgress renders a level position, e.g. "Level 2 · 4/8 banners · 0/1 ⭐"
func FormatProgress(p progression.Progress) string {
	if p.IsCapped() {
		return fmt.Sprintf("Level %d (max)", p.Level)
	}
	return fmt.Sprintf("Level %d · %d/%d banners · %d/%d ⭐",
		p.Level, p.Banners, progression.BannersPerLevel, p.Stars, progression.StarsPerBanner(p.Level))
}

// FormatCharacterLine renders a character as a single list line
func FormatCharacterLine(c *models.Character) string {
	status := ""
	if c.Dead {
		status = " 💀"
	}
	return fmt.Sprintf("`#%d` **%s**%s: %s (%s ⭐)", c.ID, c.Name, status, FormatProgress(c.Progress()), FormatStars(c.Stars))
}

// FormatLogEntry renders an audit entry as a single line
func FormatLogEntry(e *models.LogEntry) string {
	when := FormatDiscordTimestamp(e.CreatedAt, "R")

	switch v := e.Value.(type) {
	case models.StarsChange:
		line := fmt.Sprintf("%s %s %s ⭐", when, describeLogType(e.Type), FormatSignedStars(v.Amount))
		if e.CharacterID != nil {
			line += fmt.Sprintf(" → `#%d`", *e.CharacterID)
		}
		if v.Reason != nil && *v.Reason != "" {
			line += fmt.Sprintf(" (%s)", *v.Reason)
		}
		return line
	case models.CharacterSnapshot:
		return fmt.Sprintf("%s %s **%s** `#%d` at %s ⭐", when, describeLogType(e.Type), v.Name, v.ID, FormatStars(v.Stars))
	default:
		return fmt.Sprintf("%s %s", when, describeLogType(e.Type))
	}
}

func describeLogType(t models.LogType) string {
	switch t {
	case models.LogTypeCharacterAdded:
		return "Created"
	case models.LogTypeCharacterDeleted:
		return "Deleted"
	case models.LogTypeStarsAdded:
		return "Pool"
	case models.LogTypeStarsSpent:
		return "Spent"
	default:
		return t.String()
	}
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
