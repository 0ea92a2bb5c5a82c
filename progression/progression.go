// Package progression converts between a character's accumulated stars and its
// level progression.
//
// To advance a level a character needs BannersPerLevel banners. Banners are
// bought with stars; a banner costs one star at level one and the cost grows by
// one star every three levels starting at level five. Level 20 is the cap: any
// stars beyond its threshold stay attributed to level 20.
package progression

// BannersPerLevel is the number of banners needed to complete a level
const BannersPerLevel = 8

// MaxLevel is the last level with a threshold in the table
const MaxLevel = 20

// starsPerBanner holds the banner cost for levels 1..MaxLevel. Index 0 is unused.
var starsPerBanner = [MaxLevel + 1]int64{
	0,
	1, 1, 1, 1,
	2, 2, 2,
	3, 3, 3,
	4, 4, 4,
	5, 5, 5,
	6, 6, 6, 6,
}

// starsForLevel holds the cumulative number of stars needed to reach each level
var starsForLevel = buildThresholds()

func buildThresholds() [MaxLevel + 1]int64 {
	var thresholds [MaxLevel + 1]int64
	thresholds[1] = 0
	for level := 1; level < MaxLevel; level++ {
		thresholds[level+1] = thresholds[level] + starsPerBanner[level]*BannersPerLevel
	}
	return thresholds
}

// Progress is a character's position on the progression table
type Progress struct {
	Level   int   `json:"level"`
	Banners int64 `json:"banners"`
	Stars   int64 `json:"banner_stars"` // stars towards the next banner
}

// Row is a single entry of the progression table
type Row struct {
	Level          int   `json:"level"`
	Threshold      int64 `json:"threshold"`
	StarsPerBanner int64 `json:"stars_per_banner"`
}

// StarsToLevel converts an accumulated star count into a level, the banners
// bought towards the next level and the stars bought towards the next banner.
// Negative counts never occur for stored characters and map to level 0.
func StarsToLevel(stars int64) Progress {
	if stars < 0 {
		return Progress{}
	}

	level := MaxLevel
	for level > 1 && stars < starsForLevel[level] {
		level--
	}

	cost := starsPerBanner[level]
	spent := stars - starsForLevel[level]
	banners := spent / cost

	return Progress{
		Level:   level,
		Banners: banners,
		Stars:   spent - banners*cost,
	}
}

// LevelToStars returns the number of stars needed to reach a level. Levels
// outside 1..MaxLevel have no threshold and return 0.
func LevelToStars(level int) int64 {
	if level < 1 || level > MaxLevel {
		return 0
	}
	return starsForLevel[level]
}

// StarsPerBanner returns the banner cost at a level, or 0 for unknown levels
func StarsPerBanner(level int) int64 {
	if level < 1 || level > MaxLevel {
		return 0
	}
	return starsPerBanner[level]
}

// Table returns a copy of the full progression table
func Table() []Row {
	rows := make([]Row, 0, MaxLevel)
	for level := 1; level <= MaxLevel; level++ {
		rows = append(rows, Row{
			Level:          level,
			Threshold:      starsForLevel[level],
			StarsPerBanner: starsPerBanner[level],
		})
	}
	return rows
}

// IsCapped reports whether the progress sits at the final level
func (p Progress) IsCapped() bool {
	return p.Level >= MaxLevel
}

// StarsToNextLevel returns the stars still needed to reach the next level, or
// 0 at the cap
func (p Progress) StarsToNextLevel() int64 {
	if p.Level < 1 || p.IsCapped() {
		return 0
	}
	current := starsForLevel[p.Level] + p.Banners*starsPerBanner[p.Level] + p.Stars
	return starsForLevel[p.Level+1] - current
}
