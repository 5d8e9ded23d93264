package recommend

// Season buckets a temperature into the four wardrobe regimes. SeasonAll is
// the unknown-temperature fallback and only drives theming, never scoring.
type Season string

const (
	SeasonWinter     Season = "winter"
	SeasonSpringFall Season = "spring_fall"
	SeasonMild       Season = "mild"
	SeasonSummer     Season = "summer"
	SeasonAll        Season = "all"
)

// SeasonFromTemp maps a temperature in Celsius to a season. Boundaries are
// inclusive on the low side: 5° is still winter, 16° still spring_fall,
// 26° still mild.
func SeasonFromTemp(tempC *float64) Season {
	if tempC == nil {
		return SeasonAll
	}
	t := *tempC
	switch {
	case t <= 5:
		return SeasonWinter
	case t <= 16:
		return SeasonSpringFall
	case t <= 26:
		return SeasonMild
	default:
		return SeasonSummer
	}
}

// Theme is the cosmetic dressing for a recommendation screen.
type Theme struct {
	Season  Season `json:"season"`
	Emoji   string `json:"emoji"`
	Decor   string `json:"decor"`
	Tagline string `json:"tagline"`
}

var seasonThemes = map[Season]Theme{
	SeasonWinter:     {SeasonWinter, "❄️", "snow", "Layer up, it's cold out there"},
	SeasonSpringFall: {SeasonSpringFall, "🍂", "leaves", "Light layers for a crisp day"},
	SeasonMild:       {SeasonMild, "🌤", "clear", "Comfortable weather, dress easy"},
	SeasonSummer:     {SeasonSummer, "☀️", "sun", "Keep it light and breathable"},
	SeasonAll:        {SeasonAll, "✨", "stars", "Your style, any weather"},
}

// ThemeForSeason never fails: unknown seasons get the all-season theme.
func ThemeForSeason(s Season) Theme {
	if t, ok := seasonThemes[s]; ok {
		return t
	}
	return seasonThemes[SeasonAll]
}
