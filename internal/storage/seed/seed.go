// Package seed holds the data a fresh store starts with. Both storage
// providers seed it at Init and reseed it on Clear.
package seed

import (
	"time"

	"github.com/dharmalog/dharmalog/internal/constants"
	"github.com/dharmalog/dharmalog/internal/models"
)

// Settings returns the settings a fresh store starts with.
func Settings() models.Settings {
	return models.Settings{
		Theme:             constants.DefaultTheme,
		Language:          constants.DefaultLanguage,
		DailyNotification: constants.DefaultDailyNotification,
		NotificationTime:  constants.DefaultNotificationTime,
		Timezone:          constants.DefaultTimezone,
	}
}

// Teachings seeds the library so cards can be created before the user adds
// their own quotes.
func Teachings() []models.Teaching {
	now := time.Now()
	return []models.Teaching{
		{
			ID:        "teaching-default-1",
			Content:   "All conditioned things are impermanent. Strive on with diligence.",
			Source:    "Mahaparinibbana Sutta",
			Category:  "impermanence",
			CreatedAt: now,
		},
		{
			ID:        "teaching-default-2",
			Content:   "Just as a candle cannot burn without fire, we cannot live without a spiritual life.",
			Source:    "Dhammapada commentary",
			Category:  "practice",
			CreatedAt: now,
		},
		{
			ID:        "teaching-default-3",
			Content:   "Drop by drop is the water pot filled. Likewise, the wise one, gathering it little by little, fills oneself with good.",
			Source:    "Dhammapada 122",
			Category:  "practice",
			CreatedAt: now,
		},
		{
			ID:        "teaching-default-4",
			Content:   "Hatred is never appeased by hatred in this world. By non-hatred alone is hatred appeased.",
			Source:    "Dhammapada 5",
			Category:  "compassion",
			CreatedAt: now,
		},
	}
}

// Images are the built-in card frame styles.
func Images() []models.Image {
	return []models.Image{
		{ID: "image-default-lotus", Name: "Lotus", Style: "rounded", Builtin: true},
		{ID: "image-default-dharma", Name: "Dharma wheel", Style: "double", Builtin: true},
		{ID: "image-default-plain", Name: "Plain", Style: "normal", Builtin: true},
		{ID: "image-default-bold", Name: "Temple", Style: "thick", Builtin: true},
	}
}
