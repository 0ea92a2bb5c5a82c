package handlers

import (
	"time"

	"exptracker/models"
)

type characterResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Stars       int64  `json:"stars"`
	Dead        bool   `json:"dead"`
	Level       int    `json:"level"`
	Banners     int64  `json:"banners"`
	BannerStars int64  `json:"banner_stars"`
}

func newCharacterResponse(c *models.Character) characterResponse {
	progress := c.Progress()
	return characterResponse{
		ID:          c.ID,
		Name:        c.Name,
		Stars:       c.Stars,
		Dead:        c.Dead,
		Level:       progress.Level,
		Banners:     progress.Banners,
		BannerStars: progress.Stars,
	}
}

func newCharacterListResponse(characters []*models.Character) []characterResponse {
	out := make([]characterResponse, 0, len(characters))
	for _, c := range characters {
		out = append(out, newCharacterResponse(c))
	}
	return out
}

type userResponse struct {
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	UnspentStars int64  `json:"unspent_stars"`
}

type logEntryResponse struct {
	ID        int64           `json:"id"`
	Character *int64          `json:"character"`
	Type      models.LogType  `json:"type"`
	Value     models.LogValue `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
}

func newLogListResponse(entries []*models.LogEntry) []logEntryResponse {
	out := make([]logEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, logEntryResponse{
			ID:        e.ID,
			Character: e.CharacterID,
			Type:      e.Type,
			Value:     e.Value,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

type starsRequest struct {
	Stars  int64   `json:"stars"`
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

type spendResponse struct {
	SpentStars int64 `json:"spent_stars"`
}

type adjustResponse struct {
	AddedStars int64 `json:"added_stars"`
}

type createCharacterRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Stars int64  `json:"stars"`
	Dead  bool   `json:"dead"`
}

type updateCharacterRequest struct {
	Name   *string `json:"name" validate:"omitempty,max=255"`
	Stars  *int64  `json:"stars"`
	Dead   *bool   `json:"dead"`
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}
