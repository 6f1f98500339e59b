package planner

import "wedding-planner/internal/models"

// Moodboard returns inspiration images, most recent first
func (p *Planner) Moodboard() []models.MoodImage {
	return p.moodboard.Items()
}

// AddMoodImages adds images one by one in the given order, so the last
// one ends up first on the board. Images without a data URI are skipped.
func (p *Planner) AddMoodImages(images []models.MoodImage) []models.MoodImage {
	added := make([]models.MoodImage, 0, len(images))
	for _, img := range images {
		if img.URL == "" {
			continue
		}
		added = append(added, p.moodboard.Add(img))
	}
	return added
}

// DeleteMoodImage removes an image from the board
func (p *Planner) DeleteMoodImage(id string) error {
	if !p.moodboard.Remove(id) {
		return ErrNotFound
	}
	return nil
}
