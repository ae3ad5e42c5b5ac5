package models

// Teacher represents a tutor profile under teachers/{id}. Teacher records are
// externally curated and read-only from the application's perspective.
type Teacher struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Surname      string   `json:"surname"`
	Languages    []string `json:"languages"`
	Levels       []string `json:"levels"`
	Rating       float64  `json:"rating"`
	PricePerHour float64  `json:"price_per_hour"`
	LessonsDone  int      `json:"lessons_done"`
	AvatarURL    string   `json:"avatar_url"`
	LessonInfo   string   `json:"lesson_info"`
	Conditions   []string `json:"conditions"`
	Experience   string   `json:"experience"`
	Reviews      []Review `json:"reviews,omitempty"`
}

// Review is a single student review attached to a teacher profile.
type Review struct {
	ReviewerName   string  `json:"reviewer_name"`
	ReviewerRating float64 `json:"reviewer_rating"`
	Comment        string  `json:"comment"`
}

// TeacherPreview carries the fields shown on the teachers list page. Detail
// fields (lesson info, conditions, reviews) are fetched per teacher.
type TeacherPreview struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Surname      string   `json:"surname"`
	Languages    []string `json:"languages"`
	Levels       []string `json:"levels"`
	Rating       float64  `json:"rating"`
	PricePerHour float64  `json:"price_per_hour"`
	LessonsDone  int      `json:"lessons_done"`
	AvatarURL    string   `json:"avatar_url"`
}

// Preview strips a full teacher record down to its list representation.
func (t *Teacher) Preview() TeacherPreview {
	return TeacherPreview{
		ID:           t.ID,
		Name:         t.Name,
		Surname:      t.Surname,
		Languages:    t.Languages,
		Levels:       t.Levels,
		Rating:       t.Rating,
		PricePerHour: t.PricePerHour,
		LessonsDone:  t.LessonsDone,
		AvatarURL:    t.AvatarURL,
	}
}
