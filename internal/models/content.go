package models

// Idea is a generated content idea returned by the ideation endpoints.
type Idea struct {
	ID       string   `json:"_id"`
	Title    string   `json:"title"`
	Angle    string   `json:"angle"`
	Tags     []string `json:"tags"`
	Platform string   `json:"platform"`
	Saved    bool     `json:"saved"`
}

// Script is a generated video/post script.
type Script struct {
	ID      string `json:"_id"`
	IdeaID  string `json:"ideaId"`
	Title   string `json:"title"`
	Outline string `json:"outline"`
	Body    string `json:"body"`
}

// SEOReport is the analysis result for a title/description pair.
type SEOReport struct {
	Score       int      `json:"score"`
	Keywords    []string `json:"keywords"`
	Suggestions []string `json:"suggestions"`
}

// CalendarEvent is a scheduled content slot.
type CalendarEvent struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Platform string `json:"platform"`
	Status   string `json:"status"`
}
