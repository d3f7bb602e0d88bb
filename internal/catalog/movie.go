package catalog

// Movie is a single catalog record. The catalog is loaded once at
// startup and never mutated for the lifetime of the process.
type Movie struct {
	ID          int64    `json:"id" validate:"required,gt=0"`
	Title       string   `json:"title" validate:"required"`
	Year        int      `json:"year" validate:"min=1000,max=9999"`
	Genres      []string `json:"genres" validate:"min=1,dive,required"`
	Rating      float64  `json:"rating" validate:"min=0,max=10"`
	PosterURL   string   `json:"poster_url"`
	Description string   `json:"description"`

	// Optional metadata, passed through untouched.
	Director        string   `json:"director,omitempty"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
	Cast            []string `json:"cast,omitempty"`
	Language        string   `json:"language,omitempty"`
	Country         string   `json:"country,omitempty"`
}

// PrimaryGenre returns the first listed genre, which display layers use
// as the card badge. Empty when the record carries no genres.
func (m Movie) PrimaryGenre() string {
	if len(m.Genres) == 0 {
		return ""
	}
	return m.Genres[0]
}

// HasGenre reports whether g appears in the record's genre list. The
// comparison is exact: genre strings shown to users originate from this
// same catalog, so case never diverges.
func (m Movie) HasGenre(g string) bool {
	for _, have := range m.Genres {
		if have == g {
			return true
		}
	}
	return false
}
