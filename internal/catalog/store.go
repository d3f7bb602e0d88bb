package catalog

import (
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Store holds the immutable movie set and answers read-only queries.
type Store struct {
	movies []Movie
	index  map[int64]int
	genres []string
}

// Load reads the catalog from a JSON file at path. A missing or
// undecodable source is degraded, not fatal: the built-in seed set is
// used instead so the rest of the system keeps functioning.
func Load(path string, logger zerolog.Logger) *Store {
	if path == "" {
		logger.Info().Msg("no catalog source configured, using built-in seed set")
		return New(Seed(), logger)
	}

	records, err := readSource(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("catalog source unavailable, falling back to seed set")
		records = Seed()
	}

	return New(records, logger)
}

// New builds a Store from records, keeping load order. Records that fail
// validation or reuse an id are skipped with a warning.
func New(records []Movie, logger zerolog.Logger) *Store {
	validate := validator.New(validator.WithRequiredStructEnabled())

	s := &Store{index: make(map[int64]int, len(records))}
	for _, m := range records {
		if err := validate.Struct(m); err != nil {
			logger.Warn().Err(err).Int64("id", m.ID).Str("title", m.Title).Msg("skipping invalid catalog record")
			continue
		}
		if _, dup := s.index[m.ID]; dup {
			logger.Warn().Int64("id", m.ID).Str("title", m.Title).Msg("skipping catalog record with duplicate id")
			continue
		}
		s.index[m.ID] = len(s.movies)
		s.movies = append(s.movies, m)
	}
	s.genres = collectGenres(s.movies)

	logger.Info().Int("movies", len(s.movies)).Int("genres", len(s.genres)).Msg("catalog loaded")
	return s
}

func readSource(path string) ([]Movie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []Movie
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// All returns every record in load order. The slice is a fresh copy;
// callers must treat the records themselves as read-only.
func (s *Store) All() []Movie {
	out := make([]Movie, len(s.movies))
	copy(out, s.movies)
	return out
}

// ByID looks up a single record. The second return value is false when
// no record carries the id.
func (s *Store) ByID(id int64) (Movie, bool) {
	i, ok := s.index[id]
	if !ok {
		return Movie{}, false
	}
	return s.movies[i], true
}

// Genres returns the sorted distinct genre names across the catalog,
// computed once at load.
func (s *Store) Genres() []string {
	out := make([]string, len(s.genres))
	copy(out, s.genres)
	return out
}

// Len reports the number of records in the catalog.
func (s *Store) Len() int {
	return len(s.movies)
}

// Titles returns every title in load order, for suggestion ranking.
func (s *Store) Titles() []string {
	out := make([]string, len(s.movies))
	for i, m := range s.movies {
		out[i] = m.Title
	}
	return out
}

func collectGenres(movies []Movie) []string {
	seen := make(map[string]struct{})
	var genres []string
	for _, m := range movies {
		for _, g := range m.Genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			genres = append(genres, g)
		}
	}
	sort.Strings(genres)
	return genres
}
