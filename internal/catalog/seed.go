package catalog

// Seed returns the built-in catalog used when no external source is
// configured or the configured source cannot be read. Returned records
// are fresh copies safe for the caller to own.
func Seed() []Movie {
	return []Movie{
		{
			ID:              1,
			Title:           "Inception",
			Year:            2010,
			Genres:          []string{"Sci-Fi", "Action", "Thriller"},
			Rating:          8.8,
			PosterURL:       "https://image.tmdb.org/t/p/w500/oYuLEt3zVCKq57qu2F8dT7NIa6f.jpg",
			Description:     "A thief who steals corporate secrets through dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O.",
			Director:        "Christopher Nolan",
			DurationMinutes: 148,
			Cast:            []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt", "Elliot Page"},
			Language:        "English",
			Country:         "USA",
		},
		{
			ID:              2,
			Title:           "The Dark Knight",
			Year:            2008,
			Genres:          []string{"Action", "Crime", "Drama"},
			Rating:          9.0,
			PosterURL:       "https://image.tmdb.org/t/p/w500/qJ2tW6WMUDux911r6m7haRef0WH.jpg",
			Description:     "When the menace known as the Joker wreaks havoc on Gotham, Batman must accept one of the greatest psychological and physical tests of his ability to fight injustice.",
			Director:        "Christopher Nolan",
			DurationMinutes: 152,
			Cast:            []string{"Christian Bale", "Heath Ledger", "Aaron Eckhart"},
			Language:        "English",
			Country:         "USA",
		},
		{
			ID:              3,
			Title:           "Interstellar",
			Year:            2014,
			Genres:          []string{"Sci-Fi", "Adventure", "Drama"},
			Rating:          8.6,
			PosterURL:       "https://image.tmdb.org/t/p/w500/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg",
			Description:     "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.",
			Director:        "Christopher Nolan",
			DurationMinutes: 169,
			Cast:            []string{"Matthew McConaughey", "Anne Hathaway", "Jessica Chastain"},
			Language:        "English",
			Country:         "USA",
		},
		{
			ID:              4,
			Title:           "The Matrix",
			Year:            1999,
			Genres:          []string{"Sci-Fi", "Action"},
			Rating:          8.7,
			PosterURL:       "https://image.tmdb.org/t/p/w500/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg",
			Description:     "A computer hacker learns from mysterious rebels about the true nature of his reality and his role in the war against its controllers.",
			Director:        "Lana Wachowski, Lilly Wachowski",
			DurationMinutes: 136,
			Cast:            []string{"Keanu Reeves", "Laurence Fishburne", "Carrie-Anne Moss"},
			Language:        "English",
			Country:         "USA",
		},
		{
			ID:              5,
			Title:           "Parasite",
			Year:            2019,
			Genres:          []string{"Thriller", "Drama", "Comedy"},
			Rating:          8.6,
			PosterURL:       "https://image.tmdb.org/t/p/w500/7IiTTgloJzvGI1TAYymCfbfl3vT.jpg",
			Description:     "Greed and class discrimination threaten the newly formed symbiotic relationship between the wealthy Park family and the destitute Kim clan.",
			Director:        "Bong Joon-ho",
			DurationMinutes: 132,
			Cast:            []string{"Song Kang-ho", "Lee Sun-kyun", "Cho Yeo-jeong"},
			Language:        "Korean",
			Country:         "South Korea",
		},
		{
			ID:              6,
			Title:           "Avengers: Endgame",
			Year:            2019,
			Genres:          []string{"Action", "Adventure", "Sci-Fi"},
			Rating:          8.4,
			PosterURL:       "https://image.tmdb.org/t/p/w500/or06FN3Dka5tukK1e9sl16pB3iy.jpg",
			Description:     "After the devastating events of Infinity War, the Avengers assemble once more to reverse Thanos' actions and restore balance to the universe.",
			Director:        "Anthony Russo, Joe Russo",
			DurationMinutes: 181,
			Cast:            []string{"Robert Downey Jr.", "Chris Evans", "Scarlett Johansson"},
			Language:        "English",
			Country:         "USA",
		},
		{
			ID:              7,
			Title:           "La La Land",
			Year:            2016,
			Genres:          []string{"Romance", "Drama", "Music"},
			Rating:          8.0,
			PosterURL:       "https://image.tmdb.org/t/p/w500/uDO8zWDhfWwoFdKS4fzkUJt0Rf0.jpg",
			Description:     "While navigating their careers in Los Angeles, a pianist and an actress fall in love while attempting to reconcile their aspirations for the future.",
			Director:        "Damien Chazelle",
			DurationMinutes: 128,
			Cast:            []string{"Ryan Gosling", "Emma Stone"},
			Language:        "English",
			Country:         "USA",
		},
		{
			ID:              8,
			Title:           "Joker",
			Year:            2019,
			Genres:          []string{"Crime", "Drama", "Thriller"},
			Rating:          8.4,
			PosterURL:       "https://image.tmdb.org/t/p/w500/udDclJoHjfjb8Ekgsd4FDteOkCU.jpg",
			Description:     "In Gotham City, mentally troubled comedian Arthur Fleck is disregarded and mistreated by society. He then embarks on a downward spiral of revolution and bloody crime.",
			Director:        "Todd Phillips",
			DurationMinutes: 122,
			Cast:            []string{"Joaquin Phoenix", "Robert De Niro", "Zazie Beetz"},
			Language:        "English",
			Country:         "USA",
		},
	}
}
