package itunes

// App is one listing returned by the search endpoint. Upstream data is
// inconsistent, so every field is optional and decodes to its zero value;
// scorers must tolerate the zeros.
type App struct {
	Name                      string  `json:"trackName"`
	Developer                 string  `json:"artistName"`
	RatingCount               int     `json:"userRatingCount"`
	AverageRating             float64 `json:"averageUserRating"`
	Genre                     string  `json:"primaryGenreName"`
	ReleaseDate               string  `json:"releaseDate"`
	CurrentVersionReleaseDate string  `json:"currentVersionReleaseDate"`
}
