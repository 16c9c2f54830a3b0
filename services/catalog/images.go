package catalog

const tmdbImageBase = "https://image.tmdb.org/t/p"

// ImageSize names a width bucket on the image CDN. Posters and backdrops map
// the same names to different widths.
type ImageSize string

const (
	SizeSmall    ImageSize = "small"
	SizeMedium   ImageSize = "medium"
	SizeLarge    ImageSize = "large"
	SizeOriginal ImageSize = "original"
)

var posterBases = map[ImageSize]string{
	SizeSmall:    tmdbImageBase + "/w185",
	SizeMedium:   tmdbImageBase + "/w342",
	SizeLarge:    tmdbImageBase + "/w500",
	SizeOriginal: tmdbImageBase + "/original",
}

var backdropBases = map[ImageSize]string{
	SizeSmall:    tmdbImageBase + "/w300",
	SizeMedium:   tmdbImageBase + "/w780",
	SizeLarge:    tmdbImageBase + "/w1280",
	SizeOriginal: tmdbImageBase + "/original",
}

// PosterURL builds the full CDN URL for a poster path. A nil path yields nil;
// an unknown size falls back to medium.
func PosterURL(path *string, size ImageSize) *string {
	return imageURL(posterBases, path, size)
}

// BackdropURL builds the full CDN URL for a backdrop path. A nil path yields
// nil; an unknown size falls back to medium.
func BackdropURL(path *string, size ImageSize) *string {
	return imageURL(backdropBases, path, size)
}

func imageURL(bases map[ImageSize]string, path *string, size ImageSize) *string {
	if path == nil || *path == "" {
		return nil
	}
	base, ok := bases[size]
	if !ok {
		base = bases[SizeMedium]
	}
	u := base + *path
	return &u
}
