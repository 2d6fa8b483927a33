package helpers

import (
	"strings"

	"github.com/kalash-creations/go-bangles/app/models"
	"github.com/kalash-creations/go-bangles/app/utils/format"
)

// FullImageURL turns a stored relative image path (/images/...) into the
// absolute URL clients can fetch.
func FullImageURL(baseURL, relPath string) string {
	if relPath == "" {
		return ""
	}
	if strings.HasPrefix(relPath, "http://") || strings.HasPrefix(relPath, "https://") {
		return relPath
	}
	return strings.TrimSuffix(baseURL, "/") + relPath
}

// RelativeImagePath undoes FullImageURL for paths echoed back by the admin
// panel: absolute URLs under our own base are stored relative again.
func RelativeImagePath(baseURL, url string) string {
	base := strings.TrimSuffix(baseURL, "/")
	if base != "" && strings.HasPrefix(url, base) {
		return strings.TrimPrefix(url, base)
	}
	return url
}

// BangleResponse is a catalog read view: the bangle with image paths rewritten
// to absolute URLs plus a formatted display price.
type BangleResponse struct {
	models.Bangle
	DisplayPrice string `json:"displayPrice"`
}

func MapCategoryResponse(baseURL string, c models.Category) models.Category {
	if c.ImageURL != nil && *c.ImageURL != "" {
		abs := FullImageURL(baseURL, *c.ImageURL)
		c.ImageURL = &abs
	}
	return c
}

func MapCategoryResponses(baseURL string, categories []models.Category) []models.Category {
	out := make([]models.Category, len(categories))
	for i, c := range categories {
		out[i] = MapCategoryResponse(baseURL, c)
	}
	return out
}

func MapBangleResponse(baseURL string, b models.Bangle) BangleResponse {
	if b.BaseImageURL != nil && *b.BaseImageURL != "" {
		abs := FullImageURL(baseURL, *b.BaseImageURL)
		b.BaseImageURL = &abs
	}

	variants := make([]models.BangleColorVariant, len(b.ColorVariants))
	copy(variants, b.ColorVariants)
	for i := range variants {
		if variants[i].ImageURL != "" {
			variants[i].ImageURL = FullImageURL(baseURL, variants[i].ImageURL)
		}
	}
	b.ColorVariants = variants

	return BangleResponse{Bangle: b, DisplayPrice: format.FormatINR(b.Price)}
}

func MapBangleResponses(baseURL string, bangles []models.Bangle) []BangleResponse {
	out := make([]BangleResponse, len(bangles))
	for i, b := range bangles {
		out[i] = MapBangleResponse(baseURL, b)
	}
	return out
}
