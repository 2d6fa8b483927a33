package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/kalash-creations/go-bangles/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartForm(t *testing.T, fields map[string]string, files map[string][]byte) *multipart.Form {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for key, content := range files {
		part, err := writer.CreateFormFile(key, "upload.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/bangles", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(maxMultipartMemory))
	return req.MultipartForm
}

func TestParseVariantInputsReconstructsListInOrder(t *testing.T) {
	form := multipartForm(t, map[string]string{
		"colorVariants[0][id]":        "k001-red",
		"colorVariants[0][colorName]": "Ruby Red",
		"colorVariants[0][hexColor]":  "#9b111e",
		"colorVariants[1][id]":        "k001-blue",
		"colorVariants[1][colorName]": "Sapphire Blue",
		"colorVariants[1][imageUrl]":  "/images/variants/blue.jpg",
	}, map[string][]byte{
		"colorVariants[0][imageFile]": []byte("\x89PNG\r\n\x1a\nxxxx"),
	})

	variants := parseVariantInputs(form)
	require.Len(t, variants, 2)

	assert.Equal(t, "k001-red", variants[0].ID)
	assert.Equal(t, "Ruby Red", variants[0].ColorName)
	assert.Equal(t, "#9b111e", variants[0].HexColor)
	assert.NotNil(t, variants[0].ImageFile)

	assert.Equal(t, "k001-blue", variants[1].ID)
	assert.Equal(t, "Sapphire Blue", variants[1].ColorName)
	assert.Equal(t, "/images/variants/blue.jpg", variants[1].ImageURL)
	assert.Nil(t, variants[1].ImageFile)
}

// The scan stops at the first missing index, so gaps truncate the list.
func TestParseVariantInputsStopsAtGap(t *testing.T) {
	form := multipartForm(t, map[string]string{
		"colorVariants[0][id]":        "v0",
		"colorVariants[0][colorName]": "Red",
		"colorVariants[2][id]":        "v2",
		"colorVariants[2][colorName]": "Green",
	}, nil)

	variants := parseVariantInputs(form)
	require.Len(t, variants, 1)
	assert.Equal(t, "v0", variants[0].ID)
}

func TestParseVariantInputsEmptyForm(t *testing.T) {
	form := multipartForm(t, map[string]string{"name": "no variants here"}, nil)
	assert.Empty(t, parseVariantInputs(form))
}

func TestParseAvailableSizes(t *testing.T) {
	sizes, err := parseAvailableSizes(`["2.4","2.6"]`)
	require.NoError(t, err)
	assert.Equal(t, models.SizeList{"2.4", "2.6"}, sizes)

	// An empty array stays a non-nil list, so it serializes as [] and not null.
	sizes, err = parseAvailableSizes(`[]`)
	require.NoError(t, err)
	assert.Equal(t, models.SizeList{}, sizes)

	_, err = parseAvailableSizes(`not json`)
	assert.Error(t, err)
}

func TestParseRating(t *testing.T) {
	form := multipartForm(t, map[string]string{"rating": "4.5"}, nil)
	rating, err := parseRating(form)
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Equal(t, 4.5, *rating)

	form = multipartForm(t, map[string]string{"rating": "5.1"}, nil)
	_, err = parseRating(form)
	assert.Error(t, err)

	form = multipartForm(t, map[string]string{"rating": "abc"}, nil)
	_, err = parseRating(form)
	assert.Error(t, err)

	form = multipartForm(t, map[string]string{"name": "x"}, nil)
	rating, err = parseRating(form)
	require.NoError(t, err)
	assert.Nil(t, rating)
}

func TestParseReviews(t *testing.T) {
	form := multipartForm(t, map[string]string{"reviews": "12"}, nil)
	reviews, err := parseReviews(form)
	require.NoError(t, err)
	require.NotNil(t, reviews)
	assert.Equal(t, 12, *reviews)

	form = multipartForm(t, map[string]string{"reviews": "-1"}, nil)
	_, err = parseReviews(form)
	assert.Error(t, err)
}
