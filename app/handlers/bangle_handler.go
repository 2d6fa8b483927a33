package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/kalash-creations/go-bangles/app/helpers"
	"github.com/kalash-creations/go-bangles/app/models"
	"github.com/kalash-creations/go-bangles/app/services"
	"github.com/kalash-creations/go-bangles/app/utils/apperr"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type bangleForm struct {
	ID         string `validate:"required"`
	Name       string `validate:"required"`
	CategoryID string `validate:"required"`
	Price      string `validate:"required"`
}

func (h *APIHandler) GetBangles(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("categoryId")

	bangles, err := h.bangleRepo.GetBangles(r.Context(), categoryID)
	if err != nil {
		h.respondError(w, "GetBangles", err)
		return
	}
	h.render.JSON(w, http.StatusOK, helpers.MapBangleResponses(h.appURL, bangles))
}

func (h *APIHandler) GetBangle(w http.ResponseWriter, r *http.Request) {
	bangleID := mux.Vars(r)["bangleId"]

	bangle, err := h.bangleRepo.GetByID(r.Context(), bangleID)
	if err != nil {
		h.respondError(w, "GetBangle", err)
		return
	}
	if bangle == nil {
		h.respondError(w, "GetBangle", apperr.NotFoundf("Bangle not found"))
		return
	}
	h.render.JSON(w, http.StatusOK, helpers.MapBangleResponse(h.appURL, *bangle))
}

func (h *APIHandler) CreateBangle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.respondError(w, "CreateBangle", apperr.Validationf("Invalid multipart form."))
		return
	}
	form := r.MultipartForm

	id, _ := formValue(form, "id")
	name, _ := formValue(form, "name")
	categoryID, _ := formValue(form, "categoryId")
	priceStr, _ := formValue(form, "price")

	if err := h.validator.Struct(bangleForm{ID: id, Name: name, CategoryID: categoryID, Price: priceStr}); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			h.respondError(w, "CreateBangle", apperr.Validationf("Bangle ID, Name, Category ID, and Price are required."))
			return
		}
		h.respondError(w, "CreateBangle", err)
		return
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		h.respondError(w, "CreateBangle", apperr.Validationf("Invalid price format."))
		return
	}

	input := services.CreateBangleInput{
		ID:            id,
		Name:          name,
		CategoryID:    categoryID,
		Price:         price,
		BaseImageFile: formFile(form, "baseImageFile"),
		Variants:      parseVariantInputs(form),
	}
	input.Description, _ = formValue(form, "description")
	input.Material, _ = formValue(form, "material")

	if raw, ok := formValue(form, "availableSizes"); ok {
		sizes, err := parseAvailableSizes(raw)
		if err != nil {
			log.Printf("CreateBangle: failed to parse availableSizes %q, defaulting to empty list: %v", raw, err)
			sizes = models.SizeList{}
		}
		input.AvailableSizes = sizes
	}
	if input.Rating, err = parseRating(form); err != nil {
		h.respondError(w, "CreateBangle", err)
		return
	}
	if input.Reviews, err = parseReviews(form); err != nil {
		h.respondError(w, "CreateBangle", err)
		return
	}

	bangle, err := h.catalogSvc.CreateBangle(r.Context(), input)
	if err != nil {
		h.respondError(w, "CreateBangle", err)
		return
	}
	h.render.JSON(w, http.StatusCreated, helpers.MapBangleResponse(h.appURL, *bangle))
}

func (h *APIHandler) UpdateBangle(w http.ResponseWriter, r *http.Request) {
	bangleID := mux.Vars(r)["bangleId"]

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.respondError(w, "UpdateBangle", apperr.Validationf("Invalid multipart form."))
		return
	}
	form := r.MultipartForm

	input := services.UpdateBangleInput{
		BaseImageFile: formFile(form, "baseImageFile"),
		Variants:      parseVariantInputs(form),
	}

	if name, ok := formValue(form, "name"); ok {
		input.Name = &name
	}
	if categoryID, ok := formValue(form, "categoryId"); ok {
		input.CategoryID = &categoryID
	}
	if priceStr, ok := formValue(form, "price"); ok {
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			h.respondError(w, "UpdateBangle", apperr.Validationf("Invalid price format."))
			return
		}
		input.Price = &price
	}
	if description, ok := formValue(form, "description"); ok {
		input.Description = &description
	}
	if material, ok := formValue(form, "material"); ok {
		input.Material = &material
	}
	// On update a bad sizes payload keeps the stored list instead of wiping it.
	if raw, ok := formValue(form, "availableSizes"); ok {
		if sizes, err := parseAvailableSizes(raw); err != nil {
			log.Printf("UpdateBangle: ignoring unparseable availableSizes %q, keeping stored sizes: %v", raw, err)
		} else {
			input.AvailableSizes = &sizes
		}
	}

	var err error
	if input.Rating, err = parseRating(form); err != nil {
		h.respondError(w, "UpdateBangle", err)
		return
	}
	if input.Reviews, err = parseReviews(form); err != nil {
		h.respondError(w, "UpdateBangle", err)
		return
	}

	bangle, err := h.catalogSvc.UpdateBangle(r.Context(), bangleID, input)
	if err != nil {
		h.respondError(w, "UpdateBangle", err)
		return
	}
	h.render.JSON(w, http.StatusOK, helpers.MapBangleResponse(h.appURL, *bangle))
}

func (h *APIHandler) DeleteBangle(w http.ResponseWriter, r *http.Request) {
	bangleID := mux.Vars(r)["bangleId"]

	if err := h.catalogSvc.DeleteBangle(r.Context(), bangleID); err != nil {
		h.respondError(w, "DeleteBangle", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseVariantInputs reconstructs the variant list from indexed flat form
// fields (colorVariants[i][id], colorVariants[i][colorName], ...). The scan
// stops at the first index with no id field, mirroring how the admin panel
// serializes its variant array.
func parseVariantInputs(form *multipart.Form) []services.VariantInput {
	var variants []services.VariantInput
	for i := 0; ; i++ {
		id, ok := formValue(form, fmt.Sprintf("colorVariants[%d][id]", i))
		if !ok {
			break
		}

		variant := services.VariantInput{ID: id}
		variant.ColorName, _ = formValue(form, fmt.Sprintf("colorVariants[%d][colorName]", i))
		variant.HexColor, _ = formValue(form, fmt.Sprintf("colorVariants[%d][hexColor]", i))
		variant.ImageURL, _ = formValue(form, fmt.Sprintf("colorVariants[%d][imageUrl]", i))
		variant.ImageFile = formFile(form, fmt.Sprintf("colorVariants[%d][imageFile]", i))

		variants = append(variants, variant)
	}
	return variants
}

// The admin panel sends availableSizes as one JSON-encoded array field.
func parseAvailableSizes(raw string) (models.SizeList, error) {
	var sizes []string
	if err := json.Unmarshal([]byte(raw), &sizes); err != nil {
		return nil, err
	}
	return sizes, nil
}

func parseRating(form *multipart.Form) (*float64, error) {
	raw, ok := formValue(form, "rating")
	if !ok || raw == "" {
		return nil, nil
	}
	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperr.Validationf("Invalid rating format.")
	}
	if rating < 0 || rating > 5 {
		return nil, apperr.Validationf("Rating must be between 0 and 5.")
	}
	return &rating, nil
}

func parseReviews(form *multipart.Form) (*int, error) {
	raw, ok := formValue(form, "reviews")
	if !ok || raw == "" {
		return nil, nil
	}
	reviews, err := strconv.Atoi(raw)
	if err != nil || reviews < 0 {
		return nil, apperr.Validationf("Reviews must be a non-negative number.")
	}
	return &reviews, nil
}
