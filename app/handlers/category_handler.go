package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/kalash-creations/go-bangles/app/helpers"
	"github.com/kalash-creations/go-bangles/app/services"
	"github.com/kalash-creations/go-bangles/app/utils/apperr"
)

type categoryForm struct {
	ID   string `validate:"required"`
	Name string `validate:"required"`
}

func (h *APIHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		h.respondError(w, "GetCategories", err)
		return
	}
	h.render.JSON(w, http.StatusOK, helpers.MapCategoryResponses(h.appURL, categories))
}

func (h *APIHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["categoryId"]

	category, err := h.categoryRepo.GetByID(r.Context(), categoryID)
	if err != nil {
		h.respondError(w, "GetCategory", err)
		return
	}
	if category == nil {
		h.respondError(w, "GetCategory", apperr.NotFoundf("Category not found"))
		return
	}
	h.render.JSON(w, http.StatusOK, helpers.MapCategoryResponse(h.appURL, *category))
}

func (h *APIHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.respondError(w, "CreateCategory", apperr.Validationf("Invalid multipart form."))
		return
	}
	form := r.MultipartForm

	id, _ := formValue(form, "id")
	name, _ := formValue(form, "name")
	description, _ := formValue(form, "description")

	if err := h.validator.Struct(categoryForm{ID: id, Name: name}); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			h.respondError(w, "CreateCategory", apperr.Validationf("Category ID and Name are required. %s", helpers.JoinValidationErrors(errs)))
			return
		}
		h.respondError(w, "CreateCategory", err)
		return
	}

	category, err := h.categorySvc.CreateCategory(r.Context(), services.CreateCategoryInput{
		ID:          id,
		Name:        name,
		Description: description,
		ImageFile:   formFile(form, "imageFile"),
	})
	if err != nil {
		h.respondError(w, "CreateCategory", err)
		return
	}
	h.render.JSON(w, http.StatusCreated, helpers.MapCategoryResponse(h.appURL, *category))
}

func (h *APIHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["categoryId"]

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.respondError(w, "UpdateCategory", apperr.Validationf("Invalid multipart form."))
		return
	}
	form := r.MultipartForm

	input := services.UpdateCategoryInput{ImageFile: formFile(form, "imageFile")}
	if name, ok := formValue(form, "name"); ok {
		input.Name = &name
	}
	if description, ok := formValue(form, "description"); ok {
		input.Description = &description
	}

	category, err := h.categorySvc.UpdateCategory(r.Context(), categoryID, input)
	if err != nil {
		h.respondError(w, "UpdateCategory", err)
		return
	}
	h.render.JSON(w, http.StatusOK, helpers.MapCategoryResponse(h.appURL, *category))
}

func (h *APIHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["categoryId"]

	if err := h.categorySvc.DeleteCategory(r.Context(), categoryID); err != nil {
		h.respondError(w, "DeleteCategory", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
