package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/kalash-creations/go-bangles/app/repositories"
	"github.com/kalash-creations/go-bangles/app/services"
	"github.com/kalash-creations/go-bangles/app/utils/apperr"
	log "github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

const maxMultipartMemory = 32 << 20

// APIHandler bundles the JSON renderer, validator and the catalog/order
// services behind the REST endpoints.
type APIHandler struct {
	render       *render.Render
	validator    *validator.Validate
	appURL       string
	categoryRepo repositories.CategoryRepositoryImpl
	bangleRepo   repositories.BangleRepositoryImpl
	orderRepo    repositories.OrderRepository
	categorySvc  *services.CategoryService
	catalogSvc   *services.CatalogService
	orderSvc     *services.OrderService
}

func NewAPIHandler(
	appURL string,
	categoryRepo repositories.CategoryRepositoryImpl,
	bangleRepo repositories.BangleRepositoryImpl,
	orderRepo repositories.OrderRepository,
	categorySvc *services.CategoryService,
	catalogSvc *services.CatalogService,
	orderSvc *services.OrderService,
) *APIHandler {
	return &APIHandler{
		render:       render.New(),
		validator:    validator.New(),
		appURL:       appURL,
		categoryRepo: categoryRepo,
		bangleRepo:   bangleRepo,
		orderRepo:    orderRepo,
		categorySvc:  categorySvc,
		catalogSvc:   catalogSvc,
		orderSvc:     orderSvc,
	}
}

// respondError is the single funnel for handler errors: the full error is
// logged, the client sees only the taxonomy message.
func (h *APIHandler) respondError(w http.ResponseWriter, component string, err error) {
	status := apperr.StatusCode(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s: unhandled error: %v", component, err)
	} else {
		log.Printf("%s: %v", component, err)
	}
	h.render.JSON(w, status, map[string]string{"error": apperr.Message(err)})
}

// formValue reports both the value and whether the field was present at all,
// so PUT handlers can tell "omitted" from "sent empty".
func formValue(form *multipart.Form, key string) (string, bool) {
	if form == nil {
		return "", false
	}
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func formFile(form *multipart.Form, key string) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	if files, ok := form.File[key]; ok && len(files) > 0 {
		return files[0]
	}
	return nil
}
