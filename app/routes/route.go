package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kalash-creations/go-bangles/app/configs"
	"github.com/kalash-creations/go-bangles/app/handlers"
	"github.com/kalash-creations/go-bangles/app/middlewares"
	"github.com/kalash-creations/go-bangles/app/repositories"
	"github.com/kalash-creations/go-bangles/app/services"
	"github.com/kalash-creations/go-bangles/app/utils/imagestore"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, env configs.ENV) *mux.Router {
	categoryRepo := repositories.NewCategoryRepository(db)
	bangleRepo := repositories.NewBangleRepository(db)
	variantRepo := repositories.NewBangleVariantRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	images := imagestore.NewStore(env.UploadDir)

	categorySvc := services.NewCategoryService(categoryRepo, images, env.AppURL)
	catalogSvc := services.NewCatalogService(db, bangleRepo, variantRepo, images, env.AppURL)
	orderSvc := services.NewOrderService(db, orderRepo)

	h := handlers.NewAPIHandler(env.AppURL, categoryRepo, bangleRepo, orderRepo, categorySvc, catalogSvc, orderSvc)

	router := mux.NewRouter()
	router.Use(middlewares.LoggingMiddleware)
	router.Use(middlewares.CORSMiddleware(env.CorsAllowedOrigins))

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Kalash Bangles API is running!"))
	}).Methods("GET")

	// Uploaded images are served statically under the same prefix the stored
	// relative paths start with.
	router.PathPrefix(imagestore.URLPrefix + "/").Handler(
		http.StripPrefix(imagestore.URLPrefix+"/", http.FileServer(http.Dir(env.UploadDir))))

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/categories", h.GetCategories).Methods("GET")
	api.HandleFunc("/categories", h.CreateCategory).Methods("POST")
	api.HandleFunc("/categories/{categoryId}", h.GetCategory).Methods("GET")
	api.HandleFunc("/categories/{categoryId}", h.UpdateCategory).Methods("PUT")
	api.HandleFunc("/categories/{categoryId}", h.DeleteCategory).Methods("DELETE")

	api.HandleFunc("/bangles", h.GetBangles).Methods("GET")
	api.HandleFunc("/bangles", h.CreateBangle).Methods("POST")
	api.HandleFunc("/bangles/{bangleId}", h.GetBangle).Methods("GET")
	api.HandleFunc("/bangles/{bangleId}", h.UpdateBangle).Methods("PUT")
	api.HandleFunc("/bangles/{bangleId}", h.DeleteBangle).Methods("DELETE")

	api.HandleFunc("/orders", h.GetOrders).Methods("GET")
	api.HandleFunc("/orders", h.CreateOrder).Methods("POST")
	api.HandleFunc("/orders/{orderId}", h.GetOrder).Methods("GET")
	api.HandleFunc("/orders/{orderId}/status", h.UpdateOrderStatus).Methods("PUT")

	return router
}
