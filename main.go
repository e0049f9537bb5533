package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/smartfit-app/wardrobe-backend/api"
	"github.com/smartfit-app/wardrobe-backend/config"
	"github.com/smartfit-app/wardrobe-backend/utils"
)

func main() {
	config.LoadConfig()

	// Initialize MongoDB
	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// CORS Middleware (also answers preflight before route dispatch)
	corsMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, PATCH, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/test", api.TestHandler)

	// User routes
	mux.HandleFunc("POST /api/user/register", api.RegisterHandler)
	mux.HandleFunc("POST /api/user/login", api.LoginHandler)
	mux.HandleFunc("GET /api/user/{id}", api.GetUserHandler)
	mux.HandleFunc("DELETE /api/user/{id}", api.DeleteUserHandler)
	mux.HandleFunc("PATCH /api/user/{userId}/{outfitNumber}/{category}/{itemId}", api.UpdateOutfitHandler)
	mux.HandleFunc("POST /api/user/{userId}/generate-outfit/{outfitNumber}", api.GenerateOutfitHandler)

	// Outfit routes
	mux.HandleFunc("GET /api/outfit/{userId}", api.GetOutfitsHandler)
	mux.HandleFunc("POST /api/outfit", api.CreateOutfitHandler)

	// Wardrobe routes
	mux.HandleFunc("GET /api/wardrobe", api.GetItemsHandler)
	mux.HandleFunc("POST /api/wardrobe", api.CreateItemHandler)
	mux.HandleFunc("PUT /api/wardrobe/{id}", api.UpdateItemHandler)
	mux.HandleFunc("DELETE /api/wardrobe/{id}", api.DeleteItemHandler)
	mux.HandleFunc("POST /api/wardrobe/import-url", api.ImportFromURLHandler)

	handler := utils.LatencyMiddleware(corsMiddleware(mux))

	port := config.Port
	fmt.Printf("Server running on port %s\n", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
