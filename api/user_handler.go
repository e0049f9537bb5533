package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartfit-app/wardrobe-backend/models"
	"github.com/smartfit-app/wardrobe-backend/utils"
)

// RegisterRequest represents the payload for user registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the payload for user login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userSummary is the user shape returned to clients (no password, no
// outfit slots).
type userSummary struct {
	ID        primitive.ObjectID `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	CreatedAt time.Time          `json:"createdAt"`
}

// TestHandler is the liveness probe.
func TestHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "API is working!"})
}

// RegisterHandler creates a new user account.
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Register API]")

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.RespondError(w, &logMessageBuilder, "Username, email, and password required", http.StatusBadRequest)
		return
	}
	if !utils.IsValidEmail(req.Email) {
		utils.RespondError(w, &logMessageBuilder, "Email is not valid. Try again", http.StatusBadRequest)
		return
	}
	if !utils.IsValidPassword(req.Password) {
		utils.RespondError(w, &logMessageBuilder, "Password not valid. Try again", http.StatusBadRequest)
		return
	}

	collection := utils.GetCollection(DatabaseName, UsersCollection)
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var existing models.User
	err := collection.FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing)
	if err == nil {
		utils.RespondError(w, &logMessageBuilder, "Email already in use. Please use another email", http.StatusBadRequest)
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Database error checking user: %v", err), http.StatusInternalServerError)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashedPassword),
		CreatedAt: time.Now(),
		Outfit1:   models.OutfitSlot{},
		Outfit2:   models.OutfitSlot{},
		Outfit3:   models.OutfitSlot{},
	}

	if _, err := collection.InsertOne(ctx, user); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to create user: %v", err), http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Created user %s", user.ID.Hex()))
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User successfully created!",
		"user": userSummary{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	})
}

// LoginHandler checks credentials and returns the user with a session
// token.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Login API]")

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.RespondError(w, &logMessageBuilder, "Email and password are required", http.StatusBadRequest)
		return
	}
	if !utils.IsValidEmail(req.Email) {
		utils.RespondError(w, &logMessageBuilder, "Email is not valid", http.StatusBadRequest)
		return
	}

	collection := utils.GetCollection(DatabaseName, UsersCollection)
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := collection.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondError(w, &logMessageBuilder, "Invalid email or password", http.StatusUnauthorized)
		} else {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	response := map[string]interface{}{
		"message": "Login successful",
		"user": userSummary{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	}
	if token, err := utils.GenerateToken(user.ID.Hex()); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to generate token: %v", err))
	} else {
		response["token"] = token
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("User %s logged in", user.ID.Hex()))
	utils.RespondJSON(w, http.StatusOK, response)
}

// GetUserHandler returns a user document by id.
func GetUserHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Get User API]")

	id := r.PathValue("id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Provided invalid ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(DatabaseName, UsersCollection)
	var user models.User
	if err := collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("User not found by ID: %s", id), http.StatusNotFound)
		} else {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// DeleteUserHandler removes a user account by id.
func DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Delete User API]")

	id := r.PathValue("id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "User ID is required to delete", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(DatabaseName, UsersCollection)
	var deleted models.User
	if err := collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&deleted); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondError(w, &logMessageBuilder, "User with that ID is not found", http.StatusNotFound)
		} else {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
		}
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Deleted user %s", id))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("User deleted with name: %s", deleted.Name),
	})
}
