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

	"github.com/smartfit-app/wardrobe-backend/models"
	"github.com/smartfit-app/wardrobe-backend/utils"
)

var validOutfitNumbers = map[string]bool{"1": true, "2": true, "3": true}

// GenerateOutfitRequest represents the payload for outfit image
// generation
type GenerateOutfitRequest struct {
	Picture string `json:"picture"`
}

// CreateOutfitRequest represents the payload for saving an outfit
// document. Item ids are hex strings; empty fields leave the category
// unset.
type CreateOutfitRequest struct {
	UserID      string `json:"userId"`
	Tops        string `json:"tops"`
	Bottoms     string `json:"bottoms"`
	Shoes       string `json:"shoes"`
	Outerwear   string `json:"outerwear"`
	Accessories string `json:"accessories"`
}

// UpdateOutfitHandler equips a wardrobe item into one category of one
// of the user's three outfit slots.
func UpdateOutfitHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Update Outfit API]")

	userID := r.PathValue("userId")
	outfitNumber := r.PathValue("outfitNumber")
	category := r.PathValue("category")
	itemID := r.PathValue("itemId")

	// Validation errors are accumulated and returned together.
	var errors []string
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		errors = append(errors, "Invalid user ID")
	}
	if !validOutfitNumbers[outfitNumber] {
		errors = append(errors, "Outfit number must be 1, 2, or 3")
	}
	if !models.IsValidCategory(category) {
		errors = append(errors, "Invalid category")
	}
	itemObjID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		errors = append(errors, "Invalid item ID")
	}
	if len(errors) > 0 {
		utils.AddToLogMessage(&logMessageBuilder, strings.Join(errors, ", "))
		utils.RespondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Validation failed",
			"errors":  errors,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(DatabaseName, UsersCollection)
	var user models.User
	if err := collection.FindOne(ctx, bson.M{"_id": userObjID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondError(w, &logMessageBuilder, "User not found", http.StatusNotFound)
		} else {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
		}
		return
	}

	slot := user.OutfitSlotFor(outfitNumber)
	slot[category] = itemObjID

	field := models.OutfitFieldName(outfitNumber)
	if _, err := collection.UpdateByID(ctx, userObjID, bson.M{"$set": bson.M{field: slot}}); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to update outfit", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Updated %s.%s for user %s", field, category, userID))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Outfit updated successfully",
		"outfit":  slot,
	})
}

// GenerateOutfitHandler renders a composite image of the user wearing
// the items equipped in the requested outfit slot.
func GenerateOutfitHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Generate Outfit API]")

	userID := r.PathValue("userId")
	outfitNumber := r.PathValue("outfitNumber")

	var req GenerateOutfitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	var errors []string
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		errors = append(errors, "Invalid user ID")
	}
	if !validOutfitNumbers[outfitNumber] {
		errors = append(errors, "Outfit number must be 1, 2, or 3")
	}
	if req.Picture == "" {
		errors = append(errors, "Picture is required and must be a string")
	} else if !strings.HasPrefix(req.Picture, "data:image/") {
		errors = append(errors, "Picture must be a valid base64 image data URL")
	}
	if len(errors) > 0 {
		utils.AddToLogMessage(&logMessageBuilder, strings.Join(errors, ", "))
		utils.RespondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Validation failed",
			"errors":  errors,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	usersCollection := utils.GetCollection(DatabaseName, UsersCollection)
	var user models.User
	if err := usersCollection.FindOne(ctx, bson.M{"_id": userObjID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondError(w, &logMessageBuilder, "User not found", http.StatusNotFound)
		} else {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
		}
		return
	}

	slot := user.OutfitSlotFor(outfitNumber)
	if len(slot) == 0 {
		utils.RespondError(w, &logMessageBuilder, "Outfit is empty", http.StatusBadRequest)
		return
	}

	itemIDs := make([]primitive.ObjectID, 0, len(slot))
	for _, id := range slot {
		itemIDs = append(itemIDs, id)
	}

	wardrobeCollection := utils.GetCollection(DatabaseName, WardrobeCollection)
	cursor, err := wardrobeCollection.Find(ctx, bson.M{"_id": bson.M{"$in": itemIDs}})
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to fetch wardrobe items: %v", err), http.StatusInternalServerError)
		return
	}
	var items []models.WardrobeItem
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to decode wardrobe items: %v", err), http.StatusInternalServerError)
		return
	}

	clothing := make([]utils.ClothingImage, 0, len(items))
	for _, item := range items {
		clothing = append(clothing, utils.ClothingImage{
			Category:  item.Category,
			ImageData: item.ImageData,
		})
	}

	utils.AddToLogMessage(&logMessageBuilder,
		fmt.Sprintf("Generate outfit requested for user %s, outfit %s with %d items", userID, outfitNumber, len(clothing)))

	// Use a background context with a long timeout for the heavy
	// generation call.
	geminiCtx, cancelGemini := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancelGemini()

	generatedImage, err := utils.GenerateOutfitImage(geminiCtx, req.Picture, clothing)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to generate outfit image: %v", err))
		if strings.Contains(err.Error(), "429") || strings.Contains(strings.ToLower(err.Error()), "quota") {
			utils.RespondError(w, nil, "Quota exceeded. Please try again later.", http.StatusTooManyRequests)
		} else {
			utils.RespondError(w, nil, "Failed to generate outfit", http.StatusInternalServerError)
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "Outfit generated successfully",
		"userId":         userID,
		"outfitNumber":   outfitNumber,
		"outfit":         slot,
		"generatedImage": generatedImage,
	})
}

// GetOutfitsHandler returns all saved outfit documents for a user.
func GetOutfitsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Get Outfits API]")

	userID := r.PathValue("userId")
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Provided invalid userID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(DatabaseName, OutfitsCollection)
	cursor, err := collection.Find(ctx, bson.M{"user_id": userObjID})
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to fetch outfits: %v", err), http.StatusInternalServerError)
		return
	}
	var outfits []models.Outfit
	if err := cursor.All(ctx, &outfits); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to decode outfits: %v", err), http.StatusInternalServerError)
		return
	}

	if len(outfits) == 0 {
		utils.RespondError(w, &logMessageBuilder, "No outfits found for this user.", http.StatusNotFound)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Found %d outfits for user %s", len(outfits), userID))
	utils.RespondJSON(w, http.StatusOK, outfits)
}

// CreateOutfitHandler saves a new outfit document.
func CreateOutfitHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Create Outfit API]")

	var req CreateOutfitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	userObjID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid User Id. Try again.", http.StatusBadRequest)
		return
	}

	outfit := models.Outfit{
		ID:     primitive.NewObjectID(),
		UserID: userObjID,
	}
	for _, ref := range []struct {
		raw    string
		target **primitive.ObjectID
	}{
		{req.Tops, &outfit.Tops},
		{req.Bottoms, &outfit.Bottoms},
		{req.Shoes, &outfit.Shoes},
		{req.Outerwear, &outfit.Outerwear},
		{req.Accessories, &outfit.Accessories},
	} {
		if ref.raw == "" {
			continue
		}
		objID, err := primitive.ObjectIDFromHex(ref.raw)
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, "One of the items provided is an invalid item ID. Try again", http.StatusBadRequest)
			return
		}
		*ref.target = &objID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(DatabaseName, OutfitsCollection)
	if _, err := collection.InsertOne(ctx, outfit); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to create outfit: %v", err), http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Created outfit %s for user %s", outfit.ID.Hex(), req.UserID))
	utils.RespondJSON(w, http.StatusCreated, outfit)
}
