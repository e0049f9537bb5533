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
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smartfit-app/wardrobe-backend/models"
	"github.com/smartfit-app/wardrobe-backend/scraper"
	"github.com/smartfit-app/wardrobe-backend/utils"
)

const (
	DatabaseName       = "smartfit"
	UsersCollection    = "users"
	WardrobeCollection = "wardrobe"
	OutfitsCollection  = "outfits"
)

// productScraper is stateless and shared by all requests.
var productScraper = scraper.NewScraper()

// CreateItemRequest represents the payload for creating a wardrobe item
type CreateItemRequest struct {
	UserID      string  `json:"userId"`
	Category    string  `json:"category"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	ImageData   string  `json:"image_data"`
	Color       string  `json:"color"`
	Size        string  `json:"size"`
	Material    string  `json:"material"`
	ItemURL     string  `json:"item_url"`
}

// ImportFromURLRequest represents the payload for importing an item
// from a product page URL
type ImportFromURLRequest struct {
	UserID     string `json:"userId"`
	ProductURL string `json:"productUrl"`
	Size       string `json:"size"`
}

// GetItemsHandler returns all wardrobe items for a user, newest first,
// optionally filtered by category.
func GetItemsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Get Wardrobe API]")

	userID := r.URL.Query().Get("userId")
	category := r.URL.Query().Get("category")

	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Require valid userID", http.StatusBadRequest)
		return
	}

	filter := bson.M{"user_id": userObjID}
	if category != "" {
		filter["category"] = category
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(DatabaseName, WardrobeCollection)
	cursor, err := collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to fetch items: %v", err), http.StatusInternalServerError)
		return
	}

	items := []models.WardrobeItem{}
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to decode items: %v", err), http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Found %d items for user %s", len(items), userID))
	// 201 on a read is odd but it is the status this endpoint has always
	// returned; clients key off it.
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{"data": items})
}

// CreateItemHandler inserts a new wardrobe item. When image data is
// supplied, a Gemini description of the clothing replaces the provided
// one.
func CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Create Item API]")

	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	userObjID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "User id not valid. Try again", http.StatusBadRequest)
		return
	}

	category := strings.ToLower(strings.TrimSpace(req.Category))
	if !models.IsValidCategory(category) {
		utils.RespondError(w, &logMessageBuilder, "Invalid category", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Color) == "" || strings.TrimSpace(req.Size) == "" {
		utils.RespondError(w, &logMessageBuilder, "Name, color and size are required", http.StatusBadRequest)
		return
	}

	description := req.Description
	if req.ImageData != "" {
		geminiCtx, cancelGemini := context.WithTimeout(r.Context(), 60*time.Second)
		defer cancelGemini()
		generated, err := utils.AnalyzeClothingImage(geminiCtx, req.ImageData)
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to analyze clothing image: %v", err), http.StatusInternalServerError)
			return
		}
		description = generated
		utils.AddToLogMessage(&logMessageBuilder, "Generated item description from image")
	}

	item := models.WardrobeItem{
		ID:          primitive.NewObjectID(),
		UserID:      userObjID,
		Category:    category,
		Name:        strings.TrimSpace(req.Name),
		Color:       strings.ToLower(strings.TrimSpace(req.Color)),
		Size:        strings.ToUpper(strings.TrimSpace(req.Size)),
		Price:       req.Price,
		Brand:       req.Brand,
		Material:    req.Material,
		Description: description,
		ImageData:   req.ImageData,
		ItemURL:     req.ItemURL,
		CreatedAt:   time.Now(),
	}
	if item.Price < 0 {
		item.Price = 0
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(DatabaseName, WardrobeCollection)
	if _, err := collection.InsertOne(ctx, item); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to create item: %v", err), http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Created item %s for user %s", item.ID.Hex(), req.UserID))
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{"data": item})
}

// UpdateItemHandler applies a partial update to a wardrobe item.
func UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Update Item API]")

	id := r.PathValue("id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "You have provided an invalid clothing ID. Try again", http.StatusBadRequest)
		return
	}

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	delete(updates, "id")
	delete(updates, "_id")
	delete(updates, "userId")
	delete(updates, "user_id")

	// The write-time normalization rules apply to updates too.
	if color, ok := updates["color"].(string); ok {
		updates["color"] = strings.ToLower(strings.TrimSpace(color))
	}
	if size, ok := updates["size"].(string); ok {
		updates["size"] = strings.ToUpper(strings.TrimSpace(size))
	}
	if category, ok := updates["category"].(string); ok {
		category = strings.ToLower(strings.TrimSpace(category))
		if !models.IsValidCategory(category) {
			utils.RespondError(w, &logMessageBuilder, "Invalid category", http.StatusBadRequest)
			return
		}
		updates["category"] = category
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(DatabaseName, WardrobeCollection)
	var updated models.WardrobeItem
	err = collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondError(w, &logMessageBuilder, "Clothing item is not found given the Id", http.StatusBadRequest)
		} else {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to update clothing item: %v", err), http.StatusInternalServerError)
		}
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Updated item %s", id))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("You have updated clothing item id: %s", id),
		"data":    updated,
	})
}

// DeleteItemHandler removes a wardrobe item by id.
func DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Delete Item API]")

	id := r.PathValue("id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Clothing item is not found given the Id", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(DatabaseName, WardrobeCollection)
	res, err := collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to delete item: %v", err), http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondError(w, &logMessageBuilder, "Clothing item is not found given the Id", http.StatusBadRequest)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Deleted item %s", id))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// ImportFromURLHandler scrapes a product page and persists the result
// as a new wardrobe item. The scraper never fails; a failed scrape
// still creates an item from the fallback values, with the scraped flag
// reporting what happened.
func ImportFromURLHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Import URL API]")

	var req ImportFromURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Size == "" {
		req.Size = "M"
	}

	userObjID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Valid user ID required", http.StatusBadRequest)
		return
	}

	if req.ProductURL == "" || !scraper.IsValidProductURL(req.ProductURL) {
		utils.RespondError(w, &logMessageBuilder, "Valid product URL required", http.StatusBadRequest)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Scraping URL: %s", req.ProductURL))
	result := productScraper.ScrapeProductInfo(req.ProductURL)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Scraped successfully: %t", result.ScrapedSuccessfully))

	color := result.Color
	if color == "" {
		color = "Not specified"
	}

	item := models.WardrobeItem{
		ID:        primitive.NewObjectID(),
		UserID:    userObjID,
		Category:  result.Category,
		Name:      result.Name,
		Color:     strings.ToLower(color),
		Size:      strings.ToUpper(req.Size),
		Price:     result.Price,
		Brand:     result.Brand,
		Material:  result.Material,
		ImageData: result.ImageData,
		ItemURL:   req.ProductURL,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(DatabaseName, WardrobeCollection)
	if _, err := collection.InsertOne(ctx, item); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Import failed: %v", err), http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Imported item %s for user %s", item.ID.Hex(), req.UserID))
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"data":    item,
		"scraped": result.ScrapedSuccessfully,
	})
}
