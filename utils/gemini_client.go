package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/smartfit-app/wardrobe-backend/config"
)

// The generative API quota is tight on the free tier, so all outbound
// Gemini calls share one limiter.
var geminiLimiter = rate.NewLimiter(rate.Limit(0.5), 3)

var dataURLPrefix = regexp.MustCompile(`^data:image/[^;]+;base64,`)

// ClothingImage pairs an equipped item's image with its category for
// the outfit-generation prompt.
type ClothingImage struct {
	Category  string
	ImageData string
}

// AnalyzeClothingImage asks Gemini to describe the clothing item in the
// supplied image (base64, with or without a data URL prefix).
func AnalyzeClothingImage(ctx context.Context, imageData string) (string, error) {
	if config.GoogleAPIKey == "" {
		return "", fmt.Errorf("GOOGLE_API_KEY is not set")
	}
	if err := geminiLimiter.Wait(ctx); err != nil {
		return "", err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GoogleAPIKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	raw, err := decodeImageData(imageData)
	if err != nil {
		return "", err
	}

	model := client.GenerativeModel("gemini-2.0-flash")
	resp, err := model.GenerateContent(ctx,
		genai.ImageData("jpeg", raw),
		genai.Text("describe the clothes on this image"),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %v", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				return string(text), nil
			}
		}
	}
	return "", fmt.Errorf("no description generated")
}

// GenerateOutfitImage composes the person picture with the equipped
// items and returns the generated image as a data URL.
func GenerateOutfitImage(ctx context.Context, personImage string, items []ClothingImage) (string, error) {
	if config.GoogleAPIKey == "" {
		return "", fmt.Errorf("GOOGLE_API_KEY is not set")
	}
	if err := geminiLimiter.Wait(ctx); err != nil {
		return "", err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GoogleAPIKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	personRaw, err := decodeImageData(personImage)
	if err != nil {
		return "", fmt.Errorf("invalid person image: %v", err)
	}

	var categories []string
	for _, item := range items {
		categories = append(categories, item.Category)
	}
	prompt := fmt.Sprintf(`Generate an image of the person in the first photo wearing the clothing items from the following photos (%s).
Keep the person's face, pose and body unchanged. Render the outfit realistically on them.`,
		strings.Join(categories, ", "))

	parts := []genai.Part{
		genai.Text(prompt),
		genai.ImageData("jpeg", personRaw),
	}
	for _, item := range items {
		raw, err := decodeImageData(item.ImageData)
		if err != nil {
			// Items without a usable image are skipped rather than
			// failing the whole generation.
			continue
		}
		parts = append(parts, genai.ImageData("jpeg", raw))
	}

	model := client.GenerativeModel("gemini-3-pro-image-preview")
	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %v", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if blob, ok := part.(genai.Blob); ok {
				mime := blob.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(blob.Data), nil
			}
		}
	}
	return "", fmt.Errorf("no image generated")
}

func decodeImageData(imageData string) ([]byte, error) {
	clean := dataURLPrefix.ReplaceAllString(strings.TrimSpace(imageData), "")
	raw, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %v", err)
	}
	return raw, nil
}
