package scraper

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Important: User-Agent to avoid immediate blocking
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

const (
	pageFetchTimeout  = 10 * time.Second
	imageFetchTimeout = 5 * time.Second
)

// ScrapeResult is the normalized output of one extraction attempt. It
// is always fully populated; ScrapedSuccessfully is false only when the
// page fetch or parse itself failed. The result is owned by the caller
// once returned.
type ScrapeResult struct {
	Name                string  `json:"name"`
	Brand               string  `json:"brand"`
	Price               float64 `json:"price"`
	Color               string  `json:"color"`
	Category            string  `json:"category"`
	ItemURL             string  `json:"item_url"`
	ImageData           string  `json:"image_data"`
	Material            string  `json:"material"`
	ScrapedSuccessfully bool    `json:"scraped_successfully"`
}

// failReason classifies internal failures for the log line. It is
// never exposed to callers; the only outward signal is the
// ScrapedSuccessfully flag.
type failReason string

const (
	failFetch  failReason = "page_fetch"
	failStatus failReason = "http_status"
	failParse  failReason = "html_parse"
)

// Scraper extracts product metadata from retailer pages. Each call is
// one page fetch, one parse and at most one image fetch, all
// sequential; instances hold no mutable state and are safe for
// concurrent use.
type Scraper struct {
	PageClient  *http.Client
	ImageClient *http.Client
}

func NewScraper() *Scraper {
	return &Scraper{
		PageClient:  &http.Client{Timeout: pageFetchTimeout},
		ImageClient: &http.Client{Timeout: imageFetchTimeout},
	}
}

// ScrapeProductInfo fetches a product page and returns a best-effort
// ScrapeResult. It never fails: every error path degrades to the fixed
// fallback result with ScrapedSuccessfully=false.
//
// Callers are expected to gate on IsValidProductURL first. Called
// directly with an unsupported host this still runs the generic
// meta-tag path and can report success; kept as a known quirk rather
// than reconciled with the gate.
func (s *Scraper) ScrapeProductInfo(productURL string) *ScrapeResult {
	profile, hasProfile := ProfileFor(productURL)

	doc, reason, err := s.fetchDocument(productURL)
	if err != nil {
		log.Printf("[Scraper] %s: %s failed: %v", reason, productURL, err)
		return failureResult(productURL)
	}

	// Generic meta-tag values first; a resolved profile overrides them
	// field by field.
	name, price, imageURL := scrapeMetaTags(doc, productURL)
	var brand, color, material string

	if hasProfile {
		if v := firstText(doc, profile.Name); v != "" {
			name = v
		}
		if v := firstText(doc, profile.Price); v != "" {
			price = ExtractPrice(v)
		}
		color = firstText(doc, profile.Color)
		if src := firstImageAttr(doc, profile.Image); src != "" {
			imageURL = resolveImageURL(src, productURL)
		}
		if len(profile.Material) > 0 {
			if root := firstSelection(doc, profile.Material); root != nil {
				material = CleanMaterial(materialFromSection(root))
			} else {
				material = findMaterialText(doc)
			}
		} else {
			material = findMaterialText(doc)
		}
		brand = profile.Brand
	} else {
		material = findMaterialText(doc)
	}

	imageData := ""
	if imageURL != "" {
		data, err := s.downloadImageAsDataURL(imageURL)
		if err != nil {
			// Image failure alone never flips the success flag.
			log.Printf("[Scraper] image download failed for %s: %v", imageURL, err)
		} else {
			imageData = data
		}
	}

	return &ScrapeResult{
		Name:                truncateRunes(name, 100),
		Brand:               brand,
		Price:               price,
		Color:               color,
		Category:            GuessCategory(name),
		ItemURL:             productURL,
		ImageData:           imageData,
		Material:            material,
		ScrapedSuccessfully: true,
	}
}

// failureResult is the fixed fallback for page fetch/parse failures.
func failureResult(productURL string) *ScrapeResult {
	return &ScrapeResult{
		Name:     "Imported Item",
		Category: "tops",
		ItemURL:  productURL,
	}
}

func (s *Scraper) fetchDocument(productURL string) (*goquery.Document, failReason, error) {
	req, err := http.NewRequest(http.MethodGet, productURL, nil)
	if err != nil {
		return nil, failFetch, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	res, err := s.PageClient.Do(req)
	if err != nil {
		return nil, failFetch, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, failStatus, fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, failParse, err
	}
	return doc, "", nil
}

// scrapeMetaTags pulls the generic fallback values: Open Graph or
// Twitter title and image, the price meta tags, with the page title and
// the first <img> as last resorts.
func scrapeMetaTags(doc *goquery.Document, productURL string) (name string, price float64, imageURL string) {
	metaContent := func(selector string) string {
		content, _ := doc.Find(selector).First().Attr("content")
		return strings.TrimSpace(content)
	}

	name = metaContent(`meta[property="og:title"]`)
	if name == "" {
		name = metaContent(`meta[name="twitter:title"]`)
	}
	if name == "" {
		name = metaContent(`meta[name="title"]`)
	}
	if name == "" {
		name = strings.TrimSpace(doc.Find("title").Text())
	}
	if name == "" {
		name = "Imported Item"
	}

	priceText := metaContent(`meta[property="product:price:amount"]`)
	if priceText == "" {
		priceText = metaContent(`meta[property="og:price:amount"]`)
	}
	price = ExtractPrice(priceText)

	imageURL = metaContent(`meta[property="og:image"]`)
	if imageURL == "" {
		imageURL = metaContent(`meta[name="twitter:image"]`)
	}
	if imageURL == "" {
		src, _ := doc.Find("img").First().Attr("src")
		imageURL = strings.TrimSpace(src)
	}
	if imageURL != "" {
		imageURL = resolveImageURL(imageURL, productURL)
	}
	return name, price, imageURL
}

// resolveImageURL resolves a relative image reference against the
// product page origin. Absolute URLs pass through untouched.
func resolveImageURL(imageURL, productURL string) string {
	if strings.HasPrefix(imageURL, "http") {
		return imageURL
	}
	base, err := url.Parse(productURL)
	if err != nil || base.Host == "" {
		return imageURL
	}
	return base.Scheme + "://" + base.Host + imageURL
}

// downloadImageAsDataURL fetches the image bytes and encodes them as a
// base64 data URL with the response content type.
func (s *Scraper) downloadImageAsDataURL(imageURL string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := s.ImageClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	contentType := res.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(body), nil
}

// truncateRunes caps s at max characters. Applied to the name at the
// very end, after all override logic.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
