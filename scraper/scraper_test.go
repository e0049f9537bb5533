package scraper

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func htmlResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func imageResponse(contentType string, body []byte) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Status:     http.StatusText(http.StatusOK),
		Header:     http.Header{"Content-Type": []string{contentType}},
		Body:       io.NopCloser(strings.NewReader(string(body))),
	}
}

func fixtureScraper(page, image roundTripFunc) *Scraper {
	s := NewScraper()
	s.PageClient = &http.Client{Transport: page}
	if image != nil {
		s.ImageClient = &http.Client{Transport: image}
	}
	return s
}

const uniqloFixture = `<html>
<head>
	<meta property="og:title" content="Fallback Title" />
	<meta property="og:image" content="https://image.uniqlo.com/main.jpg" />
</head>
<body>
	<h1 class="heading-primary">UNIQLO Supima Cotton T-Shirt</h1>
	<span class="price-value">$19.90</span>
	<span class="color-name">Blue</span>
	<div class="item-material">93% Cotton, 7% Spandex</div>
</body>
</html>`

func TestScrapeProductInfoWithSiteProfile(t *testing.T) {
	productURL := "https://www.uniqlo.com/us/en/products/E455365-000/00"
	imageBytes := []byte("fake-image-bytes")

	var pageRequest *http.Request
	s := fixtureScraper(
		func(req *http.Request) (*http.Response, error) {
			pageRequest = req
			return htmlResponse(http.StatusOK, uniqloFixture), nil
		},
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "https://image.uniqlo.com/main.jpg", req.URL.String())
			return imageResponse("image/png", imageBytes), nil
		},
	)

	result := s.ScrapeProductInfo(productURL)

	require.NotNil(t, result)
	assert.True(t, result.ScrapedSuccessfully)
	assert.Equal(t, "UNIQLO Supima Cotton T-Shirt", result.Name)
	assert.Equal(t, "UNIQLO", result.Brand)
	assert.Equal(t, 19.90, result.Price)
	assert.Equal(t, "Blue", result.Color)
	assert.Equal(t, "tops", result.Category)
	assert.Equal(t, "93% Cotton, 7% Spandex", result.Material)
	assert.Equal(t, productURL, result.ItemURL)

	wantImage := "data:image/png;base64," + base64.StdEncoding.EncodeToString(imageBytes)
	assert.Equal(t, wantImage, result.ImageData)

	require.NotNil(t, pageRequest)
	assert.NotEmpty(t, pageRequest.Header.Get("User-Agent"))
	assert.NotEmpty(t, pageRequest.Header.Get("Accept-Language"))
}

func TestScrapeProductInfoProfileMaterialFallsBackToKeywordScan(t *testing.T) {
	// The profile's material selectors match nothing; the generic
	// fabric-keyword scan still finds the composition.
	page := `<html><body>
		<h1 class="heading-primary">Fleece Pullover</h1>
		<p class="care">Made of 100% Polyester</p>
	</body></html>`

	s := fixtureScraper(func(req *http.Request) (*http.Response, error) {
		return htmlResponse(http.StatusOK, page), nil
	}, nil)

	result := s.ScrapeProductInfo("https://www.uniqlo.com/us/en/products/E1-000/00")
	assert.True(t, result.ScrapedSuccessfully)
	assert.Equal(t, "100% Polyester", result.Material)
}

func TestScrapeProductInfoFetchErrorReturnsFallback(t *testing.T) {
	productURL := "https://www.uniqlo.com/us/en/products/E455365-000/00"
	s := fixtureScraper(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}, nil)

	result := s.ScrapeProductInfo(productURL)

	require.NotNil(t, result)
	assert.False(t, result.ScrapedSuccessfully)
	assert.Equal(t, "Imported Item", result.Name)
	assert.Equal(t, "tops", result.Category)
	assert.Equal(t, productURL, result.ItemURL)
	assert.Zero(t, result.Price)
	assert.Empty(t, result.Brand)
	assert.Empty(t, result.Color)
	assert.Empty(t, result.Material)
	assert.Empty(t, result.ImageData)
}

func TestScrapeProductInfoNonOKStatusReturnsFallback(t *testing.T) {
	productURL := "https://www.zara.com/us/en/shirt-p0123.html"
	s := fixtureScraper(func(req *http.Request) (*http.Response, error) {
		return htmlResponse(http.StatusNotFound, "<html>not found</html>"), nil
	}, nil)

	result := s.ScrapeProductInfo(productURL)

	assert.False(t, result.ScrapedSuccessfully)
	assert.Equal(t, "Imported Item", result.Name)
	assert.Equal(t, productURL, result.ItemURL)
}

func TestScrapeProductInfoInvalidURLReturnsFallback(t *testing.T) {
	s := NewScraper()

	result := s.ScrapeProductInfo("not-a-url")

	require.NotNil(t, result)
	assert.False(t, result.ScrapedSuccessfully)
	assert.Equal(t, "Imported Item", result.Name)
	assert.Equal(t, "not-a-url", result.ItemURL)
}

// An unsupported host is rejected by IsValidProductURL, but a direct
// ScrapeProductInfo call still runs the generic meta-tag path and can
// succeed.
func TestScrapeProductInfoUnsupportedHostUsesMetaTags(t *testing.T) {
	productURL := "https://example.com/item/42"
	page := `<html><head>
		<meta property="og:title" content="Everyday Crewneck Tee" />
		<meta property="product:price:amount" content="49.99" />
		<meta property="og:image" content="/img/42.jpg" />
	</head><body></body></html>`

	var imageURL string
	s := fixtureScraper(
		func(req *http.Request) (*http.Response, error) {
			return htmlResponse(http.StatusOK, page), nil
		},
		func(req *http.Request) (*http.Response, error) {
			imageURL = req.URL.String()
			return imageResponse("image/jpeg", []byte("img")), nil
		},
	)

	require.False(t, IsValidProductURL(productURL))
	result := s.ScrapeProductInfo(productURL)

	assert.True(t, result.ScrapedSuccessfully)
	assert.Equal(t, "Everyday Crewneck Tee", result.Name)
	assert.Empty(t, result.Brand)
	assert.Equal(t, 49.99, result.Price)
	assert.Equal(t, "tops", result.Category)

	// Relative og:image resolved against the page origin.
	assert.Equal(t, "https://example.com/img/42.jpg", imageURL)
	assert.True(t, strings.HasPrefix(result.ImageData, "data:image/jpeg;base64,"))
}

func TestScrapeProductInfoTitleTagFallback(t *testing.T) {
	page := `<html><head><title>Trail Runner Sneakers</title></head><body></body></html>`
	s := fixtureScraper(func(req *http.Request) (*http.Response, error) {
		return htmlResponse(http.StatusOK, page), nil
	}, nil)

	result := s.ScrapeProductInfo("https://example.com/p/9")

	assert.True(t, result.ScrapedSuccessfully)
	assert.Equal(t, "Trail Runner Sneakers", result.Name)
	assert.Equal(t, "shoes", result.Category)
	assert.Empty(t, result.ImageData)
}

func TestScrapeProductInfoImageFailureKeepsSuccess(t *testing.T) {
	s := fixtureScraper(
		func(req *http.Request) (*http.Response, error) {
			return htmlResponse(http.StatusOK, uniqloFixture), nil
		},
		func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("timeout")
		},
	)

	result := s.ScrapeProductInfo("https://www.uniqlo.com/us/en/products/E455365-000/00")

	assert.True(t, result.ScrapedSuccessfully)
	assert.Equal(t, "UNIQLO Supima Cotton T-Shirt", result.Name)
	assert.Empty(t, result.ImageData)
}

func TestScrapeProductInfoImageBadStatusKeepsSuccess(t *testing.T) {
	s := fixtureScraper(
		func(req *http.Request) (*http.Response, error) {
			return htmlResponse(http.StatusOK, uniqloFixture), nil
		},
		func(req *http.Request) (*http.Response, error) {
			return htmlResponse(http.StatusForbidden, "denied"), nil
		},
	)

	result := s.ScrapeProductInfo("https://www.uniqlo.com/us/en/products/E455365-000/00")

	assert.True(t, result.ScrapedSuccessfully)
	assert.Empty(t, result.ImageData)
}

func TestScrapeProductInfoTruncatesLongNames(t *testing.T) {
	longTitle := strings.Repeat("a", 150)
	page := `<html><head><meta property="og:title" content="` + longTitle + `" /></head><body></body></html>`
	s := fixtureScraper(func(req *http.Request) (*http.Response, error) {
		return htmlResponse(http.StatusOK, page), nil
	}, nil)

	result := s.ScrapeProductInfo("https://example.com/p/long")

	assert.True(t, result.ScrapedSuccessfully)
	assert.Len(t, []rune(result.Name), 100)
}

func TestScrapeProductInfoEmptyPage(t *testing.T) {
	s := fixtureScraper(func(req *http.Request) (*http.Response, error) {
		return htmlResponse(http.StatusOK, "<html><head></head><body></body></html>"), nil
	}, nil)

	result := s.ScrapeProductInfo("https://example.com/p/empty")

	assert.True(t, result.ScrapedSuccessfully)
	assert.Equal(t, "Imported Item", result.Name)
	assert.Equal(t, "tops", result.Category)
	assert.Zero(t, result.Price)
}

func TestScrapeResultFailureJSONShape(t *testing.T) {
	b, err := json.Marshal(failureResult("https://www.uniqlo.com/p/1"))
	require.NoError(t, err)

	// A failed download is an explicit empty image_data field, never an
	// absent one.
	assert.Contains(t, string(b), `"image_data":""`)
	assert.Contains(t, string(b), `"scraped_successfully":false`)
	assert.Contains(t, string(b), `"price":0`)
}

func TestResolveImageURL(t *testing.T) {
	tests := []struct {
		name     string
		imageURL string
		pageURL  string
		want     string
	}{
		{
			"absolute passthrough",
			"https://cdn.example.com/a.jpg",
			"https://www.uniqlo.com/p/1",
			"https://cdn.example.com/a.jpg",
		},
		{
			"relative path",
			"/images/a.jpg",
			"https://www.uniqlo.com/p/1",
			"https://www.uniqlo.com/images/a.jpg",
		},
		{
			"unparseable base",
			"/images/a.jpg",
			"not-a-url",
			"/images/a.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveImageURL(tt.imageURL, tt.pageURL))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "abcde", truncateRunes("abcdefg", 5))
	assert.Equal(t, "日本語", truncateRunes("日本語のシャツ", 3))
	assert.Equal(t, "", truncateRunes("", 5))
}
