package scraper

import (
	"net/url"
	"strings"
)

// SiteProfile holds the extraction rules for one retailer. Selector
// lists are tried against the document in order and the first selector
// yielding non-empty text wins, independently per field. Brand is a
// constant, not a selector.
type SiteProfile struct {
	Name     []string
	Price    []string
	Color    []string
	Image    []string
	Material []string
	Brand    string
}

// siteProfiles is keyed by registrable domain suffix. The table is
// read-only after init and safe to share across concurrent scrapes.
// None of the suffixes can match the same hostname, so map iteration
// order does not matter.
var siteProfiles = map[string]SiteProfile{
	"uniqlo.com": {
		Name: []string{"h1.heading-primary", ".product-name"},
		Price: []string{
			".price-value",
			".product-price__price",
			".product-detail__price",
			".product__price",
			".product-sales-price",
			`[data-test="product-price"]`,
			`[class*="Price-module"]`,
			`[class*="product-price"]`,
			".fr-ec-price-text",
		},
		Color: []string{".color-name", `[data-test="product-color"]`},
		Image: []string{".product-image img", ".product-detail-main-image-container img"},
		// Usually holds a composition line like "93% Cotton, 7% Spandex".
		Material: []string{".item-material", ".product-detail-description", `[data-test="composition"]`},
		Brand:    "UNIQLO",
	},
	"zara.com": {
		Name:     []string{"h1.product-detail-info__header-name"},
		Price:    []string{".price__amount-current"},
		Color:    []string{".product-detail-selected-color"},
		Image:    []string{".media-image__image"},
		Material: []string{".product-detail-info__composition", ".product-detail-description"},
		Brand:    "ZARA",
	},
	"hm.com": {
		Name: []string{"h1.product-item-headline"},
		Price: []string{
			".price-value",
			`[data-testid="price"]`,
			`[class*="Price"]`,
			`[class*="price"]`,
		},
		Color: []string{".product-color", `[class*="ProductDescription-module--colorName--"]`},
		Image: []string{".product-image img", ".product-detail-main-image-container img"},
		Material: []string{
			".pdp-description-list-item",
			".pdp-description-text",
			`[class*="ProductMaterial-module--details--"]`,
		},
		Brand: "H&M",
	},
	"amazon.com": {
		Name: []string{"#productTitle"},
		Price: []string{
			"#corePrice_feature_div span.a-offscreen",
			"#priceblock_ourprice",
			"#priceblock_dealprice",
		},
		Color: []string{"#variation_color_name .selection"},
		Image: []string{"#imgTagWrapperId img", "#landingImage"},
		// No material section; the generic fabric-keyword scan is used.
	},
}

// ProfileFor resolves the site profile for a product URL by suffix
// matching the hostname (with any leading "www." stripped). The second
// return value is false for unsupported retailers and for URLs that do
// not parse as absolute URLs.
func ProfileFor(rawURL string) (SiteProfile, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Hostname() == "" {
		return SiteProfile{}, false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for suffix, profile := range siteProfiles {
		if strings.HasSuffix(host, suffix) {
			return profile, true
		}
	}
	return SiteProfile{}, false
}

// IsValidProductURL reports whether url is a well-formed absolute URL
// whose hostname matches a supported retailer. This gate runs before
// any network call; ScrapeProductInfo does not re-check it.
func IsValidProductURL(rawURL string) bool {
	_, ok := ProfileFor(rawURL)
	return ok
}
