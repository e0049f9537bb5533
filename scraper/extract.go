package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	nonPriceChars = regexp.MustCompile(`[^0-9.]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	percentSign   = regexp.MustCompile(`[%％]`)

	// Composition lines like "93% Cotton, 7% Spandex" (fullwidth percent
	// signs appear on Japanese product pages).
	compositionPattern = regexp.MustCompile(`\d{1,3}\s*[%％]\s*[A-Za-z]+(?:\s*,\s*\d{1,3}\s*[%％]\s*[A-Za-z]+)*`)

	fabricKeywords = regexp.MustCompile(`(?i)cotton|polyester|nylon|wool|rayon|linen|acrylic|spandex|elastane`)
)

// categoryRules are tested in order against the lower-cased item name;
// the first matching group wins and unmatched names default to tops.
var categoryRules = []struct {
	category string
	keywords *regexp.Regexp
}{
	{"tops", regexp.MustCompile(`shirt|blouse|tee|t-shirt|top|sweater`)},
	{"bottoms", regexp.MustCompile(`pants|jeans|shorts|skirt|trousers`)},
	{"shoes", regexp.MustCompile(`shoe|sneaker|boot|loafer`)},
	{"outerwear", regexp.MustCompile(`jacket|coat|parka|blazer`)},
	{"accessories", regexp.MustCompile(`hat|scarf|bag|belt`)},
}

// ExtractPrice normalizes a price string by stripping every character
// that is not a digit or a dot before parsing. Empty or unparseable
// input yields 0, never an error.
func ExtractPrice(text string) float64 {
	clean := nonPriceChars.ReplaceAllString(text, "")
	if clean == "" {
		return 0
	}
	price, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return price
}

// GuessCategory infers the wardrobe category from the item name. It is
// a keyword heuristic, deliberately order-sensitive: a name containing
// both "jacket" and "shirt" resolves to tops because the tops group is
// tested first. Misclassifications are an accepted limitation.
func GuessCategory(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		if rule.keywords.MatchString(lower) {
			return rule.category
		}
	}
	return "tops"
}

// CleanMaterial collapses whitespace and shortens material text. A
// composition pattern such as "93% Cotton, 7% Spandex" is preferred
// verbatim when present; otherwise the text up to the first sentence
// terminator is kept and truncated to 60 characters with an ellipsis.
func CleanMaterial(text string) string {
	normalized := strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	if normalized == "" {
		return ""
	}

	if match := compositionPattern.FindString(normalized); match != "" {
		return strings.TrimSpace(match)
	}

	result := normalized
	if idx := strings.IndexFunc(normalized, func(r rune) bool { return r == '.' || r == '。' }); idx >= 0 {
		result = strings.TrimSpace(normalized[:idx])
	}
	if runes := []rune(result); len(runes) > 60 {
		result = string(runes[:57]) + "..."
	}
	return result
}

// firstText tries each selector in order and returns the trimmed text
// of the first one that yields anything non-empty.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstSelection returns the first selection with non-empty text among
// the selectors, or nil when none match.
func firstSelection(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		s := doc.Find(sel).First()
		if s.Length() > 0 && strings.TrimSpace(s.Text()) != "" {
			return s
		}
	}
	return nil
}

// firstImageAttr returns the src (or href) of the first matching image
// selector.
func firstImageAttr(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		el := doc.Find(sel).First()
		if src, ok := el.Attr("src"); ok && strings.TrimSpace(src) != "" {
			return strings.TrimSpace(src)
		}
		if href, ok := el.Attr("href"); ok && strings.TrimSpace(href) != "" {
			return strings.TrimSpace(href)
		}
	}
	return ""
}

// materialFromSection picks the composition text inside a matched
// material section: the first descendant whose text contains a percent
// sign wins verbatim, otherwise the whole section text is used.
func materialFromSection(root *goquery.Selection) string {
	text := strings.TrimSpace(root.Text())

	percentLine := ""
	root.Find("*").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		t := strings.TrimSpace(el.Text())
		if percentSign.MatchString(t) {
			percentLine = t
			return false
		}
		return true
	})
	if percentLine != "" {
		text = percentLine
	}
	return text
}

// findMaterialText scans every element in document order and returns
// the normalized text of the first one that mentions a clothing fabric
// and stays under a 400-character safety bound. Used when a profile has
// no material selectors, and for unprofiled sites.
func findMaterialText(doc *goquery.Document) string {
	found := ""
	doc.Find("*").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := strings.TrimSpace(el.Text())
		if text != "" && len(text) < 400 && fabricKeywords.MatchString(text) {
			found = CleanMaterial(text)
			return false
		}
		return true
	})
	return found
}
