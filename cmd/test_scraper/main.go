package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/smartfit-app/wardrobe-backend/scraper"
)

func main() {
	urls := os.Args[1:]
	if len(urls) == 0 {
		urls = []string{
			"https://www.uniqlo.com/us/en/products/E455365-000/00",
			"https://www.zara.com/us/en/textured-shirt-p01234567.html",
			"https://www2.hm.com/en_us/productpage.1227154001.html",
			"https://www.amazon.com/dp/B09B9V1L2K",
		}
	}

	s := scraper.NewScraper()
	for _, u := range urls {
		fmt.Printf("Testing URL: %s\n", u)
		if !scraper.IsValidProductURL(u) {
			log.Printf("Unsupported URL: %s\n", u)
			continue
		}

		result := s.ScrapeProductInfo(u)
		b, _ := json.MarshalIndent(result, "", "  ")
		fmt.Printf("Result: %s\n", string(b))
		fmt.Println("--------------------------------------------------")
	}
}
