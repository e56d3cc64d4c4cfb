package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/greeenboii/greeenboii"
)

// ExtractCardLinks returns the href of the first anchorSelector match inside
// each cardSelector match, in document order. Cards without an anchor or
// without an href are skipped, as are hrefs that do not start with "http"
// (relative links, javascript:, tracking redirects such as "/url?q=").
// At most max links are returned; max <= 0 means no limit.
// Duplicates are kept.
func ExtractCardLinks(html, cardSelector, anchorSelector string, max int) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, greeenboii.Errorf(greeenboii.EPARSE, "failed to parse HTML: %v", err)
	}
	return cardLinks(doc, cardSelector, anchorSelector, max), nil
}

func cardLinks(doc *goquery.Document, cardSelector, anchorSelector string, max int) []string {
	var links []string
	doc.Find(cardSelector).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		href, ok := card.Find(anchorSelector).First().Attr("href")
		if !ok || !strings.HasPrefix(href, "http") {
			return true
		}
		links = append(links, href)
		return max <= 0 || len(links) < max
	})
	return links
}

// PageTitle returns the trimmed contents of the document's <title> element,
// or an empty string if there is none.
func PageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return documentTitle(doc)
}

func documentTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}
