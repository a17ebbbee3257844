package crawl

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extractor evaluates the profile's selector paths against parsed documents.
type Extractor struct {
	profile *Profile
}

func NewExtractor(profile *Profile) *Extractor {
	return &Extractor{profile: profile}
}

// ActorLinks returns the absolute URLs of the actor pages linked from a list
// page. Relative hrefs are resolved against the page URL; anchors without an
// href are skipped.
func (e *Extractor) ActorLinks(doc *goquery.Document, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page URL: %w", err)
	}

	var links []string
	doc.Find(e.profile.List.ActorLinks).Each(func(i int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}

		links = append(links, base.ResolveReference(ref).String())
	})

	return links, nil
}

// ActorName returns the actor's display name from an actor page, or "" when
// the selector matches nothing.
func (e *Extractor) ActorName(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find(e.profile.Actor.Name).First().Text())
}

// Titles returns the work titles credited on an actor page
func (e *Extractor) Titles(doc *goquery.Document) []string {
	var titles []string
	doc.Find(e.profile.Actor.Titles).Each(func(i int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Text())
		if title != "" {
			titles = append(titles, title)
		}
	})
	return titles
}
