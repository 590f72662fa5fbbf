package scraper

import (
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Headline is one incident headline located in a listing page, together with
// the markup context the parser itself never inspects.
type Headline struct {
	Title    string
	URL      string
	Category string
}

// Page holds everything extracted from a single listing page.
type Page struct {
	Headlines []Headline

	// NextURL is the absolute URL of the next listing page, or empty when
	// the pagination link is absent.
	NextURL string
}

// ParsePage extracts headlines, their categories and the pagination link from
// a listing page. Headlines live in span.headline_avherald elements; the
// enclosing <a> carries the article link and the enclosing table row carries
// the category icon. Relative URLs resolve against baseURL.
func ParsePage(r io.Reader, baseURL string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	page := &Page{}
	doc.Find("span.headline_avherald").Each(func(_ int, span *goquery.Selection) {
		link := span.ParentsFiltered("a").First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}
		page.Headlines = append(page.Headlines, Headline{
			Title:    strings.TrimSpace(span.Text()),
			URL:      resolveURL(base, href),
			Category: rowCategory(link),
		})
	})

	doc.Find(`img[src$="next.jpg"]`).EachWithBreak(func(_ int, icon *goquery.Selection) bool {
		link := icon.ParentsFiltered("a").First()
		if href, ok := link.Attr("href"); ok && href != "" {
			page.NextURL = resolveURL(base, href)
			return false
		}
		return true
	})

	return page, nil
}

// rowCategory derives the category from the icon image in the headline's
// table row: the icon filename without its .gif extension, or "Unknown" when
// the row carries no icon.
func rowCategory(link *goquery.Selection) string {
	row := link.ParentsFiltered("tr").First()
	if row.Length() == 0 {
		return "Unknown"
	}
	icon := row.Find("img").First()
	src, ok := icon.Attr("src")
	if !ok || src == "" {
		return "Unknown"
	}
	filename := path.Base(src)
	if strings.HasSuffix(strings.ToLower(filename), ".gif") {
		return filename[:len(filename)-4]
	}
	return filename
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
