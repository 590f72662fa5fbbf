package scraper

import (
	"strings"
	"testing"
)

const listingHTML = `
<html><body>
<table>
  <tr>
    <td><img src="/images/icn_incident.gif"></td>
    <td><a href="/h4d2f9e1"><span class="headline_avherald">Ryanair B738 at Dublin on Mar 31st 2025, tail strike</span></a></td>
  </tr>
  <tr>
    <td><img src="/images/icn_accident.gif"></td>
    <td><a href="https://avherald.com/h5a0c3b7"><span class="headline_avherald">Boeing 737 at Berlin on Mar 31st 2025, engine failure</span></a></td>
  </tr>
  <tr>
    <td></td>
    <td><a href="/h6e8d2c4"><span class="headline_avherald">Unknown incident</span></a></td>
  </tr>
  <tr>
    <td><span class="headline_avherald">Orphan headline without a link</span></td>
  </tr>
</table>
<a href="/?opt=0&offset=20"><img src="/images/next.jpg"></a>
</body></html>`

func TestParsePage(t *testing.T) {
	page, err := ParsePage(strings.NewReader(listingHTML), "https://avherald.com")
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}

	if len(page.Headlines) != 3 {
		t.Fatalf("expected 3 headlines, got %d: %+v", len(page.Headlines), page.Headlines)
	}

	first := page.Headlines[0]
	if first.Title != "Ryanair B738 at Dublin on Mar 31st 2025, tail strike" {
		t.Errorf("first title = %q", first.Title)
	}
	if first.URL != "https://avherald.com/h4d2f9e1" {
		t.Errorf("first URL = %q, want relative href resolved", first.URL)
	}
	if first.Category != "icn_incident" {
		t.Errorf("first category = %q, want %q", first.Category, "icn_incident")
	}

	second := page.Headlines[1]
	if second.URL != "https://avherald.com/h5a0c3b7" {
		t.Errorf("second URL = %q, want absolute href kept", second.URL)
	}
	if second.Category != "icn_accident" {
		t.Errorf("second category = %q, want %q", second.Category, "icn_accident")
	}

	third := page.Headlines[2]
	if third.Category != "Unknown" {
		t.Errorf("third category = %q, want %q for a row without an icon", third.Category, "Unknown")
	}

	if page.NextURL != "https://avherald.com/?opt=0&offset=20" {
		t.Errorf("NextURL = %q", page.NextURL)
	}
}

func TestParsePageNoNextLink(t *testing.T) {
	html := `<html><body>
<table><tr>
  <td><img src="/images/icn_report.gif"></td>
  <td><a href="/h1"><span class="headline_avherald">Piper PA-28 at London, gear up landing</span></a></td>
</tr></table>
</body></html>`

	page, err := ParsePage(strings.NewReader(html), "https://avherald.com")
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if len(page.Headlines) != 1 {
		t.Fatalf("expected 1 headline, got %d", len(page.Headlines))
	}
	if page.NextURL != "" {
		t.Errorf("NextURL = %q, want empty on the last page", page.NextURL)
	}
}

func TestParsePageEmpty(t *testing.T) {
	page, err := ParsePage(strings.NewReader("<html><body></body></html>"), "https://avherald.com")
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if len(page.Headlines) != 0 {
		t.Errorf("expected no headlines, got %d", len(page.Headlines))
	}
	if page.NextURL != "" {
		t.Errorf("NextURL = %q, want empty", page.NextURL)
	}
}
