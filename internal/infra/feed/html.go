package feed

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// stripHTML extracts the plain text from a feed item description. Google
// News descriptions arrive as HTML anchor soup; the digest only wants the
// readable text.
func stripHTML(s string) string {
	if s == "" || !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	return strings.TrimSpace(strings.Join(strings.Fields(doc.Text()), " "))
}

// domainOf returns the lowercased host of a URL without a www. prefix.
// Malformed URLs yield an empty domain rather than an error; the digest
// degrades to an unattributed item.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
