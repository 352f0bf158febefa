package seo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Sitemap renders a sitemap listing paths under baseURL. The first path is
// given top priority.
func Sitemap(baseURL string, paths []string) ([]byte, error) {
	set := urlSet{XMLNS: sitemapNS}
	for i, p := range paths {
		priority := "0.8"
		if i == 0 {
			priority = "1.0"
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        AbsURL(baseURL, p),
			ChangeFreq: "monthly",
			Priority:   priority,
		})
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Robots renders a robots.txt that allows every crawler and names the sitemap.
func Robots(baseURL string) []byte {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n\n")
	b.WriteString("Sitemap: " + AbsURL(baseURL, "/sitemap.xml") + "\n")
	return []byte(b.String())
}
