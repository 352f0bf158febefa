package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Address is a schema.org PostalAddress.
type Address struct {
	Street     string
	Locality   string
	Region     string
	PostalCode string
	Country    string
}

// EducationalOrganization returns the school schema payload.
func EducationalOrganization(name, url, logoURL, telephone string, addr Address) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "EducationalOrganization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	if telephone != "" {
		m["telephone"] = telephone
	}
	if addr != (Address{}) {
		pa := map[string]any{"@type": "PostalAddress"}
		if addr.Street != "" {
			pa["streetAddress"] = addr.Street
		}
		if addr.Locality != "" {
			pa["addressLocality"] = addr.Locality
		}
		if addr.Region != "" {
			pa["addressRegion"] = addr.Region
		}
		if addr.PostalCode != "" {
			pa["postalCode"] = addr.PostalCode
		}
		if addr.Country != "" {
			pa["addressCountry"] = addr.Country
		}
		m["address"] = pa
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url, lang string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if lang != "" {
		m["inLanguage"] = lang
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}
