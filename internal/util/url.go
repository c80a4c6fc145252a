package util

import (
	"net/url"
	"strings"
)

// ForumBaseURL prefixes the relative hrefs the trending listing uses.
const ForumBaseURL = "https://forums.redflagdeals.com"

// rfdDomains lists domains where NormalizeThreadURL applies RFD-specific
// normalization and forces HTTPS.
var rfdDomains = []string{
	"redflagdeals.com",
	"forums.redflagdeals.com",
	"www.redflagdeals.com",
	"www.forums.redflagdeals.com",
}

func isRFDDomain(host string) bool {
	for _, d := range rfdDomains {
		if host == d {
			return true
		}
	}
	return false
}

// AbsoluteThreadURL turns the listing's relative hrefs into absolute thread
// links. Already-absolute hrefs pass through untouched.
func AbsoluteThreadURL(href string) string {
	if strings.HasPrefix(href, "/") {
		return ForumBaseURL + href
	}
	return href
}

// NormalizeThreadURL canonicalizes an RFD thread link: https only, no www,
// forum host, no trailing slash, tracking params stripped. Non-RFD URLs are
// returned unchanged.
func NormalizeThreadURL(rawURL string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, err
	}

	if !isRFDDomain(parsedURL.Hostname()) {
		return rawURL, nil
	}

	parsedURL.Scheme = "https"
	parsedURL.Host = strings.TrimPrefix(parsedURL.Host, "www.")
	if parsedURL.Host == "redflagdeals.com" {
		parsedURL.Host = "forums.redflagdeals.com"
	}
	if len(parsedURL.Path) > 1 && strings.HasSuffix(parsedURL.Path, "/") {
		parsedURL.Path = parsedURL.Path[:len(parsedURL.Path)-1]
		// Clear RawPath so String() regenerates the path without the slash.
		parsedURL.RawPath = ""
	}
	queryParams := parsedURL.Query()
	trackingParams := []string{"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content", "rfd_sk", "sd", "sk"}
	for _, param := range trackingParams {
		if queryParams.Has(param) {
			queryParams.Del(param)
		}
	}
	parsedURL.RawQuery = queryParams.Encode()
	return parsedURL.String(), nil
}
