package adapter

import (
	"net/url"
	"strings"

	"stock-tracker/internal/features/inventory/domain"
)

const (
	acceptHeaderValue   = "application/vnd.bestbuy.standardproduct.v1+json"
	acceptLanguageValue = "en-CA"
)

// BuildQueryURL builds the availability URL for the tracked set.
// SKUs and locations are pipe-joined; every parameter is percent-encoded once.
func BuildQueryURL(baseURL string, set domain.TrackedSet) (string, error) {
	if len(set.SKUs) == 0 {
		return "", domain.ErrInvalidInput
	}

	params := url.Values{}
	params.Set("accept", acceptHeaderValue)
	params.Set("accept-language", acceptLanguageValue)
	params.Set("locations", strings.Join(set.Locations, "|"))
	params.Set("postalCode", set.PostalCode)
	params.Set("skus", strings.Join(set.SKUs, "|"))

	return baseURL + "?" + params.Encode(), nil
}

// WrapWithProxy appends the percent-encoded target URL to a CORS proxy prefix.
func WrapWithProxy(prefix, target string) string {
	return prefix + encodeURIComponent(target)
}

// encodeURIComponent escapes everything except the unreserved characters
// A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	for _, keep := range []string{"!", "'", "(", ")", "*"} {
		escaped = strings.ReplaceAll(escaped, url.QueryEscape(keep), keep)
	}
	return escaped
}
