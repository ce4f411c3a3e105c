package util

import (
	"net/url"
	"strings"

	"github.com/asaskevich/govalidator"
)

// ComposeShortURL склеивает базовый URL и код через один слэш.
func ComposeShortURL(baseURL, code string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + code
}

// NormalizeEmail приводит email к виду, в котором он хранится и сравнивается.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsAbsoluteURL accepts only well-formed URLs with both scheme and host.
func IsAbsoluteURL(raw string) bool {
	if !govalidator.IsRequestURL(raw) {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
