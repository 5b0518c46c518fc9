package utils

import (
	"fmt"
	"strings"
)

const uploadSegment = "/upload/"

// ResizedImageURL inserts a fill transformation after the image host's
// upload segment. URLs from other hosts are returned untouched.
func ResizedImageURL(url string, width, height int, format string) string {
	if url == "" {
		return ""
	}

	if !strings.Contains(url, uploadSegment) {
		return url
	}

	if format == "" {
		format = "auto"
	}

	transform := fmt.Sprintf("%sw_%d,h_%d,c_fill,f_%s/", uploadSegment, width, height, format)

	return strings.Replace(url, uploadSegment, transform, 1)
}
