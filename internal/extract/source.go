package extract

import (
	"net/url"
	"strings"

	"github.com/mkarpov/rolefinder/internal/model"
)

// ClassifySource maps a result URL to its source type using the
// trusted-domain table. Hosts are matched by longest suffix, so
// "uk.linkedin.com" matches "linkedin.com". Unknown hosts and
// unparseable URLs are generic_web.
func ClassifySource(rawURL string, table map[string]model.SourceType) model.SourceType {
	host := hostOf(rawURL)
	if host == "" {
		return model.SourceGenericWeb
	}

	best := ""
	bestType := model.SourceGenericWeb
	for domain, srcType := range table {
		if host != domain && !strings.HasSuffix(host, "."+domain) {
			continue
		}
		if len(domain) > len(best) {
			best = domain
			bestType = srcType
		}
	}
	return bestType
}

// hostOf returns the lowercased host of a URL without the port.
func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Host)
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return host
}
