// Package query assembles search-query variants from a company name and
// a designation alias set.
package query

import (
	"fmt"
	"strings"
)

// Build returns the strict query variants: a site-restricted LinkedIn
// query first, the plain quoted pair, then one variant per alias that
// differs from the original designation. max caps the total number of
// variants (0 means no cap).
func Build(company, designation string, aliases []string, max int) []string {
	queries := []string{
		fmt.Sprintf(`"%s" "%s" site:linkedin.com`, company, designation),
		fmt.Sprintf(`"%s" "%s"`, company, designation),
	}

	for _, a := range aliases {
		if strings.EqualFold(a, designation) {
			continue
		}
		queries = append(queries, fmt.Sprintf(`"%s" "%s"`, company, a))
	}

	if max > 0 && len(queries) > max {
		queries = queries[:max]
	}
	return queries
}

// Fallback returns relaxed company-only variants used when the strict
// queries produce no results at all.
func Fallback(company string) []string {
	return []string{
		fmt.Sprintf(`"%s" site:linkedin.com`, company),
		fmt.Sprintf(`"%s" "leadership"`, company),
		fmt.Sprintf(`"%s" "management team"`, company),
		fmt.Sprintf(`"%s" "our team"`, company),
		company,
	}
}
