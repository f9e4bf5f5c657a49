package billing

import (
	"fmt"
	"regexp"
	"strconv"
)

// NextNumber suggests the identifier following last for the given prefix.
// The result is advisory; uniqueness is enforced when the document is stored.
func NextNumber(prefix string, last *string) string {
	first := fmt.Sprintf("%s-%03d", prefix, 1)
	if last == nil || *last == "" {
		return first
	}

	re := regexp.MustCompile(regexp.QuoteMeta(prefix) + `-(\d+)`)
	match := re.FindStringSubmatch(*last)
	if match == nil {
		return first
	}

	n, err := strconv.ParseUint(match[1], 10, 63)
	if err != nil {
		return first
	}
	return fmt.Sprintf("%s-%03d", prefix, n+1)
}
