package query

import "strings"

// Resource name prefixes. Every cache key starts with one of these, so a
// mutation can invalidate a whole resource family by prefix.
const (
	ResourceExpenses       = "expenses"
	ResourceCategories     = "categories"
	ResourcePaymentMethods = "payment_methods"
	ResourceCurrentUser    = "current_user"
)

const keySeparator = "|"

// Key builds a cache key from a resource prefix and its serialized
// parameter parts. Distinct parameter sets never collide because every
// part is included verbatim.
func Key(resource string, parts ...string) string {
	if len(parts) == 0 {
		return resource
	}
	return resource + keySeparator + strings.Join(parts, keySeparator)
}
