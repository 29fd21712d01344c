package cache

import (
	"strconv"
	"strings"
)

// counter bumped by every record mutation.
func AddressListGenerationKey() string {
	return "addresses:list:gen"
}

// cache key for the full record list as read at generation gen.
func AddressListKey(gen int64) string {
	return "addresses:list:" + strconv.FormatInt(gen, 10)
}

// cache key for a geocoder answer. Addresses are compared case-insensitively
// with surrounding and repeated whitespace collapsed.
func GeocodeKey(address string) string {
	return "geocode:" + NormalizeAddress(address)
}

func NormalizeAddress(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
