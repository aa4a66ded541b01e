package keys

import (
	"strings"
)

const (
	// PfxAuctionHistory prefixes cached event history of one auction
	PfxAuctionHistory = "auctionHistory"
	// PfxFeedDecimals prefixes cached price feed decimals
	PfxFeedDecimals = "feedDecimals"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix extracts the prefix of a key, at most two components deep.
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	if len(s) > 2 {
		return strings.Join(s[:2], ":")
	} else if len(s) > 1 {
		return s[0]
	}
	return ""
}
