package formatter

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// url.QueryEscape differs from encodeURIComponent on space and on the marks
// !'()* that the latter leaves alone.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent percent-encodes s the way encodeURIComponent does.
func EscapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// DynamicURL builds the query string "userId=<escaped>&timestamp=<epoch ms>".
func DynamicURL(userID string, now time.Time) string {
	return "userId=" + EscapeComponent(userID) + "&timestamp=" + strconv.FormatInt(now.UnixMilli(), 10)
}
