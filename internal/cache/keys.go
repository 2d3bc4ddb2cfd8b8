package cache

import (
	"strconv"
	"strings"
)

// TournamentListKey names the cached listing of a collection. Bump the
// version when the cached shape changes.
func TournamentListKey(collection string, limit int) string {
	return "tournaments:list:v1:collection=" + strings.ToLower(strings.TrimSpace(collection)) +
		":limit=" + strconv.Itoa(limit)
}
