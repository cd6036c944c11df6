package service

import "strings"

// splitFullName splits a free-text name on the first space only: "Jane Smith"
// becomes ("Jane", "Smith"), "Solo" becomes ("Solo", "").
func splitFullName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if i := strings.Index(full, " "); i >= 0 {
		return full[:i], full[i+1:]
	}
	return full, ""
}
