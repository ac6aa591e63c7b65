package slices

import "strings"

// ContainsFold reports whether v is in list, ignoring case
func ContainsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

// RemoveFold returns a copy of list without any value equal to v, ignoring case
func RemoveFold(list []string, v string) []string {
	result := make([]string, 0, len(list))
	for _, item := range list {
		if strings.EqualFold(item, v) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// UniqueFold trims every value and drops empty values and case-insensitive duplicates, keeping the first spelling
func UniqueFold(list []string) []string {
	result := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, v := range list {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, v)
	}
	return result
}
