// Package serial implements serial number suggestion, range expansion and
// duplicate detection for product-type movements.
package serial

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	custom_error "stockledger/pkg/errors"
	"stockledger/pkg/models"
)

// Seed is returned when no serial has ever been registered.
const Seed string = "SN00001"

// RangeDelimiter separates the two ends of a serial range input.
const RangeDelimiter string = "~"

const (
	maxRangeSize = 100
	minPadWidth  = 5
)

var (
	serialPattern = regexp.MustCompile(`^([A-Za-z]*)([0-9]+)$`)
	rangePattern  = regexp.MustCompile(`^([A-Za-z]*)([0-9]+)\s*~\s*([A-Za-z]*)([0-9]+)$`)
)

// SuggestNext proposes the next free serial from the set already in use.
// Entries are parsed as <letters><digits>; the entry with the highest numeric
// suffix wins and its alphabetic prefix is reused as-is. Mixed prefixes are
// intentionally not reconciled: the prefix of the max-numbered entry carries.
func SuggestNext(used []string) string {
	maxSuffix := -1
	prefix := ""

	for _, s := range used {
		match := serialPattern.FindStringSubmatch(strings.TrimSpace(s))
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}
		if n > maxSuffix {
			maxSuffix = n
			prefix = match[1]
		}
	}

	if maxSuffix < 0 {
		return Seed
	}

	return fmt.Sprintf("%s%0*d", prefix, minPadWidth, maxSuffix+1)
}

// ExpandRange turns an input of the form <prefix><digits>~[<prefix>]<digits>
// into the inclusive list of serials it covers, padded to the digit width of
// the start token. Anything that does not parse as a valid range is treated
// as one literal serial. Ranges above 100 entries are rejected.
func ExpandRange(input string) ([]string, error) {
	trimmed := strings.TrimSpace(input)

	match := rangePattern.FindStringSubmatch(trimmed)
	if match == nil {
		return []string{trimmed}, nil
	}

	start, startErr := strconv.Atoi(match[2])
	end, endErr := strconv.Atoi(match[4])
	if startErr != nil || endErr != nil || start > end {
		return []string{trimmed}, nil
	}

	count := end - start + 1
	if count > maxRangeSize {
		return nil, &custom_error.RangeTooLargeError{Count: count, Limit: maxRangeSize}
	}

	width := len(match[2])
	expanded := make([]string, 0, count)
	for n := start; n <= end; n++ {
		expanded = append(expanded, fmt.Sprintf("%s%0*d", match[1], width, n))
	}

	return expanded, nil
}

// IsDuplicate reports whether the serial already exists in the registry.
// Comparison is exact against the uppercased registry. Inputs still carrying
// the range delimiter are never checked here; they must be expanded first.
func IsDuplicate(serialNumber string, registry map[string]struct{}) bool {
	normalized := strings.ToUpper(strings.TrimSpace(serialNumber))
	if normalized == "" || strings.Contains(normalized, RangeDelimiter) {
		return false
	}

	_, exists := registry[normalized]
	return exists
}

// maxReportedDuplicates caps how many colliding values a rejection reports.
const maxReportedDuplicates = 5

// FindDuplicates returns the expanded serials that collide with the registry,
// capped at the first five.
func FindDuplicates(serials []string, registry map[string]struct{}) []string {
	var colliding []string
	for _, s := range serials {
		if !IsDuplicate(s, registry) {
			continue
		}
		colliding = append(colliding, s)
		if len(colliding) == maxReportedDuplicates {
			break
		}
	}
	return colliding
}

// Registry collects every serial number assigned to product transactions,
// uppercased. This is the global uniqueness domain for new serials.
func Registry(items []models.Item) map[string]struct{} {
	registry := make(map[string]struct{})
	for _, item := range items {
		if item.Type != models.ItemTypeProduct {
			continue
		}
		for _, tx := range item.Transactions {
			if tx.SerialNumber == "" {
				continue
			}
			registry[strings.ToUpper(tx.SerialNumber)] = struct{}{}
		}
	}
	return registry
}
