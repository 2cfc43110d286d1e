package playstore

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Locale selects the parsing rules for ratings and dates.
type Locale string

const (
	LocaleKR Locale = "kr"
	LocaleEN Locale = "en"
)

// ParseLocale validates a locale flag value.
func ParseLocale(s string) (Locale, error) {
	switch Locale(s) {
	case LocaleKR, LocaleEN:
		return Locale(s), nil
	}
	return "", fmt.Errorf("playstore: unknown locale %q (want kr or en)", s)
}

var (
	ratingEN = regexp.MustCompile(`Rated (\d+) stars`)
	ratingKR = regexp.MustCompile(`(\d+)개를 받았습니다`)
	digits   = regexp.MustCompile(`\d+`)
)

// ParseRating extracts the star rating from the localized accessibility
// label of a review's rating element. Returns nil when the label does
// not match or the matched value is outside 1..5.
func ParseRating(label string, locale Locale) *int {
	re := ratingEN
	if locale == LocaleKR {
		re = ratingKR
	}
	m := re.FindStringSubmatch(label)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > 5 {
		return nil
	}
	return &n
}

// ParseDate normalizes a localized review date to day precision.
//
// Korean surfaces embed three numerals in year, month, day order
// ("2023년 7월 9일"). English surfaces use a literal month name
// ("July 9, 2023"). Both normalize to an ISO calendar date.
func ParseDate(s string, locale Locale) (time.Time, error) {
	if locale == LocaleKR {
		nums := digits.FindAllString(s, 3)
		if len(nums) < 3 {
			return time.Time{}, fmt.Errorf("playstore: korean date %q: want 3 numerals", s)
		}
		year, _ := strconv.Atoi(nums[0])
		month, _ := strconv.Atoi(nums[1])
		day, _ := strconv.Atoi(nums[2])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}, fmt.Errorf("playstore: korean date %q: out of range", s)
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
	}

	t, err := time.Parse("January 2, 2006", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("playstore: english date %q: %w", s, err)
	}
	return t, nil
}
