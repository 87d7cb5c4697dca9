package delivery

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

func checkRequired(fe fieldErrors, field, value string) {
	if strings.TrimSpace(value) == "" {
		fe[field] = "is required"
	}
}

// checkYear accepts an empty value; set values must be a 4-digit year in a
// sane range. Years are kept as text to match the migrated records.
func checkYear(fe fieldErrors, field, value string) {
	if value == "" {
		return
	}
	if len(value) != 4 {
		fe[field] = "must be a 4-digit year"
		return
	}
	y, err := strconv.Atoi(value)
	if err != nil || y < 1900 || y > 2100 {
		fe[field] = "must be a year between 1900 and 2100"
	}
}

func checkDate(fe fieldErrors, field, value string, required bool) {
	if value == "" {
		if required {
			fe[field] = "is required"
		}
		return
	}
	if _, err := time.Parse(time.DateOnly, value); err != nil {
		fe[field] = "must be a date in YYYY-MM-DD format"
	}
}

func checkHTTPURL(fe fieldErrors, field, value string) {
	if value == "" {
		fe[field] = "is required"
		return
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		fe[field] = "must be a valid http(s) URL"
	}
}

func checkEmail(fe fieldErrors, field, value string) {
	if strings.TrimSpace(value) == "" {
		fe[field] = "is required"
		return
	}
	if !strings.Contains(value, "@") {
		fe[field] = "must be a valid email address"
	}
}
