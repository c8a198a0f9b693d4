package tptech

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func JsonPrint(tag string, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%s: error marshaling: %v\n", tag, err)
		return
	}
	fmt.Printf("%s: %s\n", tag, string(b))
}

// ParseLocale accepts only the exact supported locale strings.
func ParseLocale(s string) (Locale, bool) {
	l := Locale(s)
	if !l.Valid() {
		return "", false
	}
	return l, true
}

// IsActiveLink reports whether a menu entry with href is active at path.
// The root entry matches exactly; every other entry matches as a prefix.
func IsActiveLink(path, href string) bool {
	if href == "/" {
		return path == "/"
	}
	return strings.HasPrefix(path, href)
}

func TelLink(phone string) string {
	return "tel:" + phone
}

func MailtoLink(email string) string {
	return "mailto:" + email
}

// MessagingLink builds the chat deep link for a phone number, e.g. https://zalo.me/0901234567.
// The phone string is interpolated as-is.
func MessagingLink(base, phone string) string {
	return strings.TrimSuffix(base, "/") + "/" + phone
}

var viMonths = [...]string{
	"tháng 1", "tháng 2", "tháng 3", "tháng 4", "tháng 5", "tháng 6",
	"tháng 7", "tháng 8", "tháng 9", "tháng 10", "tháng 11", "tháng 12",
}

// FormatDate renders an ISO-8601 date in the long form of the locale.
// Unparseable input is returned unchanged.
func FormatDate(l Locale, iso string) string {
	t, err := time.Parse(dateLayout, iso)
	if err != nil {
		t, err = time.Parse(time.RFC3339, iso)
		if err != nil {
			return iso
		}
	}
	if l == LocaleEN {
		return t.Format("January 2, 2006")
	}
	return fmt.Sprintf("%d %s, %d", t.Day(), viMonths[t.Month()-1], t.Year())
}
