package timefmt

import "strings"

// Locale holds the words used in the time and date lines.
type Locale struct {
	Name     string
	Weekdays [7]string // indexed by time.Weekday
	AM, PM   string
}

var (
	English = Locale{
		Name:     "en",
		Weekdays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		AM:       "AM",
		PM:       "PM",
	}
	German = Locale{
		Name:     "de",
		Weekdays: [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
		AM:       "AM",
		PM:       "PM",
	}
	French = Locale{
		Name:     "fr",
		Weekdays: [7]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."},
		AM:       "AM",
		PM:       "PM",
	}
)

var locales = []Locale{English, German, French}

// LocaleByName looks up a locale by its short name ("en", "de", "fr").
// Region suffixes such as "en_US" or "de-AT" are ignored.
func LocaleByName(name string) (Locale, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexAny(name, "_-."); i >= 0 {
		name = name[:i]
	}
	for _, l := range locales {
		if l.Name == name {
			return l, true
		}
	}
	return Locale{}, false
}
