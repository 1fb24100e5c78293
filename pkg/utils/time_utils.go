package utils

import "time"

// Brazil time location (BRT, -03:00)
var brLoc = func() *time.Location {
	if loc, err := time.LoadLocation("America/Sao_Paulo"); err == nil {
		return loc
	}
	return time.FixedZone("BRT", -3*3600)
}()

func NowUnixSeconds() int64 { return time.Now().Unix() }

// FormatDateBR renders a date the way subscribers expect to read it.
func FormatDateBR(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(brLoc).Format("02/01/2006")
}

// ParseProviderDate accepts the date formats the payment providers emit:
// plain dates (Asaas dueDate) and RFC3339 timestamps.
func ParseProviderDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
