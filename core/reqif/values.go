package reqif

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/FocuswithJustin/ReqIF/core/errors"
)

// dateLayout is the xsd:dateTime rendering used on write.
const dateLayout = "2006-01-02T15:04:05.999999999Z07:00"

// dateLayouts are accepted on read, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02Z07:00",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewParse("xsd:dateTime", "", strconv.Quote(s)+" is not a timestamp")
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func parseBool(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, errors.NewParse("xsd:boolean", "", strconv.Quote(s)+" is not a boolean")
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func parseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		pe := errors.NewParse("xsd:integer", "", strconv.Quote(s)+" is not an integer")
		pe.Err = err
		return 0, pe
	}
	return n, nil
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

func parseReal(s string) (float64, error) {
	switch t := strings.TrimSpace(s); t {
	case "INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	default:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			pe := errors.NewParse("xsd:double", "", strconv.Quote(s)+" is not a number")
			pe.Err = err
			return 0, pe
		}
		return f, nil
	}
}

func formatReal(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
