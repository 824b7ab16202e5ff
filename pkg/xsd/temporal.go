package xsd

import (
	"regexp"
	"time"

	"github.com/matzehuels/aasgraph/pkg/errors"
)

// Layouts without the timezone suffix. Parsing accepts fractional seconds
// after the seconds field even where the layout omits them.
var temporalLayouts = map[DataType]string{
	DateTime:   "2006-01-02T15:04:05.999999999",
	Date:       "2006-01-02",
	Time:       "15:04:05.999999999",
	GYearMonth: "2006-01",
	GYear:      "2006",
	GMonthDay:  "--01-02",
	GDay:       "---02",
	GMonth:     "--01",
}

var (
	zoneSuffix   = regexp.MustCompile(`(Z|[+-][0-9]{2}:[0-9]{2})$`)
	yearPrefixed = regexp.MustCompile(`^[0-9]{4}`)
)

// TemporalValue is a date, time, dateTime or gregorian value. Values parsed
// without a timezone suffix are naive: they are stored in UTC and formatted
// without a suffix.
type TemporalValue struct {
	typ   DataType
	t     time.Time
	naive bool
}

// NewTemporal builds a temporal value of type t. If naive is true the
// timezone of tm is discarded.
func NewTemporal(t DataType, tm time.Time, naive bool) (TemporalValue, error) {
	if !t.IsTemporal() {
		return TemporalValue{}, errors.New(errors.ErrCodeMalformedValue, "%s is not a temporal type", t)
	}
	if tm.Year() < 0 || tm.Year() > 9999 {
		return TemporalValue{}, errors.New(errors.ErrCodeMalformedValue, "year %d out of range for %s", tm.Year(), t)
	}
	if naive {
		tm = time.Date(tm.Year(), tm.Month(), tm.Day(), tm.Hour(), tm.Minute(), tm.Second(), tm.Nanosecond(), time.UTC)
	}
	return TemporalValue{typ: t, t: tm, naive: naive}, nil
}

// NewDateTime returns a zoned xs:dateTime.
func NewDateTime(tm time.Time) TemporalValue {
	return TemporalValue{typ: DateTime, t: tm}
}

// Time returns the wrapped time. For naive values the location is UTC.
func (v TemporalValue) Time() time.Time { return v.t }

// Naive reports whether the value carries no timezone.
func (v TemporalValue) Naive() bool { return v.naive }

func (v TemporalValue) Type() DataType { return v.typ }

func (v TemporalValue) String() string {
	layout := temporalLayouts[v.typ]
	if v.naive {
		return v.t.Format(layout)
	}
	return v.t.Format(layout + "Z07:00")
}

// Equal reports whether both values denote the same instant in the same
// timezone (or are both naive with the same wall clock).
func (v TemporalValue) Equal(o Value) bool {
	w, ok := o.(TemporalValue)
	if !ok || v.typ != w.typ || v.naive != w.naive {
		return false
	}
	if !v.t.Equal(w.t) {
		return false
	}
	_, off1 := v.t.Zone()
	_, off2 := w.t.Zone()
	return off1 == off2
}

func parseTemporal(t DataType, lexical string) (Value, error) {
	layout, ok := temporalLayouts[t]
	if !ok || lexical == "" {
		return nil, malformed(t, lexical)
	}
	switch t {
	case DateTime, Date, GYearMonth, GYear:
		// time.Parse would accept fewer year digits
		if !yearPrefixed.MatchString(lexical) {
			return nil, malformed(t, lexical)
		}
	}
	// only "Z" or a full [+-]hh:mm counts as a zone; "--05-02" is naive
	naive := !zoneSuffix.MatchString(lexical)
	if !naive {
		layout += "Z07:00"
	}
	tm, err := time.Parse(layout, lexical)
	if err != nil {
		return nil, malformed(t, lexical)
	}
	return TemporalValue{typ: t, t: tm, naive: naive}, nil
}
