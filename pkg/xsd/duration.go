package xsd

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

var durationLexical = regexp.MustCompile(
	`^(-)?P(?:([0-9]+)Y)?(?:([0-9]+)M)?(?:([0-9]+)D)?(?:T(?:([0-9]+)H)?(?:([0-9]+)M)?(?:([0-9]+(?:\.[0-9]+)?)S)?)?$`)

// DurationValue is an xs:duration. Components are kept as written; no
// normalization between units is performed, so P1D and PT24H are distinct.
type DurationValue struct {
	Negative bool
	Years    uint64
	Months   uint64
	Days     uint64
	Hours    uint64
	Minutes  uint64
	seconds  *apd.Decimal
}

// Seconds returns the seconds component, including any fraction.
func (v DurationValue) Seconds() *apd.Decimal {
	var c apd.Decimal
	if v.seconds != nil {
		c.Set(v.seconds)
	}
	return &c
}

// WithSeconds returns a copy of v with the seconds component set.
func (v DurationValue) WithSeconds(s *apd.Decimal) DurationValue {
	var c apd.Decimal
	c.Set(s)
	c.Negative = false
	v.seconds = &c
	return v
}

// ParseDuration parses an xs:duration lexical value such as "P1Y2M3DT4H5M6.7S".
func ParseDuration(lexical string) (DurationValue, error) {
	m := durationLexical.FindStringSubmatch(lexical)
	if m == nil || lexical == "P" || lexical == "-P" || strings.HasSuffix(lexical, "T") {
		return DurationValue{}, malformed(Duration, lexical)
	}
	var v DurationValue
	v.Negative = m[1] == "-"
	fields := []*uint64{&v.Years, &v.Months, &v.Days, &v.Hours, &v.Minutes}
	for i, f := range fields {
		if m[i+2] == "" {
			continue
		}
		n, err := strconv.ParseUint(m[i+2], 10, 64)
		if err != nil {
			return DurationValue{}, malformed(Duration, lexical)
		}
		*f = n
	}
	if m[7] != "" {
		d, _, err := apd.NewFromString(m[7])
		if err != nil {
			return DurationValue{}, malformed(Duration, lexical)
		}
		v.seconds = d
	}
	return v, nil
}

func (DurationValue) Type() DataType { return Duration }

func (v DurationValue) String() string {
	var b strings.Builder
	if v.Negative {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	written := false
	writeUnit := func(n uint64, unit byte) {
		if n != 0 {
			written = true
			b.WriteString(strconv.FormatUint(n, 10))
			b.WriteByte(unit)
		}
	}
	writeUnit(v.Years, 'Y')
	writeUnit(v.Months, 'M')
	writeUnit(v.Days, 'D')
	secs := v.Seconds()
	if v.Hours != 0 || v.Minutes != 0 || !secs.IsZero() {
		b.WriteByte('T')
		writeUnit(v.Hours, 'H')
		writeUnit(v.Minutes, 'M')
		if !secs.IsZero() {
			written = true
			b.WriteString(secs.Text('f'))
			b.WriteByte('S')
		}
	}
	if !written {
		return "PT0S"
	}
	return b.String()
}

func (v DurationValue) Equal(o Value) bool {
	w, ok := o.(DurationValue)
	if !ok {
		return false
	}
	if v.isZero() && w.isZero() {
		return true
	}
	return v.Negative == w.Negative &&
		v.Years == w.Years && v.Months == w.Months && v.Days == w.Days &&
		v.Hours == w.Hours && v.Minutes == w.Minutes &&
		v.Seconds().Cmp(w.Seconds()) == 0
}

func (v DurationValue) isZero() bool {
	return v.Years == 0 && v.Months == 0 && v.Days == 0 && v.Hours == 0 && v.Minutes == 0 && v.Seconds().IsZero()
}
