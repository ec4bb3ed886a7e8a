package ast

// Factor is a numeric parameter of scale, offset and timeLeftForecast.
// It is either a Double or a Fraction.
type Factor interface {
	// String returns the literal exactly as it appeared in source.
	String() string

	factor()
}

// Double is a single decimal literal such as "10.0", "3.140e10" or "-31.4".
type Double struct {
	Text string
}

// Fraction is a ratio of two decimal literals such as "-31.4/6.25".
type Fraction struct {
	Numerator   string
	Denominator string
}

func (d Double) String() string { return d.Text }

func (f Fraction) String() string { return f.Numerator + "/" + f.Denominator }

func (Double) factor()   {}
func (Fraction) factor() {}

// Percentage is the percentile parameter, e.g. "75.5".
type Percentage string

// Duration is a time span literal: a number followed by a unit, e.g. "1d", "3mo".
type Duration string

func (p Percentage) String() string { return string(p) }

func (d Duration) String() string { return string(d) }
