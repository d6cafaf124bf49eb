package field

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Kind uint8

const (
	String Kind = iota
	Int
	Float
)

// Value is a token after interpretation. Only the member matching Kind is set.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Str   string
}

func IntValue(i int64) Value     { return Value{Kind: Int, Int: i} }
func FloatValue(f float64) Value { return Value{Kind: Float, Float: f} }
func StringValue(s string) Value { return Value{Kind: String, Str: s} }

func (v Value) IsNumeric() bool { return v.Kind == Int || v.Kind == Float }

// Number returns v as float64 and whether v was numeric.
func (v Value) Number() (float64, bool) {
	switch v.Kind {
	case Int:
		return float64(v.Int), true
	case Float:
		return v.Float, true
	}
	return 0, false
}

func (v Value) String() string {
	switch v.Kind {
	case Int:
		return strconv.FormatInt(v.Int, 10)
	case Float:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	}
	return v.Str
}

// MarshalJSON writes numbers as JSON numbers and everything else as a string.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case Int, Float:
		return []byte(v.String()), nil
	}
	return []byte(strconv.Quote(v.Str)), nil
}

var ErrZeroDenominator = errors.New("zero denominator")

type ZeroDenominatorError struct {
	Token string
}

func (e *ZeroDenominatorError) Error() string {
	return fmt.Sprintf("rational %q: %s", e.Token, ErrZeroDenominator)
}

func (e *ZeroDenominatorError) Unwrap() error { return ErrZeroDenominator }

var rationalPattern = regexp.MustCompile(`^([0-9]+)/([0-9]+)$`)

// InterpretNumeric tries an integer, then a float, and otherwise keeps the
// token as a string.
func InterpretNumeric(token string) Value {
	if i, err := strconv.ParseInt(token, 10, 64); err == nil {
		return IntValue(i)
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return FloatValue(f)
	}
	return StringValue(token)
}

// InterpretRational extends InterpretNumeric with "n/d" fractions. With
// allowAdditions, "a+b+..." is summed if every part is numeric.
func InterpretRational(token string, allowAdditions bool) (Value, error) {
	v := InterpretNumeric(token)
	if v.IsNumeric() {
		return v, nil
	}
	if m := rationalPattern.FindStringSubmatch(token); m != nil {
		num, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return StringValue(token), nil
		}
		den, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return StringValue(token), nil
		}
		if den == 0 {
			return Value{}, &ZeroDenominatorError{Token: token}
		}
		return FloatValue(num / den), nil
	}
	if !allowAdditions {
		return v, nil
	}
	parts := strings.Split(token, "+")
	if len(parts) < 2 {
		return v, nil
	}
	var sum float64
	allInts := true
	var isum int64
	for _, p := range parts {
		pv, err := InterpretRational(p, false)
		if err != nil {
			return Value{}, err
		}
		n, ok := pv.Number()
		if !ok {
			return v, nil
		}
		if pv.Kind == Int {
			isum += pv.Int
		} else {
			allInts = false
		}
		sum += n
	}
	if allInts {
		return IntValue(isum), nil
	}
	return FloatValue(sum), nil
}
