package stats

import (
	"strconv"

	"github.com/fortuna/courtside/internal/payload"
)

// Score is one of the shapes ESPN uses for a competitor score:
// ScoreObject, ScoreNumber, ScoreString or ScoreAbsent.
type Score interface {
	isScore()
}

// ScoreObject is the {"value": 71, "displayValue": "71"} form
type ScoreObject struct {
	Value   *float64
	Display string
}

// ScoreNumber is a bare JSON number
type ScoreNumber float64

// ScoreString is a bare string, usually numeric
type ScoreString string

// ScoreAbsent means no score was sent, or it had an unrecognized shape
type ScoreAbsent struct{}

func (ScoreObject) isScore() {}
func (ScoreNumber) isScore() {}
func (ScoreString) isScore() {}
func (ScoreAbsent) isScore() {}

// ParseScore classifies a raw decoded score value
func ParseScore(raw interface{}) Score {
	switch v := raw.(type) {
	case map[string]interface{}:
		obj := ScoreObject{Display: payload.String(v, "displayValue")}
		if f, ok := v["value"].(float64); ok {
			obj.Value = &f
		}
		if obj.Value == nil && obj.Display == "" {
			return ScoreAbsent{}
		}
		return obj
	case float64:
		return ScoreNumber(v)
	case string:
		return ScoreString(v)
	default:
		return ScoreAbsent{}
	}
}

// ScoreResult is a resolved score. Display is empty when there is nothing to
// show; Numeric reports whether Value can be compared.
type ScoreResult struct {
	Value   float64
	Numeric bool
	Display string
}

// ResolveScore extracts a comparable number and a display string
func ResolveScore(s Score) ScoreResult {
	switch v := s.(type) {
	case ScoreObject:
		var res ScoreResult
		if v.Value != nil {
			res.Value, res.Numeric = *v.Value, true
		} else if f, ok := payload.ParseNumber(v.Display); ok {
			res.Value, res.Numeric = f, true
		}
		res.Display = v.Display
		if res.Display == "" && v.Value != nil {
			res.Display = formatNumber(*v.Value)
		}
		return res
	case ScoreNumber:
		return ScoreResult{Value: float64(v), Numeric: true, Display: formatNumber(float64(v))}
	case ScoreString:
		f, ok := payload.ParseNumber(string(v))
		return ScoreResult{Value: f, Numeric: ok, Display: string(v)}
	case ScoreAbsent, nil:
		return ScoreResult{}
	}
	return ScoreResult{}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
