// Package distractor classifies correct answers and synthesises plausible wrong
// answers of the same shape.
package distractor

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/agenthands/kgquiz/internal/core/common"
	"github.com/agenthands/kgquiz/internal/core/model"
	"github.com/agenthands/kgquiz/internal/resources"
	"github.com/agenthands/kgquiz/internal/vocab"
)

var (
	integerPattern = regexp.MustCompile(`^-?\d+$`)
	floatPattern   = regexp.MustCompile(`^-?\d*(\.\d+)?$`)
	yearPattern    = regexp.MustCompile(`^-?\d+`)
)

// ExtractAnswerClass decides which distractor strategy applies to a property's
// range and correct answer. The first matching rule wins: gYear range, positive
// integer, positive decimal, range listed in the class table.
func ExtractAnswerClass(rangeIRI, correctAnswer string, classes *resources.ClassFrequencyTable, prefixes *resources.PrefixTable) (model.AnswerClass, error) {
	if prefixes != nil {
		rangeIRI = prefixes.Normalize(rangeIRI)
	}

	if rangeIRI == vocab.XSDGYear {
		return model.YearClass{}, nil
	}
	if integerPattern.MatchString(correctAnswer) {
		if n, err := strconv.ParseInt(correctAnswer, 10, 64); err == nil && n > 0 {
			return model.IntegerClass{}, nil
		}
	}
	if floatPattern.MatchString(correctAnswer) {
		if f, err := strconv.ParseFloat(correctAnswer, 64); err == nil && f > 0 {
			return model.FloatClass{}, nil
		}
	}
	if classes != nil {
		if _, ok := classes.Count(rangeIRI); ok {
			return model.ResourceClass{ClassID: rangeIRI}, nil
		}
	}
	return nil, fmt.Errorf("%w: range %s with answer %q", common.ErrUnsupportedAnswerType, rangeIRI, correctAnswer)
}

// parseYear reads the leading signed year of an xsd:gYear lexical form such as
// "1867" or "1867+02:00".
func parseYear(s string) (int, error) {
	digits := yearPattern.FindString(s)
	if digits == "" {
		return 0, fmt.Errorf("%w: %q is not a year", common.ErrUnsupportedAnswerType, s)
	}
	y, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a year", common.ErrUnsupportedAnswerType, s)
	}
	return y, nil
}
