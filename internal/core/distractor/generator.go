package distractor

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/kgquiz/internal/core/common"
	"github.com/agenthands/kgquiz/internal/core/model"
	"github.com/agenthands/kgquiz/internal/driver"
	"github.com/agenthands/kgquiz/internal/resources"
)

const (
	DefaultCount       = 3
	DefaultYearCeiling = 2017

	yearSpread = 200

	// maxExactInt is the largest integer float64 holds without rounding.
	maxExactInt = 1 << 53
)

type Options struct {
	// Count is the number of distractors produced per question.
	Count int
	// YearCeiling caps year distractors so none lies in the future of the dataset.
	YearCeiling int
}

// Generator produces distractors for every AnswerClass variant.
type Generator struct {
	driver  driver.GraphDriver
	classes *resources.ClassFrequencyTable
	rand    common.Rand
	opts    Options
	logger  *zap.Logger
}

func NewGenerator(d driver.GraphDriver, classes *resources.ClassFrequencyTable, r common.Rand, opts Options, logger *zap.Logger) *Generator {
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	if opts.YearCeiling == 0 {
		opts.YearCeiling = DefaultYearCeiling
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		driver:  d,
		classes: classes,
		rand:    r,
		opts:    opts,
		logger:  logger.Named("distractor"),
	}
}

// Generate returns exactly Options.Count distractors for correctAnswer. Values may
// repeat or coincide with the correct answer.
func (g *Generator) Generate(ctx context.Context, class model.AnswerClass, correctAnswer string) ([]string, error) {
	out, err := model.Visit(class, &strategy{g: g, ctx: ctx, answer: correctAnswer})
	if err != nil {
		return nil, err
	}
	g.logger.Debug("distractors generated",
		zap.Stringer("class", class),
		zap.String("answer", correctAnswer),
		zap.Strings("distractors", out))
	return out, nil
}

// strategy binds one Generate call to the visitor methods.
type strategy struct {
	g      *Generator
	ctx    context.Context
	answer string
}

func (s *strategy) VisitYear() ([]string, error) {
	y, err := parseYear(s.answer)
	if err != nil {
		return nil, err
	}
	lo, hi := y-yearSpread, min(y+yearSpread, s.g.opts.YearCeiling)

	out := make([]string, s.g.opts.Count)
	for i := range out {
		out[i] = strconv.Itoa(common.RandomInt(s.g.rand, lo, hi))
	}
	return out, nil
}

func (s *strategy) VisitInteger() ([]string, error) {
	return s.numeric(0)
}

func (s *strategy) VisitFloat() ([]string, error) {
	r, err := strconv.ParseFloat(s.answer, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", common.ErrUnsupportedAnswerType, s.answer)
	}
	return s.numeric(decimals(r))
}

// numeric draws values within 9*10^(m-1) of the answer, clamped to the answer's
// magnitude band [10^m, 10^(m+1) - 10^-d], and renders them with d decimals.
func (s *strategy) numeric(d int) ([]string, error) {
	r, err := strconv.ParseFloat(s.answer, 64)
	if err != nil || r <= 0 {
		return nil, fmt.Errorf("%w: %q is not a positive number", common.ErrUnsupportedAnswerType, s.answer)
	}

	m := magnitude(r)
	spread := 9 * math.Pow10(m-1)
	bandLo, bandHi := math.Pow10(m), math.Pow10(m+1)-math.Pow10(-d)
	lo, hi := max(r-spread, bandLo), min(r+spread, bandHi)

	out := make([]string, s.g.opts.Count)
	for i := range out {
		switch {
		case d == 0 && hi <= maxExactInt:
			v := common.RandomInt(s.g.rand, int(math.Ceil(lo)), int(math.Floor(hi)))
			out[i] = strconv.Itoa(v)
		case d == 0:
			out[i] = strconv.FormatFloat(wholeBelow(common.RandomFloat(s.g.rand, lo, hi), m+1), 'f', 0, 64)
		default:
			v := common.RandomFloat(s.g.rand, lo, hi)
			out[i] = strconv.FormatFloat(v, 'f', d, 64)
		}
	}
	return out, nil
}

// wholeBelow truncates v to a whole number strictly under 10^exp. Past 2^53 the
// draw can round up onto the band's upper edge, so it steps down one float.
func wholeBelow(v float64, exp int) float64 {
	ceiling := math.Floor(math.Nextafter(math.Pow10(exp), 0))
	return min(math.Floor(v), ceiling)
}

func (s *strategy) VisitResource(classID string) ([]string, error) {
	count, ok := s.g.classes.Count(classID)
	if !ok || count <= 0 {
		return nil, common.Empty("no instances known for class %s", classID)
	}

	out := make([]string, s.g.opts.Count)
	eg, ctx := errgroup.WithContext(s.ctx)
	for i := range out {
		offset := s.g.rand.IntN(count)
		eg.Go(func() error {
			res, err := s.g.driver.ExecuteQuery(ctx, driver.QueryRandomClassMember, driver.Params{
				"class":  classID,
				"offset": offset,
			})
			if err != nil {
				return err
			}
			label, ok := res.First("e")
			if !ok || label.Value == "" {
				return common.Empty("member %d of %s has no label", offset, classID)
			}
			out[i] = label.Value
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("resource distractors for %s: %w: %w", classID, common.ErrEmptyResult, err)
	}
	return out, nil
}

// magnitude is the base-10 order of magnitude of a positive r. The epsilon keeps
// exact powers of ten such as 1000 from landing one order low.
func magnitude(r float64) int {
	return int(math.Floor(math.Log10(math.Abs(r)) + 1e-9))
}

// decimals counts the fractional digits of the shortest decimal rendering of r.
func decimals(r float64) int {
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if _, frac, ok := strings.Cut(s, "."); ok {
		return len(frac)
	}
	return 0
}
