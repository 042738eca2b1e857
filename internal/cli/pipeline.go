package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/adamluzsi/streams"
	"github.com/adamluzsi/streams/iterators"
	"github.com/adamluzsi/streams/metrics"
)

// Pipeline applies the configured stages to the lines of src.
// The stages are applied in a fixed order: grep, until, skip, limit, collate, repeat and number.
// When c is not nil, the input and the output of the pipeline are instrumented.
func Pipeline(cfg Config, src iterators.Iterator[string], c *metrics.Collector) (*streams.Stream[string], error) {
	if err := cfg.Validate(); err != nil {
		_ = src.Close()
		return nil, err
	}
	grep, err := compile(grepFlag, cfg.Grep)
	if err != nil {
		_ = src.Close()
		return nil, err
	}
	until, err := compile(untilFlag, cfg.Until)
	if err != nil {
		_ = src.Close()
		return nil, err
	}

	if c != nil {
		src = metrics.Instrument(c, src, "input")
	}
	s := streams.From(src)
	if grep != nil {
		s = s.Filter(grep.MatchString)
	}
	if until != nil {
		s = s.Until(until.MatchString)
	}
	if 0 < cfg.Skip {
		s = s.Skip(cfg.Skip)
	}
	if 0 <= cfg.Limit {
		s = s.Limit(cfg.Limit)
	}
	if 0 < cfg.Collate {
		opts := []iterators.CollateOption{iterators.KeepRemainder(cfg.KeepRemainder)}
		if 0 < cfg.Step {
			opts = append(opts, iterators.CollateStep(cfg.Step))
		}
		s = streams.Map(streams.Collate(s, cfg.Collate, opts...), func(window []string) string {
			return strings.Join(window, " ")
		})
	}
	if cfg.Repeat != 1 {
		s = s.Repeat(cfg.Repeat)
	}
	if cfg.Number {
		s = streams.MapWithIndex(s, func(line string, index int) string {
			return fmt.Sprintf("%d\t%s", index+1, line)
		})
	}
	if c != nil {
		s = streams.From(metrics.Instrument[string](c, s, "output"))
	}
	return s, nil
}

func compile(flag, expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, nil
	}
	rx, err := regexp.Compile(expr)
	if err != nil {
		return nil, ErrInvalidConfig.F("--%s: %w", flag, err)
	}
	return rx, nil
}
