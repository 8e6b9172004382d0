package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/zjrosen/lexreg/internal/domain/period"
	"github.com/zjrosen/lexreg/internal/domain/registry"
	"github.com/zjrosen/lexreg/internal/domain/types"
)

// Evaluator errors
var (
	ErrUnknownEvaluator = errors.New("unknown evaluator")
	ErrNoInputs         = errors.New("evaluator requires at least one input")
)

// evaluators maps the names usable in catalog files to result delegates.
var evaluators = map[string]registry.ResultFunc{
	"sum": func(_ context.Context, _ period.Period, _ types.VersionCode, inputs []int64) (int64, error) {
		var total int64
		for _, in := range inputs {
			total += in
		}
		return total, nil
	},
	"first": func(_ context.Context, _ period.Period, _ types.VersionCode, inputs []int64) (int64, error) {
		if len(inputs) == 0 {
			return 0, ErrNoInputs
		}
		return inputs[0], nil
	},
	"max": func(_ context.Context, _ period.Period, _ types.VersionCode, inputs []int64) (int64, error) {
		if len(inputs) == 0 {
			return 0, ErrNoInputs
		}
		return slices.Max(inputs), nil
	},
	"zero": func(context.Context, period.Period, types.VersionCode, []int64) (int64, error) {
		return 0, nil
	},
}

// Evaluator returns the result delegate registered under name. The empty name means
// "no delegate" and returns nil.
func Evaluator(name string) (registry.ResultFunc, error) {
	if name == "" {
		return nil, nil
	}
	fn, ok := evaluators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluator, name)
	}
	return fn, nil
}

// EvaluatorNames returns the known evaluator names, sorted.
func EvaluatorNames() []string {
	names := make([]string, 0, len(evaluators))
	for name := range evaluators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
