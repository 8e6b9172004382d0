package registry

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/zjrosen/lexreg/internal/domain/period"
	"github.com/zjrosen/lexreg/internal/domain/types"
)

// Factory errors
var (
	ErrDuplicateCode = errors.New("duplicate code for provider")
	ErrNilProvider   = errors.New("provider cannot be nil")
)

// DuplicateCodeError reports two providers claiming the same code in one code space.
type DuplicateCodeError struct {
	Space string // "concept" or "article"
	Code  int32
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("%s code %d: %s", e.Space, e.Code, ErrDuplicateCode)
}

// Unwrap lets errors.Is match ErrDuplicateCode.
func (e *DuplicateCodeError) Unwrap() error {
	return ErrDuplicateCode
}

// specProvider is the shape shared by concept and article providers.
type specProvider[K cmp.Ordered, S any] interface {
	Code() K
	Spec(p period.Period, v types.VersionCode) S
}

// specFactory holds the providers of one code space plus its NotFound fallback.
// It is never mutated after newSpecFactory returns.
type specFactory[K cmp.Ordered, S any, P specProvider[K, S]] struct {
	space     string
	notFound  P
	providers map[K]P
	codes     []K // sorted ascending
}

// newSpecFactory indexes providers by their own code. The fallback provider is kept
// aside and never placed in the map.
func newSpecFactory[K cmp.Ordered, S any, P specProvider[K, S]](space string, notFound P, providers []P) (*specFactory[K, S, P], error) {
	f := &specFactory[K, S, P]{
		space:     space,
		notFound:  notFound,
		providers: make(map[K]P, len(providers)),
		codes:     make([]K, 0, len(providers)),
	}

	for i, p := range providers {
		if isNilProvider(p) {
			return nil, fmt.Errorf("%s provider at index %d: %w", space, i, ErrNilProvider)
		}
		code := p.Code()
		if _, exists := f.providers[code]; exists {
			return nil, &DuplicateCodeError{Space: space, Code: codeValue(code)}
		}
		f.providers[code] = p
		f.codes = append(f.codes, code)
	}
	slices.Sort(f.codes)

	return f, nil
}

// get resolves code, falling back to the NotFound provider on a miss
func (f *specFactory[K, S, P]) get(code K, p period.Period, v types.VersionCode) S {
	if provider, ok := f.providers[code]; ok {
		return provider.Spec(p, v)
	}
	return f.notFound.Spec(p, v)
}

// lookup is get plus whether code is registered
func (f *specFactory[K, S, P]) lookup(code K, p period.Period, v types.VersionCode) (S, bool) {
	provider, ok := f.providers[code]
	if !ok {
		return f.notFound.Spec(p, v), false
	}
	return provider.Spec(p, v), true
}

// list resolves every registered provider in ascending code order
func (f *specFactory[K, S, P]) list(p period.Period, v types.VersionCode) []S {
	specs := make([]S, 0, len(f.codes))
	for _, code := range f.codes {
		specs = append(specs, f.providers[code].Spec(p, v))
	}
	return specs
}

func (f *specFactory[K, S, P]) contains(code K) bool {
	_, ok := f.providers[code]
	return ok
}

func (f *specFactory[K, S, P]) sortedCodes() []K {
	return slices.Clone(f.codes)
}

func codeValue[K cmp.Ordered](code K) int32 {
	switch c := any(code).(type) {
	case types.ConceptCode:
		return c.Value()
	case types.ArticleCode:
		return c.Value()
	default:
		return 0
	}
}

// isNilProvider reports whether p is a nil interface or wraps a nil pointer.
func isNilProvider(p any) bool {
	if p == nil {
		return true
	}
	rv := reflect.ValueOf(p)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
