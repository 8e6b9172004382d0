package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/lexreg/internal/domain/period"
	"github.com/zjrosen/lexreg/internal/domain/types"
)

func TestEvaluator(t *testing.T) {
	ctx := context.Background()
	p := period.MustMonth(2024, 1)
	v := types.GetVersionCode(1)

	tests := []struct {
		name    string
		inputs  []int64
		want    int64
		wantErr error
	}{
		{"sum", []int64{1, 2, 3}, 6, nil},
		{"sum", nil, 0, nil},
		{"first", []int64{7, 2}, 7, nil},
		{"first", nil, 0, ErrNoInputs},
		{"max", []int64{-4, 11, 3}, 11, nil},
		{"max", nil, 0, ErrNoInputs},
		{"zero", []int64{5}, 0, nil},
	}
	for _, tt := range tests {
		fn, err := Evaluator(tt.name)
		require.NoError(t, err)
		require.NotNil(t, fn)

		got, err := fn(ctx, p, v, tt.inputs)
		if tt.wantErr != nil {
			require.ErrorIs(t, err, tt.wantErr, tt.name)
			continue
		}
		require.NoError(t, err, tt.name)
		require.Equal(t, tt.want, got, tt.name)
	}
}

func TestEvaluator_EmptyNameIsNil(t *testing.T) {
	fn, err := Evaluator("")
	require.NoError(t, err)
	require.Nil(t, fn)
}

func TestEvaluator_Unknown(t *testing.T) {
	_, err := Evaluator("median")
	require.ErrorIs(t, err, ErrUnknownEvaluator)
}

func TestEvaluatorNames(t *testing.T) {
	require.Equal(t, []string{"first", "max", "sum", "zero"}, EvaluatorNames())
}
