package exitcode

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artplanhq/artplan/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: Success},
		{
			name: "input validation",
			err:  errors.New(errors.ErrCodeInputInvalid, "bad input"),
			want: InvalidInput,
		},
		{
			name: "hard cycle",
			err:  errors.NewHardCycleError("a -> b -> a"),
			want: InvalidGraph,
		},
		{
			name: "store failure",
			err:  errors.New(errors.ErrCodeStoreOpenFailed, "cannot open"),
			want: StoreError,
		},
		{
			name: "wrapped plan error",
			err:  errors.Wrap(errors.ErrCodeGraphInvalid, "graph rejected", stderrors.New("boom")),
			want: InvalidGraph,
		},
		{
			name: "usage heuristics",
			err:  stderrors.New("unknown command \"paln\" for \"artplan\""),
			want: UsageError,
		},
		{
			name: "plain error",
			err:  stderrors.New("something broke"),
			want: GeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineExitCode(tt.err))
		})
	}
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "Success", Description(Success))
	assert.Equal(t, "Unknown error", Description(99))
	assert.NotEmpty(t, Description(NotReady))
}
