package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sumOp validates its input is non-empty, sums it, and formats the total.
func sumOp(trace *[]Stage) Operation[[]int, int, string] {
	return Operation[[]int, int, string]{
		Name: "sum",
		Validate: func(_ context.Context, in []int) error {
			*trace = append(*trace, StageValidate)
			if len(in) == 0 {
				return errors.New("nothing to sum")
			}

			return nil
		},
		Perform: func(_ context.Context, in []int) (int, error) {
			*trace = append(*trace, StagePerform)

			total := 0
			for _, v := range in {
				total += v
			}

			return total, nil
		},
		Verify: func(_ context.Context, _ []int, total int) error {
			*trace = append(*trace, StageVerify)
			if total < 0 {
				return errors.New("negative total")
			}

			return nil
		},
		Respond: func(_ context.Context, _ []int, total int) (string, error) {
			*trace = append(*trace, StageRespond)
			return strings.Repeat("*", total), nil
		},
	}
}

func TestExecute_RunsStagesInOrder(t *testing.T) {
	var trace []Stage

	out, err := Execute(context.Background(), NewExecutor(discardLogger()), sumOp(&trace), []int{1, 2})

	require.NoError(t, err)
	assert.Equal(t, "***", out)
	assert.Equal(t, []Stage{StageValidate, StagePerform, StageVerify, StageRespond}, trace)
}

func TestExecute_StopsAtFailingStage(t *testing.T) {
	tests := []struct {
		name      string
		in        []int
		wantStage Stage
		wantTrace []Stage
	}{
		{
			name:      "validate",
			in:        nil,
			wantStage: StageValidate,
			wantTrace: []Stage{StageValidate},
		},
		{
			name:      "verify",
			in:        []int{-5},
			wantStage: StageVerify,
			wantTrace: []Stage{StageValidate, StagePerform, StageVerify},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var trace []Stage

			out, err := Execute(context.Background(), NewExecutor(discardLogger()), sumOp(&trace), tt.in)

			require.Error(t, err)
			assert.Empty(t, out)
			assert.Equal(t, tt.wantTrace, trace)

			var se *StageError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, "sum", se.Operation)
			assert.Equal(t, tt.wantStage, se.Stage)
			assert.Contains(t, err.Error(), "sum: "+string(tt.wantStage))
		})
	}
}

func TestExecute_PerformErrorIsWrapped(t *testing.T) {
	boom := errors.New("upstream down")
	op := Operation[string, int, int]{
		Name:    "lookup",
		Perform: func(context.Context, string) (int, error) { return 0, boom },
	}

	_, err := Execute(context.Background(), NewExecutor(nil), op, "x")

	require.ErrorIs(t, err, boom)

	stage, ok := FailedStage(err)
	require.True(t, ok)
	assert.Equal(t, StagePerform, stage)
}

func TestExecute_NilStagesAreSkipped(t *testing.T) {
	out, err := Execute(context.Background(), NewExecutor(nil), Operation[int, int, string]{Name: "noop"}, 1)

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFailedStage_PlainError(t *testing.T) {
	_, ok := FailedStage(errors.New("plain"))
	assert.False(t, ok)
}
