package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkedErrorsMatchSentinels(t *testing.T) {
	err := NewError("no items").
		WithHint("Add at least one line item").
		Mark(ErrValidation)

	assert.True(t, IsValidation(err))
	assert.False(t, IsOutput(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "Add at least one line item", HintOf(err))
}

func TestWrappedMarkSurvivesFmtWrap(t *testing.T) {
	base := WithError(stderrors.New("disk full")).
		WithHintf("cannot write %s", "out.pdf").
		Mark(ErrOutput)
	wrapped := fmt.Errorf("render: %w", base)

	assert.True(t, IsOutput(wrapped))
	assert.Equal(t, 5, ExitCode(wrapped))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "validation", err: NewError("x").Mark(ErrValidation), want: 2},
		{name: "not found", err: NewError("x").Mark(ErrNotFound), want: 3},
		{name: "resource", err: NewError("x").Mark(ErrResource), want: 4},
		{name: "output", err: NewError("x").Mark(ErrOutput), want: 5},
		{name: "system", err: NewError("x").Mark(ErrSystem), want: 1},
		{name: "plain", err: stderrors.New("boom"), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestHintFallsBackToMessage(t *testing.T) {
	err := NewError("plain failure").Mark(ErrSystem)
	assert.Contains(t, HintOf(err), "plain failure")
	assert.Equal(t, "", HintOf(nil))
}

func TestInternalErrorDisplay(t *testing.T) {
	assert.Equal(t, "validation_error: validation error", ErrValidation.Error())

	wrapped := &InternalError{Code: ErrCodeOutput, Message: "m", Err: stderrors.New("inner")}
	assert.Equal(t, "output_error: inner", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, ErrOutput))
}
