package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeInvalidDefinition, "missing properties.name"),
			want: "INVALID_DEFINITION: missing properties.name",
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeStore, stderrors.New("connection refused"), "put graph %s", "main"),
			want: "STORE_ERROR: put graph main: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAndGetCode(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrCodeGraphNotFound, cause, "graph %s", "main")

	if !Is(err, ErrCodeGraphNotFound) {
		t.Error("Is should match the error code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is matched the wrong code")
	}
	if got := GetCode(err); got != ErrCodeGraphNotFound {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(cause); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
	if !stderrors.Is(err, cause) {
		t.Error("Unwrap chain should reach the cause")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeRender, "graphviz failed")); got != "graphviz failed" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("raw")); got != "raw" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
