package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestError_Format(t *testing.T) {
	err := New(ErrCodeInvalidGraph, "node %s has no id", "a")
	if !strings.Contains(err.Error(), "INVALID_GRAPH") {
		t.Errorf("Error() = %q, want code prefix", err.Error())
	}
	if UserMessage(err) != "node a has no id" {
		t.Errorf("UserMessage() = %q", UserMessage(err))
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrCodeInternal, cause, "generate failed")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
	if !Is(err, ErrCodeInternal) {
		t.Error("Is() should match the wrapping code")
	}
	if GetCode(err) != ErrCodeInternal {
		t.Errorf("GetCode() = %q, want INTERNAL_ERROR", GetCode(err))
	}
}

func TestGetCode_PlainError(t *testing.T) {
	if GetCode(stderrors.New("plain")) != "" {
		t.Error("GetCode() on a plain error should be empty")
	}
}

func TestValidateProgramName(t *testing.T) {
	valid := []string{"counter", "token_vault", "p2", "a"}
	for _, name := range valid {
		if err := ValidateProgramName(name); err != nil {
			t.Errorf("ValidateProgramName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "MyProgram", "2fast", "has-dash", "has space", strings.Repeat("a", 65)}
	for _, name := range invalid {
		if err := ValidateProgramName(name); err == nil {
			t.Errorf("ValidateProgramName(%q) = nil, want error", name)
		}
	}
}

func TestValidateArtifactFilename(t *testing.T) {
	valid := []string{"Cargo.toml", "src/lib.rs", "src/instructions/deposit.rs", "tests/counter.ts"}
	for _, name := range valid {
		if err := ValidateArtifactFilename(name); err != nil {
			t.Errorf("ValidateArtifactFilename(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "/etc/passwd", "../escape.rs", "a\\b.rs", "bad\x00name"}
	for _, name := range invalid {
		if err := ValidateArtifactFilename(name); err == nil {
			t.Errorf("ValidateArtifactFilename(%q) = nil, want error", name)
		}
	}
}

func TestValidateGraphSize(t *testing.T) {
	if err := ValidateGraphSize(10, 20, 100, 200); err != nil {
		t.Errorf("within limits: %v", err)
	}
	if err := ValidateGraphSize(101, 0, 100, 200); err == nil {
		t.Error("node cap exceeded, want error")
	} else if !Is(err, ErrCodeGraphTooLarge) {
		t.Errorf("code = %q, want GRAPH_TOO_LARGE", GetCode(err))
	}
	if err := ValidateGraphSize(10, 300, 100, 200); err == nil {
		t.Error("edge cap exceeded, want error")
	}
	// Zero caps disable the check.
	if err := ValidateGraphSize(1000, 1000, 0, 0); err != nil {
		t.Errorf("zero caps should disable the check: %v", err)
	}
}
