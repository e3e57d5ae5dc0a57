// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"mvdan.cc/sh/v3/interp"
)

func TestExitCodeIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     ExitCode
		wantValid bool
	}{
		{name: "zero is valid", value: 0, wantValid: true},
		{name: "one is valid", value: 1, wantValid: true},
		{name: "255 is valid", value: 255, wantValid: true},
		{name: "negative is invalid", value: -1, wantValid: false},
		{name: "256 is invalid", value: 256, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			isValid, errs := tt.value.IsValid()
			if isValid != tt.wantValid {
				t.Errorf("ExitCode(%d).IsValid() = %v, want %v", tt.value, isValid, tt.wantValid)
			}
			if !tt.wantValid && (len(errs) == 0 || !errors.Is(errs[0], ErrInvalidExitCode)) {
				t.Errorf("ExitCode(%d).IsValid() errors = %v, want ErrInvalidExitCode", tt.value, errs)
			}
		})
	}
}

func TestExitCodeIsSuccess(t *testing.T) {
	t.Parallel()

	if !ExitCode(0).IsSuccess() {
		t.Error("ExitCode(0).IsSuccess() = false, want true")
	}
	if ExitCode(2).IsSuccess() {
		t.Error("ExitCode(2).IsSuccess() = true, want false")
	}
}

func TestExitCodeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode ExitCode
		wantOK   bool
	}{
		{name: "interpreter status", err: interp.ExitStatus(4), wantCode: 4, wantOK: true},
		{name: "wrapped interpreter status", err: fmt.Errorf("run: %w", interp.ExitStatus(127)), wantCode: 127, wantOK: true},
		{name: "not found", err: exec.ErrNotFound, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, ok := exitCodeOf(tt.err)
			if code != tt.wantCode || ok != tt.wantOK {
				t.Errorf("exitCodeOf() = %d, %v; want %d, %v", code, ok, tt.wantCode, tt.wantOK)
			}
		})
	}
}
