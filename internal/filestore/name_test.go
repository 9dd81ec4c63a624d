package filestore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/koustreak/filedrop/internal/errs"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		invalid bool
	}{
		{name: "plain", input: "report.txt"},
		{name: "spaces", input: "annual report 2024.pdf"},
		{name: "hidden file", input: ".env"},
		{name: "unicode", input: "résumé.doc"},
		{name: "empty", input: "", invalid: true},
		{name: "dot", input: ".", invalid: true},
		{name: "dot dot", input: "..", invalid: true},
		{name: "slash", input: "a/b.txt", invalid: true},
		{name: "traversal", input: "../etc/passwd", invalid: true},
		{name: "backslash", input: `a\b.txt`, invalid: true},
		{name: "nul", input: "a\x00b", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.invalid {
				assert.True(t, errs.IsInvalidInput(err), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
