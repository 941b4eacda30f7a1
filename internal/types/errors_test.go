package types

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{name: "nil", err: nil, expected: ""},
		{name: "configuration", err: errbuilder.New().WithCode(CodeConfiguration).WithMsg("x"), expected: KindConfiguration},
		{name: "resolution", err: errbuilder.New().WithCode(CodeResolution).WithMsg("x"), expected: KindResolution},
		{name: "acquisition", err: errbuilder.New().WithCode(CodeAcquisition).WithMsg("x"), expected: KindAcquisition},
		{name: "patch", err: errbuilder.New().WithCode(CodePatch).WithMsg("x"), expected: KindPatch},
		{name: "placement", err: errbuilder.New().WithCode(CodePlacement).WithMsg("x"), expected: KindPlacement},
		{name: "plain error", err: assert.AnError, expected: KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}
