package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderASCIITree(t *testing.T) {
	out := RenderASCII(FromTrace(sampleTrace()))

	assert.Contains(t, out, "=== app.py ===")
	assert.Contains(t, out, "[START] app.py")
	assert.Contains(t, out, "├── [IMP] import os:1")
	assert.Contains(t, out, "└── [DEF] def main():3")

	// Children of n3 are indented one level deeper than n3 itself.
	lines := strings.Split(out, "\n")
	var callLine, retLine string
	for _, l := range lines {
		if strings.Contains(l, "[CALL]") {
			callLine = l
		}
		if strings.Contains(l, "[RET]") {
			retLine = l
		}
	}
	require.NotEmpty(t, callLine)
	require.NotEmpty(t, retLine)
	assert.Contains(t, callLine, "├── [CALL] print(x):4")
	assert.Contains(t, retLine, "└── [RET] return x:5")
}

func TestRenderASCIIEmpty(t *testing.T) {
	out := RenderASCII(&Model{Title: "empty.py"})

	assert.Equal(t, "=== empty.py ===\n\n", out)
}
