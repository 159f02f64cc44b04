package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripScripts(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain text untouched", "hello support", "hello support"},
		{"Empty", "", ""},
		{"Single block", "hi<script>alert(1)</script>!", "hi!"},
		{"Upper case with attributes", `a<SCRIPT type="text/javascript">x()</SCRIPT>b`, "ab"},
		{"Multiline body", "a<script>\nvar x = 1;\n</script>b", "ab"},
		{"Two blocks keep text between", "<script>1</script>keep<script>2</script>", "keep"},
		{"Other tags kept", "<b>bold</b>", "<b>bold</b>"},
		{"Unterminated tag kept", "<script>alert(1)", "<script>alert(1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, StripScripts(tt.input))
		})
	}
}
