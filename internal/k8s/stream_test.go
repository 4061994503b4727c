package k8s

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixWriter(t *testing.T) {
	tests := []struct {
		name     string
		writes   []string
		expected string
	}{
		{
			name:     "single line",
			writes:   []string{"hello\n"},
			expected: "STDOUT: hello\n",
		},
		{
			name:     "line split across writes",
			writes:   []string{"hel", "lo\nwor", "ld\n"},
			expected: "STDOUT: hello\nSTDOUT: world\n",
		},
		{
			name:     "trailing partial line is flushed",
			writes:   []string{"a\nb"},
			expected: "STDOUT: a\nSTDOUT: b\n",
		},
		{
			name:     "nothing written",
			writes:   nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			var mu sync.Mutex
			w := newPrefixWriter(&out, StdoutPrefix, &mu)

			for _, s := range tt.writes {
				n, err := w.Write([]byte(s))
				require.NoError(t, err)
				assert.Equal(t, len(s), n)
			}
			require.NoError(t, w.Flush())

			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestPrefixWriter_SharedOutput(t *testing.T) {
	var out bytes.Buffer
	var mu sync.Mutex
	stdout := newPrefixWriter(&out, StdoutPrefix, &mu)
	stderr := newPrefixWriter(&out, StderrPrefix, &mu)

	_, _ = stderr.Write([]byte("This message goes to stderr\n"))
	_, _ = stdout.Write([]byte("This message goes to stdout\n"))

	assert.Equal(t, "STDERR: This message goes to stderr\nSTDOUT: This message goes to stdout\n", out.String())
}
