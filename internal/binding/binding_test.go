package binding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		expected  Kind
		expectErr bool
	}{
		{name: "input", value: "input", expected: Input},
		{name: "output", value: "output", expected: Output},
		{name: "empty", value: "", expectErr: true},
		{name: "unknown", value: "trigger", expectErr: true},
		{name: "case sensitive", value: "Input", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ParseKind(tt.value)
			if tt.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.expected, kind)
		})
	}
}

func TestKindDisplay(t *testing.T) {
	// Every kind offered by Kinds must have a human readable display string
	// distinct from its wire value.
	for _, kind := range Kinds() {
		require.NotEmpty(t, kind.Display())
		require.NotEqual(t, string(kind), kind.Display())
	}
}
