package bridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hookerrors "github.com/vango-dev/uihooks/internal/errors"
)

func TestDecode(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"click","target":"save","data":{"clientX":12}}`))
	require.NoError(t, err)
	assert.Equal(t, "click", msg.Type)
	assert.Equal(t, "save", msg.Target)
	assert.Equal(t, float64(12), msg.Data["clientX"])
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code string
	}{
		{"not json", `click`, "E020"},
		{"wrong shape", `{"type": 5}`, "E020"},
		{"missing type", `{"target":"save"}`, "E021"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			require.Error(t, err)

			var he *hookerrors.HookError
			require.True(t, errors.As(err, &he))
			assert.Equal(t, tt.code, he.Code)
		})
	}
}

func TestEncodeOmitsEmptyFields(t *testing.T) {
	data, err := Encode(Message{Type: "status"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"status"}`, string(data))
}
