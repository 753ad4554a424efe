package xcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want Policy
	}{
		{"lru", PolicyLRU},
		{"LRU", PolicyLRU},
		{" fifo ", PolicyFIFO},
		{"Fifo", PolicyFIFO},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParsePolicy("lfu")
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestPolicy_Text(t *testing.T) {
	b, err := PolicyFIFO.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "fifo", string(b))

	var p Policy
	require.NoError(t, p.UnmarshalText([]byte("fifo")))
	assert.Equal(t, PolicyFIFO, p)

	assert.ErrorIs(t, p.UnmarshalText([]byte("random")), ErrInvalidPolicy)
	assert.Equal(t, PolicyFIFO, p, "解析失败时保持原值")

	_, err = Policy(7).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidPolicy)
	assert.Equal(t, "Policy(7)", Policy(7).String())
	assert.False(t, Policy(7).IsValid())
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, 1000, o.MaxSize)
	assert.Equal(t, DefaultTTL, o.DefaultTTL)
	assert.True(t, o.UpdateAgeOnGet)
	assert.Equal(t, PolicyLRU, o.EvictionPolicy)
}
