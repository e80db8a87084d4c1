package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatWithPrefix(t *testing.T) {
	assert.Equal(t, "TXN1234567890", FormatWithPrefix(ID(1234567890), "TXN"))
	assert.Equal(t, "42", FormatWithPrefix(ID(42), ""))
}

func TestFormatWithPrefixAt(t *testing.T) {
	tests := []struct {
		name    string
		pos     int
		want    string
		wantErr bool
	}{
		{name: "Start", pos: 0, want: "XXX1234567890"},
		{name: "Middle", pos: 4, want: "1234XXX567890"},
		{name: "End", pos: 10, want: "1234567890XXX"},
		{name: "Negative", pos: -1, wantErr: true},
		{name: "PastEnd", pos: 11, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatWithPrefixAt(ID(1234567890), "XXX", tt.pos)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPrefixPosition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnowflake_NextWithPrefix(t *testing.T) {
	clock := &MockClock{CurrentTime: DefaultCustomEpoch + 1000}
	sf := newTestSnowflake(t, 1, DefaultNodeBits, clock)

	s, err := sf.NextWithPrefix("ORDER")
	require.NoError(t, err)
	assert.Equal(t, "ORDER4194308096", s)

	s, err = sf.NextWithPrefixAt("-", 4)
	require.NoError(t, err)
	assert.Equal(t, "4194-308097", s)

	_, err = sf.NextWithPrefixAt("-", 100)
	assert.ErrorIs(t, err, ErrInvalidPrefixPosition)
}
