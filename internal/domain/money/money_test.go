//go:build unit

package money_test

import (
	"testing"

	"station-booking/internal/domain/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "12", want: 1200},
		{in: "12.5", want: 1250},
		{in: "12.50", want: 1250},
		{in: "0.01", want: 1},
		{in: "-3.20", want: -320},
		{in: "12.345", wantErr: true},
		{in: "", wantErr: true},
		{in: ".5", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "92233720368547758.07", want: 9223372036854775807},
		{in: "92233720368547758.08", wantErr: true},
		{in: "184467440737095517", wantErr: true},
		{in: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := money.Parse(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, money.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Cents())
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "12.50", money.FromCents(1250).String())
	assert.Equal(t, "0.07", money.FromCents(7).String())
	assert.Equal(t, "-1.05", money.FromCents(-105).String())
	assert.Equal(t, "3.75", money.FromCents(125).Add(money.FromCents(250)).String())
}
