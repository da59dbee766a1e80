package solana_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sosiol/sosiol/internal/domain"
	"github.com/sosiol/sosiol/internal/solana"
)

func TestUSDCToBaseUnits(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		want    uint64
		wantErr bool
	}{
		{name: "whole", amount: 1, want: 1000000},
		{name: "binary inexact decimal", amount: 0.29, want: 290000},
		{name: "fractional", amount: 100.5, want: 100500000},
		{name: "smallest unit", amount: 0.000001, want: 1},
		{name: "truncates extra digits", amount: 1.2345678, want: 1234567},
		{name: "below one unit", amount: 0.0000009, wantErr: true},
		{name: "zero", amount: 0, wantErr: true},
		{name: "negative", amount: -5, wantErr: true},
		{name: "nan", amount: math.NaN(), wantErr: true},
		{name: "infinite", amount: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := solana.USDCToBaseUnits(tt.amount)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidAmount)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBaseUnitsToUSDC(t *testing.T) {
	assert.Equal(t, 0.29, solana.BaseUnitsToUSDC(290000))
	assert.Equal(t, 1.0, solana.BaseUnitsToUSDC(1000000))
}
