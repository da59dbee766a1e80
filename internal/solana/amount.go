package solana

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sosiol/sosiol/internal/domain"
)

var usdcScale = uint64(math.Pow10(domain.USDC_DECIMALS))

// USDCToBaseUnits converts a USDC amount to token base units. Digits past the sixth decimal are
// truncated, never rounded. The conversion works on the shortest decimal representation of the
// float so values like 0.29 convert to exactly 290000.
func USDCToBaseUnits(amount float64) (uint64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, amount)
	}

	repr := strconv.FormatFloat(amount, 'f', -1, 64)
	whole, frac, _ := strings.Cut(repr, ".")

	if len(frac) > domain.USDC_DECIMALS {
		frac = frac[:domain.USDC_DECIMALS]
	}
	frac += strings.Repeat("0", domain.USDC_DECIMALS-len(frac))

	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
	}
	f, err := strconv.ParseUint(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
	}

	if w > (math.MaxUint64-f)/usdcScale {
		return 0, fmt.Errorf("%w: %v overflows", domain.ErrInvalidAmount, amount)
	}

	units := w*usdcScale + f
	if units == 0 {
		return 0, fmt.Errorf("%w: %v is below one base unit", domain.ErrInvalidAmount, amount)
	}
	return units, nil
}

// BaseUnitsToUSDC converts token base units back to a USDC amount
func BaseUnitsToUSDC(units uint64) float64 {
	return float64(units) / float64(usdcScale)
}
