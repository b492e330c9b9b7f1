package solana

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// LamportsPerSol is the number of lamports in one SOL
const LamportsPerSol = 1_000_000_000

const solDecimals = 9

// ErrAmountOverflow is returned when a scaled amount does not fit in a uint64
var ErrAmountOverflow = errors.New("amount overflows uint64")

// LamportsToSol converts lamports to SOL
func LamportsToSol(lamports uint64) decimal.Decimal {
	return FromBaseUnits(lamports, solDecimals)
}

// SolToLamports converts SOL to lamports, truncating anything below one lamport
func SolToLamports(sol decimal.Decimal) (uint64, error) {
	if sol.IsNegative() {
		return 0, fmt.Errorf("negative SOL amount: %s", sol)
	}
	lamports := sol.Shift(solDecimals).BigInt()
	if !lamports.IsUint64() {
		return 0, ErrAmountOverflow
	}
	return lamports.Uint64(), nil
}

// ToBaseUnits scales a display amount into base units (amount * 10^decimals)
func ToBaseUnits(amount uint64, decimals uint8) (uint64, error) {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	total := new(big.Int).Mul(new(big.Int).SetUint64(amount), scale)
	if !total.IsUint64() {
		return 0, fmt.Errorf("%d with %d decimals: %w", amount, decimals, ErrAmountOverflow)
	}
	return total.Uint64(), nil
}

// FromBaseUnits converts a raw base unit amount into its display value
func FromBaseUnits(raw uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -int32(decimals))
}
