package types

type CommissionMode string

const (
	// CommissionModePercent: commission = gross * rate (basis points).
	CommissionModePercent CommissionMode = "percent_of_gross"
	// CommissionModeFixed: commission = fee * quantity.
	CommissionModeFixed CommissionMode = "fixed_per_unit"
)
