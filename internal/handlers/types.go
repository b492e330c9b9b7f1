package handlers

// BalanceResp is the balance lookup response
type BalanceResp struct {
	Mint            string `json:"mint"`
	Wallet          string `json:"wallet,omitempty"`
	Balance         uint64 `json:"balance"`
	Decimals        *int   `json:"decimals,omitempty"`
	BalanceReadable string `json:"balance_readable,omitempty"`
	Symbol          string `json:"symbol,omitempty"`
}
