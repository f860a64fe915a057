package domain

import "time"

type Contract struct {
	Address    string    `json:"address"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Network    string    `json:"network"`
	Status     string    `json:"status"`
	DeployedAt time.Time `json:"deployed_at"`
}

type ContractList struct {
	Contracts []Contract `json:"contracts"`
}

type Transaction struct {
	Hash        string    `json:"hash"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	GasUsed     int64     `json:"gas_used"`
	BlockNumber int64     `json:"block_number"`
	Timestamp   time.Time `json:"timestamp"`
}

type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
}

// NetworkInfo describe el estado (simulado) de la red.
type NetworkInfo struct {
	Network          string  `json:"network"`
	BlockHeight      int64   `json:"block_height"`
	ActiveNodes      int     `json:"active_nodes"`
	AverageBlockTime float64 `json:"average_block_time"`
	GasPriceGwei     float64 `json:"gas_price_gwei"`
	Status           string  `json:"status"`
}

type DeployContractRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Network  string `json:"network,omitempty"`
	GasLimit int64  `json:"gas_limit,omitempty"`
}

type DeployResult struct {
	Contract        Contract `json:"contract"`
	TransactionHash string   `json:"transaction_hash"`
	GasUsed         int64    `json:"gas_used"`
}
