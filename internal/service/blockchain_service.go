package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"johar-connect/internal/domain"
)

var contractTypes = map[string]bool{
	"certificate": true,
	"payment":     true,
	"governance":  true,
	"marketplace": true,
}

// BlockchainService simula contratos y transacciones; no hay nodo real detrás.
type BlockchainService struct {
	mu           sync.RWMutex
	contracts    []domain.Contract
	transactions []domain.Transaction
	blockHeight  int64
	now          func() time.Time
}

func NewBlockchainService() *BlockchainService {
	deployed := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	s := &BlockchainService{
		blockHeight: 18_450_000,
		now:         func() time.Time { return time.Now().UTC() },
	}
	s.contracts = []domain.Contract{
		{Address: "0x742d35cc6634c0532925a3b844bc9e7595f0beb1", Name: "GuideCertificate", Type: "certificate", Network: "polygon-mumbai", Status: "active", DeployedAt: deployed},
		{Address: "0x8ba1f109551bd432803012645ac136ddd64dba72", Name: "TourismPayment", Type: "payment", Network: "polygon-mumbai", Status: "active", DeployedAt: deployed.AddDate(0, 0, 3)},
		{Address: "0x5aeda56215b167893e80b4fe645ba6d5bab767de", Name: "CommunityGovernance", Type: "governance", Network: "polygon-mumbai", Status: "active", DeployedAt: deployed.AddDate(0, 0, 7)},
	}
	s.transactions = []domain.Transaction{
		{Hash: "0x" + newHexID(64), From: "0x1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b", To: s.contracts[1].Address, Type: "payment", Status: "confirmed", GasUsed: 21000, BlockNumber: s.blockHeight - 12, Timestamp: deployed.AddDate(0, 1, 0)},
		{Hash: "0x" + newHexID(64), From: "0x4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2d3e", To: s.contracts[0].Address, Type: "certificate", Status: "confirmed", GasUsed: 84000, BlockNumber: s.blockHeight - 8, Timestamp: deployed.AddDate(0, 1, 2)},
		{Hash: "0x" + newHexID(64), From: "0x2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c", To: s.contracts[2].Address, Type: "governance", Status: "pending", GasUsed: 52000, BlockNumber: s.blockHeight, Timestamp: deployed.AddDate(0, 1, 5)},
	}
	return s
}

func (s *BlockchainService) Contracts() domain.ContractList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.ContractList{Contracts: append([]domain.Contract(nil), s.contracts...)}
}

func (s *BlockchainService) Transactions() domain.TransactionList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.TransactionList{Transactions: append([]domain.Transaction(nil), s.transactions...)}
}

func (s *BlockchainService) Network() domain.NetworkInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.NetworkInfo{
		Network:          "polygon-mumbai",
		BlockHeight:      s.blockHeight,
		ActiveNodes:      42,
		AverageBlockTime: 2.1,
		GasPriceGwei:     30,
		Status:           "healthy",
	}
}

// Deploy registra un contrato simulado y la transacción que lo crea.
func (s *BlockchainService) Deploy(deployer string, req domain.DeployContractRequest) (domain.DeployResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.DeployResult{}, fmt.Errorf("%w: contract name is required", ErrInvalidInput)
	}
	if !contractTypes[req.Type] {
		return domain.DeployResult{}, fmt.Errorf("%w: unknown contract type %q", ErrInvalidInput, req.Type)
	}
	network := req.Network
	if network == "" {
		network = "polygon-mumbai"
	}
	gas := req.GasLimit
	if gas <= 0 || gas > 2_000_000 {
		gas = 2_000_000
	}
	gasUsed := gas * 3 / 4

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.blockHeight++
	contract := domain.Contract{
		Address:    "0x" + newHexID(40),
		Name:       name,
		Type:       req.Type,
		Network:    network,
		Status:     "active",
		DeployedAt: now,
	}
	tx := domain.Transaction{
		Hash:        "0x" + newHexID(64),
		From:        deployer,
		To:          contract.Address,
		Type:        "deployment",
		Status:      "confirmed",
		GasUsed:     gasUsed,
		BlockNumber: s.blockHeight,
		Timestamp:   now,
	}
	s.contracts = append(s.contracts, contract)
	s.transactions = append(s.transactions, tx)
	return domain.DeployResult{Contract: contract, TransactionHash: tx.Hash, GasUsed: gasUsed}, nil
}

func newHexID(n int) string {
	var b strings.Builder
	for b.Len() < n {
		b.WriteString(strings.ReplaceAll(uuid.NewString(), "-", ""))
	}
	return b.String()[:n]
}
