package apiclient

import (
	"context"

	"johar-connect/internal/domain"
)

type BlockchainService struct {
	c *Client
}

func (s *BlockchainService) GetContracts(ctx context.Context) (domain.ContractList, error) {
	var out domain.ContractList
	err := s.c.get(ctx, "/blockchain/contracts", &out)
	return out, err
}

func (s *BlockchainService) GetTransactions(ctx context.Context) (domain.TransactionList, error) {
	var out domain.TransactionList
	err := s.c.get(ctx, "/blockchain/transactions", &out)
	return out, err
}

func (s *BlockchainService) GetNetworkData(ctx context.Context) (domain.NetworkInfo, error) {
	var out domain.NetworkInfo
	err := s.c.get(ctx, "/blockchain/network", &out)
	return out, err
}

func (s *BlockchainService) DeployContract(ctx context.Context, req domain.DeployContractRequest) (domain.DeployResult, error) {
	var out domain.DeployResult
	err := s.c.post(ctx, "/blockchain/deploy", req, &out)
	return out, err
}
