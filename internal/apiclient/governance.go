package apiclient

import (
	"context"
	"net/url"

	"johar-connect/internal/domain"
)

type GovernanceService struct {
	c *Client
}

func (s *GovernanceService) GetData(ctx context.Context) (domain.GovernanceData, error) {
	var out domain.GovernanceData
	err := s.c.get(ctx, "/governance", &out)
	return out, err
}

func (s *GovernanceService) CreateProposal(ctx context.Context, in domain.ProposalInput) (domain.Proposal, error) {
	var out domain.Proposal
	err := s.c.post(ctx, "/governance/proposals", in, &out)
	return out, err
}

// Vote llama POST /governance/proposals/{id}/vote.
func (s *GovernanceService) Vote(ctx context.Context, proposalID string, in domain.VoteInput) (domain.VoteResult, error) {
	var out domain.VoteResult
	err := s.c.post(ctx, "/governance/proposals/"+url.PathEscape(proposalID)+"/vote", in, &out)
	return out, err
}
