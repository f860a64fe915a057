package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"johar-connect/internal/domain"
)

// eligibleVoters es el censo simulado usado para quórum y participación.
const eligibleVoters = 100

var ErrAlreadyVoted = errors.New("already voted")

// GovernanceService gestiona propuestas comunitarias y sus votos.
type GovernanceService struct {
	mu        sync.Mutex
	proposals []domain.Proposal
	votes     []domain.Vote
	now       func() time.Time
}

func NewGovernanceService() *GovernanceService {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := &GovernanceService{now: func() time.Time { return time.Now().UTC() }}
	s.proposals = []domain.Proposal{
		{ID: "1", Title: "Eco-tourism fund for Betla National Park", Description: "Allocate 5% of booking fees to trail maintenance", Category: "environment", Status: "active", CreatorID: "user_4", DurationDays: 14, QuorumPercentage: 20, VotesFor: 12, VotesAgainst: 3, TotalVotes: 15, CreatedAt: created, UpdatedAt: created},
		{ID: "2", Title: "Certify Santhali-speaking guides", Description: "Add a language badge for guides fluent in Santhali", Category: "culture", Status: "active", CreatorID: "user_2", DurationDays: 7, QuorumPercentage: 10, VotesFor: 9, VotesAgainst: 1, TotalVotes: 11, QuorumMet: true, CreatedAt: created.AddDate(0, 0, 2), UpdatedAt: created.AddDate(0, 0, 2)},
		{ID: "3", Title: "Weekend artisan market in Ranchi", Description: "Monthly pop-up market for marketplace vendors", Category: "economy", Status: "closed", CreatorID: "user_3", DurationDays: 7, QuorumPercentage: 15, VotesFor: 30, VotesAgainst: 4, TotalVotes: 34, QuorumMet: true, CreatedAt: created.AddDate(0, -1, 0), UpdatedAt: created},
	}
	return s
}

func (s *GovernanceService) Data() domain.GovernanceData {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := domain.GovernanceData{
		Proposals:      append([]domain.Proposal(nil), s.proposals...),
		TotalProposals: len(s.proposals),
	}
	voters := make(map[string]bool)
	for _, v := range s.votes {
		voters[v.VoterID] = true
	}
	for _, p := range s.proposals {
		if p.Status == "active" {
			data.ActiveProposals++
		}
	}
	data.VoterTurnout = round2(float64(len(voters)) / eligibleVoters * 100)
	return data
}

func (s *GovernanceService) CreateProposal(creatorID string, in domain.ProposalInput) (domain.Proposal, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Proposal{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Description) == "" {
		return domain.Proposal{}, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	duration := in.DurationDays
	if duration <= 0 {
		duration = 7
	}
	quorum := in.QuorumPercentage
	if quorum <= 0 {
		quorum = 20
	}
	if quorum > 100 {
		return domain.Proposal{}, fmt.Errorf("%w: quorum must be at most 100", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	p := domain.Proposal{
		ID:               fmt.Sprintf("%d", len(s.proposals)+1),
		Title:            title,
		Description:      strings.TrimSpace(in.Description),
		Category:         in.Category,
		Status:           "active",
		CreatorID:        creatorID,
		DurationDays:     duration,
		QuorumPercentage: quorum,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.proposals = append(s.proposals, p)
	return p, nil
}

// Vote registra un voto por votante y propuesta, y recalcula el quórum.
func (s *GovernanceService) Vote(proposalID, voterID string, in domain.VoteInput) (domain.VoteResult, error) {
	switch in.VoteType {
	case domain.VoteFor, domain.VoteAgainst, domain.VoteAbstain:
	default:
		return domain.VoteResult{}, fmt.Errorf("%w: unknown vote type %q", ErrInvalidInput, in.VoteType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.proposals {
		if s.proposals[i].ID == proposalID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.VoteResult{}, fmt.Errorf("%w: proposal %s", ErrNotFound, proposalID)
	}
	p := &s.proposals[idx]
	if p.Status != "active" {
		return domain.VoteResult{}, fmt.Errorf("%w: proposal is not active", ErrInvalidInput)
	}
	for _, v := range s.votes {
		if v.ProposalID == proposalID && v.VoterID == voterID {
			return domain.VoteResult{}, ErrAlreadyVoted
		}
	}

	now := s.now()
	vote := domain.Vote{
		ID:         uuid.NewString(),
		ProposalID: proposalID,
		VoterID:    voterID,
		VoteType:   in.VoteType,
		CreatedAt:  now,
	}
	s.votes = append(s.votes, vote)
	switch in.VoteType {
	case domain.VoteFor:
		p.VotesFor++
	case domain.VoteAgainst:
		p.VotesAgainst++
	}
	p.TotalVotes++
	p.UpdatedAt = now
	if float64(p.TotalVotes)/eligibleVoters*100 >= p.QuorumPercentage {
		p.QuorumMet = true
	}
	return domain.VoteResult{Vote: vote, Proposal: *p}, nil
}
