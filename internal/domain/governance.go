package domain

import "time"

type Proposal struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Status           string    `json:"status"`
	CreatorID        string    `json:"creator_id"`
	DurationDays     int       `json:"duration_days"`
	QuorumPercentage float64   `json:"quorum_percentage"`
	VotesFor         int       `json:"votes_for"`
	VotesAgainst     int       `json:"votes_against"`
	TotalVotes       int       `json:"total_votes"`
	QuorumMet        bool      `json:"quorum_met"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProposalInput es el cuerpo de POST /governance/proposals.
type ProposalInput struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	DurationDays     int     `json:"duration_days,omitempty"`
	QuorumPercentage float64 `json:"quorum_percentage,omitempty"`
}

type VoteType string

const (
	VoteFor     VoteType = "for"
	VoteAgainst VoteType = "against"
	VoteAbstain VoteType = "abstain"
)

// VoteInput es el cuerpo de POST /governance/proposals/{id}/vote.
type VoteInput struct {
	VoteType VoteType `json:"vote_type"`
}

type Vote struct {
	ID         string    `json:"id"`
	ProposalID string    `json:"proposal_id"`
	VoterID    string    `json:"voter_id"`
	VoteType   VoteType  `json:"vote_type"`
	CreatedAt  time.Time `json:"created_at"`
}

type VoteResult struct {
	Vote     Vote     `json:"vote"`
	Proposal Proposal `json:"proposal"`
}

type GovernanceData struct {
	Proposals       []Proposal `json:"proposals"`
	TotalProposals  int        `json:"total_proposals"`
	ActiveProposals int        `json:"active_proposals"`
	VoterTurnout    float64    `json:"voter_turnout"`
}
