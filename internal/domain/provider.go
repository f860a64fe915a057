package domain

type Provider struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	Experience     int      `json:"experience"`
	Specialties    []string `json:"specialties"`
	Languages      []string `json:"languages"`
	Contact        string   `json:"contact"`
	Rating         float64  `json:"rating"`
	Verified       bool     `json:"verified"`
	ToursCompleted int      `json:"tours_completed"`
	Availability   string   `json:"availability"`
}

// ProviderInput es el cuerpo de POST /providers.
type ProviderInput struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Experience  int      `json:"experience"`
	Specialties []string `json:"specialties"`
	Languages   []string `json:"languages"`
	Contact     string   `json:"contact"`
}

type ProviderVerification struct {
	ProviderID   string `json:"provider_id"`
	Status       string `json:"status"`
	VerifiedBy   string `json:"verified_by"`
	BlockchainTx string `json:"blockchain_tx"`
}
