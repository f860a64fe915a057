package service

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"johar-connect/internal/domain"
)

var providerTypes = map[string]bool{
	"guide":     true,
	"homestay":  true,
	"transport": true,
	"activity":  true,
}

// ProviderService mantiene el directorio de proveedores turísticos.
type ProviderService struct {
	mu        sync.RWMutex
	providers []domain.Provider
	nextID    int
}

func NewProviderService() *ProviderService {
	seed := []domain.Provider{
		{Name: "Raj Kumar", Type: "guide", Location: "Ranchi", Experience: 12, Specialties: []string{"Cultural Tours", "Heritage"}, Languages: []string{"Hindi", "English", "Santhali"}, Rating: 4.9, Verified: true, ToursCompleted: 86, Availability: "available"},
		{Name: "Priya Singh", Type: "homestay", Location: "Netarhat", Experience: 6, Specialties: []string{"Traditional", "Eco-friendly"}, Languages: []string{"Hindi", "English"}, Rating: 4.7, Verified: true, ToursCompleted: 54, Availability: "available"},
		{Name: "Amit Sharma", Type: "transport", Location: "Jamshedpur", Experience: 9, Specialties: []string{"Jeep", "Car"}, Languages: []string{"Hindi", "Bengali"}, Rating: 4.3, Verified: false, ToursCompleted: 31, Availability: "busy"},
		{Name: "Sneha Patel", Type: "activity", Location: "Hazaribagh", Experience: 4, Specialties: []string{"Bird Watching", "Trekking"}, Languages: []string{"Hindi", "English", "Odia"}, Rating: 4.5, Verified: true, ToursCompleted: 40, Availability: "available"},
		{Name: "Vikram Das", Type: "guide", Location: "Deoghar", Experience: 15, Specialties: []string{"Wildlife", "Photography"}, Languages: []string{"Hindi", "Santhali"}, Rating: 4.8, Verified: false, ToursCompleted: 97, Availability: "offline"},
	}
	s := &ProviderService{}
	for _, p := range seed {
		s.nextID++
		p.ID = fmt.Sprintf("provider_%d", s.nextID)
		p.Description = fmt.Sprintf("Experienced %s providing excellent services in %s", p.Type, p.Location)
		p.Contact = fmt.Sprintf("+91-98%08d", 35000000+s.nextID*1117)
		s.providers = append(s.providers, p)
	}
	return s
}

// List devuelve los proveedores ordenados por valoración descendente.
func (s *ProviderService) List() []domain.Provider {
	s.mu.RLock()
	out := append([]domain.Provider(nil), s.providers...)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return out
}

func (s *ProviderService) Create(in domain.ProviderInput) (domain.Provider, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Provider{}, fmt.Errorf("%w: provider name is required", ErrInvalidInput)
	}
	if !providerTypes[in.Type] {
		return domain.Provider{}, fmt.Errorf("%w: unknown provider type %q", ErrInvalidInput, in.Type)
	}
	if in.Experience < 0 {
		return domain.Provider{}, fmt.Errorf("%w: experience must not be negative", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p := domain.Provider{
		ID:           fmt.Sprintf("provider_%d", s.nextID),
		Name:         name,
		Type:         in.Type,
		Description:  in.Description,
		Location:     in.Location,
		Experience:   in.Experience,
		Specialties:  in.Specialties,
		Languages:    in.Languages,
		Contact:      in.Contact,
		Verified:     false,
		Availability: "available",
	}
	s.providers = append(s.providers, p)
	return p, nil
}

// Verify marca al proveedor como verificado y emite un hash de certificado simulado.
func (s *ProviderService) Verify(providerID, verifier string) (domain.ProviderVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.providers {
		if s.providers[i].ID != providerID {
			continue
		}
		s.providers[i].Verified = true
		return domain.ProviderVerification{
			ProviderID:   providerID,
			Status:       "verified",
			VerifiedBy:   verifier,
			BlockchainTx: "0x" + newHexID(64),
		}, nil
	}
	return domain.ProviderVerification{}, fmt.Errorf("%w: provider %s", ErrNotFound, providerID)
}
