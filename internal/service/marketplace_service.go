package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"johar-connect/internal/domain"
)

var paymentMethods = map[domain.PaymentMethod]bool{
	domain.PaymentBlockchain: true,
	domain.PaymentCard:       true,
	domain.PaymentUPI:        true,
	domain.PaymentCash:       true,
}

// MarketplaceService vende artesanía local y registra pedidos por usuario.
type MarketplaceService struct {
	mu       sync.RWMutex
	products []domain.Product
	orders   []domain.Order
	now      func() time.Time
}

func NewMarketplaceService() *MarketplaceService {
	return &MarketplaceService{
		products: []domain.Product{
			{ID: "product_1", Name: "Dokra Metal Craft Elephant", Category: "handicraft", Description: "Lost-wax cast brass figure by tribal artisans", Price: decimal.RequireFromString("2499.00"), Artisan: "Tribal Artisans Collective", Materials: []string{"brass", "wax"}, Stock: 12, Rating: 4.8},
			{ID: "product_2", Name: "Sohrai Painting", Category: "art", Description: "Hand painted mural art from Hazaribagh", Price: decimal.RequireFromString("3500.00"), Artisan: "Hazaribagh Women's Cooperative", Materials: []string{"natural pigments", "canvas"}, Stock: 5, Rating: 4.9},
			{ID: "product_3", Name: "Tussar Silk Saree", Category: "textile", Description: "Handwoven tussar silk from Godda", Price: decimal.RequireFromString("6800.50"), Artisan: "Godda Weavers", Materials: []string{"tussar silk"}, Stock: 8, Rating: 4.7},
			{ID: "product_4", Name: "Bamboo Basket Set", Category: "handicraft", Description: "Set of three woven bamboo baskets", Price: decimal.RequireFromString("899.99"), Artisan: "Santhal Pargana Crafts", Materials: []string{"bamboo"}, Stock: 30, Rating: 4.4},
			{ID: "product_5", Name: "Wild Forest Honey", Category: "food", Description: "Raw honey collected in Palamu forests", Price: decimal.RequireFromString("450.00"), Artisan: "Palamu Forest Collective", Stock: 50, Rating: 4.6},
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *MarketplaceService) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...)
}

// CreateOrder valida stock, fija precios de catálogo y calcula el total.
func (s *MarketplaceService) CreateOrder(userID string, in domain.OrderInput) (domain.Order, error) {
	if len(in.Products) == 0 {
		return domain.Order{}, fmt.Errorf("%w: order has no products", ErrInvalidInput)
	}
	if strings.TrimSpace(in.DeliveryAddress) == "" {
		return domain.Order{}, fmt.Errorf("%w: delivery address is required", ErrInvalidInput)
	}
	method := in.PaymentMethod
	if method == "" {
		method = domain.PaymentBlockchain
	}
	if !paymentMethods[method] {
		return domain.Order{}, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, method)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := make(map[string]int, len(s.products))
	for i, p := range s.products {
		index[p.ID] = i
	}
	requested := make(map[string]int)
	items := make([]domain.OrderItem, 0, len(in.Products))
	for _, item := range in.Products {
		i, ok := index[item.ProductID]
		if !ok {
			return domain.Order{}, fmt.Errorf("%w: product %s", ErrNotFound, item.ProductID)
		}
		if item.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
		requested[item.ProductID] += item.Quantity
		if requested[item.ProductID] > s.products[i].Stock {
			return domain.Order{}, fmt.Errorf("%w: not enough stock for %s", ErrInvalidInput, item.ProductID)
		}
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     s.products[i].Price,
		})
	}
	for id, qty := range requested {
		s.products[index[id]].Stock -= qty
	}

	priced := domain.OrderInput{Products: items}
	order := domain.Order{
		ID:              "order_" + uuid.NewString(),
		UserID:          userID,
		Products:        items,
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		PaymentMethod:   method,
		TotalAmount:     priced.Total(),
		Status:          domain.OrderPending,
		OrderDate:       s.now(),
	}
	s.orders = append(s.orders, order)
	return order, nil
}

// Orders lista los pedidos del usuario en orden de creación.
func (s *MarketplaceService) Orders(userID string) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0)
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}
