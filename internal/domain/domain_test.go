package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleTourist, RoleGuide, RoleVendor, RoleOfficial, RoleAdmin} {
		if !r.Valid() {
			t.Fatalf("expected %q to be valid", r)
		}
	}
	for _, r := range []Role{"", "superuser", "Tourist"} {
		if r.Valid() {
			t.Fatalf("expected %q to be invalid", r)
		}
	}
}

func TestOrderInput_Total(t *testing.T) {
	in := OrderInput{Products: []OrderItem{
		{ProductID: "p1", Quantity: 3, Price: decimal.RequireFromString("899.99")},
		{ProductID: "p2", Quantity: 1, Price: decimal.RequireFromString("0.03")},
	}}
	want := decimal.RequireFromString("2700.00")
	if got := in.Total(); !got.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, got)
	}
	if got := (OrderInput{}).Total(); !got.IsZero() {
		t.Fatalf("expected zero total, got %s", got)
	}
}

func TestUser_PasswordHashNotSerialized(t *testing.T) {
	raw, err := json.Marshal(User{ID: "u1", PasswordHash: "secret-hash"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := fields["password_hash"]; ok {
		t.Fatalf("password hash leaked: %s", raw)
	}
	if _, ok := fields["PasswordHash"]; ok {
		t.Fatalf("password hash leaked: %s", raw)
	}
}
