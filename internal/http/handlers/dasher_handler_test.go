// README: Handler tests for dasher assignment and unassignment authorization.
package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"campuseats/internal/infra"
	"campuseats/internal/modules/dasher"
)

// assignedOrder places an order, walks it through shop confirmation, and
// assigns the given active dasher to it. Returns the order ID.
func assignedOrder(t *testing.T, e *testEnv, customerToken, dasherToken, dasherID string) string {
	t.Helper()

	w := e.do(http.MethodPost, "/api/orders", placeBody("c1"), customerToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("place: %d (%s)", w.Code, w.Body.String())
	}
	var placed struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &placed)

	w = e.do(http.MethodPost, "/api/orders/"+placed.ID+"/status", map[string]any{"status": "active_shop_confirmed"}, customerToken)
	if w.Code != http.StatusOK {
		t.Fatalf("confirm: %d (%s)", w.Code, w.Body.String())
	}

	w = e.do(http.MethodPost, "/api/orders/"+placed.ID+"/assign", map[string]any{"dasher_id": dasherID}, dasherToken)
	if w.Code != http.StatusOK {
		t.Fatalf("assign: %d (%s)", w.Code, w.Body.String())
	}
	return placed.ID
}

func activeDasher(t *testing.T, e *testEnv, name, token string) string {
	t.Helper()
	ctx := context.Background()
	d, err := e.dashers.Register(ctx, dasher.RegisterCommand{Name: name})
	if err != nil {
		t.Fatalf("register dasher: %v", err)
	}
	if err := e.dashers.SetStatus(ctx, d.ID, dasher.StatusActive); err != nil {
		t.Fatalf("activate: %v", err)
	}
	e.verifier.tokens[token] = &infra.AuthToken{UID: string(d.ID), Role: "dasher"}
	return string(d.ID)
}

func TestUnassign_OnlyAssignedDasherOrAdmin(t *testing.T) {
	e := newTestEnv()

	d1 := activeDasher(t, e, "Jo", "tok-d1")
	activeDasher(t, e, "Mia", "tok-d2")
	orderID := assignedOrder(t, e, "tok-c1", "tok-d1", d1)

	w := e.do(http.MethodPost, "/api/orders/"+orderID+"/unassign", nil, "tok-d2")
	if w.Code != http.StatusForbidden {
		t.Errorf("other dasher unassign: expected 403, got %d", w.Code)
	}
	w = e.do(http.MethodPost, "/api/orders/"+orderID+"/unassign", nil, "tok-c1")
	if w.Code != http.StatusForbidden {
		t.Errorf("customer unassign: expected 403, got %d", w.Code)
	}

	// the rejected calls must not have touched the assignment
	w = e.do(http.MethodGet, "/api/orders/"+orderID, nil, "tok-c1")
	var o struct {
		Status   string  `json:"status"`
		DasherID *string `json:"dasher_id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &o)
	if o.DasherID == nil || *o.DasherID != d1 {
		t.Fatalf("dasher_id changed after rejected unassign: %+v", o)
	}

	w = e.do(http.MethodPost, "/api/orders/"+orderID+"/unassign", nil, "tok-d1")
	if w.Code != http.StatusOK {
		t.Fatalf("assigned dasher unassign: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	w = e.do(http.MethodGet, "/api/orders/"+orderID, nil, "tok-c1")
	var after struct {
		Status   string  `json:"status"`
		DasherID *string `json:"dasher_id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &after)
	if after.Status != "active_waiting_for_dasher" || after.DasherID != nil {
		t.Fatalf("unexpected order after unassign: %+v", after)
	}
}

func TestUnassign_AdminOverride(t *testing.T) {
	e := newTestEnv()

	d1 := activeDasher(t, e, "Jo", "tok-d1")
	orderID := assignedOrder(t, e, "tok-c1", "tok-d1", d1)

	w := e.do(http.MethodPost, "/api/orders/"+orderID+"/unassign", nil, "tok-admin")
	if w.Code != http.StatusOK {
		t.Fatalf("admin unassign: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestUnassign_UnknownOrder(t *testing.T) {
	e := newTestEnv()
	w := e.do(http.MethodPost, "/api/orders/missing/unassign", nil, "tok-d1")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
