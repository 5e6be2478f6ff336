// README: Order lifecycle service: placement, status transitions, dasher assignment, no-show carryover.
package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"campuseats/internal/modules/wallet"
	"campuseats/internal/notify"
	"campuseats/internal/types"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrActiveOrder      = errors.New("customer already has an active order")
	ErrDasherBusy       = errors.New("dasher already has an active order")
	ErrConflict         = errors.New("order state conflict")
	ErrPrecondition     = errors.New("order is not waiting for a dasher")
	ErrBadRequest       = errors.New("bad request")
	ErrAlreadyCompleted = errors.New("order already completed")
)

// Wallets is the slice of the wallet ledger the lifecycle needs: crediting the
// originally-wronged dasher during no-show reconciliation.
type Wallets interface {
	Credit(ctx context.Context, owner types.ID, kind wallet.Kind, amount int64, reason string, orderID types.ID) error
}

// Notifications delivers human-readable status messages. Delivery failures are
// the dispatcher's problem; the lifecycle never fails on them.
type Notifications interface {
	OrderStatus(ctx context.Context, ev notify.Event)
}

type Service struct {
	store  Store
	wallet Wallets
	notify Notifications
}

func NewService(store Store, wallet Wallets, notify Notifications) *Service {
	return &Service{store: store, wallet: wallet, notify: notify}
}

type PlaceCommand struct {
	CustomerID    types.ID
	ShopID        types.ID
	Items         []Item
	DeliveryFee   int64
	TotalPrice    int64
	PaymentMethod PaymentMethod
}

type UpdateStatusCommand struct {
	OrderID   types.ID
	Status    Status
	ActorType string
	ActorID   *types.ID
}

type AssignCommand struct {
	OrderID  types.ID
	DasherID types.ID
}

type RemoveDasherCommand struct {
	OrderID   types.ID
	ActorType string
}

type ProofCommand struct {
	OrderID          types.ID
	DeliveryProofURI string
	NoShowProofURI   string
}

// Place creates an order in active_waiting_for_shop. If the customer has an
// unresolved no-show order, its delivery fee is carried into the new order and
// added to the total, charging the missed delivery on this one.
func (s *Service) Place(ctx context.Context, cmd PlaceCommand) (*Order, error) {
	if cmd.CustomerID == "" || cmd.ShopID == "" {
		return nil, ErrBadRequest
	}
	if cmd.PaymentMethod != PaymentCash && cmd.PaymentMethod != PaymentGCash {
		return nil, ErrBadRequest
	}
	if cmd.DeliveryFee < 0 || cmd.TotalPrice < 0 {
		return nil, ErrBadRequest
	}

	active, err := s.store.HasActiveByCustomer(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrActiveOrder
	}

	o := &Order{
		ID:            types.ID(uuid.NewString()),
		CustomerID:    cmd.CustomerID,
		ShopID:        cmd.ShopID,
		Status:        StatusWaitingForShop,
		Items:         cmd.Items,
		DeliveryFee:   cmd.DeliveryFee,
		TotalPrice:    cmd.TotalPrice,
		PaymentMethod: cmd.PaymentMethod,
		CreatedAt:     time.Now(),
	}

	noShows, err := s.store.ListByStatusAndCustomer(ctx, StatusNoShow, cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	if len(noShows) > 0 {
		// Newest first; the latest missed delivery is the one charged here.
		o.PreviousNoShowFee = noShows[0].DeliveryFee
		o.TotalPrice += o.PreviousNoShowFee
	}

	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}
	s.appendEvent(ctx, o.ID, "", StatusWaitingForShop, "customer", &cmd.CustomerID)
	s.dispatch(ctx, o, o.Status)
	return o, nil
}

// UpdateStatus stores the requested status after running it through the
// collapse table. Transition legality is intentionally not validated beyond
// the rewrite: the stored vocabulary is owned by the clients. Completion runs
// the receipt notification and no-show reconciliation before returning.
func (s *Service) UpdateStatus(ctx context.Context, cmd UpdateStatusCommand) error {
	if cmd.Status == "" {
		return ErrBadRequest
	}
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	stored := Collapse(o.Status, cmd.Status)

	ok, err := s.store.UpdateStatus(ctx, o.ID, o.Status, stored, o.StatusVersion, nil)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	s.appendEvent(ctx, o.ID, o.Status, stored, cmd.ActorType, cmd.ActorID)

	if stored == StatusCompleted {
		s.dispatch(ctx, o, StatusCompleted)
		if err := s.reconcileNoShow(ctx, o); err != nil {
			return err
		}
		return nil
	}
	s.dispatch(ctx, o, stored)
	return nil
}

// MarkCompleted is the settlement engine's completion hook: it CASes the order
// to completed, stamps the final delivery fee, and runs the same receipt and
// reconciliation steps as an explicit completed status update.
func (s *Service) MarkCompleted(ctx context.Context, orderID types.ID, deliveryFee int64) error {
	o, err := s.store.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if o.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	ok, err := s.store.Complete(ctx, o.ID, o.Status, o.StatusVersion, deliveryFee)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	s.appendEvent(ctx, o.ID, o.Status, StatusCompleted, "settlement", nil)
	s.dispatch(ctx, o, StatusCompleted)
	return s.reconcileNoShow(ctx, o)
}

// reconcileNoShow compensates the dasher who was stood up on the customer's
// most recent no-show order, paying them the fee carried into this order, then
// marks every no-show order of the customer resolved. Resolution is what makes
// a second completion a no-op: once resolved, no order matches StatusNoShow.
func (s *Service) reconcileNoShow(ctx context.Context, o *Order) error {
	if o.PreviousNoShowFee <= 0 {
		return nil
	}
	noShows, err := s.store.ListByStatusAndCustomer(ctx, StatusNoShow, o.CustomerID)
	if err != nil {
		return err
	}
	for _, ns := range noShows {
		if ns.DasherID == nil {
			continue
		}
		if err := s.wallet.Credit(ctx, *ns.DasherID, wallet.KindDasher, o.PreviousNoShowFee, "no_show_reimbursement", ns.ID); err != nil {
			return err
		}
		break
	}
	_, err = s.store.ResolveNoShows(ctx, o.CustomerID)
	return err
}

// AssignDasher attaches a dasher to a shop-approved order and moves it to
// active_toShop. Exactly one concurrent assignment can win the version CAS.
func (s *Service) AssignDasher(ctx context.Context, cmd AssignCommand) error {
	if cmd.DasherID == "" {
		return ErrBadRequest
	}
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if o.DasherID != nil && *o.DasherID != cmd.DasherID {
		return ErrConflict
	}
	if o.Status != StatusWaitingForDasher {
		return ErrPrecondition
	}
	busy, err := s.store.HasActiveByDasher(ctx, cmd.DasherID)
	if err != nil {
		return err
	}
	if busy {
		return ErrDasherBusy
	}
	ok, err := s.store.UpdateStatus(ctx, o.ID, o.Status, StatusToShop, o.StatusVersion, &cmd.DasherID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	s.appendEvent(ctx, o.ID, o.Status, StatusToShop, "dasher", &cmd.DasherID)
	assigned := *o
	assigned.DasherID = &cmd.DasherID
	s.dispatch(ctx, &assigned, StatusToShop)
	return nil
}

// RemoveDasher clears the order's dasher. Active orders go back to the
// assignment pool; terminal ones keep their status.
func (s *Service) RemoveDasher(ctx context.Context, cmd RemoveDasherCommand) error {
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	to := o.Status
	if o.Status.IsActive() {
		to = StatusWaitingForDasher
	}
	ok, err := s.store.ClearDasher(ctx, o.ID, o.Status, to, o.StatusVersion)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	s.appendEvent(ctx, o.ID, o.Status, to, cmd.ActorType, o.DasherID)
	cleared := *o
	cleared.DasherID = nil
	s.dispatch(ctx, &cleared, to)
	return nil
}

// AttachProof records proof-of-delivery or no-show proof image URIs.
func (s *Service) AttachProof(ctx context.Context, cmd ProofCommand) error {
	if cmd.DeliveryProofURI == "" && cmd.NoShowProofURI == "" {
		return ErrBadRequest
	}
	return s.store.SetProofs(ctx, cmd.OrderID, cmd.DeliveryProofURI, cmd.NoShowProofURI)
}

// Purge hard-deletes an order. Admin only; orders are otherwise never removed.
func (s *Service) Purge(ctx context.Context, id types.ID) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Order, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByStatusPrefix(ctx context.Context, prefix string) ([]*Order, error) {
	return s.store.ListByStatusPrefix(ctx, prefix)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID types.ID) ([]*Order, error) {
	return s.store.ListByCustomer(ctx, customerID)
}

func (s *Service) ListByDasher(ctx context.Context, dasherID types.ID) ([]*Order, error) {
	return s.store.ListByDasher(ctx, dasherID)
}

func (s *Service) ListByStatusAndCustomer(ctx context.Context, status Status, customerID types.ID) ([]*Order, error) {
	return s.store.ListByStatusAndCustomer(ctx, status, customerID)
}

func (s *Service) ListOngoing(ctx context.Context) ([]*Order, error) {
	return s.store.ListOngoing(ctx)
}

func (s *Service) ListPast(ctx context.Context, prefix string) ([]*Order, error) {
	return s.store.ListPast(ctx, prefix)
}

func (s *Service) appendEvent(ctx context.Context, orderID types.ID, from, to Status, actorType string, actorID *types.ID) {
	_ = s.store.AppendEvent(ctx, &StatusEvent{
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
		ActorType:  actorType,
		ActorID:    actorID,
		CreatedAt:  time.Now(),
	})
}

func (s *Service) dispatch(ctx context.Context, o *Order, status Status) {
	if s.notify == nil {
		return
	}
	ev := notify.Event{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		ShopID:     o.ShopID,
		Status:     string(status),
	}
	if o.DasherID != nil {
		ev.DasherID = *o.DasherID
	}
	s.notify.OrderStatus(ctx, ev)
}
