package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/session"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/commerce"
	"github.com/storefront/backend/internal/infrastructure/sessionstore"
)

// ReconciliationHandler listens for completed cart reconciliations and
// records a notification on the account so the user can see what moved
// over, and what got dropped, after logging in. Delivery is best-effort;
// the merge itself already happened.
type ReconciliationHandler struct {
	sessions session.Repository
	client   *commerce.Client
	logger   *zap.Logger
}

// NewReconciliationHandler creates the handler
func NewReconciliationHandler(sessions session.Repository, client *commerce.Client, logger *zap.Logger) *ReconciliationHandler {
	return &ReconciliationHandler{sessions: sessions, client: client, logger: logger}
}

// EventTypes subscribes the handler to reconciliation events only
func (h *ReconciliationHandler) EventTypes() []string {
	return []string{cart.EventTypeCartReconciled}
}

// Handle posts a summary notification for the reconciled session
func (h *ReconciliationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	reconciled, ok := event.(*cart.CartReconciledEvent)
	if !ok {
		return nil
	}
	if reconciled.CartItemsMerged == 0 && reconciled.CartItemsFailed == 0 &&
		reconciled.SavedItemsMerged == 0 && reconciled.SavedItemsFailed == 0 {
		return nil
	}

	api := h.client.WithCredentials(sessionstore.NewCredentialBridge(h.sessions, reconciled.SessionID()))
	message := summarize(reconciled)
	if err := api.CreateNotification(ctx, message); err != nil {
		h.logger.Warn("reconciliation notification not delivered",
			zap.String("session_id", reconciled.SessionID().String()),
			zap.Error(err))
		return err
	}
	return nil
}

func summarize(event *cart.CartReconciledEvent) string {
	moved := event.CartItemsMerged + event.SavedItemsMerged
	failed := event.CartItemsFailed + event.SavedItemsFailed
	if failed == 0 {
		return fmt.Sprintf("Welcome back! %d item(s) from your visit were added to your account.", moved)
	}
	return fmt.Sprintf("Welcome back! %d item(s) were added to your account; %d could not be transferred.", moved, failed)
}

// Ensure ReconciliationHandler implements EventHandler
var _ shared.EventHandler = (*ReconciliationHandler)(nil)
