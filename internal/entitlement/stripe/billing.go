// Package stripe adapts the Stripe API to the entitlement.Billing contract.
// The API key is set process-wide in main via stripe.Key.
package stripe

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	portalsession "github.com/stripe/stripe-go/v76/billingportal/session"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/subscription"

	id "vorsorge/pkg/domain"
	"vorsorge/pkg/platform/sentinel"
)

// Billing resolves subscription state from Stripe. Customers are linked to
// accounts through the user_id metadata key set at checkout.
type Billing struct{}

func NewBilling() *Billing {
	return &Billing{}
}

// GetCustomerID finds the Stripe customer for the user via metadata search.
// Returns sentinel.ErrNotFound when no customer carries the user's ID.
func (b *Billing) GetCustomerID(ctx context.Context, userID id.UserID) (string, error) {
	params := &stripe.CustomerSearchParams{
		SearchParams: stripe.SearchParams{
			Query: fmt.Sprintf("metadata['user_id']:'%s'", userID.String()),
		},
	}
	params.Context = ctx

	iter := customer.Search(params)
	for iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("search stripe customer: %w", err)
	}
	return "", sentinel.ErrNotFound
}

// IsSubscribed reports whether the customer has a subscription that grants
// paid access. Trialing counts as paid; everything else does not.
func (b *Billing) IsSubscribed(ctx context.Context, customerID string) (bool, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx

	iter := subscription.List(params)
	for iter.Next() {
		switch iter.Subscription().Status {
		case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
			return true, nil
		}
	}
	if err := iter.Err(); err != nil {
		return false, fmt.Errorf("list stripe subscriptions: %w", err)
	}
	return false, nil
}

// CreateBillingPortalSession creates a portal session the client redirects
// the user to.
func (b *Billing) CreateBillingPortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	sess, err := portalsession.New(params)
	if err != nil {
		return "", fmt.Errorf("create billing portal session: %w", err)
	}
	return sess.URL, nil
}
