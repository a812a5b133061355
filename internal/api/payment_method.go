package api

import "context"

// CreatePaymentMethodPayload is the body of a payment method creation.
type CreatePaymentMethodPayload struct {
	Name string `json:"name"`
}

// PaymentMethodService shapes payment method requests.
type PaymentMethodService struct {
	client Client
}

func NewPaymentMethodService(client Client) *PaymentMethodService {
	return &PaymentMethodService{client: client}
}

// List fetches all payment methods of the authenticated user.
func (s *PaymentMethodService) List(ctx context.Context) (*Envelope[[]*PaymentMethod], error) {
	var env Envelope[[]*PaymentMethod]
	if err := s.client.Get(ctx, "/payment-methods", nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Stats fetches per-payment-method totals for a date range.
func (s *PaymentMethodService) Stats(ctx context.Context, params StatsParams) (*Envelope[[]*PaymentMethodStats], error) {
	var env Envelope[[]*PaymentMethodStats]
	if err := s.client.Get(ctx, "/payment-methods/stats", params.Values(), &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Create records a new payment method.
func (s *PaymentMethodService) Create(ctx context.Context, payload CreatePaymentMethodPayload) (*Envelope[*PaymentMethod], error) {
	var env Envelope[*PaymentMethod]
	if err := s.client.Post(ctx, "/payment-methods", payload, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
