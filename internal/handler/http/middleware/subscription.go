package middleware

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/subscription"
	"github.com/workhive-hq/workhive-backend-go/internal/handler/http/response"
)

// SubscriptionMiddleware provides middleware functions for subscription checks
type SubscriptionMiddleware struct {
	subscriptionRepo subscription.SubscriptionRepository
}

// NewSubscriptionMiddleware creates a new subscription middleware
func NewSubscriptionMiddleware(subscriptionRepo subscription.SubscriptionRepository) *SubscriptionMiddleware {
	return &SubscriptionMiddleware{
		subscriptionRepo: subscriptionRepo,
	}
}

// RequireActiveSubscription checks the company's subscription against the
// database before letting quota-consuming endpoints through.
func (m *SubscriptionMiddleware) RequireActiveSubscription(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.Unauthorized(w, "unauthorized")
			return
		}

		claims, err := token.AsMap(r.Context())
		if err != nil {
			response.Unauthorized(w, "invalid token claims")
			return
		}

		companyID, ok := claims["company_id"].(string)
		if !ok || companyID == "" {
			response.Forbidden(w, "no company associated with this user")
			return
		}

		sub, err := m.subscriptionRepo.GetByCompanyID(r.Context(), companyID)
		if err != nil {
			if errors.Is(err, subscription.ErrSubscriptionNotFound) {
				response.HandleError(w, subscription.ErrSubscriptionInactive)
				return
			}
			response.HandleError(w, err)
			return
		}

		if !sub.IsActive() || sub.IsExpired() {
			response.HandleError(w, subscription.ErrSubscriptionInactive)
			return
		}

		next.ServeHTTP(w, r)
	})
}
