package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/subscription"
	"github.com/workhive-hq/workhive-backend-go/internal/handler/http/response"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/payment"
)

type SubscriptionHandler interface {
	GetPlans(w http.ResponseWriter, r *http.Request)
	GetMySubscription(w http.ResponseWriter, r *http.Request)
	HandleWebhook(w http.ResponseWriter, r *http.Request)
}

type subscriptionHandlerImpl struct {
	subscriptionService subscription.SubscriptionService
	webhookVerifier     *payment.WebhookVerifier
}

func NewSubscriptionHandler(
	subscriptionService subscription.SubscriptionService,
	webhookVerifier *payment.WebhookVerifier,
) SubscriptionHandler {
	return &subscriptionHandlerImpl{
		subscriptionService: subscriptionService,
		webhookVerifier:     webhookVerifier,
	}
}

func (h *subscriptionHandlerImpl) GetPlans(w http.ResponseWriter, r *http.Request) {
	result, err := h.subscriptionService.GetPlans(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *subscriptionHandlerImpl) GetMySubscription(w http.ResponseWriter, r *http.Request) {
	result, err := h.subscriptionService.GetMySubscription(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// HandleWebhook processes payment-processor invoice callbacks. The processor
// retries non-2xx responses, so business-level anomalies (unknown invoice,
// unhandled status) are acknowledged with 200 and only transport or
// authentication failures are rejected.
func (h *subscriptionHandlerImpl) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	callbackToken := r.Header.Get("X-Callback-Token")
	if callbackToken == "" {
		response.Unauthorized(w, "missing callback token")
		return
	}
	if !h.webhookVerifier.VerifySignature(callbackToken) {
		response.Unauthorized(w, "invalid callback token")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "failed to read request body", nil)
		return
	}

	var payload payment.InvoiceWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		response.BadRequest(w, "Invalid webhook payload", nil)
		return
	}

	if err := h.subscriptionService.HandleInvoiceWebhook(r.Context(), payload); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Webhook processed", nil)
}
