package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"buildcost-premium/internal/domain"
	"buildcost-premium/internal/domain/model"
	"buildcost-premium/internal/infra/logging"
	"buildcost-premium/internal/infra/metrics"
)

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "online",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// createOrderRequest carries the plan id and nothing else. Any amount or
// user id a client smuggles into the body is ignored by construction.
type createOrderRequest struct {
	PlanID string `json:"planId"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := IdentityFrom(ctx)

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.OrderCreateRequests.WithLabelValues("fail", "bad_json").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	start := time.Now()
	order, err := s.orderUC.Create(ctx, ident, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPlan):
			metrics.OrderCreateRequests.WithLabelValues("fail", "invalid_plan").Inc()
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown plan"})
		case errors.Is(err, domain.ErrUnauthenticated):
			metrics.OrderCreateRequests.WithLabelValues("fail", "unknown").Inc()
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		default:
			metrics.OrderCreateRequests.WithLabelValues("fail", "gateway_error").Inc()
			metrics.GatewayOrderDuration.WithLabelValues("fail").Observe(time.Since(start).Seconds())
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "order creation failed"})
		}
		return
	}

	metrics.OrderCreateRequests.WithLabelValues("ok", "").Inc()
	metrics.GatewayOrderDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"gatewayOrderId": order.GatewayOrderID,
		"amount":         order.AmountPaise,
		"currency":       order.Currency,
	})
}

// verifyPaymentRequest mirrors the field names the gateway's checkout widget
// posts back to the client.
type verifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := IdentityFrom(ctx)
	start := time.Now()

	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.PaymentVerifyRequests.WithLabelValues("fail", "bad_json").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "failure"})
		return
	}

	cb := model.PaymentCallback{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	}

	err := s.verifyUC.VerifyAndEntitle(ctx, ident, cb)
	elapsed := time.Since(start).Seconds()
	switch {
	case err == nil:
		metrics.PaymentVerifyRequests.WithLabelValues("ok", "").Inc()
		metrics.PaymentVerifyDuration.WithLabelValues("ok").Observe(elapsed)
		writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
	case errors.Is(err, domain.ErrInvalidArgument):
		metrics.PaymentVerifyRequests.WithLabelValues("fail", "bad_shape").Inc()
		metrics.PaymentVerifyDuration.WithLabelValues("fail").Observe(elapsed)
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "failure"})
	case errors.Is(err, domain.ErrInvalidSignature):
		metrics.PaymentVerifyRequests.WithLabelValues("fail", "invalid_signature").Inc()
		metrics.PaymentVerifyDuration.WithLabelValues("fail").Observe(elapsed)
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "failure"})
	case errors.Is(err, domain.ErrEntitlementPersistFailed):
		// Distinct from a bad signature: the user paid and we failed to
		// record it. Clients route this to retry/support, not "payment bad".
		metrics.PaymentVerifyRequests.WithLabelValues("fail", "persist_error").Inc()
		metrics.PaymentVerifyDuration.WithLabelValues("fail").Observe(elapsed)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "failure", "reason": "persist"})
	default:
		metrics.PaymentVerifyRequests.WithLabelValues("fail", "unknown").Inc()
		metrics.PaymentVerifyDuration.WithLabelValues("fail").Observe(elapsed)
		logging.With(ctx, s.log).Error().Err(err).Msg("verify-payment failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "failure"})
	}
}

func (s *Server) handleEntitlement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := IdentityFrom(ctx)

	ent, err := s.entUC.Get(ctx, ident.SubjectID)
	if err != nil {
		// Clients treat a failed fetch as "not entitled" (fail closed).
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "entitlement lookup failed"})
		return
	}

	resp := map[string]interface{}{"hasPaid": ent.HasPaid}
	if !ent.UpdatedAt.IsZero() {
		resp["updatedAt"] = ent.UpdatedAt.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}
