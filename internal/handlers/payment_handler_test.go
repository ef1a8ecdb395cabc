package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPaymentHandlerRejectsBadInput(t *testing.T) {
	h := &PaymentHandler{}

	tests := []struct {
		name    string
		method  string
		target  string
		body    string
		handler http.HandlerFunc
	}{
		{"get with bad id", http.MethodGet, "/payments/abc?:id=abc", "", h.GetPaymentByID},
		{"update with bad id", http.MethodPut, "/payments/abc?:id=abc", "{}", h.UpdatePayment},
		{"delete with bad id", http.MethodDelete, "/payments/abc?:id=abc", "", h.DeletePayment},
		{"register with bad id", http.MethodPost, "/payments/abc/register?:id=abc", "{}", h.RegisterPayment},
		{"create with invalid body", http.MethodPost, "/payments", "{not json", h.CreatePayment},
		{"statement with bad member id", http.MethodGet, "/payments/member/x/statement?:memberId=x", "", h.MemberStatement},
		{"list with bad memberId filter", http.MethodGet, "/payments?memberId=abc", "", h.ListPayments},
		{"list with bad startDate", http.MethodGet, "/payments?startDate=not-a-date", "", h.ListPayments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			tt.handler(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}
