package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))
	managerAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("manager"))
	adminAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("admin"))

	mux := pat.New()

	// Auth
	mux.Post("/auth/sign_up", adminAuthMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/auth/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/auth/refresh", standardMiddleware.ThenFunc(app.userHandler.Refresh))
	mux.Get("/auth/me", authMiddleware.ThenFunc(app.userHandler.Me))

	// Payments. Fixed paths are registered before :id so the router does
	// not swallow them as identifiers.
	mux.Get("/payments/statistics", authMiddleware.ThenFunc(app.paymentHandler.Statistics))
	mux.Get("/payments/member/:memberId/statement", authMiddleware.ThenFunc(app.paymentHandler.MemberStatement))
	mux.Post("/payments/:id/register", authMiddleware.ThenFunc(app.paymentHandler.RegisterPayment))
	mux.Post("/payments", authMiddleware.ThenFunc(app.paymentHandler.CreatePayment))
	mux.Get("/payments", authMiddleware.ThenFunc(app.paymentHandler.ListPayments))
	mux.Get("/payments/:id", authMiddleware.ThenFunc(app.paymentHandler.GetPaymentByID))
	mux.Put("/payments/:id", authMiddleware.ThenFunc(app.paymentHandler.UpdatePayment))
	mux.Del("/payments/:id", managerAuthMiddleware.ThenFunc(app.paymentHandler.DeletePayment))

	// Members
	mux.Get("/members/statistics", authMiddleware.ThenFunc(app.memberHandler.Statistics))
	mux.Post("/members", authMiddleware.ThenFunc(app.memberHandler.CreateMember))
	mux.Get("/members", authMiddleware.ThenFunc(app.memberHandler.ListMembers))
	mux.Get("/members/:id", authMiddleware.ThenFunc(app.memberHandler.GetMemberByID))
	mux.Put("/members/:id", authMiddleware.ThenFunc(app.memberHandler.UpdateMember))
	mux.Del("/members/:id", managerAuthMiddleware.ThenFunc(app.memberHandler.DeleteMember))

	// Centers
	mux.Post("/centers", managerAuthMiddleware.ThenFunc(app.centerHandler.CreateCenter))
	mux.Get("/centers", authMiddleware.ThenFunc(app.centerHandler.ListCenters))
	mux.Get("/centers/:id", authMiddleware.ThenFunc(app.centerHandler.GetCenterByID))
	mux.Put("/centers/:id", managerAuthMiddleware.ThenFunc(app.centerHandler.UpdateCenter))
	mux.Del("/centers/:id", adminAuthMiddleware.ThenFunc(app.centerHandler.DeleteCenter))

	// Reports
	mux.Post("/reports/generate", authMiddleware.ThenFunc(app.reportHandler.GenerateReport))
	mux.Get("/reports", authMiddleware.ThenFunc(app.reportHandler.ListReports))
	mux.Get("/reports/:id", authMiddleware.ThenFunc(app.reportHandler.GetReportByID))

	// Notifications
	mux.Get("/notifications/templates", authMiddleware.ThenFunc(app.notificationHandler.Templates))
	mux.Post("/notifications/send", authMiddleware.ThenFunc(app.notificationHandler.SendNotification))
	mux.Post("/notifications/send-bulk", authMiddleware.ThenFunc(app.notificationHandler.SendBulk))
	mux.Get("/notifications", authMiddleware.ThenFunc(app.notificationHandler.ListNotifications))

	return standardMiddleware.Then(mux)
}
