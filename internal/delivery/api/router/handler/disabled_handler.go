package handler

import (
	"net/http"

	"midatopay/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

// DisabledRoute describes a placeholder kept for client compatibility while the
// payment, oracle and wallet subsystems are offline.
type DisabledRoute struct {
	Method  string
	Path    string // Relative to /api
	Status  int
	Success bool // Body carries "success": false
	Data    bool // Body carries "data": null
	Local   bool // Guarded by the local-only gate
	Message string
}

const (
	msgOracleOff      = "El oráculo de precios está temporalmente deshabilitado."
	msgPaymentsQuery  = "La consulta de pagos está temporalmente deshabilitada."
	msgTxQuery        = "La consulta de transacciones está temporalmente deshabilitada."
	msgWalletQuery    = "La consulta de wallets está temporalmente deshabilitada."
	msgWalletManaging = "La gestión de wallets está temporalmente deshabilitada."
)

// DisabledRoutes lists every placeholder under /api.
var DisabledRoutes = []DisabledRoute{
	// midatopay
	{Method: http.MethodPost, Path: "/midatopay/generate-qr", Status: http.StatusOK, Success: true,
		Message: "La generación de QR está temporalmente deshabilitada. Esta funcionalidad será reemplazada con la integración de Pagos360."},
	{Method: http.MethodPost, Path: "/midatopay/scan-qr", Status: http.StatusNotImplemented, Success: true,
		Message: "El escaneo de QR está temporalmente deshabilitado. Esta funcionalidad será reemplazada con la integración de Pagos360."},
	{Method: http.MethodGet, Path: "/midatopay/payment-history", Status: http.StatusNotImplemented, Success: true, Local: true,
		Message: "El historial de pagos está temporalmente deshabilitado."},
	{Method: http.MethodGet, Path: "/midatopay/stats", Status: http.StatusNotImplemented, Success: true, Local: true,
		Message: "Las estadísticas están temporalmente deshabilitadas."},
	{Method: http.MethodGet, Path: "/midatopay/session/:sessionId", Status: http.StatusNotImplemented, Success: true,
		Message: "Las sesiones de pago están temporalmente deshabilitadas."},

	// oracle
	{Method: http.MethodGet, Path: "/oracle/quote/:amount", Status: http.StatusOK, Success: true, Data: true,
		Message: "El oráculo de precios está temporalmente deshabilitado. Esta funcionalidad será reemplazada con la integración de Manteca."},
	{Method: http.MethodGet, Path: "/oracle/rate", Status: http.StatusNotImplemented, Success: true, Message: msgOracleOff},
	{Method: http.MethodGet, Path: "/oracle/status", Status: http.StatusNotImplemented, Success: true, Message: msgOracleOff},
	{Method: http.MethodGet, Path: "/oracle/balance/:address", Status: http.StatusNotImplemented, Success: true,
		Message: "La consulta de balances está temporalmente deshabilitada."},
	{Method: http.MethodGet, Path: "/oracle/test", Status: http.StatusNotImplemented, Success: true, Message: msgOracleOff},
	{Method: http.MethodGet, Path: "/oracle/price/:currency", Status: http.StatusNotImplemented, Success: true, Message: msgOracleOff},
	{Method: http.MethodGet, Path: "/oracle/prices", Status: http.StatusNotImplemented, Success: true, Message: msgOracleOff},
	{Method: http.MethodGet, Path: "/oracle/average/:currency", Status: http.StatusNotImplemented, Success: true, Message: msgOracleOff},
	{Method: http.MethodGet, Path: "/oracle/history/:currency", Status: http.StatusNotImplemented, Success: true, Message: msgOracleOff},
	{Method: http.MethodPost, Path: "/oracle/convert", Status: http.StatusNotImplemented, Success: true,
		Message: "La conversión de monedas está temporalmente deshabilitada."},

	// payments
	{Method: http.MethodPost, Path: "/payments/create", Status: http.StatusNotImplemented, Local: true,
		Message: "La creación de pagos está temporalmente deshabilitada. Esta funcionalidad será reemplazada con la integración de Pagos360."},
	{Method: http.MethodGet, Path: "/payments/qr/:qrId", Status: http.StatusNotImplemented, Message: msgPaymentsQuery},
	{Method: http.MethodGet, Path: "/payments/my-payments", Status: http.StatusNotImplemented, Local: true, Message: msgPaymentsQuery},
	{Method: http.MethodGet, Path: "/payments/:paymentId", Status: http.StatusNotImplemented, Local: true, Message: msgPaymentsQuery},
	{Method: http.MethodPut, Path: "/payments/:paymentId/cancel", Status: http.StatusNotImplemented, Local: true,
		Message: "La cancelación de pagos está temporalmente deshabilitada."},

	// transactions
	{Method: http.MethodPost, Path: "/transactions/create", Status: http.StatusNotImplemented,
		Message: "La creación de transacciones está temporalmente deshabilitada. Esta funcionalidad será reemplazada con la integración de Pagos360 y Manteca."},
	{Method: http.MethodPost, Path: "/transactions/:transactionId/confirm", Status: http.StatusNotImplemented,
		Message: "La confirmación de transacciones está temporalmente deshabilitada."},
	{Method: http.MethodGet, Path: "/transactions/:transactionId/status", Status: http.StatusNotImplemented, Message: msgTxQuery},
	{Method: http.MethodGet, Path: "/transactions/my-transactions", Status: http.StatusNotImplemented, Local: true, Message: msgTxQuery},
	{Method: http.MethodGet, Path: "/transactions/:transactionId", Status: http.StatusNotImplemented, Success: true, Message: msgTxQuery},

	// wallet
	{Method: http.MethodPost, Path: "/wallet/save", Status: http.StatusNotImplemented, Success: true,
		Message: "La gestión de wallets está temporalmente deshabilitada. Esta funcionalidad será reemplazada con la integración de Pagos360 y Manteca."},
	{Method: http.MethodGet, Path: "/wallet/get", Status: http.StatusNotImplemented, Success: true, Message: msgWalletQuery},
	{Method: http.MethodGet, Path: "/wallet/has-wallet", Status: http.StatusNotImplemented, Success: true, Message: msgWalletQuery},
	{Method: http.MethodDelete, Path: "/wallet/clear", Status: http.StatusNotImplemented, Success: true, Message: msgWalletManaging},
	{Method: http.MethodGet, Path: "/wallet/user/:email", Status: http.StatusNotImplemented, Success: true, Message: msgWalletQuery},
	{Method: http.MethodPost, Path: "/wallet/create-user", Status: http.StatusNotImplemented, Success: true,
		Message: "La creación de usuarios con wallet está temporalmente deshabilitada."},
}

// DisabledHandler answers every placeholder route.
type DisabledHandler struct {
	routes []DisabledRoute
}

// NewDisabledHandler is the constructor for DisabledHandler
func NewDisabledHandler() *DisabledHandler {
	return &DisabledHandler{routes: DisabledRoutes}
}

// Routes returns the placeholder table.
func (h *DisabledHandler) Routes() []DisabledRoute {
	return h.routes
}

// Handle returns the handler answering route.
func (h *DisabledHandler) Handle(route DisabledRoute) echo.HandlerFunc {
	return func(c echo.Context) error {
		if route.Data {
			return response.DisabledWithData(c, route.Status, route.Message)
		}

		return response.Disabled(c, route.Status, route.Success, route.Message)
	}
}
