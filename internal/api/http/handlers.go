package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/service"

	"github.com/gorilla/mux"
)

// TableLister backs the debug endpoint that dumps the schema table names.
type TableLister interface {
	ListTables(ctx context.Context) ([]string, error)
}

type Handler struct {
	Auth       service.AuthServiceInterface
	Catalog    service.CatalogServiceInterface
	Orders     service.OrderServiceInterface
	Deliveries service.DeliveryServiceInterface
	Revenue    service.RevenueServiceInterface
	Tables     TableLister
}

func NewHandler(auth service.AuthServiceInterface, catalog service.CatalogServiceInterface, orders service.OrderServiceInterface, deliveries service.DeliveryServiceInterface, revenue service.RevenueServiceInterface, tables TableLister) *Handler {
	return &Handler{
		Auth:       auth,
		Catalog:    catalog,
		Orders:     orders,
		Deliveries: deliveries,
		Revenue:    revenue,
		Tables:     tables,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/debug/tables", h.listTables).Methods("GET")

	r.HandleFunc("/api/auth/register", h.register).Methods("POST")
	r.HandleFunc("/api/auth/login", h.login).Methods("POST")
	r.HandleFunc("/api/users/{id}", h.getUser).Methods("GET")
	r.HandleFunc("/api/users/{id}/orders", h.getUserOrders).Methods("GET")

	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menu", h.createMenuItem).Methods("POST")

	r.HandleFunc("/api/orders", h.placeOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/deliveries/order/{orderId}", h.getOrderDelivery).Methods("GET")
	r.HandleFunc("/api/deliveries/{id}", h.getDelivery).Methods("GET")
	r.HandleFunc("/api/deliveries/{id}/status", h.updateDeliveryStatus).Methods("PATCH")

	r.HandleFunc("/api/reports/revenue", h.getRevenueReport).Methods("GET")
	r.HandleFunc("/api/reports/revenue/details", h.getRevenueDetails).Methods("GET")
	r.HandleFunc("/api/reports/revenue/export", h.exportRevenueReport).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "restaurant-ordering",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Tables.ListTables(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tables": tables})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "username, email and password are required", http.StatusBadRequest)
		return
	}
	user := domain.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
	}
	if err := h.Auth.Register(r.Context(), &user); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			http.Error(w, "Email already registered", http.StatusConflict)
			return
		}
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	user, err := h.Auth.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	user, err := h.Auth.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) getUserOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	orders, err := h.Orders.ListUserOrders(r.Context(), id)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Catalog.ListRestaurants(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	rest, err := h.Catalog.GetRestaurant(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			http.Error(w, "Restaurant not found", http.StatusNotFound)
			return
		}
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	items, err := h.Catalog.GetMenu(r.Context(), id)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	item.RestaurantID = id
	if item.Name == "" || item.Price.IsNegative() || item.Price.IsZero() {
		http.Error(w, "name and a positive price are required", http.StatusBadRequest)
		return
	}
	if err := h.Catalog.CreateMenuItem(r.Context(), &item); err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			http.Error(w, "Restaurant not found", http.StatusNotFound)
			return
		}
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.Orders.PlaceOrder(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder), errors.Is(err, service.ErrInvalidItem):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrDriverUnavailable):
			http.Error(w, "No driver available", http.StatusServiceUnavailable)
		default:
			serverError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	view, err := h.Orders.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	qr, err := h.Orders.QRCode(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		serverError(w, err)
		return
	}
	if len(qr) == 0 {
		http.Error(w, "QR code not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

func (h *Handler) getOrderDelivery(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["orderId"])
	delivery, err := h.Deliveries.GetByOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrDeliveryNotFound) {
			http.Error(w, "Delivery not found", http.StatusNotFound)
			return
		}
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, delivery)
}

func (h *Handler) getDelivery(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	delivery, err := h.Deliveries.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDeliveryNotFound) {
			http.Error(w, "Delivery not found", http.StatusNotFound)
			return
		}
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, delivery)
}

func (h *Handler) updateDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Deliveries.UpdateStatus(r.Context(), id, body.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			http.Error(w, "Invalid delivery status", http.StatusBadRequest)
		case errors.Is(err, service.ErrDeliveryNotFound):
			http.Error(w, "Delivery not found", http.StatusNotFound)
		default:
			serverError(w, err)
		}
		return
	}
	delivery, err := h.Deliveries.GetByID(r.Context(), id)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, delivery)
}

func (h *Handler) getRevenueReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Revenue.Report(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) getRevenueDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.Revenue.Details(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Handler) exportRevenueReport(w http.ResponseWriter, r *http.Request) {
	workbook, err := h.Revenue.ExportReport(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="revenue_report.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(workbook)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// serverError logs the cause and returns a generic body so internals
// never leak to clients.
func serverError(w http.ResponseWriter, err error) {
	log.Printf("[http] internal error: %v", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
