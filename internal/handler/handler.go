// Package handler implements the HTTP surface: POST /trade, POST /cancel,
// GET /status, plus the ambient GET /healthz used by deploy tooling.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TanishqM1/ladderbook/internal/domain"
	"github.com/TanishqM1/ladderbook/internal/middleware"
	"github.com/TanishqM1/ladderbook/internal/registry"
)

// Handler holds the HTTP handler dependencies.
type Handler struct {
	books *registry.Registry
}

// NewHandler creates a new Handler.
func NewHandler(books *registry.Registry) *Handler {
	return &Handler{books: books}
}

// RegisterRoutes sets up the Gin routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Health)
	r.POST("/trade", h.Trade)
	r.POST("/cancel", h.Cancel)
	r.GET("/status", h.Status)
}

// Health returns a health check response.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Trade handles POST /trade. Parameters are form-encoded: book, orderid,
// tradetype, side, price, quantity. The book is implicitly created on
// first reference to its name.
func (h *Handler) Trade(c *gin.Context) {
	book := c.PostForm("book")
	sOrderID := c.PostForm("orderid")
	sType := c.PostForm("tradetype")
	sSide := c.PostForm("side")
	sPrice := c.PostForm("price")
	sQuantity := c.PostForm("quantity")

	if book == "" || sOrderID == "" || sType == "" || sSide == "" || sPrice == "" || sQuantity == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	tif, ok := parseTimeInForce(sType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unrecognized tradetype"})
		return
	}
	side, ok := parseSide(sSide)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unrecognized side"})
		return
	}

	orderID, err := strconv.ParseUint(sOrderID, 10, 64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Engine error during processing: " + err.Error()})
		return
	}
	price, err := strconv.ParseInt(sPrice, 10, 32)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Engine error during processing: " + err.Error()})
		return
	}
	quantity, err := strconv.ParseUint(sQuantity, 10, 32)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Engine error during processing: " + err.Error()})
		return
	}

	b := h.books.Get(book)
	order := domain.NewOrder(orderID, side, tif, int32(price), uint32(quantity))
	trades := b.AddOrder(order)

	middleware.OrdersTotal.WithLabelValues(book, side.String()).Inc()
	if len(trades) > 0 {
		middleware.TradesTotal.WithLabelValues(book).Add(float64(len(trades)))
	}
	middleware.RestingOrders.WithLabelValues(book).Set(float64(b.Size()))

	c.JSON(http.StatusOK, gin.H{"message": "Order placed successfully"})
}

// Cancel handles POST /cancel. Parameters: book, orderid.
func (h *Handler) Cancel(c *gin.Context) {
	book := c.PostForm("book")
	sOrderID := c.PostForm("orderid")

	if book == "" || sOrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	orderID, err := strconv.ParseUint(sOrderID, 10, 64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Engine error during processing: " + err.Error()})
		return
	}

	b := h.books.Get(book)
	if b.CancelOrder(orderID) {
		middleware.CancelsTotal.WithLabelValues(book, "cancelled").Inc()
		middleware.RestingOrders.WithLabelValues(book).Set(float64(b.Size()))
		c.JSON(http.StatusOK, gin.H{"message": "Order Info Received"})
		return
	}
	middleware.CancelsTotal.WithLabelValues(book, "not_found").Inc()
	c.JSON(http.StatusNotFound, gin.H{"message": "Order ID not found"})
}

// levelView is one aggregated price level in the /status response.
type levelView struct {
	Type     string `json:"type"`
	Price    int32  `json:"price"`
	Quantity uint32 `json:"quantity"`
}

// bookView is one book's entry in the /status response.
type bookView struct {
	Bids []levelView `json:"bids"`
	Asks []levelView `json:"asks"`
	Size int         `json:"size"`
}

// Status handles GET /status: a snapshot of every book ever referenced.
func (h *Handler) Status(c *gin.Context) {
	names := h.books.Names()
	result := make(gin.H, len(names))
	for _, name := range names {
		book := h.books.Get(name)
		bids, asks := book.LevelSnapshot()

		view := bookView{
			Bids: make([]levelView, len(bids)),
			Asks: make([]levelView, len(asks)),
			Size: book.Size(),
		}
		for i, lv := range bids {
			view.Bids[i] = levelView{Type: "Bid", Price: lv.Price, Quantity: lv.Quantity}
		}
		for i, lv := range asks {
			view.Asks[i] = levelView{Type: "Ask", Price: lv.Price, Quantity: lv.Quantity}
		}
		result[name] = view
	}
	c.JSON(http.StatusOK, result)
}

// parseTimeInForce recognizes exactly "GTC" and "FAK", rejecting anything
// else at the boundary rather than silently defaulting to FillAndKill the
// way the source engine's parser does.
func parseTimeInForce(s string) (domain.TimeInForce, bool) {
	switch s {
	case "GTC":
		return domain.GoodTillCancel, true
	case "FAK":
		return domain.FillAndKill, true
	default:
		return 0, false
	}
}

// parseSide recognizes exactly "BUY" and "SELL", rejecting anything else
// at the boundary rather than silently defaulting to Sell.
func parseSide(s string) (domain.Side, bool) {
	switch s {
	case "BUY":
		return domain.Buy, true
	case "SELL":
		return domain.Sell, true
	default:
		return 0, false
	}
}
