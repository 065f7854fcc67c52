package handlers

import (
	"net/http"

	"restaurant_pos/internal/models"
	"restaurant_pos/internal/services"

	"github.com/gin-gonic/gin"
)

// POSHandler carries the table-check and shift endpoints used by the
// floor terminals.
type POSHandler struct {
	tableService services.TableService
	orderService services.OrderService
	shiftService services.ShiftService
}

func NewPOSHandler(
	tableService services.TableService,
	orderService services.OrderService,
	shiftService services.ShiftService,
) *POSHandler {
	return &POSHandler{
		tableService: tableService,
		orderService: orderService,
		shiftService: shiftService,
	}
}

type openCheckRequest struct {
	Items      []models.CartItem         `json:"items"`
	ShiftID    *uint                     `json:"shift_id"`
	CustomerID *uint                     `json:"customer_id"`
	Customer   *services.CustomerContact `json:"customer"`
	Notes      string                    `json:"notes"`
}

func (h *POSHandler) OpenCheck(c *gin.Context) {
	tableID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req openCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, table, err := h.tableService.OpenCheck(tableID, services.CreateOrderParams{
		Items:      req.Items,
		ShiftID:    req.ShiftID,
		CustomerID: req.CustomerID,
		Customer:   req.Customer,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order, "table": table})
}

type addItemsRequest struct {
	Items []models.CartItem `json:"items"`
}

func (h *POSHandler) AddItems(c *gin.Context) {
	tableID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req addItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.tableService.AddItems(tableID, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

type splitCheckRequest struct {
	ItemIDs []uint `json:"item_ids"`
}

func (h *POSHandler) SplitCheck(c *gin.Context) {
	tableID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req splitCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	original, split, err := h.tableService.SplitCheck(tableID, req.ItemIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"original_order": original, "split_order": split})
}

type billOutRequest struct {
	OrderID        *uint                  `json:"order_id"`
	PaymentMethod  string                 `json:"payment_method"`
	PaymentRef     string                 `json:"payment_ref"`
	Payments       []services.PaymentLine `json:"payments"`
	AmountReceived float64                `json:"amount_received"`
	Discount       float64                `json:"discount"`
	CustomerID     *uint                  `json:"customer_id"`
}

// BillOut accepts either a single payment_method or a payments list and
// canonicalizes to settlement lines before the engine sees them.
func (h *POSHandler) BillOut(c *gin.Context) {
	tableID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req billOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	payments := req.Payments
	if len(payments) == 0 && req.PaymentMethod != "" {
		payments = []services.PaymentLine{{
			Method:    req.PaymentMethod,
			Amount:    req.AmountReceived,
			Reference: req.PaymentRef,
		}}
	}

	result, err := h.tableService.BillOut(tableID, services.BillOutParams{
		OrderID:        req.OrderID,
		Payments:       payments,
		AmountReceived: req.AmountReceived,
		Discount:       req.Discount,
		CustomerID:     req.CustomerID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type tableStatusRequest struct {
	Status string `json:"status"`
}

func (h *POSHandler) UpdateTableStatus(c *gin.Context) {
	tableID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req tableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	table, err := h.tableService.UpdateStatus(tableID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"table": table})
}

type adjustItemRequest struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

func (h *POSHandler) AdjustItem(c *gin.Context) {
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "item_id")
	if !ok {
		return
	}

	var req adjustItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.orderService.AdjustItem(orderID, itemID, req.Type, req.Reason, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

type startShiftRequest struct {
	OpeningCash float64 `json:"opening_cash"`
}

func (h *POSHandler) StartShift(c *gin.Context) {
	var req startShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	shift, err := h.shiftService.StartShift(actorID(c), req.OpeningCash)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"shift": shift})
}

type endShiftRequest struct {
	ClosingCash float64 `json:"closing_cash"`
}

func (h *POSHandler) EndShift(c *gin.Context) {
	var req endShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	shift, err := h.shiftService.EndShift(actorID(c), req.ClosingCash)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shift": shift})
}

func (h *POSHandler) ShiftReport(c *gin.Context) {
	shiftID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	report, err := h.shiftService.GetReport(shiftID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
