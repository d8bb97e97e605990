package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"garderob/internal/service"
)

type orderDraftReq struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	Notes         string `json:"notes"`
}

type orderItemReq struct {
	ClothingSetID int64            `json:"clothing_set_id" binding:"required"`
	Quantity      int64            `json:"quantity" binding:"required,min=1"`
	PricePerDay   *decimal.Decimal `json:"price_per_day"`
}

type createOrderReq struct {
	Order orderDraftReq  `json:"order" binding:"required"`
	Items []orderItemReq `json:"items" binding:"required,min=1,dive"`
}

// @Summary Create order
// @Description Admits the order only if every line item is available for the whole range
// @Tags orders
// @Accept json
// @Produce json
// @Param input body createOrderReq true "Order draft and line items"
// @Success 201 {object} domain.OrderWithItems
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]any
// @Router /orders [post]
func (s *Server) createOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	start, err := parseDate(req.Order.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad start_date"})
		return
	}
	end, err := parseDate(req.Order.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad end_date"})
		return
	}

	draft := service.OrderDraft{
		CustomerName:  req.Order.CustomerName,
		CustomerPhone: req.Order.CustomerPhone,
		CustomerEmail: req.Order.CustomerEmail,
		StartDate:     start,
		EndDate:       end,
		Notes:         req.Order.Notes,
	}
	items := make([]service.ItemRequest, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.ItemRequest{
			ClothingSetID: it.ClothingSetID,
			Quantity:      it.Quantity,
			PricePerDay:   it.PricePerDay,
		})
	}

	o, err := s.orders.CreateOrder(c, draft, items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// @Summary List orders
// @Tags orders
// @Produce json
// @Success 200 {array} domain.OrderWithItems
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	list, err := s.orders.ListOrders(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} domain.OrderWithItems
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	o, err := s.orders.GetOrder(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// @Summary Update order status
// @Description Only forward transitions along upcoming → shipped → active → returned, plus cancellation
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param input body updateStatusReq true "New status"
// @Success 200 {object} domain.OrderWithItems
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/status [patch]
func (s *Server) updateOrderStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	o, err := s.orders.UpdateStatus(c, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
