package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"callcenter/internal/authz"
	"callcenter/internal/models"
	"callcenter/internal/services"
)

type RetailerHandler struct {
	Service *services.RetailerService
}

func NewRetailerHandler(service *services.RetailerService) *RetailerHandler {
	return &RetailerHandler{Service: service}
}

// List godoc
// @Summary      Search retailers
// @Description  Case-insensitive match on name or retailer id. Agents see the retailers assigned to them.
// @Tags         Retailers
// @Produce      json
// @Param        q     query  string  false  "Search term"
// @Param        sort  query  string  false  "balance_desc (default), balance_asc, last_call, last_recharge"
// @Success      200  {array}  models.Retailer
// @Router       /retailers [get]
func (h *RetailerHandler) List(c *gin.Context) {
	q := models.RetailerQuery{
		Term: c.Query("q"),
		Sort: models.RetailerSort(c.Query("sort")),
	}
	if q.Sort != "" && !q.Sort.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort"})
		return
	}
	userID, roleID := getUserAndRole(c)
	if !authz.IsElevated(roleID) {
		q.AgentID = &userID
	}

	list, err := h.Service.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, "[retailer][list]", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary      Retailer profile
// @Tags         Retailers
// @Produce      json
// @Param        retailer_id  path      string  true  "Retailer id, e.g. RT001"
// @Success      200  {object}  models.Retailer
// @Failure      404  {object}  map[string]string
// @Router       /retailers/{retailer_id} [get]
func (h *RetailerHandler) Get(c *gin.Context) {
	r, err := h.Service.Get(c.Request.Context(), c.Param("retailer_id"))
	if err != nil {
		respondError(c, "[retailer][get]", err)
		return
	}
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "retailer not found"})
		return
	}
	c.JSON(http.StatusOK, r)
}

// Create godoc
// @Summary      Add a retailer to the directory
// @Tags         Retailers
// @Accept       json
// @Produce      json
// @Param        retailer  body      models.Retailer  true  "Retailer"
// @Success      201  {object}  models.Retailer
// @Failure      409  {object}  map[string]string
// @Router       /retailers [post]
func (h *RetailerHandler) Create(c *gin.Context) {
	var r models.Retailer
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.Create(c.Request.Context(), &r); err != nil {
		respondError(c, "[retailer][create]", err)
		return
	}
	log.Printf("[retailer][create][ok] retailer_id=%s", r.RetailerID)
	c.JSON(http.StatusCreated, r)
}

// LogCall godoc
// @Summary      Log a call to a retailer
// @Description  Stamps the retailer's last call date with the current time.
// @Tags         Retailers
// @Produce      json
// @Param        retailer_id  path      string  true  "Retailer id"
// @Success      200  {object}  models.Retailer
// @Failure      404  {object}  map[string]string
// @Router       /retailers/{retailer_id}/call [post]
func (h *RetailerHandler) LogCall(c *gin.Context) {
	r, err := h.Service.LogCall(c.Request.Context(), c.Param("retailer_id"))
	if err != nil {
		respondError(c, "[retailer][call]", err)
		return
	}
	c.JSON(http.StatusOK, r)
}
