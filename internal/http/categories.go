package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"garderob/internal/domain"
)

type categoryReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param input body categoryReq true "Category"
// @Success 201 {object} domain.Category
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /categories [post]
func (s *Server) createCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cat, err := s.categories.Create(c, domain.Category{Name: req.Name, Description: req.Description})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// @Summary List categories
// @Tags categories
// @Produce json
// @Param include_inactive query bool false "Include soft-deleted categories"
// @Success 200 {array} domain.Category
// @Router /categories [get]
func (s *Server) listCategories(c *gin.Context) {
	activeOnly := c.Query("include_inactive") != "true"
	list, err := s.categories.List(c, activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get category by id
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} domain.Category
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [get]
func (s *Server) getCategory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	cat, err := s.categories.GetByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param input body categoryReq true "Update"
// @Success 200 {object} domain.Category
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /categories/{id} [put]
func (s *Server) updateCategory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cat, err := s.categories.Update(c, domain.Category{ID: id, Name: req.Name, Description: req.Description})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// @Summary Delete category (soft)
// @Description Fails while any active clothing set still references the category
// @Tags categories
// @Param id path int true "Category ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /categories/{id} [delete]
func (s *Server) deleteCategory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := s.categories.Delete(c, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
