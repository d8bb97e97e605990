package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"garderob/internal/domain"
	"garderob/internal/repository"
	"garderob/internal/service"
)

type setReq struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category" binding:"required"`
	Quantity    int64           `json:"quantity" binding:"required,min=1"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
	ImageURL    string          `json:"image_url"`
}

const maxImageSize = 5 << 20 // 5MB, как у исходного multer

// saveImage сохраняет присланный файл под uuid-именем; отсутствие файла не ошибка
func (s *Server) saveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", service.ErrInvalidInput, err)
	}
	if file.Size > maxImageSize {
		return "", fmt.Errorf("%w: image is larger than 5MB", service.ErrInvalidInput)
	}
	if ct := file.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("%w: only image files are allowed", service.ErrInvalidInput)
	}
	name := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(s.uploadDir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// bindSet принимает либо JSON, либо multipart-форму с необязательным файлом image
func (s *Server) bindSet(c *gin.Context) (*domain.ClothingSet, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		quantity, err := strconv.ParseInt(c.PostForm("quantity"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad quantity", service.ErrInvalidInput)
		}
		price, err := decimal.NewFromString(c.PostForm("price_per_day"))
		if err != nil {
			return nil, fmt.Errorf("%w: bad price_per_day", service.ErrInvalidInput)
		}
		imageURL, err := s.saveImage(c)
		if err != nil {
			return nil, err
		}
		return &domain.ClothingSet{
			Name:        c.PostForm("name"),
			Description: c.PostForm("description"),
			Category:    c.PostForm("category"),
			Quantity:    quantity,
			PricePerDay: price,
			ImageURL:    imageURL,
		}, nil
	}

	var req setReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidInput, err)
	}
	return &domain.ClothingSet{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Quantity:    req.Quantity,
		PricePerDay: req.PricePerDay,
		ImageURL:    req.ImageURL,
	}, nil
}

// @Summary Create clothing set
// @Tags clothing-sets
// @Accept json
// @Accept mpfd
// @Produce json
// @Param input body setReq true "Clothing set"
// @Success 201 {object} domain.ClothingSet
// @Failure 400 {object} map[string]string
// @Router /clothing-sets [post]
func (s *Server) createSet(c *gin.Context) {
	set, err := s.bindSet(c)
	if err != nil {
		respondError(c, err)
		return
	}
	created, err := s.sets.Create(c, *set)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary List clothing sets
// @Tags clothing-sets
// @Produce json
// @Param q query string false "Name contains"
// @Param category query string false "Category name"
// @Param include_inactive query bool false "Include soft-deleted sets"
// @Success 200 {array} domain.ClothingSet
// @Router /clothing-sets [get]
func (s *Server) listSets(c *gin.Context) {
	f := repository.SetFilter{
		ActiveOnly:    c.Query("include_inactive") != "true",
		Category:      c.Query("category"),
		NameSubstring: c.Query("q"),
	}
	list, err := s.sets.List(c, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get clothing set by id
// @Tags clothing-sets
// @Produce json
// @Param id path int true "Set ID"
// @Success 200 {object} domain.ClothingSet
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /clothing-sets/{id} [get]
func (s *Server) getSet(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	set, err := s.sets.GetByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// @Summary Update clothing set
// @Tags clothing-sets
// @Accept json
// @Accept mpfd
// @Produce json
// @Param id path int true "Set ID"
// @Param input body setReq true "Update"
// @Success 200 {object} domain.ClothingSet
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /clothing-sets/{id} [put]
func (s *Server) updateSet(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	set, err := s.bindSet(c)
	if err != nil {
		respondError(c, err)
		return
	}
	set.ID = id
	updated, err := s.sets.Update(c, *set)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete clothing set (soft)
// @Tags clothing-sets
// @Param id path int true "Set ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /clothing-sets/{id} [delete]
func (s *Server) deleteSet(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := s.sets.Delete(c, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
