package handler

import (
	"net/http"
	"strconv"

	"github.com/DhanunjayTheDev/ecombazaar/internal/middleware"
	"github.com/DhanunjayTheDev/ecombazaar/internal/model"
	"github.com/DhanunjayTheDev/ecombazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductHandler serves the storefront catalog and the admin product
// CRUD.
type ProductHandler struct {
	products service.ProductService
	uploads  service.UploadService
}

func NewProductHandler(products service.ProductService, uploads service.UploadService) *ProductHandler {
	return &ProductHandler{products: products, uploads: uploads}
}

func parseInt64Query(c *gin.Context, key string, fallback int64) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func parseFloatQuery(c *gin.Context, key string) float64 {
	v, err := strconv.ParseFloat(c.Query(key), 64)
	if err != nil {
		return 0
	}
	return v
}

// List serves the public catalog with keyword search, category and
// price filters, sorting and pagination.
func (h *ProductHandler) List(c *gin.Context) {
	filters := service.ProductFilters{
		Keyword:  c.Query("keyword"),
		Category: c.Query("category"),
		MinPrice: parseFloatQuery(c, "minPrice"),
		MaxPrice: parseFloatQuery(c, "maxPrice"),
		InStock:  c.Query("inStock") == "true",
		Sort:     c.Query("sort"),
		Page:     parseInt64Query(c, "page", 1),
		Limit:    parseInt64Query(c, "limit", 12),
	}

	products, total, err := h.products.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	pages := total / filters.Limit
	if total%filters.Limit != 0 {
		pages++
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
		"page":     filters.Page,
		"pages":    pages,
		"total":    total,
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// Categories returns the active category names for the storefront
// filter dropdown.
func (h *ProductHandler) Categories(c *gin.Context) {
	names, err := h.products.CategoryNames(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": names})
}

type addReviewRequest struct {
	Rating  int    `form:"rating" binding:"required,min=1,max=5"`
	Comment string `form:"comment" binding:"required"`
}

// AddReview accepts a multipart form with rating, comment and up to
// four optional images.
func (h *ProductHandler) AddReview(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	var req addReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Rating (1-5) and comment are required"})
		return
	}

	var images []string
	if form, err := c.MultipartForm(); err == nil {
		files := form.File["reviewImages"]
		if len(files) > 4 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "A review may have at most 4 images"})
			return
		}
		for _, fh := range files {
			url, err := h.uploads.Save(fh, "review")
			if err != nil {
				respondError(c, err)
				return
			}
			images = append(images, url)
		}
	}

	review := model.Review{
		User:    user.ID,
		Name:    user.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
		Images:  images,
	}
	product, err := h.products.AddReview(c.Request.Context(), c.Param("id"), review)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}

// ListAdmin returns every product, active or not.
func (h *ProductHandler) ListAdmin(c *gin.Context) {
	page := parseInt64Query(c, "page", 1)
	limit := parseInt64Query(c, "limit", 20)

	products, total, err := h.products.ListAdmin(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products, "page": page, "total": total})
}

type createProductRequest struct {
	Name           string            `json:"name" binding:"required"`
	Category       string            `json:"category" binding:"required"`
	Price          float64           `json:"price" binding:"required,gt=0"`
	DiscountPrice  float64           `json:"discountPrice"`
	Images         []string          `json:"images"`
	Description    string            `json:"description" binding:"required"`
	KeyFeatures    []string          `json:"keyFeatures"`
	Specifications map[string]string `json:"specifications"`
	Stock          int               `json:"stock"`
	IsActive       *bool             `json:"isActive"`
	Tags           []string          `json:"tags"`
	Brand          string            `json:"brand"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, category, description and a positive price are required"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	product := &model.Product{
		Name:           req.Name,
		Category:       req.Category,
		Price:          req.Price,
		DiscountPrice:  req.DiscountPrice,
		Images:         req.Images,
		Description:    req.Description,
		KeyFeatures:    req.KeyFeatures,
		Specifications: req.Specifications,
		Stock:          req.Stock,
		IsActive:       isActive,
		Tags:           req.Tags,
		Brand:          req.Brand,
	}

	created, err := h.products.Create(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": created})
}

func (h *ProductHandler) Update(c *gin.Context) {
	var upd service.ProductUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	product, err := h.products.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}
