package handlers

import (
	"bytes"

	"productapi/internal/apperrors"
	"productapi/internal/models"
	"productapi/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes under router, all behind guard.
// The literal search and stats routes must be registered before "/:id".
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	router.Get("/product", guard, h.HandleGetAllProducts)

	productRoutes := router.Group("/products", guard)
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/search", h.HandleSearchProducts)
	productRoutes.Get("/stats", h.HandleProductStats)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetAllProducts returns every product without filtering or paging.
func (h *ProductHandler) HandleGetAllProducts(c *fiber.Ctx) error {
	products, err := h.service.AllProducts()
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleListProducts returns one page of products, optionally filtered by category.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	page, err := h.service.ListProducts(models.ListQuery{
		Category: c.Query("category"),
		Page:     c.QueryInt("page", services.DefaultPage),
		Limit:    c.QueryInt("limit", services.DefaultLimit),
	})
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// HandleSearchProducts returns the products whose name contains the "name" query.
func (h *ProductHandler) HandleSearchProducts(c *fiber.Ctx) error {
	products, err := h.service.SearchProducts(c.Query("name"))
	if err != nil {
		return respondInvalid(c, err)
	}
	return c.JSON(products)
}

// HandleProductStats returns product counts per category.
func (h *ProductHandler) HandleProductStats(c *fiber.Ctx) error {
	stats, err := h.service.ProductStats()
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	payload, err := decodePayload(c)
	if err != nil {
		return err
	}

	product, err := h.service.CreateProduct(payload)
	if err != nil {
		return respondInvalid(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product Added Successfully",
		"product": product,
	})
}

// HandleUpdateProduct replaces the fields of an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	payload, err := decodePayload(c)
	if err != nil {
		return err
	}

	product, err := h.service.UpdateProduct(c.Params("id"), payload)
	if err != nil {
		return respondInvalid(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": product,
	})
}

// HandleDeleteProduct deletes a product by its ID and returns it.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	product, err := h.service.DeleteProduct(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Product Deleted successfully",
		"product": product,
	})
}

// respondInvalid answers payload and query validation failures with a bare
// {"message": ...} body. Anything else goes to the app error handler.
func respondInvalid(c *fiber.Ctx, err error) error {
	if verr, ok := apperrors.AsValidation(err); ok {
		return c.Status(verr.StatusCode()).JSON(fiber.Map{
			"message": verr.Message,
		})
	}
	return err
}

// decodePayload reads a JSON object body. Bodies that are empty or not sent as
// JSON decode to an empty payload, which then fails validation on "name".
func decodePayload(c *fiber.Ctx) (map[string]interface{}, error) {
	payload := map[string]interface{}{}
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 || !c.Is("json") {
		return payload, nil
	}
	if err := c.App().Config().JSONDecoder(body, &payload); err != nil {
		return nil, apperrors.NewValidationError("Invalid JSON payload")
	}
	return payload, nil
}
