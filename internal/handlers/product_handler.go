package handlers

import (
	"errors"

	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const (
	msgProductNotFound = "Product not found."
	msgInternalError   = "Internal server error."
	msgInvalidBody     = "Invalid request body."
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts lists all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return h.respondError(c, err, "Error fetching products")
	}
	return c.Status(fiber.StatusOK).JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err, "Error fetching product")
	}
	return c.Status(fiber.StatusOK).JSON(product)
}

// HandleCreateProduct creates a new product. The response has no body.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	payload, ok := h.parsePayload(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(msgInvalidBody))
	}

	if _, err := h.service.CreateProduct(c.UserContext(), payload); err != nil {
		return h.respondError(c, err, "Error adding product")
	}
	return c.SendStatus(fiber.StatusCreated)
}

// HandleUpdateProduct applies a partial update to an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	payload, ok := h.parsePayload(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(msgInvalidBody))
	}

	product, err := h.service.UpdateProduct(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return h.respondError(c, err, "Error updating product")
	}
	return c.Status(fiber.StatusOK).JSON(product)
}

// HandleDeleteProduct deletes a product and returns what was removed.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	product, err := h.service.DeleteProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err, "Error deleting product")
	}
	return c.Status(fiber.StatusOK).JSON(product)
}

// parsePayload decodes the request body. An empty body is an empty payload.
func (h *ProductHandler) parsePayload(c *fiber.Ctx) (services.ProductPayload, bool) {
	var payload services.ProductPayload
	if len(c.Body()) == 0 {
		return payload, true
	}
	if err := c.BodyParser(&payload); err != nil {
		h.logger.Debug().Err(err).Str("path", c.Path()).Msg("invalid request body")
		return payload, false
	}
	return payload, true
}

func (h *ProductHandler) respondError(c *fiber.Ctx, err error, logMsg string) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(validationErr.Message))
	case errors.Is(err, repositories.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(errorBody(msgProductNotFound))
	default:
		h.logger.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg(logMsg)
		return c.Status(fiber.StatusInternalServerError).JSON(errorBody(msgInternalError))
	}
}

func errorBody(message string) fiber.Map {
	return fiber.Map{"error": message}
}
