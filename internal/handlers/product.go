package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/alexmontanha/MeuProjetoAPI/internal/es"
	"github.com/alexmontanha/MeuProjetoAPI/internal/logging"
	"github.com/alexmontanha/MeuProjetoAPI/internal/models"
	"github.com/alexmontanha/MeuProjetoAPI/internal/mykafka"
	"github.com/alexmontanha/MeuProjetoAPI/internal/repo"
)

type ProductHandler struct {
	Repo     repo.ProductRepository
	Producer mykafka.Publisher
	Indexer  es.Indexer
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// publish and index run after the store already committed, so failures are
// logged and the response stays successful.
func (h *ProductHandler) publish(c echo.Context, event mykafka.ProductEvent) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "type", event.Type, "product_id", event.ProductID, "error", err)
	}
}

func (h *ProductHandler) index(c echo.Context, product *models.Product) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Indexer.IndexProduct(ctx, product); err != nil {
		logging.FromContext(c.Request().Context()).Error("index error", "product_id", product.ID, "error", err)
	}
}

func (h *ProductHandler) unindex(c echo.Context, id uint) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Indexer.RemoveProduct(ctx, id); err != nil {
		logging.FromContext(c.Request().Context()).Error("unindex error", "product_id", id, "error", err)
	}
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	products, err := h.Repo.List(ctx)
	if err != nil {
		l.Error("get_products_error", "status", 500, "reason", "cannot list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	product, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product := models.Product{
		Name:  req.Name,
		Price: req.Price,
	}
	if err := h.Repo.Create(ctx, &product); err != nil {
		l.Error("product_create_error", "status", 500, "reason", "cannot add product to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product to db")
	}

	h.publish(c, mykafka.NewProductEvent(mykafka.EventProductCreated, product.ID, product.Name))
	h.index(c, &product)

	l.Info("create_product_success", "product_id", product.ID)
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/produto/%d", product.ID))
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) ReplaceProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.replace_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("product_replace_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req struct {
		ID    uint    `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("product_replace_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ID != id {
		l.Warn("product_replace_error", "status", 400, "reason", "body id does not match path id", "body_id", req.ID, "path_id", id)
		return echo.NewHTTPError(http.StatusBadRequest, "body id does not match path id")
	}

	product, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("product_replace_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("product_replace_error", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	product.Name = req.Name
	product.Price = req.Price

	if err := h.Repo.Update(ctx, product); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			l.Warn("product_replace_error", "status", 404, "reason", "product deleted during update")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		case errors.Is(err, repo.ErrConflict):
			l.Warn("product_replace_error", "status", 409, "reason", "product modified concurrently")
			return echo.NewHTTPError(http.StatusConflict, "product was modified concurrently, fetch it again and retry")
		default:
			l.Error("product_replace_error", "status", 500, "reason", "cannot update product", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
		}
	}

	h.publish(c, mykafka.NewProductEvent(mykafka.EventProductUpdated, product.ID, product.Name))
	h.index(c, product)

	l.Info("replace_product_success", "product_id", product.ID)
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("product_delete_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("product_delete_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("product_delete_error", "status", 500, "reason", "cannot delete product from db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product from db")
	}

	h.publish(c, mykafka.NewProductEvent(mykafka.EventProductDeleted, id, ""))
	h.unindex(c, id)

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
