package handlers

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/alexmontanha/MeuProjetoAPI/internal/logging"
	"github.com/alexmontanha/MeuProjetoAPI/internal/service/search"
	"github.com/alexmontanha/MeuProjetoAPI/internal/util"
)

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func NewSearchHandler(es *elasticsearch.Client, index string) *SearchHandler {
	return &SearchHandler{
		ES:    es,
		Index: index,
	}
}

func (h *SearchHandler) Handler(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_failed", "status", 400, "reason", "missing query parameter q")
		return echo.NewHTTPError(http.StatusBadRequest, "missing query parameter q")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, products, err := search.Search(ctx, h.ES, h.Index, q, from, size)
	if err != nil {
		l.Error("search_failed", "status", 500, "reason", "search backend error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search backend error")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
