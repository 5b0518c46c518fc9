package controller

import (
	"strconv"

	"github.com/Blacksatth/Pagina-Web/internal/service"
	pkgdto "github.com/Blacksatth/Pagina-Web/pkg/dto"
	"github.com/Blacksatth/Pagina-Web/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type CatalogController struct {
	service service.CatalogService
}

func CreateCatalogController(e *echo.Group, service service.CatalogService) {
	c := CatalogController{
		service: service,
	}
	e.GET("/products", c.GetCatalog)
	e.GET("/products/:id", c.GetProductDetail)
}

func (c *CatalogController) GetCatalog(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetCatalog").Msg("")
	}

	resp, err := c.service.GetCatalog(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *CatalogController) GetProductDetail(e echo.Context) error {
	id := e.Param("id")

	// out of range or malformed indexes fall back to the primary image
	imageIndex, _ := strconv.Atoi(e.QueryParam("image"))

	resp, err := c.service.GetProductDetail(e.Request().Context(), id, imageIndex)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}
