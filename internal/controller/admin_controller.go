package controller

import (
	"github.com/Blacksatth/Pagina-Web/internal/dto"
	"github.com/Blacksatth/Pagina-Web/internal/service"
	"github.com/Blacksatth/Pagina-Web/pkg/errs"
	"github.com/Blacksatth/Pagina-Web/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	service service.ProductService
}

func CreateAdminController(e *echo.Group, service service.ProductService, isLoggedIn, isAdmin echo.MiddlewareFunc) {
	c := AdminController{
		service: service,
	}

	g := e.Group("/admin", isLoggedIn, isAdmin)
	g.POST("/products", c.AddProduct)
	g.PUT("/products/:id", c.UpdateProduct)
	g.DELETE("/products/:id", c.DeleteProduct)
}

func (c *AdminController) AddProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	id, err := c.service.AddProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "Product created", dto.AddProductResponse{ID: id})
}

func (c *AdminController) UpdateProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdateProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	payload.ID = e.Param("id")
	err = c.service.UpdateProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Product updated", nil)
}

func (c *AdminController) DeleteProduct(e echo.Context) error {
	err := c.service.DeleteProduct(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Product deleted", nil)
}
