package controller

import (
	"strings"

	"github.com/Blacksatth/Pagina-Web/internal/dto"
	"github.com/Blacksatth/Pagina-Web/internal/middleware"
	"github.com/Blacksatth/Pagina-Web/internal/service"
	"github.com/Blacksatth/Pagina-Web/pkg/errs"
	"github.com/Blacksatth/Pagina-Web/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type CartController struct {
	service service.CartService
}

func CreateCartController(e *echo.Group, service service.CartService, cartSession echo.MiddlewareFunc) {
	c := CartController{
		service: service,
	}

	g := e.Group("/cart", cartSession)
	g.GET("", c.GetCart)
	g.DELETE("", c.ClearCart)
	g.POST("/items", c.AddItem)
	g.PUT("/items/:id/increase", c.IncreaseItem)
	g.PUT("/items/:id/decrease", c.DecreaseItem)
	g.DELETE("/items/:id", c.RemoveItem)
}

func (c *CartController) GetCart(e echo.Context) error {
	resp, err := c.service.GetCart(e.Request().Context(), middleware.CartSessionID(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *CartController) AddItem(e echo.Context) error {
	payload := dto.CartItemRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddItem").Msg("")
	}

	payload.ProductID = strings.TrimSpace(payload.ProductID)
	if payload.ProductID == "" {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.AddItem(e.Request().Context(), middleware.CartSessionID(e), payload.ProductID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *CartController) IncreaseItem(e echo.Context) error {
	resp, err := c.service.IncreaseItem(e.Request().Context(), middleware.CartSessionID(e), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *CartController) DecreaseItem(e echo.Context) error {
	resp, err := c.service.DecreaseItem(e.Request().Context(), middleware.CartSessionID(e), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *CartController) RemoveItem(e echo.Context) error {
	resp, err := c.service.RemoveItem(e.Request().Context(), middleware.CartSessionID(e), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *CartController) ClearCart(e echo.Context) error {
	resp, err := c.service.ClearCart(e.Request().Context(), middleware.CartSessionID(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}
