package controller

import (
	"github.com/Blacksatth/Pagina-Web/internal/dto"
	"github.com/Blacksatth/Pagina-Web/internal/service"
	"github.com/Blacksatth/Pagina-Web/pkg/errs"
	"github.com/Blacksatth/Pagina-Web/pkg/response"
	"github.com/Blacksatth/Pagina-Web/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type UserController struct {
	service service.UserService
}

func CreateUserController(e *echo.Group, service service.UserService, isLoggedIn echo.MiddlewareFunc) {
	c := UserController{
		service: service,
	}
	e.POST("/users/register", c.Register)
	e.POST("/users/login", c.Login)
	e.GET("/users/verify-admin", c.VerifyAdmin, isLoggedIn)
	e.GET("/users/me", c.GetCurrentUser, isLoggedIn)
}

func (c *UserController) Register(e echo.Context) error {
	payload := dto.UserRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "Register").Msg("")
	}

	err = c.service.Register(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "User registered", nil)
}

func (c *UserController) Login(e echo.Context) error {
	payload := dto.UserRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "Login").Msg("")
	}

	resp, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *UserController) VerifyAdmin(e echo.Context) error {
	userID, _, _ := utils.ExtractTokenUser(e)
	if userID == 0 {
		return response.WriteErrorResponse(e, errs.ErrNotLoggedIn, nil)
	}

	isAdmin, err := c.service.VerifyAdmin(e.Request().Context(), userID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if !isAdmin {
		return response.WriteErrorResponse(e, errs.ErrNotAdmin, nil)
	}

	return response.WriteSuccessResponse(e, "", dto.VerifyAdminResponse{IsAdmin: true})
}

func (c *UserController) GetCurrentUser(e echo.Context) error {
	userID, _, _ := utils.ExtractTokenUser(e)
	if userID == 0 {
		return response.WriteErrorResponse(e, errs.ErrNotLoggedIn, nil)
	}

	resp, err := c.service.GetUser(e.Request().Context(), userID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}
