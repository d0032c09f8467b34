package v1

import (
	"github.com/gofiber/fiber/v2"
	"task-exchange-backend/controllers"
	authhandler "task-exchange-backend/lib/auth"
	apimodels "task-exchange-backend/models/api"
	authapimodels "task-exchange-backend/models/api/auth"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app *fiber.App) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Post("login", controller.login)
	})
}

// @Summary Вход
// @Tags Авторизация
// @Description Вход по почте и паролю
// @Param	body body	 authapimodels.LoginData	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.LoginView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := authhandler.Instance.Login(payload)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
