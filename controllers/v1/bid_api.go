package v1

import (
	"github.com/gofiber/fiber/v2"
	"task-exchange-backend/controllers"
	auctionbidhandler "task-exchange-backend/lib/auction-bid"
	"task-exchange-backend/middleware"
	apimodels "task-exchange-backend/models/api"
	taskapimodels "task-exchange-backend/models/api/task"
)

type bidApiController struct {
	controllers.BaseAPIController
}

func InitBidApiRouters(app *fiber.App) {
	controller := bidApiController{}
	app.Route("task/:id/auction", func(router fiber.Router) {
		router.Get("price", controller.auctionPrice)
		router.Get("bids", controller.bidList)
		router.Post("bid", controller.bidPlace)
	})
}

// @Summary Текущая стоимость
// @Tags Аукцион
// @Description Текущая стоимость аукциона задачи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=taskapimodels.CurrentValueView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/auction/price [get]
func (c *bidApiController) auctionPrice(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := auctionbidhandler.Instance.CurrentValue(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Ставки задачи
// @Tags Аукцион
// @Description История ставок аукциона задачи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]taskapimodels.BidView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/auction/bids [get]
func (c *bidApiController) bidList(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := auctionbidhandler.Instance.ListByTask(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Размещение ставки
// @Tags Аукцион
// @Description Размещение ставки на аукцион задачи в бэклоге
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 taskapimodels.BidData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/auction/bid [post]
func (c *bidApiController) bidPlace(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload taskapimodels.BidData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	bidderID := middleware.GetUserID(ctx)
	bidID, err := auctionbidhandler.Instance.Place(bidderID, id, payload)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(bidID))
}
