package v1

import (
	"github.com/gofiber/fiber/v2"
	"task-exchange-backend/controllers"
	taskhandler "task-exchange-backend/lib/task"
	"task-exchange-backend/middleware"
	apimodels "task-exchange-backend/models/api"
	taskapimodels "task-exchange-backend/models/api/task"
)

type taskApiController struct {
	controllers.BaseAPIController
}

func InitTaskApiRouters(app *fiber.App) {
	controller := taskApiController{}
	app.Route("task", func(router fiber.Router) {
		router.Post("find", controller.taskFind)
		router.Post("", controller.taskCreate)
		router.Get(":id", controller.taskGet)
		router.Put(":id/assign", controller.taskAssign)
		router.Put(":id/take", controller.taskTake)
		router.Put(":id/to-review", controller.taskToReview)
		router.Put(":id/return", controller.taskReturn)
		router.Put(":id/complete", controller.taskComplete)
	})
}

// @Summary Создание
// @Tags Задачи
// @Description Создание задачи, аукционная уходит в бэклог
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 taskapimodels.TaskData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task [post]
func (c *taskApiController) taskCreate(ctx *fiber.Ctx) error {
	var payload taskapimodels.TaskData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	creatorID := middleware.GetUserID(ctx)
	id, err := taskhandler.Instance.Create(creatorID, payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список
// @Tags Задачи
// @Description Список задач по фильтру
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 taskapimodels.TaskFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/find [post]
func (c *taskApiController) taskFind(ctx *fiber.Ctx) error {
	var payload taskapimodels.TaskFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := taskhandler.Instance.List(payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Получение по ИД
// @Tags Задачи
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id} [get]
func (c *taskApiController) taskGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := taskhandler.Instance.Get(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Назначение исполнителя
// @Tags Задачи
// @Description Назначение исполнителя задачи в бэклоге
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 taskapimodels.AssignData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/assign [put]
func (c *taskApiController) taskAssign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload taskapimodels.AssignData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actorID := middleware.GetUserID(ctx)
	err = taskhandler.Instance.Assign(actorID, id, payload.ExecutorID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Взять в работу
// @Tags Задачи
// @Description Перевод задачи из бэклога в работу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/take [put]
func (c *taskApiController) taskTake(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actorID := middleware.GetUserID(ctx)
	err = taskhandler.Instance.TakeInProgress(actorID, id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отправить на проверку
// @Tags Задачи
// @Description Перевод задачи из работы на проверку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/to-review [put]
func (c *taskApiController) taskToReview(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actorID := middleware.GetUserID(ctx)
	err = taskhandler.Instance.SendToReview(actorID, id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Вернуть на доработку
// @Tags Задачи
// @Description Возврат задачи с проверки с обязательным комментарием
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 taskapimodels.ReturnData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/return [put]
func (c *taskApiController) taskReturn(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload taskapimodels.ReturnData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actorID := middleware.GetUserID(ctx)
	err = taskhandler.Instance.ReturnToWork(actorID, id, payload.Comment)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Принять задачу
// @Tags Задачи
// @Description Завершение задачи с начислением баллов исполнителю
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/complete [put]
func (c *taskApiController) taskComplete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actorID := middleware.GetUserID(ctx)
	err = taskhandler.Instance.Complete(actorID, id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
