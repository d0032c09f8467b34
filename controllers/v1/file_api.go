package v1

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"task-exchange-backend/controllers"
	filestorage "task-exchange-backend/lib/file-storage"
	"task-exchange-backend/middleware"
	apimodels "task-exchange-backend/models/api"
)

type fileApiController struct {
	controllers.BaseAPIController
}

func InitFileApiRouters(app *fiber.App) {
	controller := fileApiController{}
	app.Route("task/:id/file", func(router fiber.Router) {
		router.Post("", controller.fileUpload)
		router.Get("", controller.fileList)
	})
	app.Route("file", func(router fiber.Router) {
		router.Get(":id", controller.fileDownload)
	})
}

// @Summary Загрузка вложения
// @Tags Файлы
// @Description Загрузка вложения задачи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   file formData file true "file"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/file [post]
func (c *fileApiController) fileUpload(ctx *fiber.Ctx) error {
	taskID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось получить файл из запроса"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл из запроса"))
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл из запроса"))
	}
	uploadedBy := middleware.GetUserID(ctx)
	contentType := fileHeader.Header.Get(fiber.HeaderContentType)
	id, err := filestorage.Instance.UploadTaskFile(ctx.UserContext(), taskID, uploadedBy, fileHeader.Filename, contentType, body)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список вложений
// @Tags Файлы
// @Description Список вложений задачи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/file [get]
func (c *fileApiController) fileList(ctx *fiber.Ctx) error {
	taskID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := filestorage.Instance.ListByTask(taskID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Скачивание вложения
// @Tags Файлы
// @Description Скачивание вложения по идентификатору
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/file/{id} [get]
func (c *fileApiController) fileDownload(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, body, err := filestorage.Instance.GetTaskFile(ctx.UserContext(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, rec.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%v"`, rec.FileName))
	return ctx.Status(fiber.StatusOK).Send(body)
}
