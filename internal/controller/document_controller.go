package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"voiceread-be/internal/dto"
	"voiceread-be/internal/pkg/serverutils"
	"voiceread-be/internal/service"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Status(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Page(ctx *fiber.Ctx) error
	Navigate(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	FullText(ctx *fiber.Ctx) error
	Bookmarks(ctx *fiber.Ctx) error
	AddBookmark(ctx *fiber.Ctx) error
	RemoveBookmark(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Get("status", c.Status)
	h.Post("upload", c.Upload)
	h.Get("page/:n", c.Page)
	h.Post("navigate", c.Navigate)
	h.Get("search", c.Search)
	h.Get("full-text", c.FullText)
	h.Get("bookmarks", c.Bookmarks)
	h.Post("bookmarks", c.AddBookmark)
	h.Delete("bookmarks/:page", c.RemoveBookmark)
}

// serviceError maps the service sentinel errors onto HTTP status codes;
// anything unrecognized falls through to the 500 in the error middleware.
func serviceError(err error) error {
	switch {
	case errors.Is(err, service.ErrNoDocument),
		errors.Is(err, service.ErrPageOutOfRange),
		errors.Is(err, service.ErrUnsupportedType):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrBookmarkNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAINotReady):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	return err
}

func (c *documentController) Status(ctx *fiber.Ctx) error {
	res := c.documentService.Status(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get status", res))
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file field")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	res, err := c.documentService.Upload(ctx.Context(), fileHeader.Filename, src)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success load document", res))
}

func (c *documentController) Page(ctx *fiber.Ctx) error {
	n, err := strconv.Atoi(ctx.Params("n"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "page must be a number")
	}

	res, err := c.documentService.Page(ctx.Context(), n)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get page", res))
}

func (c *documentController) Navigate(ctx *fiber.Ctx) error {
	var req dto.NavigateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Navigate(ctx.Context(), &req)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success navigate", res))
}

func (c *documentController) Search(ctx *fiber.Ctx) error {
	q := ctx.Query("q", "")

	res, err := c.documentService.Search(ctx.Context(), q)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search document", res))
}

func (c *documentController) FullText(ctx *fiber.Ctx) error {
	res, err := c.documentService.FullText(ctx.Context())
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get full text", res))
}

func (c *documentController) Bookmarks(ctx *fiber.Ctx) error {
	res, err := c.documentService.Bookmarks(ctx.Context())
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get bookmarks", res))
}

func (c *documentController) AddBookmark(ctx *fiber.Ctx) error {
	var req dto.BookmarkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.AddBookmark(ctx.Context(), &req)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add bookmark", res))
}

func (c *documentController) RemoveBookmark(ctx *fiber.Ctx) error {
	page, err := strconv.Atoi(ctx.Params("page"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "page must be a number")
	}

	res, err := c.documentService.RemoveBookmark(ctx.Context(), page)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success remove bookmark", res))
}
