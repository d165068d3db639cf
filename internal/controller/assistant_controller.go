package controller

import (
	"bufio"
	"context"

	"github.com/gofiber/fiber/v2"

	"voiceread-be/internal/dto"
	"voiceread-be/internal/pkg/serverutils"
	"voiceread-be/internal/service"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Command(ctx *fiber.Ctx) error
	Summarize(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("command", c.Command)
	h.Post("summarize", c.Summarize)
	h.Post("ask", c.Ask)
}

func (c *assistantController) Command(ctx *fiber.Ctx) error {
	var req dto.CommandRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.assistantService.Command(ctx.Context(), &req)
	return ctx.JSON(serverutils.SuccessResponse("Success interpret command", res))
}

func (c *assistantController) Summarize(ctx *fiber.Ctx) error {
	var req dto.SummarizeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// The stream outlives this handler, so it gets its own context instead of
	// the request's.
	streamCtx, cancel := context.WithCancel(context.Background())
	stream, err := c.assistantService.Summarize(streamCtx, &req)
	if err != nil {
		cancel()
		return serviceError(err)
	}

	c.relay(ctx, stream, cancel)
	return nil
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	streamCtx, cancel := context.WithCancel(context.Background())
	stream, err := c.assistantService.Ask(streamCtx, &req)
	if err != nil {
		cancel()
		return serviceError(err)
	}

	c.relay(ctx, stream, cancel)
	return nil
}

// relay streams tokens to the client as they arrive. The client disconnecting
// surfaces as a write error, which cancels the upstream generation.
func (c *assistantController) relay(ctx *fiber.Ctx, stream <-chan string, cancel context.CancelFunc) {
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set("X-Accel-Buffering", "no")

	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for token := range stream {
			if _, err := w.WriteString(token); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	})
}
