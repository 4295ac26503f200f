package controller

import (
	"errors"

	"swift-assist-be/internal/dto"
	"swift-assist-be/internal/pkg/serverutils"
	"swift-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	Route(h fiber.Router)
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) Route(h fiber.Router) {
	g := h.Group("/chat/v1")
	g.Use(serverutils.JwtMiddleware)

	g.Post("/session", c.createSession)
	g.Post("/message", c.sendMessage)
	g.Get("/session/:id/history", c.getHistory)
	g.Get("/suggestions", c.getSuggestions)
	g.Delete("/session/:id", c.endSession)
}

func currentUserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, errors.New("missing user id")
	}
	return uuid.Parse(raw)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrSessionEnded):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func (c *chatController) createSession(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user"))
	}

	req := new(dto.CreateSessionRequest)
	if err := ctx.BodyParser(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.chatService.CreateSession(ctx.Context(), userID, req)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(serverutils.ErrorResponse(statusFor(err), err.Error()))
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Chat session created", res))
}

func (c *chatController) sendMessage(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user"))
	}

	req := new(dto.SendMessageRequest)
	if err := ctx.BodyParser(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.chatService.HandleMessage(ctx.Context(), userID, req)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(serverutils.ErrorResponse(statusFor(err), err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Message processed", res))
}

func (c *chatController) getHistory(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user"))
	}

	sessionID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session id"))
	}

	limit := ctx.QueryInt("limit", 50)

	res, err := c.chatService.GetHistory(ctx.Context(), userID, sessionID, limit)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(serverutils.ErrorResponse(statusFor(err), err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat history", res))
}

func (c *chatController) getSuggestions(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user"))
	}

	limit := ctx.QueryInt("limit", 5)

	res, err := c.chatService.GetSuggestions(ctx.Context(), userID, limit)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(serverutils.ErrorResponse(statusFor(err), err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Tracking suggestions", res))
}

func (c *chatController) endSession(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user"))
	}

	sessionID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session id"))
	}

	if err := c.chatService.EndSession(ctx.Context(), userID, sessionID); err != nil {
		return ctx.Status(statusFor(err)).JSON(serverutils.ErrorResponse(statusFor(err), err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat session ended", nil))
}
