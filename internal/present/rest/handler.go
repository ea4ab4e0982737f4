package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/totegamma/portalgun"
	"github.com/totegamma/portalgun/internal/present/rest/presenter"
	"github.com/totegamma/portalgun/internal/service"
	"github.com/totegamma/portalgun/internal/usecase"
)

type Handler struct {
	character *usecase.CharacterUsecase
	stone     *usecase.StoneUsecase
	steal     *usecase.StealUsecase
	insult    *usecase.InsultUsecase
	health    *usecase.HealthUsecase
	signal    *service.SignalService
}

func NewHandler(
	character *usecase.CharacterUsecase,
	stone *usecase.StoneUsecase,
	steal *usecase.StealUsecase,
	insult *usecase.InsultUsecase,
	health *usecase.HealthUsecase,
	signal *service.SignalService,
) *Handler {
	return &Handler{
		character: character,
		stone:     stone,
		steal:     steal,
		insult:    insult,
		health:    health,
		signal:    signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.handleRoot)
	e.GET("/health", h.handleHealth)
	e.GET("/api/characters", h.handleListCharacters)
	e.POST("/api/characters", h.handleCreateCharacter)
	e.PUT("/api/characters/:id", h.handleUpdateCharacter)
	e.DELETE("/api/characters/:id", h.handleDeleteCharacter)
	e.POST("/api/characters/:id/move", h.handleMoveCharacter)
	e.GET("/api/stones", h.handleListStones)
	e.GET("/api/insults/random", h.handleRandomInsult)
	e.POST("/api/rick-prime/steal", h.handleSteal)
	e.GET("/realtime", h.handleRealtime)
}

func (h *Handler) handleRoot(c echo.Context) error {
	return presenter.OK(c, portalgun.ServiceStatus{
		Message: "Portal Gun Character Lab API",
		Status:  "ok",
	})
}

func (h *Handler) handleHealth(c echo.Context) error {
	err := h.health.Check(c.Request().Context())
	if err != nil {
		return presenter.ServiceUnavailable(c, err)
	}
	return presenter.OK(c, portalgun.ServiceStatus{Status: "healthy"})
}

func (h *Handler) handleListCharacters(c echo.Context) error {
	ctx := c.Request().Context()

	characters, err := h.character.List(ctx, c.QueryParam("dimension"))
	if err != nil {
		return presenter.Error(c, err)
	}
	if characters == nil {
		characters = []portalgun.Character{}
	}
	return presenter.OK(c, characters)
}

func (h *Handler) handleCreateCharacter(c echo.Context) error {
	ctx := c.Request().Context()

	var req portalgun.CreateCharacterRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	character, err := h.character.Create(ctx, req)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, character)
}

func (h *Handler) handleUpdateCharacter(c echo.Context) error {
	ctx := c.Request().Context()

	var req portalgun.UpdateCharacterRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	character, err := h.character.Update(ctx, c.Param("id"), req)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, character)
}

func (h *Handler) handleDeleteCharacter(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.character.Delete(ctx, c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleMoveCharacter(c echo.Context) error {
	ctx := c.Request().Context()

	var req portalgun.MoveCharacterRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	character, err := h.character.Move(ctx, c.Param("id"), req)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, character)
}

func (h *Handler) handleListStones(c echo.Context) error {
	ctx := c.Request().Context()

	stones, err := h.stone.List(ctx)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, stones)
}

func (h *Handler) handleRandomInsult(c echo.Context) error {
	return presenter.OK(c, portalgun.InsultResponse{Insult: h.insult.Random()})
}

func (h *Handler) handleSteal(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.steal.Steal(ctx)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, result)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Request struct {
	Type     string   `json:"type"`
	Prefixes []string `json:"prefixes"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	if !h.signal.Enabled() {
		return presenter.ServiceUnavailable(c, errors.New("realtime events are not configured"))
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	input := make(chan []string)
	output := make(chan portalgun.Event)

	go func() {
		h.signal.Realtime(ctx, input, output)
		cancel()
	}()

	quit := make(chan struct{})

	go func() {
		defer close(quit)
		for {
			var req Request
			err := ws.ReadJSON(&req)
			if err != nil {
				var wsErr *websocket.CloseError
				if errors.As(err, &wsErr) {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else if ctx.Err() == nil {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}

			switch req.Type {
			case "listen":
				select {
				case input <- req.Prefixes:
				case <-ctx.Done():
					return
				}
				slog.DebugContext(
					ctx, "Socket subscribe",
					slog.Any("prefixes", req.Prefixes),
					slog.String("module", "socket"),
				)
			case "h": // heartbeat
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case <-ctx.Done():
			return nil
		case event := <-output:
			err := ws.WriteJSON(event)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
