package handler

import (
	"github.com/deppfellow/workout-api/internal/model/atleta"
	"github.com/deppfellow/workout-api/internal/pagination"
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/deppfellow/workout-api/internal/service"
	"github.com/labstack/echo/v4"
)

// AtletaHandler exposes the /atletas resource.
type AtletaHandler struct {
	Handler
	atletaService *service.AtletaService
}

func NewAtletaHandler(s *server.Server, atletaService *service.AtletaService) *AtletaHandler {
	return &AtletaHandler{
		Handler:       NewHandler(s),
		atletaService: atletaService,
	}
}

func (h *AtletaHandler) CreateAtleta(c echo.Context, req *atleta.CreateAtletaRequest) (atleta.Response, error) {
	a, err := h.atletaService.Create(c.Request().Context(), req)
	if err != nil {
		return atleta.Response{}, err
	}
	return atleta.NewResponse(a), nil
}

func (h *AtletaHandler) ListAtletas(c echo.Context, req *atleta.ListAtletasRequest) (pagination.Page[atleta.Response], error) {
	page, err := h.atletaService.List(c.Request().Context(), req)
	if err != nil {
		return pagination.Page[atleta.Response]{}, err
	}
	return pagination.Map(page, func(a atleta.Atleta) atleta.Response {
		return atleta.NewResponse(&a)
	}), nil
}

func (h *AtletaHandler) GetAtleta(c echo.Context, req *atleta.GetAtletaRequest) (atleta.Response, error) {
	a, err := h.atletaService.GetByID(c.Request().Context(), req.ID)
	if err != nil {
		return atleta.Response{}, err
	}
	return atleta.NewResponse(a), nil
}

func (h *AtletaHandler) UpdateAtleta(c echo.Context, req *atleta.UpdateAtletaRequest) (atleta.Response, error) {
	a, err := h.atletaService.Update(c.Request().Context(), req)
	if err != nil {
		return atleta.Response{}, err
	}
	return atleta.NewResponse(a), nil
}

func (h *AtletaHandler) DeleteAtleta(c echo.Context, req *atleta.DeleteAtletaRequest) error {
	return h.atletaService.Delete(c.Request().Context(), req.ID)
}
