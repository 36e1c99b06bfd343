package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/repository"
	"github.com/massimodamico86-art/bizscreen-sub004/internal/service"
)

// PlayerHandler 播放端 HTTP 处理器
type PlayerHandler struct {
	svc    service.PlayerService
	logger *zap.Logger
}

func NewPlayerHandler(svc service.PlayerService, logger *zap.Logger) *PlayerHandler {
	return &PlayerHandler{svc: svc, logger: logger}
}

// ResolveContent GET /player/api/v1/screens/{id}/content
func (h *PlayerHandler) ResolveContent(w http.ResponseWriter, req *http.Request, screenID string) {
	resp, err := h.svc.ResolveContent(req.Context(), service.ResolveContentRequest{ScreenID: screenID})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeJSON(w, http.StatusNotFound, Fail("screen not found"))
		case errors.Is(err, service.ErrDanglingReference):
			h.logger.Error("emergency content cannot be expanded",
				zap.String("screen_id", screenID),
				zap.Error(err),
			)
			writeJSON(w, http.StatusBadGateway, Fail("emergency content unavailable"))
		default:
			h.logger.Error("content resolution failed",
				zap.String("screen_id", screenID),
				zap.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, Fail("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// Heartbeat POST /player/api/v1/screens/{id}/heartbeat
func (h *PlayerHandler) Heartbeat(w http.ResponseWriter, req *http.Request, screenID string) {
	if err := h.svc.Heartbeat(req.Context(), screenID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("screen not found"))
			return
		}
		h.logger.Error("heartbeat failed", zap.String("screen_id", screenID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"screen_id": screenID}))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
