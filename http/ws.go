package http

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsReadLimit = 1 << 14
	wsIdleWait  = 5 * time.Minute
	wsWriteWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// handlePredictWebSocket 每个文本帧是一个预测请求, 按顺序应答
func (h *Handlers) handlePredictWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	ctx := r.Context()

	for {
		conn.SetReadDeadline(time.Now().Add(wsIdleWait))
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("websocket closed", zap.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var reply interface{}
		if req, err := decodePredictRequest(bytes.NewReader(payload)); err != nil {
			reply = map[string]string{"error": "invalid request: " + err.Error()}
		} else {
			res := h.predictor.Submit(ctx, req)
			h.logResult(ctx, res)
			reply = newPredictResponse(res)
		}

		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(reply); err != nil {
			h.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
}
