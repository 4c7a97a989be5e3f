package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/polymer/pkg/errors"
	"github.com/matzehuels/polymer/pkg/pipeline"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// wsRequest asks for a new chain. Omitted fields take the server defaults.
type wsRequest struct {
	Units    *int     `json:"units"`
	Angle    *float64 `json:"angle"`
	Rigidity *float64 `json:"rigidity"`
	Seed     *uint64  `json:"seed"`
}

// wsResponse carries either a chain or an error.
type wsResponse struct {
	ID    string      `json:"id"`
	Count int         `json:"count,omitempty"`
	XYZ   string      `json:"xyz,omitempty"`
	Error string      `json:"error,omitempty"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	logger := s.logger.With("id", RequestID(r.Context()))
	logger.Debug("websocket connected", "remote", r.RemoteAddr)

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("websocket read", "error", err)
			}
			return
		}

		resp := s.generateForSocket(r, req)
		if err := conn.WriteJSON(resp); err != nil {
			logger.Debug("websocket write", "error", err)
			return
		}
	}
}

func (s *Server) generateForSocket(r *http.Request, req wsRequest) wsResponse {
	resp := wsResponse{ID: uuid.NewString()}

	opts := s.defaults
	opts.Formats = []string{pipeline.FormatXYZ}
	if req.Units != nil {
		opts.Units = *req.Units
	}
	if req.Angle != nil {
		opts.Angle = *req.Angle
	}
	if req.Rigidity != nil {
		opts.Rigidity = *req.Rigidity
	}
	if req.Seed != nil {
		seed := *req.Seed
		opts.Seed = &seed
	}
	opts.Logger = s.logger

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		body := bodyFor(err)
		resp.Error, resp.Code = body.Error, body.Code
		return resp
	}
	resp.Count = res.Chain.Len()
	resp.XYZ = res.XYZ
	return resp
}
