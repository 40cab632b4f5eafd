package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jbdamask/dinebot/pkg/history"
	"github.com/jbdamask/dinebot/pkg/llm"
	"github.com/jbdamask/dinebot/pkg/store"
	"github.com/jbdamask/dinebot/pkg/tools"
)

type chatRequest struct {
	SessionID string     `json:"session_id" binding:"omitempty,max=128,printascii"`
	Message   string     `json:"message" binding:"required"`
	History   []chatTurn `json:"history" binding:"omitempty,dive"`
}

// chatTurn is one caller-supplied history entry. Only conversation turns
// are accepted; the system instruction is the server's own.
type chatTurn struct {
	Role    llm.Role `json:"role" binding:"required,oneof=user assistant"`
	Content string   `json:"content"`
}

func (r chatRequest) history() []llm.Message {
	if r.History == nil {
		return nil
	}
	msgs := make([]llm.Message, len(r.History))
	for i, t := range r.History {
		msgs[i] = llm.Message{Role: t.Role, Content: t.Content}
	}
	return msgs
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

type restaurantQuery struct {
	Cuisine  string `form:"cuisine"`
	Location string `form:"location"`
	Guests   int    `form:"guests" binding:"omitempty,min=1"`
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// chat resolves one message. A supplied history is used as-is and nothing
// is stored; otherwise the session store holds the conversation.
func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	stateless := req.History != nil

	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	hist := req.history()
	if !stateless {
		var err error
		hist, err = s.sessions.Load(ctx, req.SessionID)
		if err != nil {
			s.log.WithError(err).WithField("session_id", req.SessionID).Error("failed to load session")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}
	}

	reply := s.replier.Reply(ctx, req.Message, hist)

	if !stateless {
		err := s.sessions.Append(ctx, req.SessionID,
			llm.Message{Role: llm.RoleUser, Content: req.Message},
			llm.Message{Role: llm.RoleAssistant, Content: reply},
		)
		if err != nil {
			s.log.WithError(err).WithField("session_id", req.SessionID).Warn("failed to store turn")
		}
	}
	s.record(req.SessionID, req.Message, reply)

	c.JSON(http.StatusOK, chatResponse{SessionID: req.SessionID, Reply: reply})
}

func (s *Server) record(sessionID, message, reply string) {
	if s.transcriptDir == "" {
		return
	}
	s.transcriptMu.Lock()
	defer s.transcriptMu.Unlock()

	t, err := s.transcript(sessionID)
	if err == nil {
		err = t.Append(llm.RoleUser, message)
	}
	if err == nil {
		err = t.Append(llm.RoleAssistant, reply)
	}
	if err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("failed to write transcript")
	}
}

// transcript returns the open transcript for sessionID. Callers hold
// transcriptMu.
func (s *Server) transcript(sessionID string) (*history.Transcript, error) {
	if t, ok := s.transcripts[sessionID]; ok {
		return t, nil
	}
	t, err := history.Open(s.transcriptDir, sessionID)
	if err != nil {
		return nil, err
	}
	s.transcripts[sessionID] = t
	return t, nil
}

func (s *Server) resetChat(c *gin.Context) {
	id := c.Param("session_id")
	if err := s.sessions.Reset(c.Request.Context(), id); err != nil {
		s.log.WithError(err).WithField("session_id", id).Error("failed to reset session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return
	}
	c.Status(http.StatusNoContent)
}

// listRestaurants runs search_restaurants with the query filters.
func (s *Server) listRestaurants(c *gin.Context) {
	var q restaurantQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	args := map[string]interface{}{}
	if q.Cuisine != "" {
		args["cuisine"] = q.Cuisine
	}
	if q.Location != "" {
		args["location"] = q.Location
	}
	if q.Guests != 0 {
		args["guests"] = q.Guests
	}

	result, err := s.dispatcher.Dispatch(c.Request.Context(), string(tools.SearchRestaurants), args)
	if err != nil {
		s.log.WithError(err).Error("restaurant search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) listReservations(c *gin.Context) {
	reservations, err := s.store.Reservations()
	if err != nil {
		s.log.WithError(err).Error("failed to read reservations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reservations unavailable"})
		return
	}
	if reservations == nil {
		reservations = []store.Reservation{}
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}
