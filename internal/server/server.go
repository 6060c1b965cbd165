package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pulsecx/internal/agent"
)

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	UserID   string   `json:"user_id" binding:"required"`
	Message  string   `json:"message" binding:"required"`
	Location Location `json:"location" binding:"required"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type ChatHandler struct {
	agent *agent.Agent
	log   *zap.SugaredLogger
}

func NewChatHandler(a *agent.Agent, log *zap.SugaredLogger) *ChatHandler {
	return &ChatHandler{agent: a, log: log}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID := c.GetString("request_id")
	h.log.Infow("chat request", "request_id", requestID, "user_id", req.UserID)

	resp := h.agent.HandleMessage(c.Request.Context(), req.UserID, req.Message, req.Location.Lat, req.Location.Lon)
	c.JSON(http.StatusOK, gin.H{
		"request_id": requestID,
		"reply":      resp.Reply,
		"store":      resp.Store,
		"coupon":     resp.Coupon,
	})
}

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// requestID tags every request with a UUID for log correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func NewRouter(chat *ChatHandler, mode string) *gin.Engine {
	if mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	router.Use(requestID())

	router.GET("/healthcheck", HealthCheck)
	router.POST("/chat", chat.Chat)

	return router
}
