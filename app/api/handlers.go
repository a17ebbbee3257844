package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/castboard/app/board"
)

func NewHandler(service *board.Service, version string) *Handler {
	return &Handler{
		service: service,
		version: version,
	}
}

func (h *Handler) GetForm(c *gin.Context) {
	c.HTML(http.StatusOK, "form.html", gin.H{})
}

func (h *Handler) PostMessage(c *gin.Context) {
	username := c.PostForm("user")
	body := c.PostForm("message")

	msg, err := h.service.Submit(username, body)
	if err != nil {
		var validationErr *board.ValidationError
		if errors.As(err, &validationErr) {
			c.HTML(http.StatusBadRequest, "error.html", gin.H{
				"Reason": validationErr.Error(),
			})
			return
		}

		slog.Error("Message submission failed", "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Reason": "Could not store your message, please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "confirm.html", gin.H{
		"Username": msg.Username,
		"Body":     msg.Body,
	})
}

func (h *Handler) GetView(c *gin.Context) {
	messages, err := h.service.Sample(ViewSampleSize)
	if err != nil {
		slog.Error("Database error", "operation", "sample_messages", "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Reason": "Could not load messages, please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "view.html", gin.H{
		"Messages": messages,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	}

	if count, err := h.service.Count(); err == nil {
		health["messages"] = count
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	count, err := h.service.Count()
	if err != nil {
		slog.Error("Database error", "operation", "count_messages", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": count,
	})
}
