package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/confessly-dev/confessly/internal/authz"
	"github.com/confessly-dev/confessly/internal/store"
	"github.com/confessly-dev/confessly/internal/types"
	"github.com/confessly-dev/confessly/internal/utils"
	"github.com/gin-gonic/gin"
)

type ConfessionRequest struct {
	Confession string `json:"confession" binding:"required"`
}

type ConfessionHandler struct {
	confessions *store.ConfessionStore
}

func NewConfessionHandler(confessions *store.ConfessionStore) *ConfessionHandler {
	return &ConfessionHandler{confessions: confessions}
}

func parseConfessionID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid confession ID"})
		return 0, false
	}

	return uint(id), true
}

func (h *ConfessionHandler) Create(ctx *gin.Context) {
	var req ConfessionRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	confession, err := h.confessions.Create(userID, req.Confession)

	if err != nil {
		status, message := ErrorResponse(err)
		if status == http.StatusInternalServerError {
			log.Printf("Failed to create confession: %v", err)
		}
		ctx.JSON(status, gin.H{"error": message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Confession submitted successfully!",
		"confession": types.ConfessionResponse{
			ID:   confession.ID,
			Text: confession.Text,
		},
	})
}

func (h *ConfessionHandler) ListAll(ctx *gin.Context) {
	confessions, err := h.confessions.ListAll()

	if err != nil {
		log.Printf("Failed to list confessions: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]types.ConfessionResponse, 0, len(confessions))

	for _, confession := range confessions {
		response = append(response, types.ConfessionResponse{
			ID:   confession.ID,
			Text: confession.Text,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *ConfessionHandler) Update(ctx *gin.Context) {
	id, ok := parseConfessionID(ctx)

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req ConfessionRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Load first so a missing confession is 404, then check ownership.
	confession, err := h.confessions.Get(id)

	if err == nil {
		err = authz.AuthorizeMutation(userID, confession)
	}

	if err == nil {
		confession, err = h.confessions.Update(id, req.Confession)
	}

	if err != nil {
		status, message := ErrorResponse(err)
		if status == http.StatusInternalServerError {
			log.Printf("Failed to update confession: %v", err)
		}
		ctx.JSON(status, gin.H{"error": message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Confession updated successfully!",
		"confession": types.ConfessionResponse{
			ID:   confession.ID,
			Text: confession.Text,
		},
	})
}

func (h *ConfessionHandler) Delete(ctx *gin.Context) {
	id, ok := parseConfessionID(ctx)

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	confession, err := h.confessions.Get(id)

	if err == nil {
		err = authz.AuthorizeMutation(userID, confession)
	}

	if err == nil {
		err = h.confessions.Delete(id)
	}

	if err != nil {
		status, message := ErrorResponse(err)
		if status == http.StatusInternalServerError {
			log.Printf("Failed to delete confession: %v", err)
		}
		ctx.JSON(status, gin.H{"error": message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Confession deleted successfully!"})
}
