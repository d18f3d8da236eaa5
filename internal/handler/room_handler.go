package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/psgtech/campusfacility/internal/catalog"
	"github.com/psgtech/campusfacility/pkg/response"
)

// RoomHandler serves the compiled-in room catalog. No auth: the catalog is
// public reference data.
type RoomHandler struct{}

func NewRoomHandler() *RoomHandler {
	return &RoomHandler{}
}

func (h *RoomHandler) ListBlocks(c *gin.Context) {
	response.Success(c, http.StatusOK, "", catalog.Blocks())
}

func (h *RoomHandler) GetBlock(c *gin.Context) {
	block, ok := catalog.BlockByCode(c.Param("code"))
	if !ok {
		c.JSON(http.StatusNotFound, response.Envelope{Status: "error", Message: "block not found"})
		return
	}

	response.Success(c, http.StatusOK, "", block)
}

func (h *RoomHandler) ListRoomsByBlock(c *gin.Context) {
	blockCode := c.Param("code")
	if _, ok := catalog.BlockByCode(blockCode); !ok {
		c.JSON(http.StatusNotFound, response.Envelope{Status: "error", Message: "block not found"})
		return
	}

	response.Success(c, http.StatusOK, "", catalog.RoomsByBlock(blockCode))
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	response.Success(c, http.StatusOK, "", catalog.RoomByCode(c.Param("code")))
}

func (h *RoomHandler) GetRoomComponents(c *gin.Context) {
	response.Success(c, http.StatusOK, "", catalog.ComponentsByCategory(c.Param("code")))
}
