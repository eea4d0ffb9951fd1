package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"printquote/internal/catalog"
)

//
// --------------------------------------------------
// GET /admin/anchors
// --------------------------------------------------
//

func (s *Server) handleListAnchors() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := catalog.AnchorFilter{
			ProductCode:  c.Query("product_code"),
			MaterialCode: c.Query("material_code"),
			SizeKey:      c.Query("size_key"),
		}
		if raw := c.Query("anchor_qty"); raw != "" {
			qty, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anchor_qty"})
				return
			}
			filter.AnchorQty = qty
		}

		anchors, err := s.catalog.ListAnchors(c.Request.Context(), filter)
		if err != nil {
			s.logger.Error("Failed to list anchors", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, anchors)
	}
}

//
// --------------------------------------------------
// POST /admin/anchors
// --------------------------------------------------
//

func (s *Server) handleCreateAnchor() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalog.AnchorInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		anchor, err := s.catalog.CreateAnchor(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, catalog.ErrDuplicateAnchor) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			s.logger.Error("Failed to create anchor", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, anchor)
	}
}

//
// --------------------------------------------------
// PUT /admin/anchors/:id
// --------------------------------------------------
//

func (s *Server) handleUpdateAnchor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anchor id"})
			return
		}

		var in catalog.AnchorInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		anchor, err := s.catalog.UpdateAnchor(c.Request.Context(), id, in)
		if err != nil {
			switch {
			case errors.Is(err, catalog.ErrAnchorNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, catalog.ErrDuplicateAnchor):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				s.logger.Error("Failed to update anchor", zap.Int64("id", id), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, anchor)
	}
}

//
// --------------------------------------------------
// DELETE /admin/anchors/:id
// --------------------------------------------------
//

func (s *Server) handleDeleteAnchor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anchor id"})
			return
		}

		if err := s.catalog.DeleteAnchor(c.Request.Context(), id); err != nil {
			if errors.Is(err, catalog.ErrAnchorNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			s.logger.Error("Failed to delete anchor", zap.Int64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

//
// --------------------------------------------------
// GET /admin/anchors/export
// --------------------------------------------------
//

func (s *Server) handleExportAnchors() gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := s.catalog.ExportAnchorsXLSX(c.Request.Context())
		if err != nil {
			s.logger.Error("Failed to export anchors", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		filename := "anchors_" + time.Now().Format("20060102_1504") + ".xlsx"
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			data)
	}
}
