package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bookmanager-backend/internal/domains/book/model"
	"bookmanager-backend/internal/domains/book/service"
	"bookmanager-backend/internal/shared/response"
	"bookmanager-backend/pkg/logger"
)

// maxCoverBytes caps how much of an uploaded cover we read into memory.
const maxCoverBytes = 10 << 20

// Handler is the thin HTTP layer over the catalog service: it binds
// requests, delegates, and writes the service's envelope with its own
// status classification. Infrastructure faults become a generic 500.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(svc service.ServiceInterface) *Handler {
	return &Handler{service: svc}
}

// ListBooks - GET /v1/books?pageNumber=&pageSize=
func (h *Handler) ListBooks(c *gin.Context) {
	pageNumber := queryInt(c, "pageNumber", 1)
	pageSize := queryInt(c, "pageSize", 10)

	resp, err := h.service.List(c.Request.Context(), pageNumber, pageSize)
	if err != nil {
		logger.Error("list books failed", err)
		response.InternalServerError(c)
		return
	}

	resp.JSON(c)
}

// GetBook - GET /v1/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	// Non-numeric ids parse to 0, which the service classifies as a bad
	// identifier.
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		logger.Error("get book failed", err)
		response.InternalServerError(c)
		return
	}

	resp.JSON(c)
}

// CreateBook - POST /v1/books (multipart/form-data)
func (h *Handler) CreateBook(c *gin.Context) {
	req, err := bindBookRequest(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		logger.Error("create book failed", err)
		response.InternalServerError(c)
		return
	}

	resp.JSON(c)
}

// UpdateBook - PUT /v1/books/:id (multipart/form-data)
func (h *Handler) UpdateBook(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	req, err := bindBookRequest(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		logger.Error("update book failed", err)
		response.InternalServerError(c)
		return
	}

	resp.JSON(c)
}

// DeleteBookImage - DELETE /v1/books/:id/image
func (h *Handler) DeleteBookImage(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	resp, err := h.service.DeleteImage(c.Request.Context(), id)
	if err != nil {
		logger.Error("delete book image failed", err)
		response.InternalServerError(c)
		return
	}

	resp.JSON(c)
}

// DeleteBook - DELETE /v1/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	resp, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		logger.Error("delete book failed", err)
		response.InternalServerError(c)
		return
	}

	resp.JSON(c)
}

// ExportBooks - GET /v1/books/export
func (h *Handler) ExportBooks(c *gin.Context) {
	f, err := h.service.Export(c.Request.Context())
	if err != nil {
		logger.Error("export books failed", err)
		response.InternalServerError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="books.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		logger.Error("write export failed", err)
	}
}

// bindBookRequest maps multipart form fields onto the service's input
// shape, including the optional image attachment.
func bindBookRequest(c *gin.Context) (model.BookRequest, error) {
	req := model.BookRequest{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: c.PostForm("description"),
		Author:      c.PostForm("author"),
	}

	if raw := c.PostForm("release_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return req, fmt.Errorf("invalid release_date %q: expected RFC3339 or YYYY-MM-DD", raw)
		}
		req.ReleaseDate = &t
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		// No attachment; the image is optional.
		return req, nil
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxCoverBytes))
	if err != nil {
		return req, fmt.Errorf("failed to read image upload")
	}

	req.Image = &model.ImageUpload{FileName: header.Filename, Data: data}
	return req, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func queryInt(c *gin.Context, name string, defaultValue int) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
