package api

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"multipark-dashboard/internal/domain/booking"
	resdto "multipark-dashboard/internal/handler/dto/response"
	"multipark-dashboard/internal/handler/httperr"
	"multipark-dashboard/internal/infra/spreadsheet"
	"multipark-dashboard/internal/pkg/config"
	"multipark-dashboard/internal/pkg/errs"
	"multipark-dashboard/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

var (
	errUnsupportedFileType = errs.New("unsupported file type")
	errFileTooLarge        = errs.New("file too large")
)

// SpreadsheetParser turns an uploaded workbook into raw booking entries.
type SpreadsheetParser interface {
	Parse(r io.Reader) ([]booking.Input, error)
}

type UploadHandler struct {
	parser   SpreadsheetParser
	commands commands.BookingCommands
	maxBytes int64
}

func NewUploadHandler(parser SpreadsheetParser, cmds commands.BookingCommands, cfg config.UploadConfig) *UploadHandler {
	return &UploadHandler{
		parser:   parser,
		commands: cmds,
		maxBytes: cfg.MaxFileSizeMB << 20,
	}
}

// @Summary Upload bookings
// @Description Parse an xlsx export and reconcile its rows into bookings
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Booking export (.xlsx)"
// @Success 201 {object} resdto.UploadResponse
// @Failure 400 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Router /uploads [post]
func (h *UploadHandler) UploadBookings(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Missing file field", nil)
		return
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		httperr.AbortWithError(c, http.StatusBadRequest, errUnsupportedFileType, "Only .xlsx files are accepted", nil)
		return
	}

	if fileHeader.Size > h.maxBytes {
		httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, errFileTooLarge, "File exceeds the upload size limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	defer file.Close()

	entries, err := h.parser.Parse(file)
	if err != nil {
		switch {
		case errors.Is(err, spreadsheet.ErrNoSheets),
			errors.Is(err, spreadsheet.ErrEmptySheet),
			errors.Is(err, spreadsheet.ErrMissingColumns):
			httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		default:
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Could not read the workbook", nil)
		}
		return
	}

	result, err := h.commands.Ingest(c.Request.Context(), entries)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmptyBatch):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "The workbook contains no usable rows", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromIngestResult(result))
}
