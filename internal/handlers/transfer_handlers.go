package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"housebill/internal/common"
	"housebill/internal/services"

	"github.com/labstack/echo/v4"
)

// archiveURLExpiry bounds how long a presigned archive download link stays
// valid.
const archiveURLExpiry = 24 * time.Hour

// TransferHandlers handles CSV export and import of members. Exports are
// additionally archived to object storage when a MinIO service is configured.
type TransferHandlers struct {
	memberService *services.MemberService
	minioService  services.MinioService
	exportBucket  string
}

func NewTransferHandlers(memberService *services.MemberService, minioService services.MinioService,
	exportBucket string) *TransferHandlers {
	return &TransferHandlers{
		memberService: memberService,
		minioService:  minioService,
		exportBucket:  exportBucket,
	}
}

// ExportMembers handles GET /api/members/export, returning the full member
// list as a CSV attachment.
func (h *TransferHandlers) ExportMembers(c echo.Context) error {
	filename, data, err := h.memberService.ExportCSV(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	h.archiveExport(c, filename, data)

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(data))
}

// archiveExport uploads a copy of the export to object storage. Best effort:
// a storage failure never fails the download.
func (h *TransferHandlers) archiveExport(c echo.Context, filename, data string) {
	if h.minioService == nil {
		return
	}
	ctx := c.Request().Context()
	if err := h.minioService.EnsureBucketExists(ctx, h.exportBucket); err != nil {
		log.Printf("Failed to ensure export bucket %s: %v", h.exportBucket, err)
		return
	}
	reader := strings.NewReader(data)
	if err := h.minioService.UploadCSV(ctx, h.exportBucket, filename, reader, int64(len(data))); err != nil {
		log.Printf("Failed to archive export %s: %v", filename, err)
	}
}

// ArchivedExportURL handles GET /api/members/export/archive-url?filename=...,
// returning a presigned download link for a previously archived export.
func (h *TransferHandlers) ArchivedExportURL(c echo.Context) error {
	if h.minioService == nil {
		return common.SendServerError(c, "export archive is not configured")
	}

	filename := c.QueryParam("filename")
	if err := common.ValidateRequiredString(filename, "filename"); err != nil {
		return common.SendValidationError(c, "filename", err.Error())
	}

	url, err := h.minioService.GetPresignedURL(h.exportBucket, filename, archiveURLExpiry)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"filename": filename,
		"url":      url,
	})
}

// ImportMembers handles POST /api/members/import
func (h *TransferHandlers) ImportMembers(c echo.Context) error {
	var req struct {
		CSVData string `json:"csvData"`
		HouseID string `json:"houseId"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.CSVData, "csvData"); err != nil {
		return common.SendValidationError(c, "csvData", err.Error())
	}
	houseID, err := common.ValidateUUID(req.HouseID, "houseId")
	if err != nil {
		return common.SendValidationError(c, "houseId", err.Error())
	}

	result, err := h.memberService.ImportCSV(c.Request().Context(), req.CSVData, houseID)
	if err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			return common.SendNotFoundError(c, "House")
		}
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"imported": result.Imported,
		"errors":   result.Errors,
	})
}
