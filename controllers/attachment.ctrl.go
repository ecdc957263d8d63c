package controllers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/moneybook/moneybook.go/lib/filestore"
	"github.com/moneybook/moneybook.go/lib/responses"
	"github.com/moneybook/moneybook.go/lib/service"
)

// AttachmentController : AttachmentController struct
type AttachmentController struct {
	svc *service.MoneybookService
}

func NewAttachmentController(svc *service.MoneybookService) *AttachmentController {
	return &AttachmentController{svc: svc}
}

// UploadAttachment godoc
// @Summary      Attach a receipt
// @Description  Upload a receipt for a transaction. One per transaction, jpg/png/pdf, 5 MiB max.
// @Accept       multipart/form-data
// @Produce      json
// @Tags         Attachment
// @Param        id    path      int   true  "Transaction ID"
// @Param        file  formData  file  true  "Receipt file"
// @Success      200   {object}  models.Attachment
// @Failure      400   {object}  responses.ErrorResponse
// @Failure      404   {object}  responses.ErrorResponse
// @Router       /transactions/{id}/attachment [post]
// @Security     OAuth2Password
func (controller *AttachmentController) UploadAttachment(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	transactionId, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if fileHeader.Size > service.MaxAttachmentSize {
		return c.JSON(http.StatusBadRequest, responses.InvalidAttachmentError)
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Logger().Errorf("Failed to open uploaded file: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	defer file.Close()

	attachment, err := controller.svc.SaveAttachment(c.Request().Context(), userId, transactionId, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		case errors.Is(err, service.ErrAttachmentExists):
			return c.JSON(http.StatusBadRequest, responses.AttachmentExistsError)
		case errors.Is(err, service.ErrInvalidAttachment):
			return c.JSON(http.StatusBadRequest, responses.InvalidAttachmentError)
		}
		c.Logger().Errorf("Failed to save attachment transaction_id:%v user_id:%v error: %v", transactionId, userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, attachment)
}

// GetAttachment godoc
// @Summary      Download a receipt
// @Description  Streams the receipt blob with its original name and content type
// @Produce      octet-stream
// @Tags         Attachment
// @Param        id  path  int  true  "Attachment ID"
// @Success      200
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /attachments/{id} [get]
// @Security     OAuth2Password
func (controller *AttachmentController) GetAttachment(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	attachmentId, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	attachment, reader, err := controller.svc.OpenAttachment(c.Request().Context(), userId, attachmentId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, filestore.ErrNotFound) {
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		}
		c.Logger().Errorf("Failed to open attachment attachment_id:%v user_id:%v error: %v", attachmentId, userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("inline; filename=%q", attachment.OriginalName))
	return c.Stream(http.StatusOK, attachment.ContentType, reader)
}

// DeleteAttachment godoc
// @Summary      Delete a receipt
// @Description  Removes the attachment record and its blob
// @Produce      json
// @Tags         Attachment
// @Param        id  path  int  true  "Attachment ID"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /attachments/{id} [delete]
// @Security     OAuth2Password
func (controller *AttachmentController) DeleteAttachment(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	attachmentId, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	err = controller.svc.DeleteAttachment(c.Request().Context(), userId, attachmentId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		}
		c.Logger().Errorf("Failed to delete attachment attachment_id:%v user_id:%v error: %v", attachmentId, userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.NoContent(http.StatusNoContent)
}
