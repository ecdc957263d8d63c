package controllers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/moneybook/moneybook.go/lib/responses"
	"github.com/moneybook/moneybook.go/lib/service"
)

// AdminCategoryController manages the shared category set. Routes are
// gated by the admin token.
type AdminCategoryController struct {
	svc *service.MoneybookService
}

func NewAdminCategoryController(svc *service.MoneybookService) *AdminCategoryController {
	return &AdminCategoryController{svc: svc}
}

// CreateCategory godoc
// @Summary      Create a shared category
// @Accept       json
// @Produce      json
// @Tags         Admin
// @Param        category  body      CategoryRequestBody  true  "Category"
// @Success      200       {object}  models.Category
// @Failure      400       {object}  responses.ErrorResponse
// @Router       /admin/categories [post]
func (controller *AdminCategoryController) CreateCategory(c echo.Context) error {
	var body CategoryRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create category request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	category, err := controller.svc.CreateGlobalCategory(c.Request().Context(), body.Name, body.categoryType())
	if err != nil {
		c.Logger().Errorf("Failed to create shared category: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	return c.JSON(http.StatusOK, category)
}

// UpdateCategory godoc
// @Summary      Update a shared category
// @Accept       json
// @Produce      json
// @Tags         Admin
// @Param        id        path      int                  true  "Category ID"
// @Param        category  body      CategoryRequestBody  true  "Category"
// @Success      200       {object}  models.Category
// @Failure      404       {object}  responses.ErrorResponse
// @Router       /admin/categories/{id} [put]
func (controller *AdminCategoryController) UpdateCategory(c echo.Context) error {
	categoryId, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body CategoryRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load update category request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	category, err := controller.svc.UpdateGlobalCategory(c.Request().Context(), categoryId, body.Name, body.categoryType())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		}
		c.Logger().Errorf("Failed to update shared category category_id:%v error: %v", categoryId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary      Delete a shared category
// @Produce      json
// @Tags         Admin
// @Param        id  path  int  true  "Category ID"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /admin/categories/{id} [delete]
func (controller *AdminCategoryController) DeleteCategory(c echo.Context) error {
	categoryId, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	err = controller.svc.DeleteGlobalCategory(c.Request().Context(), categoryId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		}
		c.Logger().Errorf("Failed to delete shared category category_id:%v error: %v", categoryId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.NoContent(http.StatusNoContent)
}
