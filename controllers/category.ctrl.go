package controllers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/moneybook/moneybook.go/db/models"
	"github.com/moneybook/moneybook.go/lib/responses"
	"github.com/moneybook/moneybook.go/lib/service"
)

// CategoryController : CategoryController struct
type CategoryController struct {
	svc *service.MoneybookService
}

func NewCategoryController(svc *service.MoneybookService) *CategoryController {
	return &CategoryController{svc: svc}
}

type CategoryRequestBody struct {
	Name string `json:"name" validate:"required,max=50"`
	Type string `json:"type" validate:"omitempty,oneof=IN OUT BOTH"`
}

type ListCategoriesResponseBody struct {
	Categories []models.Category `json:"categories"`
}

func (body *CategoryRequestBody) categoryType() string {
	if body.Type == "" {
		return "BOTH"
	}
	return body.Type
}

// ListCategories godoc
// @Summary      List categories
// @Description  Shared categories plus the user's own, optionally filtered by direction
// @Produce      json
// @Tags         Category
// @Param        type  query     string  false  "IN or OUT; BOTH categories always match"
// @Success      200   {object}  ListCategoriesResponseBody
// @Failure      400   {object}  responses.ErrorResponse
// @Router       /categories [get]
// @Security     OAuth2Password
func (controller *CategoryController) ListCategories(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	categories, err := controller.svc.CategoriesFor(c.Request().Context(), userId, c.QueryParam("type"))
	if err != nil {
		c.Logger().Errorf("Failed to list categories for user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	return c.JSON(http.StatusOK, &ListCategoriesResponseBody{Categories: categories})
}

// CreateCategory godoc
// @Summary      Create a category
// @Description  Add a category owned by the current user
// @Accept       json
// @Produce      json
// @Tags         Category
// @Param        category  body      CategoryRequestBody  true  "Category"
// @Success      200       {object}  models.Category
// @Failure      400       {object}  responses.ErrorResponse
// @Router       /categories [post]
// @Security     OAuth2Password
func (controller *CategoryController) CreateCategory(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	var body CategoryRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create category request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	category, err := controller.svc.CreateCategory(c.Request().Context(), userId, body.Name, body.categoryType())
	if err != nil {
		c.Logger().Errorf("Failed to create category for user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	return c.JSON(http.StatusOK, category)
}

// UpdateCategory godoc
// @Summary      Update a category
// @Description  Rename or retype a category the user owns
// @Accept       json
// @Produce      json
// @Tags         Category
// @Param        id        path      int                  true  "Category ID"
// @Param        category  body      CategoryRequestBody  true  "Category"
// @Success      200       {object}  models.Category
// @Failure      404       {object}  responses.ErrorResponse
// @Router       /categories/{id} [put]
// @Security     OAuth2Password
func (controller *CategoryController) UpdateCategory(c echo.Context) error {
	userId := c.Get("UserID").(int64)
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

	category, err := controller.svc.UpdateCategory(c.Request().Context(), userId, categoryId, body.Name, body.categoryType())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		}
		c.Logger().Errorf("Failed to update category category_id:%v user_id:%v error: %v", categoryId, userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Description  Remove an owned category; its transactions become uncategorized
// @Produce      json
// @Tags         Category
// @Param        id  path  int  true  "Category ID"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /categories/{id} [delete]
// @Security     OAuth2Password
func (controller *CategoryController) DeleteCategory(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	categoryId, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	err = controller.svc.DeleteCategory(c.Request().Context(), userId, categoryId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		}
		c.Logger().Errorf("Failed to delete category category_id:%v user_id:%v error: %v", categoryId, userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.NoContent(http.StatusNoContent)
}
