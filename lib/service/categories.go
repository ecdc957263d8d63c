package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/moneybook/moneybook.go/common"
	"github.com/moneybook/moneybook.go/db/models"
	"github.com/uptrace/bun"
)

// errBadCategoryType rejects anything outside IN, OUT, BOTH.
var errBadCategoryType = fmt.Errorf("category type must be one of %s, %s, %s",
	common.CategoryTypeIncoming, common.CategoryTypeOutgoing, common.CategoryTypeBoth)

func validateCategoryType(categoryType string) error {
	switch categoryType {
	case common.CategoryTypeIncoming, common.CategoryTypeOutgoing, common.CategoryTypeBoth:
		return nil
	}
	return errBadCategoryType
}

// CategoriesFor lists the categories visible to a user: the shared global
// set plus the user's own. typeFilter narrows to IN or OUT; BOTH
// categories match either direction.
func (svc *MoneybookService) CategoriesFor(ctx context.Context, userId int64, typeFilter string) ([]models.Category, error) {
	categories := []models.Category{}
	q := svc.DB.NewSelect().Model(&categories).
		Where("user_id = ? OR user_id IS NULL", userId)
	if typeFilter != "" {
		if err := validateCategoryType(typeFilter); err != nil {
			return nil, err
		}
		q = q.Where("type = ? OR type = ?", typeFilter, common.CategoryTypeBoth)
	}
	err := q.OrderExpr("name ASC").Scan(ctx)
	return categories, err
}

// findVisibleCategory resolves a category id against the user's visible
// set. Used when validating the category on a transaction write.
func (svc *MoneybookService) findVisibleCategory(ctx context.Context, tx bun.IDB, userId, categoryId int64) (*models.Category, error) {
	category := &models.Category{}
	err := tx.NewSelect().Model(category).
		Where("id = ?", categoryId).
		Where("user_id = ? OR user_id IS NULL", userId).
		Limit(1).Scan(ctx)
	return category, err
}

func (svc *MoneybookService) CreateCategory(ctx context.Context, userId int64, name, categoryType string) (*models.Category, error) {
	if err := validateCategoryType(categoryType); err != nil {
		return nil, err
	}
	category := &models.Category{
		UserID: userId,
		Name:   name,
		Type:   categoryType,
	}
	_, err := svc.DB.NewInsert().Model(category).Exec(ctx)
	return category, err
}

// UpdateCategory only touches categories the user owns. Global
// categories are read-only here, they take the admin path.
func (svc *MoneybookService) UpdateCategory(ctx context.Context, userId, categoryId int64, name, categoryType string) (*models.Category, error) {
	if err := validateCategoryType(categoryType); err != nil {
		return nil, err
	}
	category := &models.Category{}
	err := svc.DB.NewSelect().Model(category).
		Where("id = ? AND user_id = ?", categoryId, userId).
		Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	category.Name = name
	category.Type = categoryType
	_, err = svc.DB.NewUpdate().Model(category).WherePK().Exec(ctx)
	return category, err
}

// DeleteCategory removes an owned category and leaves its transactions
// uncategorized.
func (svc *MoneybookService) DeleteCategory(ctx context.Context, userId, categoryId int64) error {
	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		category := &models.Category{}
		err := tx.NewSelect().Model(category).
			Where("id = ? AND user_id = ?", categoryId, userId).
			Limit(1).Scan(ctx)
		if err != nil {
			return err
		}
		_, err = tx.NewUpdate().Model((*models.Transaction)(nil)).
			Set("category_id = NULL").
			Where("category_id = ?", categoryId).
			Exec(ctx)
		if err != nil {
			return err
		}
		_, err = tx.NewDelete().Model(category).WherePK().Exec(ctx)
		return err
	})
}

// CreateGlobalCategory adds a category shared by every user. Admin only,
// the caller is gated by the admin token middleware.
func (svc *MoneybookService) CreateGlobalCategory(ctx context.Context, name, categoryType string) (*models.Category, error) {
	if err := validateCategoryType(categoryType); err != nil {
		return nil, err
	}
	category := &models.Category{
		Name: name,
		Type: categoryType,
	}
	_, err := svc.DB.NewInsert().Model(category).Exec(ctx)
	return category, err
}

func (svc *MoneybookService) UpdateGlobalCategory(ctx context.Context, categoryId int64, name, categoryType string) (*models.Category, error) {
	if err := validateCategoryType(categoryType); err != nil {
		return nil, err
	}
	category := &models.Category{}
	err := svc.DB.NewSelect().Model(category).
		Where("id = ? AND user_id IS NULL", categoryId).
		Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	category.Name = name
	category.Type = categoryType
	_, err = svc.DB.NewUpdate().Model(category).WherePK().Exec(ctx)
	return category, err
}

func (svc *MoneybookService) DeleteGlobalCategory(ctx context.Context, categoryId int64) error {
	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		category := &models.Category{}
		err := tx.NewSelect().Model(category).
			Where("id = ? AND user_id IS NULL", categoryId).
			Limit(1).Scan(ctx)
		if err != nil {
			return err
		}
		_, err = tx.NewUpdate().Model((*models.Transaction)(nil)).
			Set("category_id = NULL").
			Where("category_id = ?", categoryId).
			Exec(ctx)
		if err != nil {
			return err
		}
		_, err = tx.NewDelete().Model(category).WherePK().Exec(ctx)
		return err
	})
}
