package migrations

import (
	"context"

	"github.com/moneybook/moneybook.go/db/models"
	"github.com/uptrace/bun"
)

/* Since this init will reflect the latest model fields when run on fresh db
make sure that when you add/remove columns in subsequent migrations IfNotExists/IfExists is used
otherwise it's going to result in errors.
*/
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if _, err := db.NewCreateTable().Model((*models.User)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Account)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Category)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Transaction)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Attachment)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().Model((*models.Transaction)(nil)).
			Index("transactions_user_occurred_at_idx").
			Column("user_id", "occurred_at").Exec(ctx); err != nil {
			return err
		}

		return nil
	}, nil)
}
