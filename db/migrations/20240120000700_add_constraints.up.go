package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- transaction amounts are always strictly positive; the sign lives in the type column
				ALTER TABLE transactions
				ADD CONSTRAINT check_positive_amount
				CHECK (amount > 0);

				ALTER TABLE transactions
				ADD CONSTRAINT check_tx_type
				CHECK (type IN ('IN', 'OUT'));

			-- a transaction must reference an account of the same owner,
			-- no matter what application code does
				CREATE OR REPLACE FUNCTION check_account_owner()
					RETURNS TRIGGER AS $$
				DECLARE
					owner BIGINT;
				BEGIN
					SELECT INTO owner user_id
					FROM accounts
					WHERE id = NEW.account_id
					-- IMPORTANT: lock the account row but do not wait for another lock.
					--   Waiting could deadlock when two parallel transactions touch the
					--   same accounts in opposite order; NOWAIT reports an error instead.
					FOR UPDATE NOWAIT;

					IF owner IS NULL OR owner <> NEW.user_id THEN
						RAISE EXCEPTION 'account owner mismatch [user_id:%] [account_id:%]',
						NEW.user_id,
						NEW.account_id;
					END IF;
					RETURN NEW;
				END;
				$$ LANGUAGE plpgsql;

				-- deferrable trigger executed at the end of the enclosing transaction
				CREATE CONSTRAINT TRIGGER check_account_owner
				AFTER INSERT OR UPDATE ON transactions
				DEFERRABLE
				FOR EACH ROW EXECUTE PROCEDURE check_account_owner();
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}
		return nil
	}, nil)
}
