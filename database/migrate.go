package database

import (
	"fmt"

	"grafttrack-backend/models"

	"gorm.io/gorm"
)

// MigrateTenantSchema applies (idempotent) schema migrations for a single tenant schema.
// It pins search_path to the tenant and performs:
// - AutoMigrate (tables/columns)
// - Money column types (NUMERIC(12,2))
// - Indexes (treatments, invoices, commission_assignments, status changes)
// - Foreign keys: treatments.graft_product_id → graft_products.id,
//   commission_assignments.representative_id → representatives.id
// - CHECK constraints (non-negative money, status domains, closed⇒payment_date)
// - Idempotency keys table + unique index
func MigrateTenantSchema(schema string) error {
	if schema == "" {
		return fmt.Errorf("schema name is empty")
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		// Pin the tenant schema for this transaction
		if err := tx.Exec(`SET search_path = "` + schema + `", public`).Error; err != nil {
			return fmt.Errorf("set search_path failed: %w", err)
		}

		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.GraftProduct{},
			&models.Patient{},
			&models.Representative{},
			&models.Treatment{},
			&models.Invoice{},
			&models.CommissionAssignment{},
			&models.InvoiceStatusChange{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("tenant automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE graft_products          ALTER COLUMN price_per_unit_area TYPE numeric(12,2)`,
			`ALTER TABLE treatments              ALTER COLUMN wound_area          TYPE numeric(12,2)`,
			`ALTER TABLE invoices                ALTER COLUMN total_billable      TYPE numeric(12,2)`,
			`ALTER TABLE invoices                ALTER COLUMN invoice_amount      TYPE numeric(12,2)`,
			`ALTER TABLE commission_assignments  ALTER COLUMN commission_amount   TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_graft_products_identity ON graft_products (manufacturer, product_name, billing_code)`,
			`CREATE INDEX IF NOT EXISTS idx_treatments_patient ON treatments (patient_id)`,
			`CREATE INDEX IF NOT EXISTS idx_invoices_status_payment ON invoices (status, payment_date)`,
			`CREATE INDEX IF NOT EXISTS idx_commission_assignments_invoice ON commission_assignments (invoice_id)`,
			`CREATE INDEX IF NOT EXISTS idx_commission_assignments_rep ON commission_assignments (representative_id)`,
			`CREATE INDEX IF NOT EXISTS idx_invoice_status_changes_invoice ON invoice_status_changes (invoice_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Foreign keys (RESTRICT/RESTRICT) ---
		fks := []string{
			`
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1
		FROM pg_constraint
		WHERE conrelid = 'treatments'::regclass
		  AND conname  = 'fk_treatments_graft_product'
	) THEN
		ALTER TABLE treatments
		ADD CONSTRAINT fk_treatments_graft_product
		FOREIGN KEY (graft_product_id)
		REFERENCES graft_products(id)
		ON UPDATE RESTRICT
		ON DELETE RESTRICT;
	END IF;
END $$;`,
			`
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1
		FROM pg_constraint
		WHERE conrelid = 'commission_assignments'::regclass
		  AND conname  = 'fk_commission_assignments_rep'
	) THEN
		ALTER TABLE commission_assignments
		ADD CONSTRAINT fk_commission_assignments_rep
		FOREIGN KEY (representative_id)
		REFERENCES representatives(id)
		ON UPDATE RESTRICT
		ON DELETE RESTRICT;
	END IF;
END $$;`,
		}
		for _, stmt := range fks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("foreign key migration failed: %w", err)
			}
		}

		// --- NOT NULL for treatments.graft_product_id (idempotent) ---
		if err := tx.Exec(`ALTER TABLE treatments ALTER COLUMN graft_product_id SET NOT NULL`).Error; err != nil {
			return fmt.Errorf("set NOT NULL on treatments.graft_product_id failed: %w", err)
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			// Non-negative product price
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'graft_products'::regclass
					  AND conname  = 'chk_graft_products_price_nonneg'
				) THEN
					ALTER TABLE graft_products
					ADD CONSTRAINT chk_graft_products_price_nonneg
					CHECK (price_per_unit_area >= 0);
				END IF;
			END $$;`,
			// Non-negative wound area
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'treatments'::regclass
					  AND conname  = 'chk_treatments_wound_area_nonneg'
				) THEN
					ALTER TABLE treatments
					ADD CONSTRAINT chk_treatments_wound_area_nonneg
					CHECK (wound_area >= 0);
				END IF;
			END $$;`,
			// Commission rate within [0, 100]
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'commission_assignments'::regclass
					  AND conname  = 'chk_commission_assignments_rate'
				) THEN
					ALTER TABLE commission_assignments
					ADD CONSTRAINT chk_commission_assignments_rate
					CHECK (commission_rate >= 0 AND commission_rate <= 100);
				END IF;
			END $$;`,
			// Invoice status domain
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoices'::regclass
					  AND conname  = 'chk_invoices_status'
				) THEN
					ALTER TABLE invoices
					ADD CONSTRAINT chk_invoices_status
					CHECK (status IN ('open', 'payable', 'closed'));
				END IF;
			END $$;`,
			// Closed invoices must carry a payment date
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoices'::regclass
					  AND conname  = 'chk_invoices_closed_payment_date'
				) THEN
					ALTER TABLE invoices
					ADD CONSTRAINT chk_invoices_closed_payment_date
					CHECK (status <> 'closed' OR payment_date IS NOT NULL);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
