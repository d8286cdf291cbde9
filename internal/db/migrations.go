package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'billboard_status') THEN
			CREATE TYPE billboard_status AS ENUM ('available', 'rented', 'maintenance');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'ledger_entry_type') THEN
			CREATE TYPE ledger_entry_type AS ENUM ('receipt', 'account_payment', 'invoice');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name TEXT NOT NULL,
		company TEXT NOT NULL DEFAULT '',
		phone VARCHAR(32) NOT NULL DEFAULT '',
		category VARCHAR(32) NOT NULL DEFAULT 'regular',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		number BIGSERIAL,
		customer_id UUID NOT NULL REFERENCES customers(id),
		ad_type TEXT NOT NULL DEFAULT '',
		pricing_category VARCHAR(32) NOT NULL DEFAULT 'regular',
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		duration_mode VARCHAR(8) NOT NULL,
		duration_value INT NOT NULL,
		base_rent_total NUMERIC(18,2) NOT NULL,
		discount_type VARCHAR(8) NOT NULL DEFAULT 'amount',
		discount_value NUMERIC(18,2) NOT NULL DEFAULT 0,
		operating_fee_rate NUMERIC(5,2) NOT NULL DEFAULT 0,
		operating_fee NUMERIC(18,2) NOT NULL DEFAULT 0,
		installation_cost NUMERIC(18,2) NOT NULL DEFAULT 0,
		final_total NUMERIC(18,2) NOT NULL,
		created_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS billboards (
		id UUID PRIMARY KEY,
		code VARCHAR(64) NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		municipality TEXT NOT NULL DEFAULT '',
		size VARCHAR(32) NOT NULL,
		level VARCHAR(8) NOT NULL DEFAULT '',
		faces INT NOT NULL DEFAULT 2,
		type TEXT NOT NULL DEFAULT '',
		status billboard_status NOT NULL DEFAULT 'available',
		monthly_price NUMERIC(18,2) NOT NULL DEFAULT 0,
		contract_id UUID REFERENCES contracts(id),
		rent_end_date DATE
	);`,
	`CREATE TABLE IF NOT EXISTS contract_billboards (
		contract_id UUID NOT NULL REFERENCES contracts(id),
		billboard_id UUID NOT NULL REFERENCES billboards(id),
		PRIMARY KEY (contract_id, billboard_id)
	);`,
	`CREATE TABLE IF NOT EXISTS installments (
		contract_id UUID NOT NULL REFERENCES contracts(id),
		idx INT NOT NULL,
		amount NUMERIC(18,2) NOT NULL,
		payment_type VARCHAR(32) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		due_date DATE NOT NULL,
		PRIMARY KEY (contract_id, idx)
	);`,
	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		contract_id UUID REFERENCES contracts(id),
		customer_id UUID NOT NULL REFERENCES customers(id),
		amount NUMERIC(18,2) NOT NULL,
		entry_type ledger_entry_type NOT NULL,
		paid_at TIMESTAMPTZ NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS price_rows (
		size VARCHAR(32) NOT NULL,
		level VARCHAR(8) NOT NULL,
		category VARCHAR(32) NOT NULL,
		bucket VARCHAR(4) NOT NULL,
		unit_price NUMERIC(18,2) NOT NULL,
		PRIMARY KEY (size, level, category, bucket)
	);`,
	`CREATE TABLE IF NOT EXISTS installation_prices (
		size VARCHAR(32) PRIMARY KEY,
		price NUMERIC(18,2) NOT NULL,
		one_face_price NUMERIC(18,2)
	);`,
	`CREATE TABLE IF NOT EXISTS municipalities (
		name TEXT PRIMARY KEY
	);`,
	`CREATE TABLE IF NOT EXISTS billboard_types (
		name TEXT PRIMARY KEY
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_billboards_code ON billboards (code);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contracts_number ON contracts (number);`,
	`CREATE INDEX IF NOT EXISTS idx_billboards_contract_id ON billboards (contract_id) WHERE contract_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_customer_id ON contracts (customer_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_end_date ON contracts (end_date);`,
	`CREATE INDEX IF NOT EXISTS idx_payments_contract_id ON payments (contract_id) WHERE contract_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_payments_customer_id ON payments (customer_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
