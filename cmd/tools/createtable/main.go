package main

import (
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "saferpay:saferpay@tcp(localhost:3306)/saferpay_dev?parseTime=true&multiStatements=true&loc=Local"
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB: %v", err)
	}

	sql := `
	CREATE TABLE IF NOT EXISTS orders (
	  id CHAR(36) NOT NULL,
	  number VARCHAR(32) NOT NULL,
	  state VARCHAR(32) NOT NULL,
	  total_cents INT NOT NULL,
	  currency CHAR(3) NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_orders_number (number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS saferpay_payment_methods (
	  id CHAR(36) NOT NULL,
	  name VARCHAR(64) NOT NULL,
	  kind VARCHAR(32) NOT NULL,
	  require_liability_shift TINYINT(1) NOT NULL DEFAULT 0,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS saferpay_payments (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  payment_method_id CHAR(36) NOT NULL,
	  token VARCHAR(64) NOT NULL,
	  expiration DATETIME(3) NOT NULL,
	  redirect_url VARCHAR(255) NULL,
	  transaction_id VARCHAR(64) NULL,
	  transaction_status VARCHAR(32) NULL,
	  transaction_date DATETIME(3) NULL,
	  six_transaction_reference VARCHAR(64) NULL,
	  display_text VARCHAR(64) NULL,
	  masked_number VARCHAR(32) NULL,
	  expiration_year INT NULL,
	  expiration_month INT NULL,
	  response_hash JSON NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_saferpay_payments_token (token),
	  UNIQUE KEY ux_saferpay_payments_transaction_id (transaction_id),
	  UNIQUE KEY ux_saferpay_payments_six_reference (six_transaction_reference),
	  KEY ix_saferpay_payments_order_id (order_id),
	  CONSTRAINT fk_saferpay_payments_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
	  CONSTRAINT fk_saferpay_payments_method FOREIGN KEY (payment_method_id) REFERENCES saferpay_payment_methods(id) ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS payments (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  payment_method_id CHAR(36) NOT NULL,
	  source_id CHAR(36) NOT NULL,
	  amount_cents INT NOT NULL,
	  currency CHAR(3) NOT NULL,
	  response_code VARCHAR(64) NOT NULL,
	  state VARCHAR(32) NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_payments_order_id (order_id),
	  CONSTRAINT fk_payments_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
	  CONSTRAINT fk_payments_source FOREIGN KEY (source_id) REFERENCES saferpay_payments(id) ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS order_financial_entries (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  event VARCHAR(32) NOT NULL,
	  amount_cents INT NOT NULL,
	  currency CHAR(3) NOT NULL,
	  ref_type VARCHAR(16) NOT NULL,
	  ref_id CHAR(36) NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_order_fin_entries_order_id (order_id),
	  CONSTRAINT fk_order_fin_entries_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if _, err := sqlDB.Exec(sql); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("✓ orders table created successfully")
	log.Println("✓ saferpay_payment_methods table created successfully")
	log.Println("✓ saferpay_payments table created successfully")
	log.Println("✓ payments table created successfully")
	log.Println("✓ order_financial_entries table created successfully")
}
