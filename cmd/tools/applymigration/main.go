package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	mysqlerr "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	errDupColumn = 1060
	errDupKey    = 1061
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// re-running is fine: existing columns and indexes are skipped
	apply := func(sql string) {
		err := db.Exec(sql).Error
		if err == nil {
			return
		}
		var me *mysqlerr.MySQLError
		if errors.As(err, &me) && (me.Number == errDupColumn || me.Number == errDupKey) {
			log.Printf("skip: %s", me.Message)
			return
		}
		log.Fatalf("Failed: %v", err)
	}

	apply(`ALTER TABLE products ADD COLUMN image_url VARCHAR(1024) NOT NULL DEFAULT '' AFTER category`)
	apply(`ALTER TABLE products MODIFY COLUMN price DECIMAL(12,2) NOT NULL DEFAULT 0`)
	apply(`ALTER TABLE products ADD KEY ix_products_category (category)`)

	fmt.Println("✓ products image and category migration applied")
}
