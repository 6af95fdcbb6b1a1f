package dbmysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"socialwall/internal/config"
)

// NewMySQL returns a GORM DB instance connected to MySQL
func NewMySQL(cnf *config.Config) (*gorm.DB, error) {
	dsn := cnf.DSN()
	if dsn == "" {
		return nil, fmt.Errorf("MYSQL DSN is not set")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB error: %w", err)
	}
	sqlDB.SetMaxOpenConns(cnf.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cnf.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.AutoMigrate(&User{}, &Post{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("✅ Connected to MySQL successfully")

	return db, nil
}
