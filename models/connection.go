package models

import (
	// this is where we do the connections
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jinzhu/gorm"
	"github.com/replaykit/mediacommerce/conf"
)

// Namespace puts all tables names under a common
// namespace. This is useful if you want to use
// the same database for several services.
var Namespace string

func tableName(name string) string {
	if Namespace != "" {
		return Namespace + "_" + name
	}
	return name
}

// Connect will connect to that storage engine
func Connect(config *conf.Configuration) (*gorm.DB, error) {
	db, err := gorm.Open(config.DB.Driver, config.DB.ConnURL)
	if err != nil {
		return nil, err
	}

	err = db.DB().Ping()
	if err != nil {
		return nil, err
	}

	if config.DB.Automigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// AutoMigrate creates or updates the database schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Collection{}, &CollectionItem{}, &Order{}, &OrderItem{}).Error
}
