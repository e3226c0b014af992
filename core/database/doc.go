// Package database provides the MySQL connection used as the record store.
//
// The collection and user tables are owned by this application; migrations
// run through GORM AutoMigrate at startup. Connection pooling and timeouts
// are fixed here so callers only deal with a ready *gorm.DB.
package database
