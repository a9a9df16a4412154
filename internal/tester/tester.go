package tester

import (
	"os"
	"path/filepath"

	"github.com/solvenote/solvenote/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	db      *gorm.DB
	testDir string
)

// Setup creates a fresh sqlite database for the test run and migrates
// the schema into it.
func Setup() {
	RemoveDBFile()

	_ = os.Setenv("ENV", "test")

	dir, err := os.MkdirTemp("", "solvenote-test-")
	if err != nil {
		panic(err)
	}
	testDir = dir

	db, err = gorm.Open(sqlite.Open(filepath.Join(testDir, "solvenote.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	err = model.Migrate(db)
	if err != nil {
		panic(err)
	}
}

func TestDB() *gorm.DB {
	return db
}

func RemoveDBFile() {
	if testDir == "" {
		return
	}

	err := os.RemoveAll(testDir)
	if err != nil {
		panic(err)
	}
	testDir = ""
}
