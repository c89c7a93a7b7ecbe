package db

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestOpenGormWithDialector_Success(t *testing.T) {
	sqlDB, _, err := sqlmock.New() // pings are not monitored, so they succeed
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true, // don't query @@version
	})

	core, logs := observer.New(zap.InfoLevel)
	gdb, err := OpenGormWithDialector(dial, zap.New(core))
	if err != nil {
		t.Fatalf("OpenGormWithDialector error: %v", err)
	}
	if logs.FilterMessage("gorm: connected").Len() != 1 {
		t.Fatalf("connect not logged")
	}
	if gdb == nil {
		t.Fatalf("got nil gorm.DB")
	}
	pool, err := gdb.DB()
	if err != nil {
		t.Fatalf("DB(): %v", err)
	}
	if got := pool.Stats().MaxOpenConnections; got != 30 {
		t.Fatalf("MaxOpenConnections = %d, want 30", got)
	}
}

func TestOpenGormWithDialector_PingFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectPing().WillReturnError(errors.New("no ping"))

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})

	gdb, err := OpenGormWithDialector(dial, zap.NewNop())
	if err == nil {
		t.Fatalf("expected error, got nil (gdb=%v)", gdb)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGormWithDialector_TranslatesDuplicateKey(t *testing.T) {
	gdb, err := OpenGormWithDialector(sqlite.Open("file:dup?mode=memory&cache=shared"), zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	pool, _ := gdb.DB()
	t.Cleanup(func() { _ = pool.Close() })

	type probe struct {
		ID   uint   `gorm:"primaryKey"`
		Code string `gorm:"uniqueIndex"`
	}
	if err := gdb.AutoMigrate(&probe{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := gdb.Create(&probe{Code: "a"}).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err = gdb.Create(&probe{Code: "a"}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate insert err = %v, want gorm.ErrDuplicatedKey", err)
	}
}
