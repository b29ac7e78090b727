package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/venturelab/venturehub/internal/errs"

	driver "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB 打开连接并配置连接池；TranslateError 让唯一键冲突变成可识别错误
func InitDB(dsn string) error {
	db, err := gorm.Open(driver.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db
	return nil
}

// wrapErr 把 gorm / context 错误翻译成统一分类
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.ErrConflict
	case errors.Is(err, context.DeadlineExceeded):
		return errs.ErrStoreTimeout
	default:
		return err
	}
}
