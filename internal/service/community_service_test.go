package service

import (
	"context"
	"testing"

	"github.com/venturelab/venturehub/internal/errs"
	"github.com/venturelab/venturehub/internal/repository/mysql"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	driver "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newCommunityService(t *testing.T) (*CommunityService, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(driver.New(driver.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return NewCommunityService(&mysql.CommunityRepository{DB: db}, &fakeAuthorizer{}), mock
}

// 重名社区在写入前就被挡下
func TestCreateCommunityDuplicateName(t *testing.T) {
	svc, mock := newCommunityService(t)

	rows := sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "fintech")
	mock.ExpectQuery(".*").WillReturnRows(rows)

	_, err := svc.CreateCommunity(context.Background(), 100, "fintech", "")
	assert.ErrorIs(t, err, errs.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCommunityRejectsEmptyName(t *testing.T) {
	svc, mock := newCommunityService(t)

	_, err := svc.CreateCommunity(context.Background(), 100, "", "")
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
