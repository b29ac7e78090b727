package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 对账的真实计数和仓储的 APPROVED 计数是同一条查询
func TestRealCountsReuseApprovedQueries(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &CommunityCountRepo{DB: db}

	mock.ExpectQuery(".*").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	n, err := repo.RealMemberCount(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	mock.ExpectQuery(".*").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	n, err = repo.RealPageCount(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.NoError(t, mock.ExpectationsWereMet())
}
