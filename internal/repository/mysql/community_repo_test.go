package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 删社区在同一事务里连带清掉管理员、成员和页面关联，不留孤儿行
func TestDeleteCommunityCascadesJoinRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &CommunityRepository{DB: db}

	mock.ExpectBegin()
	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 1)) // communities
	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 1)) // community_admins
	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 3)) // community_members
	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 2)) // community_page_links
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteByID(context.Background(), 10))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByNameReturnsMatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &CommunityRepository{DB: db}

	rows := sqlmock.NewRows([]string{"id", "name"}).AddRow(7, "fintech")
	mock.ExpectQuery(".*").WillReturnRows(rows)

	c, err := repo.FindByName(context.Background(), "fintech")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), c.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
