package mysql

import (
	"context"

	"github.com/venturelab/venturehub/internal/model"

	"gorm.io/gorm"
)

type AdminRepository struct {
	DB *gorm.DB
}

func (r *AdminRepository) Create(ctx context.Context, admin *model.Admin) error {
	return wrapErr(r.DB.WithContext(ctx).Create(admin).Error)
}

func (r *AdminRepository) FindByID(ctx context.Context, id uint64) (*model.Admin, error) {
	var admin model.Admin
	err := r.DB.WithContext(ctx).First(&admin, id).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &admin, nil
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var admin model.Admin
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &admin, nil
}

func (r *AdminRepository) UpdatePermissions(ctx context.Context, id uint64, perms model.PermissionList) error {
	return wrapErr(r.DB.WithContext(ctx).Model(&model.Admin{}).
		Where("id = ?", id).
		Update("permissions", perms).Error)
}
