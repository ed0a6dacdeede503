package repo

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-roles-api/internal/domain"
)

type RoleRepo struct {
	db  *gorm.DB
	log *zap.Logger
}

var _ domain.RoleRepository = (*RoleRepo)(nil)

func NewRoleRepo(db *gorm.DB, l *zap.Logger) *RoleRepo {
	return &RoleRepo{db: db, log: l.Named("role_repo")}
}

func (r *RoleRepo) List(ctx context.Context) ([]domain.Role, error) {
	roles := []domain.Role{}
	if err := r.db.WithContext(ctx).Order("id").Find(&roles).Error; err != nil {
		err = classify(err)
		r.log.Error("list roles failed", zap.Error(err))
		return nil, err
	}
	return roles, nil
}

func (r *RoleRepo) MissingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	ids = uniqIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var found []uint
	if err := r.db.WithContext(ctx).Model(&domain.Role{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		err = classify(err)
		r.log.Error("lookup roles failed", zap.Uints("role_ids", ids), zap.Error(err))
		return nil, err
	}
	exists := make(map[uint]struct{}, len(found))
	for _, id := range found {
		exists[id] = struct{}{}
	}
	var missing []uint
	for _, id := range ids {
		if _, ok := exists[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
