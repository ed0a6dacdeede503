package role

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-roles-api/internal/domain"
	"user-roles-api/internal/transport/http/ez"
)

// Module 只读：角色是种子数据，不提供增删改
type Module struct {
	repo domain.RoleRepository
	log  *zap.Logger
}

func NewModule(repo domain.RoleRepository, l *zap.Logger) *Module {
	return &Module{repo: repo, log: l}
}

func (m *Module) Priority() int { return 20 }

func (m *Module) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api, m.log)

	ez.RegisterAction(e, ez.Action[struct{}, []domain.Role]{
		Method: http.MethodGet,
		Path:   "/roles",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Role, error) {
			roles, err := m.repo.List(c.Request.Context())
			if err != nil {
				return nil, ez.Internal("Failed to retrieve roles", err)
			}
			return roles, nil
		},
	})
}
