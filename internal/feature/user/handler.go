package user

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-roles-api/internal/domain"
	"user-roles-api/internal/transport/http/ez"
)

// Service 由 service.UserService 实现
type Service interface {
	ListUsers(ctx context.Context, q domain.ListQuery) (domain.Page[domain.User], error)
	GetUser(ctx context.Context, id uint) (*domain.User, error)
	CreateUser(ctx context.Context, f domain.UserFields, roleIDs []uint) (*domain.User, error)
	UpdateUser(ctx context.Context, id uint, f domain.UserFields, roleIDs []uint) (*domain.User, error)
	DeleteUser(ctx context.Context, id uint) (bool, error)
}

type Module struct {
	svc   Service
	roles domain.RoleRepository
	log   *zap.Logger
}

func NewModule(svc Service, roles domain.RoleRepository, l *zap.Logger) *Module {
	return &Module{svc: svc, roles: roles, log: l}
}

func (m *Module) Priority() int { return 10 }

func (m *Module) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api, m.log)

	ez.RegisterAction(e, ez.Action[listQuery, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listQuery) (listOut, error) {
			q := domain.ListQuery{
				Page:    ez.AtoiDefault(in.Page, 1),
				PerPage: ez.AtoiDefault(in.PerPage, domain.DefaultPerPage),
			}
			if v, err := strconv.ParseUint(in.RoleID, 10, 64); err == nil && v > 0 {
				rid := uint(v)
				q.RoleID = &rid
			}
			page, err := m.svc.ListUsers(c.Request.Context(), q)
			if err != nil {
				return listOut{}, mapErr(err, "Failed to retrieve users")
			}
			return toListOut(page), nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, UserResource]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (UserResource, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return UserResource{}, err
			}
			u, err := m.svc.GetUser(c.Request.Context(), id)
			if err != nil {
				return UserResource{}, mapErr(err, "Failed to retrieve user")
			}
			return toResource(u), nil
		},
	})

	ez.RegisterAction(e, ez.Action[createUserIn, UserResource]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *createUserIn) (UserResource, error) {
			if err := m.checkRoles(c.Request.Context(), in.RoleIDs); err != nil {
				return UserResource{}, err
			}
			f := domain.UserFields{Name: &in.Name, Email: &in.Email}
			u, err := m.svc.CreateUser(c.Request.Context(), f, in.RoleIDs)
			if err != nil {
				return UserResource{}, mapErr(err, "Failed to create user")
			}
			return toResource(u), nil
		},
	})

	update := ez.Action[updateUserIn, UserResource]{
		Path:   "/users/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *updateUserIn) (UserResource, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return UserResource{}, err
			}
			if err := m.checkRoles(c.Request.Context(), in.RoleIDs); err != nil {
				return UserResource{}, err
			}
			f := domain.UserFields{Name: in.Name, Email: in.Email}
			u, err := m.svc.UpdateUser(c.Request.Context(), id, f, in.RoleIDs)
			if err != nil {
				return UserResource{}, mapErr(err, "Failed to update user")
			}
			return toResource(u), nil
		},
	}
	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		update.Method = method
		ez.RegisterAction(e, update)
	}

	ez.RegisterAction(e, ez.Action[struct{}, deleteOut]{
		Method: http.MethodDelete,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (deleteOut, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return deleteOut{}, err
			}
			if _, err := m.svc.DeleteUser(c.Request.Context(), id); err != nil {
				return deleteOut{}, mapErr(err, "Failed to delete user")
			}
			return deleteOut{Message: "User deleted successfully"}, nil
		},
	})
}

// checkRoles 对应 exists:roles,id；在进入 service 之前拦截
func (m *Module) checkRoles(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	missing, err := m.roles.MissingIDs(ctx, ids)
	if err != nil {
		return ez.Internal("Failed to validate roles", err)
	}
	if len(missing) > 0 {
		return ez.Invalid("The selected role is invalid.", map[string]string{
			"role_ids": "unknown role id(s): " + joinIDs(missing),
		})
	}
	return nil
}

// mapErr 领域错误 -> 对外错误；其余一律 500 + 固定文案
func mapErr(err error, failMsg string) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return ez.NotFound("User not found")
	case errors.Is(err, domain.ErrEmailTaken):
		return ez.Conflict("The email address is already taken.")
	case errors.Is(err, domain.ErrUnknownRole):
		return ez.Invalid("The selected role is invalid.", nil)
	default:
		return ez.Internal(failMsg, err)
	}
}

func joinIDs(ids []uint) string {
	b := make([]byte, 0, len(ids)*3)
	for i, id := range ids {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendUint(b, uint64(id), 10)
	}
	return string(b)
}
