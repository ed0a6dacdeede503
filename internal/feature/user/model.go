package user

import (
	"time"

	"user-roles-api/internal/domain"
)

type createUserIn struct {
	Name    string `json:"name"     binding:"required,max=255"`
	Email   string `json:"email"    binding:"required,email,max=191"`
	RoleIDs []uint `json:"role_ids" binding:"required,min=1,dive,gt=0"`
}

// updateUserIn 部分更新：缺省字段不改；role_ids 缺省不动角色，[] 清空
type updateUserIn struct {
	Name    *string `json:"name"     binding:"omitempty,min=1,max=255"`
	Email   *string `json:"email"    binding:"omitempty,email,max=191"`
	RoleIDs []uint  `json:"role_ids" binding:"omitempty,dive,gt=0"`
}

// listQuery 全用 string：非法的 role_id 当作未传，而不是 400
type listQuery struct {
	PerPage string `form:"per_page"`
	RoleID  string `form:"role_id"`
	Page    string `form:"page"`
}

type RoleResource struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type UserResource struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Roles     []RoleResource `json:"roles"`
}

type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

type listOut struct {
	Items []UserResource `json:"items"`
	Meta  PageMeta       `json:"meta"`
}

type deleteOut struct {
	Message string `json:"message"`
}

func toResource(u *domain.User) UserResource {
	roles := make([]RoleResource, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, RoleResource{ID: r.ID, Name: r.Name})
	}
	return UserResource{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Roles:     roles,
	}
}

func toListOut(p domain.Page[domain.User]) listOut {
	items := make([]UserResource, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, toResource(&p.Items[i]))
	}
	return listOut{
		Items: items,
		Meta: PageMeta{
			CurrentPage: p.Page,
			PerPage:     p.PerPage,
			Total:       p.Total,
			LastPage:    p.LastPage(),
		},
	}
}
