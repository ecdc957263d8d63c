package models

// Category : Category Model
//
// UserID 0 marks a shared category: visible to every user, mutable only
// through the admin endpoints.
type Category struct {
	ID     int64  `json:"id" bun:",pk,autoincrement"`
	UserID int64  `json:"user_id,omitempty" bun:",nullzero"`
	User   *User  `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Name   string `json:"name" validate:"required,max=50"`
	Type   string `json:"type" bun:",notnull,default:'BOTH'" validate:"omitempty,oneof=IN OUT BOTH"`
}

// Global reports whether the category is shared across all users.
func (c *Category) Global() bool {
	return c.UserID == 0
}
