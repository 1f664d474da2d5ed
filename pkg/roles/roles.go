package roles

import "stockledger/pkg/models"

// Role represents the access level of the operator.
type Role string

const (
	// ProductOnly is restricted to the product category.
	ProductOnly Role = "product_only"
	// Admin has full access, including the part category.
	Admin Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case ProductOnly, Admin:
		return true
	default:
		return false
	}
}

// CanAccess reports whether the role may operate on the given item category.
func (r Role) CanAccess(t models.ItemType) bool {
	if r == Admin {
		return true
	}
	return t == models.ItemTypeProduct
}

func (r Role) String() string {
	return string(r)
}
