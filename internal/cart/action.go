package cart

import "github.com/rogerio-castellano/cart-tracker/internal/models"

// Kind tags the variant of an Action.
type Kind string

const (
	KindAddItem        Kind = "ADD_ITEM"
	KindRemoveItem     Kind = "REMOVE_ITEM"
	KindUpdateQuantity Kind = "UPDATE_QUANTITY"
	KindClearCart      Kind = "CLEAR_CART"
)

// Action is an intent to change a cart. The set of actions is closed:
// only the types declared in this package implement it.
type Action interface {
	Kind() Kind
	action()
}

// AddItem puts one unit of Product into the cart.
type AddItem struct {
	Product models.Product
}

// RemoveItem drops every unit of the product from the cart.
type RemoveItem struct {
	ProductID int
}

// UpdateQuantity sets the quantity of a product already in the cart.
// Quantity is taken as given; zero and negative values are not rejected.
type UpdateQuantity struct {
	ProductID int
	Quantity  int
}

// ClearCart empties the cart.
type ClearCart struct{}

func (AddItem) Kind() Kind        { return KindAddItem }
func (RemoveItem) Kind() Kind     { return KindRemoveItem }
func (UpdateQuantity) Kind() Kind { return KindUpdateQuantity }
func (ClearCart) Kind() Kind      { return KindClearCart }

func (AddItem) action()        {}
func (RemoveItem) action()     {}
func (UpdateQuantity) action() {}
func (ClearCart) action()      {}

// ProductIDOf returns the product an action refers to, or 0 for ClearCart.
func ProductIDOf(a Action) int {
	switch a := a.(type) {
	case AddItem:
		return a.Product.ID
	case RemoveItem:
		return a.ProductID
	case UpdateQuantity:
		return a.ProductID
	default:
		return 0
	}
}
