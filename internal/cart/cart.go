// Package cart models the browser-local cart and favorites state. The
// server never persists a cart; this package exists so checkout and the
// quote endpoint price a cart with the same arithmetic the storefront
// client uses.
package cart

// Item is one cart line.
type Item struct {
	ProductID    string  `json:"product_id" validate:"required"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	VariantID    string  `json:"variant_id" validate:"required"`
	VariantName  string  `json:"variant_name"`
	Price        float64 `json:"price" validate:"gte=0"`
	Quantity     int     `json:"quantity"`
}

// Cart is an ordered list of lines plus derived totals.
type Cart struct {
	Items    []Item  `json:"items"`
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`

	shippingFee float64
}

// New creates an empty cart with the given flat shipping fee.
func New(shippingFee float64) *Cart {
	return &Cart{
		Items:       []Item{},
		shippingFee: shippingFee,
	}
}

// AddItem merges the line into the cart. A line with the same
// (productID, variantID) as an existing one increments its quantity
// instead of duplicating the line.
func (c *Cart) AddItem(item Item) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID && c.Items[i].VariantID == item.VariantID {
			c.Items[i].Quantity += item.Quantity
			c.recalculate()
			return
		}
	}
	c.Items = append(c.Items, item)
	c.recalculate()
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or
// below removes the line entirely.
func (c *Cart) UpdateQuantity(productID, variantID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID, variantID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].VariantID == variantID {
			c.Items[i].Quantity = quantity
			break
		}
	}
	c.recalculate()
}

// RemoveItem drops the line with the given (productID, variantID).
func (c *Cart) RemoveItem(productID, variantID string) {
	items := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID == productID && item.VariantID == variantID {
			continue
		}
		items = append(items, item)
	}
	c.Items = items
	c.recalculate()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.recalculate()
}

// Shipping is a flat fee whenever the cart is non-empty.
func (c *Cart) recalculate() {
	subtotal := 0.0
	for _, item := range c.Items {
		subtotal += item.Price * float64(item.Quantity)
	}

	shipping := 0.0
	if len(c.Items) > 0 {
		shipping = c.shippingFee
	}

	c.Subtotal = subtotal
	c.Shipping = shipping
	c.Total = subtotal + shipping
}

// Quote prices a list of submitted lines with the given shipping fee,
// merging duplicate (productID, variantID) lines and dropping lines
// with a non-positive quantity.
func Quote(items []Item, shippingFee float64) *Cart {
	c := New(shippingFee)
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		c.AddItem(item)
	}
	return c
}
