package domain

import "github.com/shopspring/decimal"

type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

func (i CartItem) Total() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds line items in insertion order. Every item has Quantity >= 1 and
// ids are unique.
type Cart []CartItem

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.Total())
	}

	return total
}

func (c Cart) IndexOf(id string) int {
	for i, item := range c {
		if item.ID == id {
			return i
		}
	}

	return -1
}

func (c Cart) Clone() Cart {
	clone := make(Cart, len(c))
	copy(clone, c)

	return clone
}
