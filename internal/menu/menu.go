// Package menu holds the restaurant menu model, its JSON form and the loader
// that renders it into a view.
package menu

import "fmt"

// Entry is one menu item with its price in dollars.
type Entry struct {
	Name  string
	Price float64
}

// Multiplier scales a beverage price by cup size.
type Multiplier struct {
	Size   string
	Factor float64
}

// Menu is the payload of GET /api/menu.
type Menu struct {
	Prices          Prices      `json:"prices"`
	PriceMultiplier Multipliers `json:"price_multiplier,omitempty"`
}

// FormatPrice renders a price with exactly two decimals.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// Lookup returns the price of name.
func (m Menu) Lookup(name string) (float64, bool) {
	for _, e := range m.Prices {
		if e.Name == name {
			return e.Price, true
		}
	}
	return 0, false
}

// Default is the NoPickles menu served by the chat server.
func Default() Menu {
	return Menu{
		Prices: Prices{
			{"coffee", 1.50},
			{"cappuccino", 2.50},
			{"iced coffee", 2.00},
			{"iced capp", 2.25},
			{"latte", 2.00},
			{"tea", 1.50},
			{"hot chocolate", 2.25},
			{"french vanilla", 2.25},
			{"white chocolate", 2.25},
			{"mocha", 2.25},
			{"espresso", 1.00},
			{"americano", 2.25},
			{"extra shot", 0.25},
			{"soy milk", 0.30},
			{"whipped topping", 1.00},
			{"dark roast", 0.20},
			{"turkey bacon club", 3.00},
			{"blt", 2.90},
			{"grilled cheese", 4.00},
			{"chicken wrap", 3.50},
			{"soup", 2.80},
			{"donut", 1.50},
			{"double double", 1.50},
			{"triple triple", 1.50},
			{"muffin", 2.40},
			{"bagel", 3.00},
			{"timbits", 3.00},
			{"panini", 2.40},
			{"croissant", 3.00},
		},
		PriceMultiplier: Multipliers{
			{"small", 1.0},
			{"medium", 1.2},
			{"large", 1.4},
			{"extra large", 1.6},
		},
	}
}
