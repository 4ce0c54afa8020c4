package models

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Address{},
		&Brand{},
		&Category{},
		&Product{},
		&ProductImage{},
		&Cart{},
		&CartProduct{},
		&Order{},
	}
}
