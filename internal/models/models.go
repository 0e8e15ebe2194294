package models

// All lists every table model in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Customer{},
		&Product{},
		&Order{},
		&OrderItem{},
	}
}
