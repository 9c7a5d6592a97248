package customer

// Customer is a row of the customers collection
type Customer struct {
	ID       string `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	ImageURL string `mapstructure:"image_url"`
}

// Field is the id and name pair offered in the invoice form
type Field struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}
