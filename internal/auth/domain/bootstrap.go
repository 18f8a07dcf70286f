package domain

// SeedAccount describes one of the sample accounts created by a reset.
type SeedAccount struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// SeedData is everything a reset writes after wiping the users table.
type SeedData struct {
	AdminEmail string        `yaml:"admin_email"`
	Samples    []SeedAccount `yaml:"samples"`
}
