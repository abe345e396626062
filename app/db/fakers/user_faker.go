package fakers

import (
	"github.com/Rakhulsr/go-cart/app/helpers"
	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/go-faker/faker/v4"
)

// AdminUser returns the seeded administrator with a hashed password.
func AdminUser(email, password string) (*models.User, error) {
	hashed, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &models.User{
		FirstName: "Store",
		LastName:  "Admin",
		Email:     email,
		Password:  hashed,
		Role:      models.RoleAdmin,
	}, nil
}

func UserFaker() (*models.User, error) {
	hashed, err := helpers.HashPassword("password")
	if err != nil {
		return nil, err
	}
	return &models.User{
		FirstName: faker.FirstName(),
		LastName:  faker.LastName(),
		Email:     faker.Email(),
		Password:  hashed,
		Role:      models.RoleCustomer,
	}, nil
}
