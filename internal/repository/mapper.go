package repository

import (
	customerResponse "github.com/kiranalabs/pos/customer/pkg/response"
	productResponse "github.com/kiranalabs/pos/product/pkg/response"
	userResponse "github.com/kiranalabs/pos/user/pkg/response"
)

func (p Product) Response() productResponse.Product {
	return productResponse.Product{
		ID:        p.ID,
		Name:      p.Name,
		Price:     DecimalFromNumeric(p.Price),
		Stock:     p.Stock,
		ScanCode:  p.ScanCode.String,
		CreatedAt: p.CreatedAt.Time,
		UpdatedAt: p.UpdatedAt.Time,
	}
}

func (u User) Response() userResponse.User {
	return userResponse.User{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.Time,
		UpdatedAt: u.UpdatedAt.Time,
	}
}

func (cu Customer) Response() customerResponse.Customer {
	return customerResponse.Customer{
		ID:        cu.ID,
		Name:      cu.Name,
		Phone:     cu.Phone,
		Email:     cu.Email.String,
		Address:   cu.Address.String,
		CreatedAt: cu.CreatedAt.Time,
		UpdatedAt: cu.UpdatedAt.Time,
	}
}
