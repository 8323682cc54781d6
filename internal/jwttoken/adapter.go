package jwttoken

import (
	"certform/internal/platform/middleware"
)

// JWTServiceAdapter bridges the token service into the middleware's
// validator interface without the middleware importing this package.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{
		Email:  claims.Email,
		Tenant: claims.Tenant,
	}, nil
}
