package jwttoken

import (
	"rosterd/internal/platform/middleware"
	id "rosterd/pkg/domain"
)

// JWTServiceAdapter bridges the token service to the middleware validator
// interface, translating string claims into typed IDs at the boundary.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &middleware.TokenClaims{
		UserID: userID,
		Login:  claims.Login,
		JTI:    claims.ID,
	}, nil
}
