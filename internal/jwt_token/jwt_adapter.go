package jwttoken

import (
	"vorsorge/internal/platform/middleware"
)

func ToMiddlewareClaims(claims *AccessTokenClaims) *middleware.JWTClaims {
	return &middleware.JWTClaims{
		UserID:    claims.UserID,
		SessionID: claims.SessionID,
	}
}

// JWTServiceAdapter bridges JWTService to the middleware validator interface.
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
	return ToMiddlewareClaims(claims), nil
}
