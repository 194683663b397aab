package api

import (
	"context"

	"github.com/dgrijalva/jwt-go"
)

type contextKey string

const (
	tokenKey     = contextKey("jwt")
	requestIDKey = contextKey("request_id")
)

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func getRequestID(ctx context.Context) string {
	obj := ctx.Value(requestIDKey)
	if obj == nil {
		return ""
	}
	return obj.(string)
}

func withToken(ctx context.Context, token *jwt.Token) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func getToken(ctx context.Context) *jwt.Token {
	obj := ctx.Value(tokenKey)
	if obj == nil {
		return nil
	}
	return obj.(*jwt.Token)
}

func getClaims(ctx context.Context) *JWTClaims {
	token := getToken(ctx)
	if token == nil {
		return nil
	}
	return token.Claims.(*JWTClaims)
}
