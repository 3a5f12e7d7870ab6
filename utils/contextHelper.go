package utils

import (
	"context"

	"github.com/medilinkhq/pharmacy_backend/appctx"
)

var (
	ContextKeyPharmacyId      = appctx.ContextKeyPharmacyId
	ContextKeyUserId          = appctx.ContextKeyUserId
	ContextKeyCorrelationId   = appctx.ContextKeyCorrelationId
	ContextKeySkipTenantScope = appctx.ContextKeySkipTenantScope
)

func GetPharmacyIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyPharmacyId)
}

func GetUserIdFromContext(ctx context.Context) (int, bool) {
	return appctx.GetInt(ctx, ContextKeyUserId)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func SetPharmacyIdInContext(ctx context.Context, pharmacyId string) context.Context {
	return appctx.Set(ctx, ContextKeyPharmacyId, pharmacyId)
}

func SetUserIdInContext(ctx context.Context, userId int) context.Context {
	return appctx.Set(ctx, ContextKeyUserId, userId)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}

func GetSkipTenantScopeFromContext(ctx context.Context) (bool, bool) {
	return appctx.GetBool(ctx, ContextKeySkipTenantScope)
}

func SetSkipTenantScopeInContext(ctx context.Context, skip bool) context.Context {
	return appctx.Set(ctx, ContextKeySkipTenantScope, skip)
}
