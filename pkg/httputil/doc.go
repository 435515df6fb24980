// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Overview
//
// This package offers helpers for JSON encoding and decoding, registry-backed
// error payloads, query and path parsing, pagination parameter validation and the
// standard middleware stack.
//
// # Response Helpers
//
//	httputil.WriteJSON(w, http.StatusOK, data)
//	httputil.WriteCreated(w, resource)
//
// Errors are resolved against an apierrors.Registry:
//
//	errs := httputil.NewErrorWriter(registry)
//	errs.Write(w, r, apierrors.New(apierrors.CodeObjectNotFound, "item not found"))
//	// 404 {"message":"item not found","code":"object_not_found","type":"user_error",...}
//
// WriteError, WriteBadRequest, WriteNotFound, WriteUnauthorized and WriteForbidden
// use the built-in registry.
//
// # Request Parsing
//
//	var req CreateItemRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // Error response already written
//	}
//
// Pagination, sorting and filtering:
//
//	params, ok := httputil.ParseParamsOrError(errs, w, r, items.PageSortFilter)
//	if !ok {
//		return
//	}
//
// # Middleware
//
//	handler, err := httputil.Stack(router, httputil.StackOptions{
//		Include: []string{httputil.MiddlewareCORS, httputil.MiddlewareMetrics},
//		CORS:    httputil.DefaultCORSOptions(),
//		Metrics: metrics,
//	})
//
// # Related Packages
//
//   - pkg/middleware: Authentication and authorization middleware
//   - pkg/pagination: Query parameter validation
package httputil
