// Package apierrors defines the error codes shared by all services and the JSON payload
// clients receive for them.
//
// # Registry
//
// A Registry maps each Code to a Descriptor (type, level, HTTP status, WebSocket close
// code). It is immutable: build it once at startup and pass it to whatever writes
// responses. Services add their own codes with Extend, which returns a new Registry.
//
//	registry, err := apierrors.Default().Extend(apierrors.Descriptor{
//		Identifier:    "bot_not_found",
//		Type:          apierrors.TypeUserError,
//		Level:         apierrors.LevelError,
//		HTTPCode:      http.StatusNotFound,
//		WebSocketCode: apierrors.WSPolicyViolation,
//	})
//
// # Raising Errors
//
//	return apierrors.New(apierrors.CodeObjectNotFound, "bot 42 does not exist")
//
// Any error exposing ErrorCode() Code (pagination.ValidationError does) is mapped to that
// code; everything else becomes unknown_error.
//
// # Payload
//
//	detail := registry.Resolve(err, apierrors.ProtocolHTTP)
//	// {"message": "...", "code": "object_not_found", "type": "user_error",
//	//  "level": "error", "status_code": 404}
package apierrors
