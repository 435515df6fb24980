// Package deprecation announces deprecated and experimental API surfaces.
//
//	old := deprecation.New("Use /v2/items instead.", deprecation.V(2, 1))
//	old.String() // "Use /v2/items instead. Deprecated in Crypticorn v2.1 to be removed in v3.0."
//
//	router.Handle("/items", deprecation.Middleware(old, nil)(itemsHandler))
//
// Warn and Middleware log each distinct notice once per Warner.
package deprecation
