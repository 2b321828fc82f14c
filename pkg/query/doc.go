// Package query provides a fluent builder for table CRUD against the
// backend REST API.
//
//	var orders []Order
//	err := client.From("orders").
//		Select("id", "status").
//		Eq("status", "open").
//		Order("created_at", true).
//		Limit(20).
//		Execute(ctx, &orders)
//
// The builder only formats requests; filtering and ordering are evaluated by
// the backend.
package query
