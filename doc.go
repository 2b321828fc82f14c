// Package basekit is a Go client SDK for the backend-as-a-service REST API.
// It composes session management (pkg/auth), realtime change streams
// (pkg/realtime) and table queries (pkg/query) over a shared HTTP transport.
//
//	client, err := basekit.New("https://api.example.com")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	session, err := client.Auth.SignInWithPassword(ctx, auth.Credentials{
//		Email:    "dev@example.com",
//		Password: "secret",
//	})
//
//	var orders []Order
//	err = client.From("orders").Eq("status", "open").Execute(ctx, &orders)
//
//	client.Realtime.Channel("orders").
//		On(realtime.EventInsert, func(p realtime.Payload) { ... }).
//		Subscribe(ctx, nil)
//
// All subsystems share the same bearer-token source: once a session is
// installed, queries and realtime connections authenticate automatically.
package basekit
