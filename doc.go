// Package lasr ranks records against a free-text query by exact substring
// matching over selected fields.
//
// In-process search over Go values:
//
//	results, err := lasr.Search(lasr.Options{
//		Items: people,
//		Query: "9000 sitting",
//		Keys:  []string{"name", "skills.name", "skills.level"},
//	})
//
// Records stored in Redis or Valkey under "<prefix><collection>:<id>" can be
// searched through a Client:
//
//	client, err := lasr.New(lasr.WithValkey("localhost:6379", ""))
//	results, err := client.Collection("people").Search(ctx, "magic", keys, 10)
package lasr
